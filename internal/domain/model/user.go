package model

import "time"

// Customer is the directory view of a buyer used when placing orders.
type Customer struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Address   string
}

// FullName joins first and last name.
func (c Customer) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}

// User is the searchable account record behind a customer.
type User struct {
	ID            int64
	FirstName     string
	LastName      string
	Email         string
	Address       string
	HasNewsletter bool
	SegmentIDs    []int64
	CreatedAt     time.Time
	DeletedAt     *time.Time
}

// Customer projects the user onto the directory view.
func (u User) Customer() Customer {
	return Customer{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email, Address: u.Address}
}
