package model

import "time"

// ReviewStatus is the moderation state of a review.
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "PENDING"
	ReviewStatusAccepted ReviewStatus = "ACCEPTED"
	ReviewStatusRejected ReviewStatus = "REJECTED"
)

// Valid reports whether s is a known moderation state.
func (s ReviewStatus) Valid() bool {
	switch s {
	case ReviewStatusPending, ReviewStatusAccepted, ReviewStatusRejected:
		return true
	}
	return false
}

// Review is a customer rating of a product.
type Review struct {
	ID                int64
	ProductID         int64
	CustomerID        int64
	CustomerFirstName string
	CustomerLastName  string
	Rating            int
	Comment           string
	Status            ReviewStatus
	Date              time.Time
	CreatedAt         time.Time
	DeletedAt         *time.Time
}
