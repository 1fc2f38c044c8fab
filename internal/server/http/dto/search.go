package dto

import "time"

// PageResponse is one page of a search.
type PageResponse[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
}

// ProductResponse describes a catalog product.
type ProductResponse struct {
	ID           int64     `json:"id"`
	Reference    string    `json:"reference"`
	CategoryID   int64     `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	Price        Money     `json:"price"`
	Width        *Number   `json:"width"`
	Height       *Number   `json:"height"`
	Depth        *Number   `json:"depth"`
	Stock        int       `json:"stock"`
	Sales        int       `json:"sales"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserResponse describes a user account.
type UserResponse struct {
	ID            int64     `json:"id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	HasNewsletter bool      `json:"hasNewsletter"`
	SegmentIDs    []int64   `json:"segmentIds"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ReviewCustomerResponse is the author of a review.
type ReviewCustomerResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// ReviewResponse describes a product review.
type ReviewResponse struct {
	ID        int64                  `json:"id"`
	ProductID int64                  `json:"productId"`
	Customer  ReviewCustomerResponse `json:"customer"`
	Rating    int                    `json:"rating"`
	Comment   string                 `json:"comment"`
	Status    string                 `json:"status"`
	Date      time.Time              `json:"date"`
	CreatedAt time.Time              `json:"createdAt"`
}
