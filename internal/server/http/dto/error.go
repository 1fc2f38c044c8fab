package dto

import "time"

// Error kinds reported in ErrorResponse.
const (
	KindValidation      = "validation_error"
	KindNotFound        = "not_found"
	KindInvalidState    = "invalid_state_transition"
	KindConflict        = "conflict"
	KindInternal        = "internal_error"
	InternalErrorDetail = "internal server error"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}
