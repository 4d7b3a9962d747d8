package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// These errors represent conditions that callers may want to check for with
// errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in service-specific error types
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrReviewNotDue indicates an attempt to complete a review whose due
	// date is still in the future. Reviewing ahead of schedule defeats the
	// spacing intervals, so the toggle rejects it.
	// API layer should map this to HTTP 409 Conflict.
	ErrReviewNotDue = errors.New("review is not yet due")
)
