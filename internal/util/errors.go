// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidInput        = errors.New("invalid input provided")
	ErrInvalidAmount       = errors.New("invalid amount: must be a non-negative integer in minor units")
	ErrUnknownScheduleType = errors.New("unknown payout schedule type")
)

// IsError reports whether err, or any error it wraps, matches target.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
