package booking

import "errors"

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrCapacityExceeded = errors.New("not enough tickets available")
	ErrInvalidTickets   = errors.New("number of tickets must be positive")
	ErrMissingUserName  = errors.New("user name is required")
)
