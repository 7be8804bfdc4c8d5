package errors

import "errors"

var (
	ErrBookingNotFound = errors.New("booking not found")

	ErrUnknownTask = errors.New("unknown progress task")
)
