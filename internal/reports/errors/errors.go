package errors

import "errors"

var (
	ErrBookingNotFound = errors.New("booking not found")

	ErrWatermarkUnavailable = errors.New("watermark unavailable")
)
