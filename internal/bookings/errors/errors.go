package errors

import "errors"

var (
	ErrStoreUnavailable = errors.New("bookings store unavailable")

	ErrLockTimeout = errors.New("timed out waiting for the bookings store lock")
)
