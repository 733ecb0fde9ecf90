package service

import "errors"

// Service-level error taxonomy. Handlers translate these to HTTP statuses;
// anything unwrapped is treated as a persistence failure and surfaced as 500.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
)
