package entity

import "errors"

// ErrNotFound is returned when the requested trip, passenger or identity
// does not exist. Handlers map it to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrInvalidRequest is returned when a request fails validation (empty
// passenger list, unknown channel, and so on). Handlers map it to HTTP 400.
var ErrInvalidRequest = errors.New("invalid request")
