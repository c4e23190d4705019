package omdb

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned before any request is sent when a lookup
	// argument or a client option is rejected.
	ErrInvalidArgument = errors.New("omdb: invalid argument")

	// ErrNotFound is returned by the typed lookups when OMDb answers with
	// "Response": "False".
	ErrNotFound = errors.New("omdb: not found")
)

// RequestFailedError reports a response whose status code is not 200.
type RequestFailedError struct {
	StatusCode int
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("omdb: request failed with status code %d", e.StatusCode)
}

// DecodeError reports a JSON response body that could not be decoded.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("omdb: failed to decode JSON response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
