package api

import "fmt"

// RemoteError represents a non-success response or transport failure
// from the backend.
type RemoteError struct {
	Endpoint string
	Status   int    // 0 when the request never reached the backend
	Message  string // backend-provided error text, if any
	Err      error
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("remote error [%s] status %d: %s", e.Endpoint, e.Status, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("remote error [%s]: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("remote error [%s] status %d", e.Endpoint, e.Status)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// ParseError represents an unexpected response shape from the backend.
type ParseError struct {
	Endpoint string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error [%s]: %v", e.Endpoint, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
