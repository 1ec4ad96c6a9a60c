package api

import "fmt"

// TransportError means no usable response arrived (connection refused, DNS,
// timeout). It is surfaced as a retry suggestion and never retried
// automatically.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError means the server answered with a non-success status. Detail holds
// the server-provided message when the body carried one.
type APIError struct {
	StatusCode int
	Status     string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: %s: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("api: %s", e.Status)
}

// Message is the user-facing failure text: server detail when present,
// falling back to the transport status text.
func (e *APIError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Status
}
