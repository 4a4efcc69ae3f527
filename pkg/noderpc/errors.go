package noderpc

import (
	"fmt"
	"net/http"
)

// Error is an error returned by the node for non-successful requests. The
// node puts a human-readable description into the "detail" field of the
// response body.
type Error struct {
	StatusCode int    `json:"-"`
	Detail     string `json:"detail"`
}

// NewError creates a new Error for the given HTTP status.
func NewError(status int, detail string) *Error {
	return &Error{StatusCode: status, Detail: detail}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("HTTP %d/%s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("node error (HTTP %d): %s", e.StatusCode, e.Detail)
}

// IsNotFound returns true if the node reported a missing entity.
func (e *Error) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}
