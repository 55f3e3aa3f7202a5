package wordpress

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError describes a failed interaction with the WordPress REST API. A zero
// StatusCode means the request never produced a response (network failure or
// timeout); those are transient and worth retrying on a later run. Responses
// with a 4xx status, and well-formed responses missing required fields, are
// rejections that will not succeed on retry.
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("wordpress: %s: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("wordpress: %s returned %d: %s", e.Endpoint, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Transient reports whether the failure is eligible for retry on a later run
func (e *APIError) Transient() bool {
	return e.StatusCode == 0 || e.StatusCode >= 500
}

// IsTransient reports whether err is a transient remote failure
func IsTransient(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Transient()
}

// isInvalidPage reports whether err is the remote rejecting a list page past
// the end of the collection. When a collection holds an exact multiple of the
// page size, the walk asks for one page too many and WordPress answers 400
// with an invalid_page_number code instead of an empty array.
func isInvalidPage(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusBadRequest && strings.Contains(apiErr.Message, "invalid_page_number")
}

func transportError(endpoint string, err error) *APIError {
	return &APIError{Endpoint: endpoint, Err: err}
}

func statusError(endpoint string, status int, body string) *APIError {
	if len(body) > 256 {
		body = body[:256]
	}
	return &APIError{StatusCode: status, Endpoint: endpoint, Message: body}
}

func rejectedError(endpoint string, format string, args ...interface{}) *APIError {
	return &APIError{StatusCode: 400, Endpoint: endpoint, Message: fmt.Sprintf(format, args...)}
}
