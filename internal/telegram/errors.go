package telegram

import "fmt"

// APIError is a non-2xx response from the Bot API. Body carries the
// upstream response text verbatim so callers can surface it unchanged.
type APIError struct {
	Method string
	Status int
	Body   string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("telegram: %s failed with status %d: %s", e.Method, e.Status, e.Body)
}
