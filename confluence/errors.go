package confluence

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is returned whenever Confluence answers with a status we don't treat as success.
type StatusError struct {
	StatusCode int
	Status     string
	Method     string
	URL        string
}

func (e *StatusError) Error() string {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return "confluence: authentication failed"
	case http.StatusForbidden:
		return fmt.Sprintf("confluence: forbidden: %s", e.Status)
	case http.StatusNotFound:
		return fmt.Sprintf("confluence: not found: %s %s", e.Method, e.URL)
	case http.StatusConflict:
		return fmt.Sprintf("confluence: conflict: %s", e.Status)
	case http.StatusInternalServerError:
		return fmt.Sprintf("confluence: internal server error: %s", e.Status)
	case http.StatusServiceUnavailable:
		return fmt.Sprintf("confluence: service is not available: %s", e.Status)
	}
	return fmt.Sprintf("confluence: unknown HTTP response status: %s: %s %s", e.Status, e.Method, e.URL)
}

// StatusCode digs the HTTP status out of an error chain.  ok is false for transport-level failures
// (timeouts, DNS, ...) that never produced a response.
func StatusCode(err error) (code int, ok bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode, true
	}
	return 0, false
}
