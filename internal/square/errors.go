package square

import (
	"fmt"
	"strings"
)

// APIError is a non-2xx response from the Square API. The status code and
// detail list are preserved so the HTTP boundary can forward them verbatim.
type APIError struct {
	StatusCode int
	Endpoint   string
	Errors     []ErrorDetail
}

func (e *APIError) Error() string {
	return fmt.Sprintf("square: %s returned status %d: %s", e.Endpoint, e.StatusCode, e.Message())
}

// Message joins the human-readable details from the upstream error payload.
func (e *APIError) Message() string {
	details := make([]string, 0, len(e.Errors))
	for _, d := range e.Errors {
		if d.Detail != "" {
			details = append(details, d.Detail)
		}
	}
	if len(details) == 0 {
		return fmt.Sprintf("Square API request failed: %s", e.Endpoint)
	}
	return strings.Join(details, "; ")
}
