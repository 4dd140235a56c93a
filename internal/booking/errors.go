package booking

import (
	"errors"
	"net/http"

	"github.com/sundial-labs/square-booking-api/internal/square"
)

// StatusError is a request-level failure carrying the HTTP status it should
// map to at the boundary.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string { return e.Message }

func badRequest(msg string) error {
	return &StatusError{Status: http.StatusBadRequest, Message: msg}
}

func notFound(msg string) error {
	return &StatusError{Status: http.StatusNotFound, Message: msg}
}

func conflict(msg string) error {
	return &StatusError{Status: http.StatusConflict, Message: msg}
}

// HTTPStatus maps an error from this package to an HTTP status and a
// client-facing message. Upstream Square failures keep their original status
// and detail text; anything unrecognized is an internal error.
func HTTPStatus(err error) (int, string) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status, se.Message
	}
	var ae *square.APIError
	if errors.As(err, &ae) {
		return ae.StatusCode, ae.Message()
	}
	return http.StatusInternalServerError, "Internal server error"
}
