package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/sundial-labs/square-booking-api/internal/booking"
)

type successBody struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
}

type errorBody struct {
	Success   bool        `json:"success"`
	Error     errorDetail `json:"error"`
	Timestamp string      `json:"timestamp"`
}

type errorDetail struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, successBody{Success: true, Data: data})
}

func writeList(w http.ResponseWriter, status int, data any, count int) {
	writeJSON(w, status, successBody{Success: true, Data: data, Count: &count})
}

// writeError maps a service-layer error to the failure envelope. The status
// comes from the error taxonomy; upstream failures keep their original status.
func writeError(w http.ResponseWriter, err error) {
	status, msg := booking.HTTPStatus(err)
	writeErrorStatus(w, status, msg, httpCode(status))
}

func writeErrorStatus(w http.ResponseWriter, status int, msg, code string) {
	writeJSON(w, status, errorBody{
		Error:     errorDetail{Message: msg, Code: code},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func httpCode(status int) string {
	return "HTTP_" + strconv.Itoa(status)
}
