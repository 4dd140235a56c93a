// Package handlers exposes the booking REST surface over the orchestration
// layer. Responses use a {success, data, count} envelope.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/mail"
	"time"

	"github.com/sundial-labs/square-booking-api/internal/booking"
	"github.com/sundial-labs/square-booking-api/internal/square"
	"github.com/sundial-labs/square-booking-api/internal/timeutil"
	"github.com/sundial-labs/square-booking-api/pkg/logging"
)

// BookingService is the orchestration surface the handlers depend on.
type BookingService interface {
	ListServices(ctx context.Context, includeImages bool) ([]booking.ServiceInfo, error)
	ListTeamMembers(ctx context.Context) ([]booking.TeamMemberInfo, error)
	GetAvailability(ctx context.Context, date, serviceName string) ([]square.Availability, error)
	GetAvailabilityBuckets(ctx context.Context, date, serviceName, timezone string) ([]timeutil.TimeBucket, error)
	GetAvailabilityTimes(ctx context.Context, date, serviceName, timezone string) ([]string, error)
	CreateBooking(ctx context.Context, req booking.BookingRequest) (string, error)
	ParseDateTime(date, clock, timezone string) (string, error)
}

// Handler serves the booking API endpoints.
type Handler struct {
	bookings BookingService
	env      string
	logger   *logging.Logger
}

// NewHandler creates the booking API handler.
func NewHandler(bookings BookingService, env string, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{bookings: bookings, env: env, logger: logger}
}

// Health reports liveness. Public, no envelope.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":      "ok",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": h.env,
	})
}

// ListServices returns all bookable services with providers and images.
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.bookings.ListServices(r.Context(), true)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, http.StatusOK, map[string]any{"services": services}, len(services))
}

// ServiceNames returns just the service names.
func (h *Handler) ServiceNames(w http.ResponseWriter, r *http.Request) {
	services, err := h.bookings.ListServices(r.Context(), false)
	if err != nil {
		writeError(w, err)
		return
	}
	names := make([]string, 0, len(services))
	for _, svc := range services {
		if svc.Name != "" {
			names = append(names, svc.Name)
		}
	}
	writeList(w, http.StatusOK, map[string]any{"services": names}, len(names))
}

// ListTeamMembers returns all team members.
func (h *Handler) ListTeamMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.bookings.ListTeamMembers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, http.StatusOK, members, len(members))
}

// GetAvailability returns the raw open slots for a date and service.
func (h *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	serviceName := r.URL.Query().Get("serviceName")
	if date == "" || serviceName == "" {
		writeErrorStatus(w, http.StatusBadRequest,
			"Missing required query params: date, serviceName", httpCode(http.StatusBadRequest))
		return
	}
	slots, err := h.bookings.GetAvailability(r.Context(), date, serviceName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, http.StatusOK, slots, len(slots))
}

// GetAvailabilityTimes returns a date's open slots grouped into wall-clock
// period buckets.
func (h *Handler) GetAvailabilityTimes(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	serviceName := r.URL.Query().Get("serviceName")
	if date == "" || serviceName == "" {
		writeErrorStatus(w, http.StatusBadRequest,
			"Missing required query params: date, serviceName", httpCode(http.StatusBadRequest))
		return
	}
	buckets, err := h.bookings.GetAvailabilityBuckets(r.Context(), date, serviceName, r.URL.Query().Get("timezone"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"result": buckets})
}

type availabilityArrayRequest struct {
	Date        string `json:"date"`
	ServiceName string `json:"serviceName"`
	Timezone    string `json:"timezone"`
}

// GetAvailabilityArray returns a date's open slots as local date-time strings.
func (h *Handler) GetAvailabilityArray(w http.ResponseWriter, r *http.Request) {
	var req availabilityArrayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, "Invalid JSON body", httpCode(http.StatusBadRequest))
		return
	}
	if req.Date == "" || req.ServiceName == "" {
		writeErrorStatus(w, http.StatusBadRequest,
			"Missing required fields: date, serviceName", httpCode(http.StatusBadRequest))
		return
	}
	times, err := h.bookings.GetAvailabilityTimes(r.Context(), req.Date, req.ServiceName, req.Timezone)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, http.StatusOK, times, len(times))
}

// ParseDateTime combines form-encoded date, time, and timezone fields into an
// RFC 3339 instant.
func (h *Handler) ParseDateTime(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, "Invalid form body", httpCode(http.StatusBadRequest))
		return
	}
	iso, err := h.bookings.ParseDateTime(r.PostFormValue("date"), r.PostFormValue("time"), r.PostFormValue("timezone"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]string{"isoDate": iso})
}

// CreateAppointment books an appointment and returns the booking id.
func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req booking.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, "Invalid JSON body", httpCode(http.StatusBadRequest))
		return
	}
	if msg := validateAppointment(req); msg != "" {
		writeErrorStatus(w, http.StatusBadRequest, "Validation failed: "+msg, httpCode(http.StatusBadRequest))
		return
	}

	id, err := h.bookings.CreateBooking(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, successBody{
		Success: true,
		Data:    map[string]any{"booking": map[string]string{"id": id}},
		Message: "Booking created successfully",
	})
}

// NotFound is the JSON 404 for unknown routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeErrorStatus(w, http.StatusNotFound, "Endpoint not found", "NOT_FOUND")
}

func validateAppointment(req booking.BookingRequest) string {
	switch {
	case req.FirstName == "":
		return "First name is required"
	case req.LastName == "":
		return "Last name is required"
	case req.ServiceName == "":
		return "Service name is required"
	case req.StartAt == "":
		return "Start time is required"
	}
	if req.Email != "" {
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return "Valid email is required"
		}
	}
	return ""
}
