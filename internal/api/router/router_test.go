package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sundial-labs/square-booking-api/internal/booking"
	"github.com/sundial-labs/square-booking-api/internal/http/handlers"
	"github.com/sundial-labs/square-booking-api/internal/observability/metrics"
	"github.com/sundial-labs/square-booking-api/internal/square"
	"github.com/sundial-labs/square-booking-api/internal/timeutil"
	"github.com/sundial-labs/square-booking-api/pkg/logging"
)

type stubBookings struct{}

func (stubBookings) ListServices(ctx context.Context, includeImages bool) ([]booking.ServiceInfo, error) {
	return []booking.ServiceInfo{{ID: "ITEM-1", Name: "Haircut"}}, nil
}

func (stubBookings) ListTeamMembers(ctx context.Context) ([]booking.TeamMemberInfo, error) {
	return nil, nil
}

func (stubBookings) GetAvailability(ctx context.Context, date, serviceName string) ([]square.Availability, error) {
	return nil, nil
}

func (stubBookings) GetAvailabilityBuckets(ctx context.Context, date, serviceName, timezone string) ([]timeutil.TimeBucket, error) {
	return nil, nil
}

func (stubBookings) GetAvailabilityTimes(ctx context.Context, date, serviceName, timezone string) ([]string, error) {
	return nil, nil
}

func (stubBookings) CreateBooking(ctx context.Context, req booking.BookingRequest) (string, error) {
	return "BOOKING-1", nil
}

func (stubBookings) ParseDateTime(date, clock, timezone string) (string, error) {
	return "", nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	reg := prometheus.NewRegistry()
	return New(&Config{
		Logger:         logging.Default(),
		Booking:        handlers.NewHandler(stubBookings{}, "test", logging.Default()),
		AuthToken:      "secret",
		Metrics:        metrics.NewAPIMetrics(reg),
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})
}

func TestHealthIsPublic(t *testing.T) {
	r := newTestRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestMetricsIsPublic(t *testing.T) {
	r := newTestRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestAPIRequiresBearerToken(t *testing.T) {
	r := newTestRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/services", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestAPIAcceptsValidToken(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/services", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	var body struct {
		Success bool `json:"success"`
		Count   int  `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if !body.Success || body.Count != 1 {
		t.Fatalf("unexpected envelope: %+v", body)
	}
}

func TestUnknownRouteReturnsJSON404(t *testing.T) {
	r := newTestRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body.Success || body.Error.Code != "NOT_FOUND" {
		t.Fatalf("unexpected envelope: %+v", body)
	}
}
