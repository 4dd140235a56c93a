// Package router assembles the chi router: middleware chain, public health
// and metrics endpoints, and the bearer-protected booking API.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sundial-labs/square-booking-api/internal/http/handlers"
	httpmiddleware "github.com/sundial-labs/square-booking-api/internal/http/middleware"
	"github.com/sundial-labs/square-booking-api/internal/observability/metrics"
	"github.com/sundial-labs/square-booking-api/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger             *logging.Logger
	Booking            *handlers.Handler
	AuthToken          string
	MetricsHandler     http.Handler
	Metrics            *metrics.APIMetrics
	CORSAllowedOrigins []string
}

// New creates a new chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}
	if cfg.Metrics != nil {
		r.Use(instrument(cfg.Metrics))
	}

	r.NotFound(cfg.Booking.NotFound)

	// Public endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", cfg.Booking.Health)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
	})

	// Booking API, bearer-protected
	r.Group(func(api chi.Router) {
		api.Use(httpmiddleware.StaticBearer(cfg.AuthToken))
		api.Get("/services", cfg.Booking.ListServices)
		api.Get("/services/names", cfg.Booking.ServiceNames)
		api.Get("/team-members", cfg.Booking.ListTeamMembers)
		api.Get("/availability", cfg.Booking.GetAvailability)
		api.Get("/availability-times", cfg.Booking.GetAvailabilityTimes)
		api.Post("/availability-array", cfg.Booking.GetAvailabilityArray)
		api.Post("/parse_date_time", cfg.Booking.ParseDateTime)
		api.Post("/appointment", cfg.Booking.CreateAppointment)
	})

	return r
}

// instrument records request count and latency per routed pattern, so
// parameterized paths don't explode label cardinality.
func instrument(m *metrics.APIMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			pattern := chi.RouteContext(r.Context()).RoutePattern()
			if pattern == "" {
				pattern = r.URL.Path
			}
			m.ObserveRequest(r.Method, pattern, ww.Status(), time.Since(start).Seconds())
		})
	}
}
