// Package square is a thin HTTP client for the Square v2 REST API, covering
// the catalog, team, customer, and booking endpoints the service needs.
package square

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/sundial-labs/square-booking-api/internal/observability/metrics"
	"github.com/sundial-labs/square-booking-api/pkg/logging"
)

var tracer = otel.Tracer("bookingapi.internal.square")

// Client issues authenticated requests against the Square API.
type Client struct {
	baseURL     string
	accessToken string
	apiVersion  string
	httpClient  *http.Client
	logger      *logging.Logger
	metrics     *metrics.APIMetrics
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the Square API host (e.g., sandbox or tests).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if strings.TrimSpace(baseURL) != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithAPIVersion overrides the Square-Version header.
func WithAPIVersion(version string) Option {
	return func(c *Client) {
		if strings.TrimSpace(version) != "" {
			c.apiVersion = version
		}
	}
}

// WithTimeout overrides the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithMetrics records per-endpoint upstream call counts.
func WithMetrics(m *metrics.APIMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a Square API client.
func NewClient(accessToken string, logger *logging.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	c := &Client{
		baseURL:     defaultBaseURL,
		accessToken: accessToken,
		apiVersion:  defaultAPIVersion,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		logger:      logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListCatalogItems lists catalog objects filtered by type and product type.
func (c *Client) ListCatalogItems(ctx context.Context, types, productTypes string) ([]CatalogObject, error) {
	q := url.Values{}
	q.Set("types", types)
	q.Set("product_types", productTypes)

	var out listCatalogResponse
	if err := c.doJSON(ctx, http.MethodGet, "/catalog/list?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out.Objects, nil
}

// GetCatalogItem fetches one catalog object together with its related
// objects (images, variations).
func (c *Client) GetCatalogItem(ctx context.Context, id string) (*CatalogObjectDetail, error) {
	q := url.Values{}
	q.Set("include_related_objects", "true")
	q.Set("include_category_path_to_root", "false")

	var out CatalogObjectDetail
	path := fmt.Sprintf("/catalog/object/%s?%s", url.PathEscape(id), q.Encode())
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchTeamMembers lists team members. An empty query returns all of them.
func (c *Client) SearchTeamMembers(ctx context.Context) ([]TeamMember, error) {
	body := map[string]any{"query": map[string]any{}}

	var out searchTeamMembersResponse
	if err := c.doJSON(ctx, http.MethodPost, "/team-members/search", body, &out); err != nil {
		return nil, err
	}
	return out.TeamMembers, nil
}

// SearchCustomers finds customers matching the query.
func (c *Client) SearchCustomers(ctx context.Context, query CustomerQuery) ([]Customer, error) {
	body := map[string]any{"query": query}

	var out searchCustomersResponse
	if err := c.doJSON(ctx, http.MethodPost, "/customers/search", body, &out); err != nil {
		return nil, err
	}
	return out.Customers, nil
}

// CreateCustomer creates a new customer record.
func (c *Client) CreateCustomer(ctx context.Context, customer Customer) (*Customer, error) {
	var out customerResponse
	if err := c.doJSON(ctx, http.MethodPost, "/customers", customer, &out); err != nil {
		return nil, err
	}
	return &out.Customer, nil
}

// SearchAvailability returns candidate slots matching the query.
func (c *Client) SearchAvailability(ctx context.Context, query AvailabilityQuery) ([]Availability, error) {
	var out searchAvailabilityResponse
	if err := c.doJSON(ctx, http.MethodPost, "/bookings/availability/search", searchAvailabilityRequest{Query: query}, &out); err != nil {
		return nil, err
	}
	return out.Availabilities, nil
}

// CreateBooking commits a booking. The idempotency key guards against
// duplicate bookings on client retry.
func (c *Client) CreateBooking(ctx context.Context, booking Booking, idempotencyKey string) (*Booking, error) {
	ctx, span := tracer.Start(ctx, "square.create_booking")
	defer span.End()
	span.SetAttributes(
		attribute.String("square.location_id", booking.LocationID),
		attribute.String("square.idempotency_key", idempotencyKey),
	)

	var out bookingResponse
	req := createBookingRequest{IdempotencyKey: idempotencyKey, Booking: booking}
	if err := c.doJSON(ctx, http.MethodPost, "/bookings", req, &out); err != nil {
		return nil, err
	}
	if out.Booking.ID == "" {
		return nil, fmt.Errorf("square: booking response missing id")
	}
	return &out.Booking, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	if strings.TrimSpace(c.accessToken) == "" {
		return fmt.Errorf("square: missing access token")
	}

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("square: marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("square: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Square-Version", c.apiVersion)
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("square: http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("square: read response: %w", err)
	}

	endpoint := path
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		endpoint = endpoint[:i]
	}
	c.metrics.ObserveUpstream(endpoint, resp.StatusCode)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{StatusCode: resp.StatusCode, Endpoint: endpoint}
		var parsed errorResponse
		if err := json.Unmarshal(respBody, &parsed); err == nil {
			apiErr.Errors = parsed.Errors
		}
		c.logger.Warn("square request failed",
			"endpoint", endpoint,
			"status", resp.StatusCode,
			"detail", apiErr.Message(),
		)
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("square: unmarshal response: %w", err)
		}
	}
	return nil
}
