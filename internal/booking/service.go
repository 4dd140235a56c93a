// Package booking resolves Square catalog services and team members by name,
// checks slot availability, and orchestrates booking creation. All state is
// rebuilt from the Square API on every request.
package booking

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sundial-labs/square-booking-api/internal/square"
	"github.com/sundial-labs/square-booking-api/internal/timeutil"
	"github.com/sundial-labs/square-booking-api/pkg/logging"
)

var (
	dateRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRE = regexp.MustCompile(`^\d{1,2}:\d{2}$`)
)

// SquareAPI is the slice of the Square client this service depends on.
type SquareAPI interface {
	ListCatalogItems(ctx context.Context, types, productTypes string) ([]square.CatalogObject, error)
	GetCatalogItem(ctx context.Context, id string) (*square.CatalogObjectDetail, error)
	SearchTeamMembers(ctx context.Context) ([]square.TeamMember, error)
	SearchCustomers(ctx context.Context, query square.CustomerQuery) ([]square.Customer, error)
	CreateCustomer(ctx context.Context, customer square.Customer) (*square.Customer, error)
	SearchAvailability(ctx context.Context, query square.AvailabilityQuery) ([]square.Availability, error)
	CreateBooking(ctx context.Context, booking square.Booking, idempotencyKey string) (*square.Booking, error)
}

// Service is the booking orchestrator.
type Service struct {
	api             SquareAPI
	locationID      string
	defaultTimezone string
	logger          *logging.Logger
}

// NewService creates the booking service for one Square location.
func NewService(api SquareAPI, locationID, defaultTimezone string, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	if defaultTimezone == "" {
		defaultTimezone = "America/Edmonton"
	}
	return &Service{
		api:             api,
		locationID:      locationID,
		defaultTimezone: defaultTimezone,
		logger:          logger,
	}
}

// ListServices returns all bookable services with provider details, sorted by
// name. When includeImages is set, image URLs are resolved with one extra
// catalog lookup per item.
func (s *Service) ListServices(ctx context.Context, includeImages bool) ([]ServiceInfo, error) {
	var (
		services map[string]CatalogService
		members  map[string]TeamMember
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		services, err = s.loadServicesByName(gctx, includeImages)
		return err
	})
	g.Go(func() error {
		var err error
		members, err = s.loadTeamMembersByName(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	membersByID := make(map[string]TeamMember, len(members))
	for _, m := range members {
		membersByID[m.ID] = m
	}

	out := make([]ServiceInfo, 0, len(services))
	for _, svc := range services {
		info := ServiceInfo{
			ID:                 svc.ID,
			ServiceVariationID: svc.VariationID,
			Name:               svc.Name,
			PricingType:        svc.PricingType,
			Description:        svc.Description,
			ImageURL:           svc.ImageURL,
			Providers:          make([]ProviderInfo, 0, len(svc.TeamMemberIDs)),
		}
		if info.Description == "" {
			info.Description = " "
		}
		if svc.PriceMoney != nil {
			info.PricingCurrency = svc.PriceMoney.Currency
			info.PricingAmount = float64(svc.PriceMoney.Amount) / 100.0
		}
		for _, id := range svc.TeamMemberIDs {
			name := "Unknown"
			if m, ok := membersByID[id]; ok {
				name = m.GivenName
			}
			info.Providers = append(info.Providers, ProviderInfo{ID: id, Name: name})
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ListTeamMembers returns all team members with their display names.
func (s *Service) ListTeamMembers(ctx context.Context) ([]TeamMemberInfo, error) {
	members, err := s.loadTeamMembersByName(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]TeamMemberInfo, 0, len(members))
	for _, m := range members {
		out = append(out, TeamMemberInfo{ID: m.ID, Name: m.DisplayName()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// GetAvailabilityBuckets groups a day's open slots into morning/afternoon/
// night wall-clock buckets in the given zone.
func (s *Service) GetAvailabilityBuckets(ctx context.Context, date, serviceName, timezone string) ([]timeutil.TimeBucket, error) {
	times, err := s.availabilityStartTimes(ctx, date, serviceName)
	if err != nil {
		return nil, err
	}
	loc, err := s.loadZone(timezone)
	if err != nil {
		return nil, err
	}
	return timeutil.BucketByPeriod(times, loc), nil
}

// GetAvailabilityTimes renders a day's open slots as local date-time strings
// in the given zone.
func (s *Service) GetAvailabilityTimes(ctx context.Context, date, serviceName, timezone string) ([]string, error) {
	times, err := s.availabilityStartTimes(ctx, date, serviceName)
	if err != nil {
		return nil, err
	}
	loc, err := s.loadZone(timezone)
	if err != nil {
		return nil, err
	}
	return timeutil.ToLocalStrings(times, loc), nil
}

// CreateBooking runs the full orchestration: resolve the service and team
// member, verify the slot, ensure the customer exists, then commit the
// booking upstream. Returns the Square booking id.
func (s *Service) CreateBooking(ctx context.Context, req BookingRequest) (string, error) {
	if _, err := time.Parse(time.RFC3339, req.StartAt); err != nil {
		return "", badRequest("Invalid startAt date specified")
	}

	var (
		services map[string]CatalogService
		members  map[string]TeamMember
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		services, err = s.loadServicesByName(gctx, false)
		return err
	})
	g.Go(func() error {
		var err error
		members, err = s.loadTeamMembersByName(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	svc, ok := services[strings.ToLower(req.ServiceName)]
	if !ok {
		return "", badRequest("Service not found")
	}

	var teamMemberID string
	if req.TeamMemberName != "" {
		member, ok := members[strings.ToLower(req.TeamMemberName)]
		if !ok {
			return "", notFound("Team member not found")
		}
		if !containsID(svc.TeamMemberIDs, member.ID) {
			return "", badRequest("Team member does not offer this service")
		}
		available, err := s.isSlotAvailable(ctx, svc.VariationID, req.StartAt, member.ID)
		if err != nil {
			return "", err
		}
		if !available {
			return "", conflict("Team member is busy at the requested time")
		}
		teamMemberID = member.ID
	} else {
		id, err := s.findAvailableTeamMember(ctx, svc.VariationID, req.StartAt)
		if err != nil {
			return "", err
		}
		if id == "" {
			return "", conflict("No team member is available for that service at the requested time")
		}
		teamMemberID = id
	}

	customerID, err := s.ensureCustomer(ctx, req.FirstName, req.LastName, req.Email, req.Phone)
	if err != nil {
		return "", err
	}

	created, err := s.api.CreateBooking(ctx, square.Booking{
		LocationID:   s.locationID,
		CustomerID:   customerID,
		StartAt:      req.StartAt,
		CustomerNote: req.CustomerNote,
		AppointmentSegments: []square.AppointmentSegment{
			{
				TeamMemberID:            teamMemberID,
				ServiceVariationID:      svc.VariationID,
				ServiceVariationVersion: svc.Version,
			},
		},
	}, uuid.NewString())
	if err != nil {
		return "", err
	}

	s.logger.Info("booking created",
		"booking_id", created.ID,
		"service", svc.Name,
		"team_member_id", teamMemberID,
		"start_at", req.StartAt,
	)
	return created.ID, nil
}

// ParseDateTime combines a date and a wall-clock time in the given zone and
// returns the RFC 3339 instant. Fails if the combination is not a valid local
// time in that zone.
func (s *Service) ParseDateTime(date, clock, timezone string) (string, error) {
	if !dateRE.MatchString(date) {
		return "", badRequest("Date must be in YYYY-MM-DD format")
	}
	if !timeRE.MatchString(clock) {
		return "", badRequest("Time must be in HH:MM format")
	}
	loc, err := s.loadZone(timezone)
	if err != nil {
		return "", err
	}
	if len(clock) == 4 {
		clock = "0" + clock
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, loc)
	if err != nil {
		return "", badRequest("Invalid date/time: " + err.Error())
	}
	return t.Format(time.RFC3339), nil
}

// ensureCustomer finds a customer by exact email match or creates one.
func (s *Service) ensureCustomer(ctx context.Context, firstName, lastName, email, phone string) (string, error) {
	if email != "" {
		customers, err := s.api.SearchCustomers(ctx, square.CustomerQuery{
			Filter: square.CustomerFilter{EmailAddress: &square.TextFilter{Exact: email}},
		})
		if err != nil {
			return "", err
		}
		if len(customers) > 0 {
			return customers[0].ID, nil
		}
	}

	customer, err := s.api.CreateCustomer(ctx, square.Customer{
		GivenName:    firstName,
		FamilyName:   lastName,
		EmailAddress: email,
		PhoneNumber:  phone,
	})
	if err != nil {
		return "", err
	}
	return customer.ID, nil
}

func (s *Service) loadZone(timezone string) (*time.Location, error) {
	if timezone == "" {
		timezone = s.defaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, badRequest("Unknown timezone: " + timezone)
	}
	return loc, nil
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
