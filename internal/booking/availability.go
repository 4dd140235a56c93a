package booking

import (
	"context"
	"strings"
	"time"

	"github.com/sundial-labs/square-booking-api/internal/square"
)

const (
	// slotWindow is the search window used when probing one requested start.
	slotWindow = time.Hour
	// slotBuffer tolerates Square returning a start a couple of minutes after
	// the requested time; a slot counts as matching when its start is at most
	// slotWindow-slotBuffer past the request.
	slotBuffer = 2 * time.Minute
)

// GetAvailability returns the open slots for a service on a given date. The
// day window is fixed at UTC-06:00 regardless of the display timezone used by
// other endpoints.
func (s *Service) GetAvailability(ctx context.Context, date, serviceName string) ([]square.Availability, error) {
	if !dateRE.MatchString(date) {
		return nil, badRequest("Invalid date format (YYYY-MM-DD)")
	}

	services, err := s.loadServicesByName(ctx, false)
	if err != nil {
		return nil, err
	}
	svc, ok := services[strings.ToLower(serviceName)]
	if !ok {
		return nil, notFound("Service not found")
	}

	query := square.AvailabilityQuery{
		Filter: square.AvailabilityFilter{
			LocationID: s.locationID,
			StartAtRange: square.TimeRange{
				StartAt: date + "T00:00:00-06:00",
				EndAt:   date + "T23:59:59-06:00",
			},
			SegmentFilters: []square.SegmentFilter{
				{
					ServiceVariationID: svc.VariationID,
					TeamMemberIDFilter: &square.TeamMemberIDFilter{Any: svc.TeamMemberIDs},
				},
			},
		},
	}
	slots, err := s.api.SearchAvailability(ctx, query)
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// availabilityStartTimes resolves a day's slots to parsed start instants,
// preserving upstream order. Unparsable starts are skipped with a warning.
func (s *Service) availabilityStartTimes(ctx context.Context, date, serviceName string) ([]time.Time, error) {
	slots, err := s.GetAvailability(ctx, date, serviceName)
	if err != nil {
		return nil, err
	}
	times := make([]time.Time, 0, len(slots))
	for _, slot := range slots {
		t, err := time.Parse(time.RFC3339, slot.StartAt)
		if err != nil {
			s.logger.Warn("skipping slot with unparsable start", "start_at", slot.StartAt, "error", err)
			continue
		}
		times = append(times, t)
	}
	return times, nil
}

// isSlotAvailable reports whether the upstream has an open slot at startAt
// (within the buffer tolerance) for the variation, optionally scoped to one
// team member.
func (s *Service) isSlotAvailable(ctx context.Context, variationID, startAt, teamMemberID string) (bool, error) {
	slots, err := s.searchSlotWindow(ctx, variationID, startAt, teamMemberID)
	if err != nil {
		return false, err
	}
	return len(slots) > 0, nil
}

// findAvailableTeamMember picks a team member able to take the requested slot
// from the actual availability results. Returns "" when nobody is free.
func (s *Service) findAvailableTeamMember(ctx context.Context, variationID, startAt string) (string, error) {
	slots, err := s.searchSlotWindow(ctx, variationID, startAt, "")
	if err != nil {
		return "", err
	}
	for _, slot := range slots {
		for _, segment := range slot.AppointmentSegments {
			if segment.TeamMemberID != "" {
				return segment.TeamMemberID, nil
			}
		}
	}
	return "", nil
}

// searchSlotWindow queries a one-hour window from startAt and filters the
// results to slots starting no later than the buffered end.
func (s *Service) searchSlotWindow(ctx context.Context, variationID, startAt, teamMemberID string) ([]square.Availability, error) {
	start, err := time.Parse(time.RFC3339, startAt)
	if err != nil {
		return nil, badRequest("Invalid startAt date specified")
	}
	end := start.Add(slotWindow)
	nonInclusiveEnd := end.Add(-slotBuffer)

	segment := square.SegmentFilter{ServiceVariationID: variationID}
	if teamMemberID != "" {
		segment.TeamMemberIDFilter = &square.TeamMemberIDFilter{Any: []string{teamMemberID}}
	}

	slots, err := s.api.SearchAvailability(ctx, square.AvailabilityQuery{
		Filter: square.AvailabilityFilter{
			LocationID: s.locationID,
			StartAtRange: square.TimeRange{
				StartAt: start.UTC().Format(time.RFC3339),
				EndAt:   end.UTC().Format(time.RFC3339),
			},
			SegmentFilters: []square.SegmentFilter{segment},
		},
	})
	if err != nil {
		return nil, err
	}

	matching := slots[:0:0]
	for _, slot := range slots {
		slotStart, err := time.Parse(time.RFC3339, slot.StartAt)
		if err != nil {
			continue
		}
		if !slotStart.After(nonInclusiveEnd) {
			matching = append(matching, slot)
		}
	}
	return matching, nil
}
