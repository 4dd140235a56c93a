package booking

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/sundial-labs/square-booking-api/internal/square"
)

// loadServicesByName fetches the appointment-service catalog and indexes it by
// lower-cased display name. Items without a first-variation id or team-member
// list are dropped. On a case-insensitive name collision the later catalog
// entry wins; the shadowing is logged so catalog misconfiguration is visible.
func (s *Service) loadServicesByName(ctx context.Context, includeImages bool) (map[string]CatalogService, error) {
	objects, err := s.api.ListCatalogItems(ctx, square.CatalogTypeItem, square.ProductTypeAppointmentsService)
	if err != nil {
		return nil, err
	}

	imageURLs := make(map[string]string, len(objects))
	if includeImages {
		var mu sync.Mutex
		g, gctx := errgroup.WithContext(ctx)
		for _, obj := range objects {
			obj := obj
			g.Go(func() error {
				detail, err := s.api.GetCatalogItem(gctx, obj.ID)
				if err != nil {
					return err
				}
				var url string
				for _, rel := range detail.RelatedObjects {
					if rel.Type == square.CatalogTypeImage && rel.ImageData != nil {
						url = rel.ImageData.URL
						break
					}
				}
				mu.Lock()
				imageURLs[obj.ID] = url
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	services := make(map[string]CatalogService, len(objects))
	for _, obj := range objects {
		if obj.Type != square.CatalogTypeItem || obj.ItemData == nil || obj.ItemData.ProductType != square.ProductTypeAppointmentsService {
			continue
		}
		if len(obj.ItemData.Variations) == 0 {
			continue
		}
		variation := obj.ItemData.Variations[0]
		vd := variation.ItemVariationData
		if variation.ID == "" || vd == nil || len(vd.TeamMemberIDs) == 0 {
			continue
		}

		key := strings.ToLower(obj.ItemData.Name)
		if prev, exists := services[key]; exists {
			s.logger.Warn("duplicate service name in catalog, later entry wins",
				"name", obj.ItemData.Name,
				"kept_id", obj.ID,
				"shadowed_id", prev.ID,
			)
		}
		services[key] = CatalogService{
			ID:            obj.ID,
			VariationID:   variation.ID,
			Name:          obj.ItemData.Name,
			Description:   obj.ItemData.Description,
			PricingType:   vd.PricingType,
			PriceMoney:    vd.PriceMoney,
			ImageURL:      imageURLs[obj.ID],
			Version:       obj.Version,
			TeamMemberIDs: vd.TeamMemberIDs,
		}
	}
	return services, nil
}

// loadTeamMembersByName fetches the team directory and indexes it by
// lower-cased "given family" display name, last-write-wins with a warning on
// collision.
func (s *Service) loadTeamMembersByName(ctx context.Context) (map[string]TeamMember, error) {
	teamMembers, err := s.api.SearchTeamMembers(ctx)
	if err != nil {
		return nil, err
	}

	members := make(map[string]TeamMember, len(teamMembers))
	for _, tm := range teamMembers {
		member := TeamMember{ID: tm.ID, GivenName: tm.GivenName, FamilyName: tm.FamilyName}
		key := strings.ToLower(member.DisplayName())
		if prev, exists := members[key]; exists {
			s.logger.Warn("duplicate team member name in directory, later entry wins",
				"name", member.DisplayName(),
				"kept_id", member.ID,
				"shadowed_id", prev.ID,
			)
		}
		members[key] = member
	}
	return members, nil
}
