package booking

import (
	"strings"

	"github.com/sundial-labs/square-booking-api/internal/square"
)

// CatalogService is a bookable appointment service reconstructed from the
// Square catalog on every request. Entries missing a variation id or an
// authorized team-member list never make it into the index.
type CatalogService struct {
	ID            string
	VariationID   string
	Name          string
	Description   string
	PricingType   string
	PriceMoney    *square.Money
	ImageURL      string
	Version       int64
	TeamMemberIDs []string
}

// TeamMember is a staff record from the Square team directory.
type TeamMember struct {
	ID         string
	GivenName  string
	FamilyName string
}

// DisplayName is the "given family" name used as the lookup key.
func (m TeamMember) DisplayName() string {
	return strings.TrimSpace(m.GivenName + " " + m.FamilyName)
}

// ProviderInfo identifies one team member authorized to perform a service.
type ProviderInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ServiceInfo is the client-facing projection of a catalog service.
type ServiceInfo struct {
	ID                 string         `json:"id"`
	ServiceVariationID string         `json:"service_variation_id"`
	Name               string         `json:"name"`
	PricingType        string         `json:"pricing_type,omitempty"`
	PricingCurrency    string         `json:"pricing_currency,omitempty"`
	Description        string         `json:"description"`
	ImageURL           string         `json:"imageUrl,omitempty"`
	PricingAmount      float64        `json:"pricing_amount"`
	Providers          []ProviderInfo `json:"providers"`
}

// TeamMemberInfo is the client-facing projection of a team member.
type TeamMemberInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BookingRequest is the caller-supplied booking intent.
type BookingRequest struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	TeamMemberName string `json:"teamMemberName,omitempty"`
	CustomerNote   string `json:"customerNote,omitempty"`
	ServiceName    string `json:"serviceName"`
	StartAt        string `json:"startAt"` // RFC 3339
}
