package square

const (
	defaultBaseURL    = "https://connect.squareup.com/v2"
	defaultAPIVersion = "2025-01-23"

	// Catalog filters for bookable appointment services.
	CatalogTypeItem                = "ITEM"
	ProductTypeAppointmentsService = "APPOINTMENTS_SERVICE"
	CatalogTypeImage               = "IMAGE"
)

// Money is a Square monetary amount in minor units.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// ItemData is the item payload of an ITEM catalog object.
type ItemData struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	ProductType string          `json:"product_type,omitempty"`
	Variations  []CatalogObject `json:"variations,omitempty"`
}

// ItemVariationData is the payload of an ITEM_VARIATION catalog object.
type ItemVariationData struct {
	ItemID          string   `json:"item_id,omitempty"`
	Name            string   `json:"name,omitempty"`
	PricingType     string   `json:"pricing_type,omitempty"`
	PriceMoney      *Money   `json:"price_money,omitempty"`
	ServiceDuration int64    `json:"service_duration,omitempty"`
	TeamMemberIDs   []string `json:"team_member_ids,omitempty"`
}

// ImageData is the payload of an IMAGE catalog object.
type ImageData struct {
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`
}

// CatalogObject is Square's polymorphic catalog envelope. Only the payload
// matching Type is populated.
type CatalogObject struct {
	Type              string             `json:"type"`
	ID                string             `json:"id"`
	Version           int64              `json:"version,omitempty"`
	ItemData          *ItemData          `json:"item_data,omitempty"`
	ItemVariationData *ItemVariationData `json:"item_variation_data,omitempty"`
	ImageData         *ImageData         `json:"image_data,omitempty"`
}

// CatalogObjectDetail is a catalog object together with its related objects
// (images, variations) as returned by the object-by-id lookup.
type CatalogObjectDetail struct {
	Object         CatalogObject   `json:"object"`
	RelatedObjects []CatalogObject `json:"related_objects"`
}

// TeamMember is a Square staff record.
type TeamMember struct {
	ID         string `json:"id"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name,omitempty"`
}

// Customer is a Square CRM record.
type Customer struct {
	ID           string `json:"id,omitempty"`
	GivenName    string `json:"given_name,omitempty"`
	FamilyName   string `json:"family_name,omitempty"`
	EmailAddress string `json:"email_address,omitempty"`
	PhoneNumber  string `json:"phone_number,omitempty"`
}

// CustomerQuery filters the customer search. Only exact-email lookup is used.
type CustomerQuery struct {
	Filter CustomerFilter `json:"filter"`
}

type CustomerFilter struct {
	EmailAddress *TextFilter `json:"email_address,omitempty"`
}

type TextFilter struct {
	Exact string `json:"exact,omitempty"`
}

// TimeRange bounds an availability search, RFC 3339 timestamps.
type TimeRange struct {
	StartAt string `json:"start_at"`
	EndAt   string `json:"end_at"`
}

// TeamMemberIDFilter restricts availability to any of the listed team members.
// An empty filter matches all team members.
type TeamMemberIDFilter struct {
	Any []string `json:"any,omitempty"`
}

// SegmentFilter selects the service variation (and optionally team members)
// being searched.
type SegmentFilter struct {
	ServiceVariationID string              `json:"service_variation_id"`
	TeamMemberIDFilter *TeamMemberIDFilter `json:"team_member_id_filter,omitempty"`
}

// AvailabilityFilter is the filter block of an availability search.
type AvailabilityFilter struct {
	LocationID     string          `json:"location_id,omitempty"`
	StartAtRange   TimeRange       `json:"start_at_range"`
	SegmentFilters []SegmentFilter `json:"segment_filters"`
}

// AvailabilityQuery is the query block of an availability search.
type AvailabilityQuery struct {
	Filter AvailabilityFilter `json:"filter"`
}

// AppointmentSegment binds one team member and service variation inside a
// booking or an availability slot.
type AppointmentSegment struct {
	DurationMinutes         int    `json:"duration_minutes,omitempty"`
	TeamMemberID            string `json:"team_member_id"`
	ServiceVariationID      string `json:"service_variation_id"`
	ServiceVariationVersion int64  `json:"service_variation_version"`
}

// Availability is one candidate slot from an availability search.
type Availability struct {
	StartAt             string               `json:"start_at"`
	LocationID          string               `json:"location_id,omitempty"`
	AppointmentSegments []AppointmentSegment `json:"appointment_segments,omitempty"`
}

// Booking is the committed appointment record.
type Booking struct {
	ID                  string               `json:"id,omitempty"`
	LocationID          string               `json:"location_id"`
	CustomerID          string               `json:"customer_id"`
	StartAt             string               `json:"start_at"`
	CustomerNote        string               `json:"customer_note,omitempty"`
	AppointmentSegments []AppointmentSegment `json:"appointment_segments"`
}

// ErrorDetail is one entry in Square's errors array.
type ErrorDetail struct {
	Category string `json:"category,omitempty"`
	Code     string `json:"code,omitempty"`
	Detail   string `json:"detail,omitempty"`
}

// Wire envelopes.

type listCatalogResponse struct {
	Objects []CatalogObject `json:"objects"`
}

type searchTeamMembersResponse struct {
	TeamMembers []TeamMember `json:"team_members"`
}

type searchCustomersResponse struct {
	Customers []Customer `json:"customers"`
}

type customerResponse struct {
	Customer Customer `json:"customer"`
}

type searchAvailabilityRequest struct {
	Query AvailabilityQuery `json:"query"`
}

type searchAvailabilityResponse struct {
	Availabilities []Availability `json:"availabilities"`
}

type createBookingRequest struct {
	IdempotencyKey string  `json:"idempotency_key"`
	Booking        Booking `json:"booking"`
}

type bookingResponse struct {
	Booking Booking `json:"booking"`
}

type errorResponse struct {
	Errors []ErrorDetail `json:"errors"`
}
