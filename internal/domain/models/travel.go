package models

// Travel types accepted by the catalog.
const (
	TravelTypeFlight = "Flight"
	TravelTypeTrain  = "Train"
	TravelTypeBus    = "Bus"
)

// ValidTravelType reports whether t is one of the known travel types.
func ValidTravelType(t string) bool {
	switch t {
	case TravelTypeFlight, TravelTypeTrain, TravelTypeBus:
		return true
	}
	return false
}

// TravelOption is a single bookable departure. Price is kept as int64
// cents so seat * price arithmetic stays exact.
type TravelOption struct {
	ID             int64  `json:"id"`
	Type           string `json:"type"`
	Source         string `json:"source"`
	Destination    string `json:"destination"`
	DepartureDate  string `json:"departure_date"` // YYYY-MM-DD
	DepartureTime  string `json:"departure_time"` // HH:MM
	PriceCents     int64  `json:"price_cents"`
	AvailableSeats int    `json:"available_seats"`
	CreatedAt      string `json:"created_at,omitempty"`
	UpdatedAt      string `json:"updated_at,omitempty"`
}

// TravelFilter expresses the optional, conjunctive search filters.
// Zero values mean "no constraint".
type TravelFilter struct {
	Type        string
	Source      string
	Destination string
	Date        string // exact YYYY-MM-DD match
}

// RouteCount is one aggregated (source, destination) pair for the
// popular-routes ranking.
type RouteCount struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Bookings    int64  `json:"bookings"`
}
