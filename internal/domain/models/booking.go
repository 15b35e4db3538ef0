package models

// Booking statuses. A booking is never deleted, only flipped to Cancelled.
const (
	StatusConfirmed = "Confirmed"
	StatusCancelled = "Cancelled"
)

// Passenger carries per-seat passenger info supplied at booking time.
type Passenger struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

// Booking is a confirmed or cancelled seat reservation. TotalPriceCents
// is fixed at creation (seats * price at that moment) and never
// recomputed, not even on cancellation.
type Booking struct {
	ID              int64  `json:"id"`
	UserID          int64  `json:"user_id"`
	TravelOptionID  int64  `json:"travel_option_id"`
	NumberOfSeats   int    `json:"number_of_seats"`
	TotalPriceCents int64  `json:"total_price_cents"`
	Status          string `json:"status"`
	BookingDate     string `json:"booking_date"`

	// Denormalized copy of the first passenger, written once at creation.
	PrimaryPassengerName string `json:"primary_passenger_name"`
	PrimaryPassengerAge  int    `json:"primary_passenger_age"`

	Passengers []Passenger `json:"passengers,omitempty"`

	// Joined travel-option fields for history/detail responses.
	TravelType    string `json:"travel_type,omitempty"`
	Source        string `json:"source,omitempty"`
	Destination   string `json:"destination,omitempty"`
	DepartureDate string `json:"departure_date,omitempty"`
	DepartureTime string `json:"departure_time,omitempty"`
}
