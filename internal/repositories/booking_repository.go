package repositories

import (
	"database/sql"

	intconfig "travelbook/internal/config"
	"travelbook/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// InsertTx writes the booking row plus one booking_passengers row per
// passenger. Runs inside the reservation transaction; sets b.ID.
func (r BookingRepository) InsertTx(tx *sql.Tx, b *models.Booking) error {
	res, err := tx.Exec(`
		INSERT INTO bookings
		(user_id, travel_option_id, number_of_seats, total_price_cents, status, primary_passenger_name, primary_passenger_age, booking_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW())
	`,
		b.UserID,
		b.TravelOptionID,
		b.NumberOfSeats,
		b.TotalPriceCents,
		b.Status,
		b.PrimaryPassengerName,
		b.PrimaryPassengerAge,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = id

	for i, p := range b.Passengers {
		if _, err := tx.Exec(`
			INSERT INTO booking_passengers (booking_id, position, name, age, created_at)
			VALUES (?, ?, ?, ?, NOW())
		`, id, i+1, p.Name, p.Age); err != nil {
			return err
		}
	}
	return nil
}

const bookingColumns = `b.id, b.user_id, b.travel_option_id, b.number_of_seats, b.total_price_cents, b.status,
	DATE_FORMAT(b.booking_date, '%Y-%m-%d %H:%i:%s'),
	b.primary_passenger_name, b.primary_passenger_age,
	t.type, t.source, t.destination,
	DATE_FORMAT(t.departure_date, '%Y-%m-%d'),
	TIME_FORMAT(t.departure_time, '%H:%i')`

func scanBooking(scan func(dest ...any) error) (models.Booking, error) {
	var b models.Booking
	err := scan(
		&b.ID,
		&b.UserID,
		&b.TravelOptionID,
		&b.NumberOfSeats,
		&b.TotalPriceCents,
		&b.Status,
		&b.BookingDate,
		&b.PrimaryPassengerName,
		&b.PrimaryPassengerAge,
		&b.TravelType,
		&b.Source,
		&b.Destination,
		&b.DepartureDate,
		&b.DepartureTime,
	)
	return b, err
}

// GetByIDForUser loads a booking only when it belongs to userID.
func (r BookingRepository) GetByIDForUser(id, userID int64) (models.Booking, error) {
	row := r.db().QueryRow(`
		SELECT `+bookingColumns+`
		FROM bookings b
		JOIN travel_options t ON t.id = b.travel_option_id
		WHERE b.id=? AND b.user_id=? LIMIT 1
	`, id, userID)
	return scanBooking(row.Scan)
}

// GetByIDForUserTx is the locked variant used by cancellation: the
// booking row is locked so concurrent cancels of the same booking
// serialize on it.
func (r BookingRepository) GetByIDForUserTx(tx *sql.Tx, id, userID int64) (models.Booking, error) {
	row := tx.QueryRow(`
		SELECT `+bookingColumns+`
		FROM bookings b
		JOIN travel_options t ON t.id = b.travel_option_id
		WHERE b.id=? AND b.user_id=? FOR UPDATE
	`, id, userID)
	return scanBooking(row.Scan)
}

// ListByUser returns the user's booking history, newest first.
func (r BookingRepository) ListByUser(userID int64) ([]models.Booking, error) {
	rows, err := r.db().Query(`
		SELECT `+bookingColumns+`
		FROM bookings b
		JOIN travel_options t ON t.id = b.travel_option_id
		WHERE b.user_id=?
		ORDER BY b.booking_date DESC, b.id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return out, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ListPassengers returns the ordered passenger list of a booking.
func (r BookingRepository) ListPassengers(bookingID int64) ([]models.Passenger, error) {
	rows, err := r.db().Query(`
		SELECT name, age FROM booking_passengers
		WHERE booking_id=? ORDER BY position ASC
	`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Passenger{}
	for rows.Next() {
		var p models.Passenger
		if err := rows.Scan(&p.Name, &p.Age); err != nil {
			return out, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CancelTx flips the status to Cancelled. total_price_cents stays as
// written at creation.
func (r BookingRepository) CancelTx(tx *sql.Tx, id int64) error {
	_, err := tx.Exec(`UPDATE bookings SET status=? WHERE id=?`, models.StatusCancelled, id)
	return err
}

// PopularRoutes ranks (source, destination) pairs by bookings created
// in the trailing 24 hours, any status, top six.
func (r BookingRepository) PopularRoutes() ([]models.RouteCount, error) {
	rows, err := r.db().Query(`
		SELECT t.source, t.destination, COUNT(*) AS cnt
		FROM bookings b
		JOIN travel_options t ON t.id = b.travel_option_id
		WHERE b.booking_date >= NOW() - INTERVAL 24 HOUR
		GROUP BY t.source, t.destination
		ORDER BY cnt DESC, t.source ASC, t.destination ASC
		LIMIT 6
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.RouteCount{}
	for rows.Next() {
		var rc models.RouteCount
		if err := rows.Scan(&rc.Source, &rc.Destination, &rc.Bookings); err != nil {
			return out, err
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}
