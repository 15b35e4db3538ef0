package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"travelbook/internal/domain/models"
)

func TestInsertTxWritesBookingAndPassengers(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(int64(42), int64(1), 2, int64(20000), models.StatusConfirmed, "Asha", 34).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec("INSERT INTO booking_passengers").
		WithArgs(int64(11), 1, "Asha", 34).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO booking_passengers").
		WithArgs(int64(11), 2, "Ravi", 29).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin error: %v", err)
	}

	repo := BookingRepository{DB: db}
	b := models.Booking{
		UserID:               42,
		TravelOptionID:       1,
		NumberOfSeats:        2,
		TotalPriceCents:      20000,
		Status:               models.StatusConfirmed,
		PrimaryPassengerName: "Asha",
		PrimaryPassengerAge:  34,
		Passengers: []models.Passenger{
			{Name: "Asha", Age: 34},
			{Name: "Ravi", Age: 29},
		},
	}
	if err := repo.InsertTx(tx, &b); err != nil {
		t.Fatalf("insert error: %v", err)
	}
	if b.ID != 11 {
		t.Fatalf("booking id not set from insert, got %d", b.ID)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPopularRoutesRanking(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT t.source, t.destination, COUNT\\(\\*\\) AS cnt FROM bookings b").
		WillReturnRows(sqlmock.NewRows([]string{"source", "destination", "cnt"}).
			AddRow("Delhi", "Mumbai", 9).
			AddRow("Pune", "Goa", 4).
			AddRow("Chennai", "Kochi", 1))

	repo := BookingRepository{DB: db}
	routes, err := repo.PopularRoutes()
	if err != nil {
		t.Fatalf("popular routes error: %v", err)
	}
	if len(routes) != 3 {
		t.Fatalf("expected 3 routes, got %d", len(routes))
	}
	if routes[0].Source != "Delhi" || routes[0].Bookings != 9 {
		t.Fatalf("ranking order wrong: %+v", routes[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListByUserAttachesTravelDetails(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM bookings b JOIN travel_options t ON t.id = b.travel_option_id WHERE b.user_id=\\?").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "travel_option_id", "number_of_seats", "total_price_cents", "status", "booking_date",
			"primary_passenger_name", "primary_passenger_age",
			"type", "source", "destination", "departure_date", "departure_time",
		}).AddRow(7, 42, 1, 3, 30000, models.StatusConfirmed, "2026-09-01 12:00:00", "Asha", 34,
			"Train", "Pune", "Goa", "2026-11-05", "08:00"))

	repo := BookingRepository{DB: db}
	out, err := repo.ListByUser(42)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected one booking, got %d", len(out))
	}
	if out[0].TravelType != "Train" || out[0].Destination != "Goa" {
		t.Fatalf("travel details missing: %+v", out[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
