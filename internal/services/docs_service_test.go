package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"travelbook/internal/domain"
)

func TestGenerateETicketProducesPDF(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("SELECT (.+) FROM bookings b").
		WithArgs(int64(7), int64(42)).
		WillReturnRows(bookingRows("Confirmed"))
	mock.ExpectQuery("SELECT name, age FROM booking_passengers").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"name", "age"}).
			AddRow("Passenger A", 30).
			AddRow("Passenger B", 31).
			AddRow("Passenger C", 32))

	svc := DocsService{DB: db}
	pdf, filename, err := svc.GenerateETicket(domain.RequestContext{UserID: 42}, 7)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
	if !strings.HasPrefix(filename, "ETICKET_7_") || !strings.HasSuffix(filename, ".pdf") {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestGenerateETicketForeignBookingIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM bookings b").
		WithArgs(int64(7), int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	svc := DocsService{DB: db}
	if _, _, err := svc.GenerateETicket(domain.RequestContext{UserID: 99}, 7); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
