package services

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	intconfig "travelbook/internal/config"
	"travelbook/internal/domain"
	"travelbook/internal/domain/models"
	"travelbook/internal/repositories"
	"travelbook/internal/utils"
)

// DocsService renders a booking's e-ticket PDF.
type DocsService struct {
	BookingRepo repositories.BookingRepository
	DB          *sql.DB
}

func (s DocsService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s DocsService) bookings() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepository{DB: s.db()}
}

// GenerateETicket builds the PDF for the user's booking. Returns the
// bytes and a download filename.
func (s DocsService) GenerateETicket(user domain.RequestContext, bookingID int64) ([]byte, string, error) {
	if bookingID <= 0 {
		return nil, "", domain.ValidationError{Field: "booking_id", Msg: "must be a positive id"}
	}

	b, err := s.bookings().GetByIDForUser(bookingID, int64(user.UserID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", domain.NotFoundError{Resource: "booking", Err: err}
		}
		return nil, "", domain.InternalError{Err: err}
	}
	if passengers, err := s.bookings().ListPassengers(bookingID); err == nil {
		b.Passengers = passengers
	}

	return buildETicketPDF(b)
}

func buildETicketPDF(b models.Booking) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking        : #%d (%s)", b.ID, b.Status),
		fmt.Sprintf("Travel         : %s", safe(b.TravelType, "-")),
		fmt.Sprintf("Route          : %s -> %s", safe(b.Source, "-"), safe(b.Destination, "-")),
		fmt.Sprintf("Departure      : %s %s", safe(b.DepartureDate, "-"), safe(b.DepartureTime, "-")),
		fmt.Sprintf("Seats          : %d", b.NumberOfSeats),
		fmt.Sprintf("Total Price    : %s", utils.FormatMoney(b.TotalPriceCents)),
		fmt.Sprintf("Booked At      : %s", safe(b.BookingDate, "-")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Passengers")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 12)
	if len(b.Passengers) == 0 && b.PrimaryPassengerName != "" {
		b.Passengers = []models.Passenger{{Name: b.PrimaryPassengerName, Age: b.PrimaryPassengerAge}}
	}
	for i, p := range b.Passengers {
		pdf.Cell(0, 7, fmt.Sprintf("%d. %s (age %d)", i+1, p.Name, p.Age))
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please present this e-ticket together with a valid ID at departure.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Msg: "failed to render e-ticket", Err: err}
	}

	filename := fmt.Sprintf("ETICKET_%d_%s.pdf", b.ID, safeFilenamePart(b.PrimaryPassengerName))
	return buf.Bytes(), filename, nil
}

func safe(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "TICKET"
	}
	var out strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out.WriteRune(r)
		default:
			out.WriteByte('_')
		}
	}
	return out.String()
}
