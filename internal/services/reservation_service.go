package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	intconfig "travelbook/internal/config"
	"travelbook/internal/domain"
	"travelbook/internal/domain/models"
	"travelbook/internal/logger"
	"travelbook/internal/metrics"
	"travelbook/internal/notify"
	"travelbook/internal/repositories"
	"travelbook/internal/utils"
)

// ReservationService owns the seat-capacity invariant: every seat
// decrement/increment happens inside one transaction holding an
// exclusive lock on the travel-option row, so concurrent attempts on
// the same option serialize and available_seats never goes negative.
type ReservationService struct {
	TravelRepo  repositories.TravelRepository
	BookingRepo repositories.BookingRepository
	DB          *sql.DB
	Notifier    notify.Notifier
	Metrics     *metrics.Metrics
}

func (s ReservationService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s ReservationService) travels() repositories.TravelRepository {
	if s.TravelRepo.DB != nil {
		return s.TravelRepo
	}
	return repositories.TravelRepository{DB: s.db()}
}

func (s ReservationService) bookings() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepository{DB: s.db()}
}

func (s ReservationService) metrics() *metrics.Metrics {
	if s.Metrics != nil {
		return s.Metrics
	}
	return metrics.Default()
}

func (s ReservationService) internalErr(op, msg string, err error) domain.InternalError {
	s.metrics().ErrorsCount.WithLabelValues(op).Inc()
	return domain.InternalError{Msg: msg, Err: err}
}

// CreateBookingInput is the validated payload for a reservation.
type CreateBookingInput struct {
	TravelOptionID int64
	Seats          int
	Passengers     []models.Passenger
}

func (in CreateBookingInput) validate() error {
	if in.TravelOptionID <= 0 {
		return domain.ValidationError{Field: "travel_option_id", Msg: "must be a positive id"}
	}
	if in.Seats < 1 {
		return domain.ValidationError{Field: "number_of_seats", Msg: "must be at least 1"}
	}
	if len(in.Passengers) != in.Seats {
		return domain.ValidationError{Field: "passengers", Msg: "must match number of seats"}
	}
	for i, p := range in.Passengers {
		if strings.TrimSpace(p.Name) == "" {
			return domain.ValidationError{Field: "passengers", Msg: fmt.Sprintf("passenger %d: name required", i+1)}
		}
		if p.Age <= 0 {
			return domain.ValidationError{Field: "passengers", Msg: fmt.Sprintf("passenger %d: age must be positive", i+1)}
		}
	}
	return nil
}

// CreateBooking reserves seats for the user. The seat check and the
// decrement run under a FOR UPDATE lock on the travel-option row; the
// booking row is written in the same transaction. Notification happens
// only after commit and never affects the result.
func (s ReservationService) CreateBooking(user domain.RequestContext, in CreateBookingInput) (models.Booking, error) {
	if err := in.validate(); err != nil {
		return models.Booking{}, err
	}

	started := time.Now()

	tx, err := s.db().Begin()
	if err != nil {
		return models.Booking{}, s.internalErr("create_booking", "failed to open transaction", err)
	}
	defer tx.Rollback()

	opt, err := s.travels().GetByIDForUpdate(tx, in.TravelOptionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "travel option", Err: err}
		}
		return models.Booking{}, s.internalErr("create_booking", "", err)
	}

	if opt.AvailableSeats < in.Seats {
		s.metrics().SeatsRejected.Inc()
		// Rollback via defer; the lock is released without mutation.
		return models.Booking{}, domain.ConflictError{Msg: "not enough seats available"}
	}

	if err := s.travels().AdjustSeats(tx, opt.ID, -in.Seats); err != nil {
		return models.Booking{}, s.internalErr("create_booking", "", err)
	}

	first := in.Passengers[0]
	b := models.Booking{
		UserID:               int64(user.UserID),
		TravelOptionID:       opt.ID,
		NumberOfSeats:        in.Seats,
		TotalPriceCents:      int64(in.Seats) * opt.PriceCents,
		Status:               models.StatusConfirmed,
		PrimaryPassengerName: strings.TrimSpace(first.Name),
		PrimaryPassengerAge:  first.Age,
		Passengers:           in.Passengers,
		TravelType:           opt.Type,
		Source:               opt.Source,
		Destination:          opt.Destination,
		DepartureDate:        opt.DepartureDate,
		DepartureTime:        opt.DepartureTime,
	}
	if err := s.bookings().InsertTx(tx, &b); err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return models.Booking{}, domain.ConflictError{Resource: "booking", Err: err}
		}
		return models.Booking{}, s.internalErr("create_booking", "", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Booking{}, s.internalErr("create_booking", "failed to commit booking", err)
	}
	b.BookingDate = utils.FormatDateTime(time.Now())

	s.metrics().BookingsCreated.Inc()
	s.metrics().ReservationDuration.Observe(time.Since(started).Seconds())

	go s.notifyOutcome(user.Email, "Booking Confirmed", fmt.Sprintf(
		"Your booking #%d for %s %s -> %s on %s %s is confirmed.",
		b.ID, opt.Type, opt.Source, opt.Destination, opt.DepartureDate, opt.DepartureTime,
	))

	return b, nil
}

// CancelResult reports a cancellation. AlreadyCancelled marks the
// idempotent no-op case.
type CancelResult struct {
	Booking          models.Booking
	AlreadyCancelled bool
}

// CancelBooking restores the booked seats and flips the status, all in
// one transaction with the travel-option row locked. Cancelling a
// cancelled booking is a no-op.
func (s ReservationService) CancelBooking(user domain.RequestContext, bookingID int64) (CancelResult, error) {
	if bookingID <= 0 {
		return CancelResult{}, domain.ValidationError{Field: "booking_id", Msg: "must be a positive id"}
	}

	tx, err := s.db().Begin()
	if err != nil {
		return CancelResult{}, s.internalErr("cancel_booking", "failed to open transaction", err)
	}
	defer tx.Rollback()

	b, err := s.bookings().GetByIDForUserTx(tx, bookingID, int64(user.UserID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Foreign bookings look identical to missing ones.
			return CancelResult{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return CancelResult{}, s.internalErr("cancel_booking", "", err)
	}

	if b.Status == models.StatusCancelled {
		return CancelResult{Booking: b, AlreadyCancelled: true}, nil
	}

	if _, err := s.travels().GetByIDForUpdate(tx, b.TravelOptionID); err != nil {
		return CancelResult{}, s.internalErr("cancel_booking", "", err)
	}
	// Capacity is restored from number_of_seats, exactly what the
	// booking reserved; price plays no part here.
	if err := s.travels().AdjustSeats(tx, b.TravelOptionID, b.NumberOfSeats); err != nil {
		return CancelResult{}, s.internalErr("cancel_booking", "", err)
	}
	if err := s.bookings().CancelTx(tx, b.ID); err != nil {
		return CancelResult{}, s.internalErr("cancel_booking", "", err)
	}

	if err := tx.Commit(); err != nil {
		return CancelResult{}, s.internalErr("cancel_booking", "failed to commit cancellation", err)
	}
	b.Status = models.StatusCancelled

	s.metrics().BookingsCancelled.Inc()

	go s.notifyOutcome(user.Email, "Booking Cancelled", fmt.Sprintf(
		"Your booking #%d for %s %s -> %s on %s %s has been cancelled.",
		b.ID, b.TravelType, b.Source, b.Destination, b.DepartureDate, b.DepartureTime,
	))

	return CancelResult{Booking: b}, nil
}

func (s ReservationService) notifyOutcome(to, subject, body string) {
	if s.Notifier == nil || strings.TrimSpace(to) == "" {
		return
	}
	if err := s.Notifier.Notify(to, subject, body); err != nil {
		logger.L().Warnw("notification failed", "subject", subject, "error", err)
	}
}
