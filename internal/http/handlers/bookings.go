package handlers

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"

	"travelbook/internal/domain/models"
	"travelbook/internal/http/middleware"
	"travelbook/internal/notify"
	"travelbook/internal/repositories"
	"travelbook/internal/services"
	"travelbook/internal/utils"
)

var (
	notifierMu sync.RWMutex
	notifier   notify.Notifier
)

// SetNotifier wires the notification collaborator used after commits.
func SetNotifier(n notify.Notifier) {
	notifierMu.Lock()
	defer notifierMu.Unlock()
	notifier = n
}

func reservationService() services.ReservationService {
	notifierMu.RLock()
	n := notifier
	notifierMu.RUnlock()
	return services.ReservationService{Notifier: n}
}

// BookingDTO adds the display total on top of the stored cents.
type BookingDTO struct {
	models.Booking
	TotalPrice string `json:"total_price"`
}

func bookingDTO(b models.Booking) BookingDTO {
	return BookingDTO{Booking: b, TotalPrice: utils.FormatMoney(b.TotalPriceCents)}
}

type createBookingRequest struct {
	TravelOptionID int64              `json:"travel_option_id"`
	NumberOfSeats  int                `json:"number_of_seats"`
	Passengers     []models.Passenger `json:"passengers"`
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", "login required")
		return
	}

	var req createBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	booking, err := reservationService().CreateBooking(user, services.CreateBookingInput{
		TravelOptionID: req.TravelOptionID,
		Seats:          req.NumberOfSeats,
		Passengers:     req.Passengers,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bookingDTO(booking))
}

// GET /api/bookings
func ListBookings(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", "login required")
		return
	}

	repo := repositories.BookingRepository{}
	bookings, err := repo.ListByUser(int64(user.UserID))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "failed to load bookings")
		return
	}

	out := make([]BookingDTO, 0, len(bookings))
	for _, b := range bookings {
		if passengers, err := repo.ListPassengers(b.ID); err == nil {
			b.Passengers = passengers
		}
		out = append(out, bookingDTO(b))
	}
	c.JSON(http.StatusOK, gin.H{"bookings": out})
}

// GET /api/bookings/:id
func GetBooking(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", "login required")
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid id")
		return
	}

	repo := repositories.BookingRepository{}
	booking, err := repo.GetByIDForUser(id, int64(user.UserID))
	if err != nil {
		respondError(c, http.StatusNotFound, "not_found", "booking not found")
		return
	}
	if passengers, err := repo.ListPassengers(id); err == nil {
		booking.Passengers = passengers
	}

	c.JSON(http.StatusOK, bookingDTO(booking))
}

// POST /api/bookings/:id/cancel
func CancelBooking(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", "login required")
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid id")
		return
	}

	result, err := reservationService().CancelBooking(user, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if result.AlreadyCancelled {
		c.JSON(http.StatusOK, gin.H{
			"message": "booking already cancelled",
			"booking": bookingDTO(result.Booking),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "booking cancelled and seats restored",
		"booking": bookingDTO(result.Booking),
	})
}

// GET /api/bookings/:id/e-ticket
func GetBookingETicket(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", "login required")
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid id")
		return
	}

	svc := services.DocsService{}
	pdf, filename, err := svc.GenerateETicket(user, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
