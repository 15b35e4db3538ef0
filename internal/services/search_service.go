package services

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "travelbook/internal/config"
	"travelbook/internal/domain"
	"travelbook/internal/domain/models"
	"travelbook/internal/repositories"
	"travelbook/internal/utils"
)

const suggestLimit = 10

// SearchService fronts the read-only catalog queries.
type SearchService struct {
	TravelRepo  repositories.TravelRepository
	BookingRepo repositories.BookingRepository
	DB          *sql.DB
}

func (s SearchService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s SearchService) travels() repositories.TravelRepository {
	if s.TravelRepo.DB != nil {
		return s.TravelRepo
	}
	return repositories.TravelRepository{DB: s.db()}
}

func (s SearchService) bookings() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepository{DB: s.db()}
}

// Search validates the filter and lists matching travel options.
func (s SearchService) Search(f models.TravelFilter) ([]models.TravelOption, error) {
	if t := strings.TrimSpace(f.Type); t != "" && !models.ValidTravelType(t) {
		return nil, domain.ValidationError{Field: "type", Msg: "must be Flight, Train or Bus"}
	}
	if d := strings.TrimSpace(f.Date); d != "" {
		if _, err := utils.ParseDate(d); err != nil {
			return nil, domain.ValidationError{Field: "date", Msg: "must be YYYY-MM-DD", Err: err}
		}
	}
	out, err := s.travels().Search(f)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

// Get returns a single travel option.
func (s SearchService) Get(id int64) (models.TravelOption, error) {
	if id <= 0 {
		return models.TravelOption{}, domain.ValidationError{Field: "id", Msg: "must be a positive id"}
	}
	opt, err := s.travels().GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.TravelOption{}, domain.NotFoundError{Resource: "travel option", Err: err}
		}
		return models.TravelOption{}, domain.InternalError{Err: err}
	}
	return opt, nil
}

// PopularRoutes returns the top routes booked in the trailing 24 hours.
func (s SearchService) PopularRoutes() ([]models.RouteCount, error) {
	out, err := s.bookings().PopularRoutes()
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

// Suggest returns autocomplete candidates for source or destination.
// field defaults to destination; anything else but "source" is rejected.
func (s SearchService) Suggest(field, q string) ([]string, error) {
	field = strings.TrimSpace(strings.ToLower(field))
	switch field {
	case "":
		field = "destination"
	case "source", "destination":
	default:
		return nil, domain.ValidationError{Field: "field", Msg: "must be source or destination"}
	}

	out, err := s.travels().Suggest(field, q, suggestLimit)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}
