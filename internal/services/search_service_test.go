package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"travelbook/internal/domain"
	"travelbook/internal/domain/models"
)

func TestSearchRejectsUnknownType(t *testing.T) {
	svc := SearchService{}
	if _, err := svc.Search(models.TravelFilter{Type: "Boat"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for unknown type, got %v", err)
	}
}

func TestSearchRejectsMalformedDate(t *testing.T) {
	svc := SearchService{}
	if _, err := svc.Search(models.TravelFilter{Date: "01/10/2026"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for malformed date, got %v", err)
	}
}

func TestSuggestRejectsUnknownField(t *testing.T) {
	svc := SearchService{}
	if _, err := svc.Suggest("price", "del"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for unknown field, got %v", err)
	}
}

func TestSuggestDefaultsToDestination(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT destination FROM travel_options").
		WithArgs("%del%").
		WillReturnRows(sqlmock.NewRows([]string{"destination"}).AddRow("Delhi"))

	svc := SearchService{DB: db}
	out, err := svc.Suggest("", "Del")
	if err != nil {
		t.Fatalf("suggest error: %v", err)
	}
	if len(out) != 1 || out[0] != "Delhi" {
		t.Fatalf("unexpected suggestions %v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetUnknownOptionIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM travel_options WHERE id=\\? LIMIT 1").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	svc := SearchService{DB: db}
	if _, err := svc.Get(404); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
