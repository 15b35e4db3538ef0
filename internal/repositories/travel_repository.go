package repositories

import (
	"database/sql"
	"strings"

	intconfig "travelbook/internal/config"
	"travelbook/internal/domain/models"
)

// travelColumns keeps date/time as strings so scanning does not depend
// on driver-side time parsing.
const travelColumns = `id, type, source, destination,
	DATE_FORMAT(departure_date, '%Y-%m-%d'),
	TIME_FORMAT(departure_time, '%H:%i'),
	price_cents, available_seats`

type TravelRepository struct {
	DB *sql.DB
}

func (r TravelRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func scanTravelOption(row *sql.Row) (models.TravelOption, error) {
	var t models.TravelOption
	err := row.Scan(
		&t.ID,
		&t.Type,
		&t.Source,
		&t.Destination,
		&t.DepartureDate,
		&t.DepartureTime,
		&t.PriceCents,
		&t.AvailableSeats,
	)
	return t, err
}

func (r TravelRepository) GetByID(id int64) (models.TravelOption, error) {
	row := r.db().QueryRow(`SELECT `+travelColumns+` FROM travel_options WHERE id=? LIMIT 1`, id)
	return scanTravelOption(row)
}

// GetByIDForUpdate re-reads the travel option under an exclusive row
// lock. Must be called inside a transaction; the lock is held until
// commit or rollback.
func (r TravelRepository) GetByIDForUpdate(tx *sql.Tx, id int64) (models.TravelOption, error) {
	row := tx.QueryRow(`SELECT `+travelColumns+` FROM travel_options WHERE id=? FOR UPDATE`, id)
	return scanTravelOption(row)
}

// AdjustSeats applies an atomic seat delta. The caller holds the row
// lock and has already verified capacity for negative deltas.
func (r TravelRepository) AdjustSeats(tx *sql.Tx, id int64, delta int) error {
	_, err := tx.Exec(`UPDATE travel_options SET available_seats = available_seats + ?, updated_at=NOW() WHERE id=?`, delta, id)
	return err
}

// Search applies the optional filters conjunctively. An empty filter
// returns the whole catalog ordered by departure.
func (r TravelRepository) Search(f models.TravelFilter) ([]models.TravelOption, error) {
	where := []string{"1=1"}
	args := []any{}

	if t := strings.TrimSpace(f.Type); t != "" {
		where = append(where, "type=?")
		args = append(args, t)
	}
	if src := strings.TrimSpace(f.Source); src != "" {
		where = append(where, "LOWER(source) LIKE ?")
		args = append(args, "%"+strings.ToLower(src)+"%")
	}
	if dst := strings.TrimSpace(f.Destination); dst != "" {
		where = append(where, "LOWER(destination) LIKE ?")
		args = append(args, "%"+strings.ToLower(dst)+"%")
	}
	if d := strings.TrimSpace(f.Date); d != "" {
		where = append(where, "departure_date=?")
		args = append(args, d)
	}

	query := `SELECT ` + travelColumns + ` FROM travel_options WHERE ` +
		strings.Join(where, " AND ") +
		` ORDER BY departure_date ASC, departure_time ASC, id ASC`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TravelOption{}
	for rows.Next() {
		var t models.TravelOption
		if err := rows.Scan(
			&t.ID,
			&t.Type,
			&t.Source,
			&t.Destination,
			&t.DepartureDate,
			&t.DepartureTime,
			&t.PriceCents,
			&t.AvailableSeats,
		); err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Suggest returns up to limit distinct source or destination values
// containing q (case-insensitive). Values are deduplicated
// case-insensitively, keeping the first-seen spelling in row order.
func (r TravelRepository) Suggest(field, q string, limit int) ([]string, error) {
	col := "destination"
	if field == "source" {
		col = "source"
	}

	rows, err := r.db().Query(
		`SELECT `+col+` FROM travel_options WHERE LOWER(`+col+`) LIKE ? ORDER BY id ASC`,
		"%"+strings.ToLower(strings.TrimSpace(q))+"%",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return values, err
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return values, err
	}

	return dedupeFold(values, limit), nil
}

// dedupeFold keeps the first occurrence of each case-folded value, in
// input order, capped at limit.
func dedupeFold(values []string, limit int) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}
