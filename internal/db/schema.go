package db

import (
	"database/sql"
)

// QueryRower is satisfied by *sql.DB and *sql.Tx.
type QueryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

func HasTable(q QueryRower, table string) bool {
	var name sql.NullString
	err := q.QueryRow(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)

	return err == nil && name.Valid && name.String != ""
}

var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS travel_options (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	type VARCHAR(10) NOT NULL,
	source VARCHAR(100) NOT NULL,
	destination VARCHAR(100) NOT NULL,
	departure_date DATE NOT NULL,
	departure_time TIME NOT NULL,
	price_cents BIGINT NOT NULL,
	available_seats INT UNSIGNED NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	KEY idx_route (source, destination),
	KEY idx_departure (departure_date, departure_time)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	user_id BIGINT NOT NULL,
	travel_option_id BIGINT NOT NULL,
	number_of_seats INT UNSIGNED NOT NULL,
	total_price_cents BIGINT NOT NULL,
	status VARCHAR(10) NOT NULL DEFAULT 'Confirmed',
	booking_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	primary_passenger_name VARCHAR(100) NOT NULL DEFAULT '',
	primary_passenger_age INT NOT NULL DEFAULT 0,
	KEY idx_user (user_id),
	KEY idx_travel_option (travel_option_id),
	KEY idx_booking_date (booking_date),
	CONSTRAINT fk_booking_option FOREIGN KEY (travel_option_id) REFERENCES travel_options(id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS booking_passengers (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	booking_id BIGINT NOT NULL,
	position INT NOT NULL,
	name VARCHAR(100) NOT NULL,
	age INT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_booking_position (booking_id, position),
	KEY idx_booking (booking_id),
	CONSTRAINT fk_passenger_booking FOREIGN KEY (booking_id) REFERENCES bookings(id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
}

// EnsureSchema creates missing tables. Travel options themselves are
// loaded out-of-band; this only guarantees the shape exists.
func EnsureSchema(db *sql.DB) error {
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return err
		}
	}
	return nil
}
