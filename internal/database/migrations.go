package database

import (
	"fmt"
	"log/slog"
)

func (db *DB) RunMigrations() error {
	slog.Info("Running database migrations...")

	migrations := []string{
		createUsersTable,
		createFlightsTable,
		createSeatsTable,
		createBookingsTable,
		createPassengersTable,
		createPaymentsTable,
		createDiscountsTable,
		createBookingDiscountsTable,
		createLoyaltyAccountsTable,
		createLoyaltyEntriesTable,
		createSeatsFlightStatusIndex,
		createBookingsUserIndex,
	}

	for i, migration := range migrations {
		slog.Info("Running migration", "step", i+1)
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	slog.Info("All migrations completed successfully")
	return nil
}

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
    id VARCHAR(40) PRIMARY KEY,
    email VARCHAR(255) UNIQUE NOT NULL,
    password_hash VARCHAR(64) NOT NULL,
    first_name VARCHAR(100) NOT NULL,
    surname VARCHAR(100) NOT NULL,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    registered_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createFlightsTable = `
CREATE TABLE IF NOT EXISTS flights (
    id VARCHAR(40) PRIMARY KEY,
    flight_number VARCHAR(10) NOT NULL,
    origin VARCHAR(100) NOT NULL,
    destination VARCHAR(100) NOT NULL,
    departure_time TIMESTAMP NOT NULL,
    arrival_time TIMESTAMP NOT NULL,
    base_price BIGINT NOT NULL DEFAULT 0,
    total_seats INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createSeatsTable = `
CREATE EXTENSION IF NOT EXISTS "uuid-ossp";
CREATE TABLE IF NOT EXISTS seats (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    flight_id VARCHAR(40) NOT NULL REFERENCES flights(id) ON DELETE CASCADE,
    seat_number VARCHAR(5) NOT NULL,
    class VARCHAR(20) NOT NULL DEFAULT 'Economy',
    status VARCHAR(20) NOT NULL DEFAULT 'Available',
    price BIGINT NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    UNIQUE(flight_id, seat_number),
    CHECK (status IN ('Available', 'Reserved', 'Booked', 'Unavailable'))
);`

const createBookingsTable = `
CREATE TABLE IF NOT EXISTS bookings (
    id VARCHAR(40) PRIMARY KEY,
    user_id VARCHAR(40) NOT NULL REFERENCES users(id),
    flight_id VARCHAR(40) NOT NULL REFERENCES flights(id),
    status VARCHAR(20) NOT NULL DEFAULT 'Pending',
    total_price BIGINT NOT NULL DEFAULT 0,
    contact_email VARCHAR(255),
    contact_phone VARCHAR(40),
    booking_date DATE NOT NULL DEFAULT CURRENT_DATE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (status IN ('Pending', 'Confirmed', 'Cancelled')),
    CHECK (total_price >= 0)
);`

const createPassengersTable = `
CREATE TABLE IF NOT EXISTS passengers (
    id VARCHAR(40) PRIMARY KEY,
    booking_id VARCHAR(40) NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
    first_name VARCHAR(100) NOT NULL,
    surname VARCHAR(100) NOT NULL,
    seat_id UUID REFERENCES seats(id),
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createPaymentsTable = `
CREATE TABLE IF NOT EXISTS payments (
    id VARCHAR(40) PRIMARY KEY,
    booking_id VARCHAR(40) NOT NULL UNIQUE REFERENCES bookings(id) ON DELETE CASCADE,
    amount BIGINT NOT NULL,
    status VARCHAR(20) NOT NULL DEFAULT 'Pending',
    method VARCHAR(40) NOT NULL DEFAULT 'Online Payment',
    paid_at TIMESTAMP NOT NULL DEFAULT NOW(),
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (status IN ('Pending', 'Completed', 'Failed'))
);`

const createDiscountsTable = `
CREATE TABLE IF NOT EXISTS discounts (
    id VARCHAR(20) PRIMARY KEY,
    points_required INTEGER NOT NULL DEFAULT 0,
    value BIGINT NOT NULL,
    expires_at DATE NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createBookingDiscountsTable = `
CREATE TABLE IF NOT EXISTS booking_discounts (
    booking_id VARCHAR(40) NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
    discount_id VARCHAR(20) NOT NULL REFERENCES discounts(id),
    applied_at TIMESTAMP NOT NULL DEFAULT NOW(),

    PRIMARY KEY (booking_id, discount_id)
);`

const createLoyaltyAccountsTable = `
CREATE TABLE IF NOT EXISTS loyalty_accounts (
    user_id VARCHAR(40) PRIMARY KEY REFERENCES users(id),
    balance INTEGER NOT NULL DEFAULT 0,
    expires_at DATE NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (balance >= 0)
);`

const createLoyaltyEntriesTable = `
CREATE TABLE IF NOT EXISTS loyalty_entries (
    id SERIAL PRIMARY KEY,
    user_id VARCHAR(40) NOT NULL REFERENCES users(id),
    delta INTEGER NOT NULL,
    reason VARCHAR(100) NOT NULL,
    booking_id VARCHAR(40) REFERENCES bookings(id),
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createSeatsFlightStatusIndex = `
CREATE INDEX IF NOT EXISTS seats_flight_status_idx
ON seats (flight_id, status);`

const createBookingsUserIndex = `
CREATE INDEX IF NOT EXISTS bookings_user_idx
ON bookings (user_id, created_at DESC);`
