package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// RunMigrations applies the schema on startup. Each statement is idempotent.
//
// The two invariant-bearing constraints live here: seat uniqueness per
// showtime, and the theater time-range exclusion. The write paths treat a
// violation of either as the authoritative conflict signal; the checks in
// the service layer are only an early exit.
func RunMigrations(ctx context.Context, db PgxIface, log *zap.Logger) error {
	migrations := []string{
		createExtensions,
		createMoviesTable,
		createShowtimesTable,
		createBookingsTable,
		createShowtimesMovieIndex,
		createBookingsShowtimeIndex,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	log.Info("Database migrations applied", zap.Int("count", len(migrations)))
	return nil
}

// btree_gist lets the exclusion constraint combine equality on theater with
// range overlap on the showtime interval.
const createExtensions = `
CREATE EXTENSION IF NOT EXISTS btree_gist;`

const createMoviesTable = `
CREATE TABLE IF NOT EXISTS movies (
    id BIGSERIAL PRIMARY KEY,
    title TEXT NOT NULL,
    genre TEXT NOT NULL,
    duration INTEGER NOT NULL CHECK (duration >= 1),
    rating NUMERIC(3,1) NOT NULL CHECK (rating >= 0 AND rating <= 10),
    release_year INTEGER NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),

    CONSTRAINT movies_title_key UNIQUE (title)
);`

// tstzrange defaults to half-open [start, end), so back-to-back showtimes
// in the same theater do not collide.
const createShowtimesTable = `
CREATE TABLE IF NOT EXISTS showtimes (
    id BIGSERIAL PRIMARY KEY,
    movie_id BIGINT NOT NULL REFERENCES movies(id) ON DELETE RESTRICT,
    theater TEXT NOT NULL,
    start_time TIMESTAMPTZ NOT NULL,
    end_time TIMESTAMPTZ NOT NULL,
    price NUMERIC(8,2) NOT NULL CHECK (price >= 0),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),

    CHECK (end_time > start_time),
    CONSTRAINT showtimes_no_overlap EXCLUDE USING gist (
        theater WITH =,
        tstzrange(start_time, end_time) WITH &&
    )
);`

const createBookingsTable = `
CREATE TABLE IF NOT EXISTS bookings (
    id UUID PRIMARY KEY,
    showtime_id BIGINT NOT NULL REFERENCES showtimes(id) ON DELETE CASCADE,
    seat_number INTEGER NOT NULL CHECK (seat_number >= 1),
    user_id TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),

    CONSTRAINT bookings_showtime_seat_key UNIQUE (showtime_id, seat_number)
);`

const createShowtimesMovieIndex = `
CREATE INDEX IF NOT EXISTS showtimes_movie_id_idx ON showtimes (movie_id);`

const createBookingsShowtimeIndex = `
CREATE INDEX IF NOT EXISTS bookings_showtime_id_idx ON bookings (showtime_id);`
