package entity

import (
	"time"
)

type Showtime struct {
	ID        int64     `db:"id"`
	MovieID   int64     `db:"movie_id"`
	Theater   string    `db:"theater"`
	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`
	Price     float64   `db:"price"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	// MovieTitle is filled by read queries that join the movies table.
	MovieTitle string `db:"-"`
}

// Overlaps reports whether the [start, end) interval of s intersects the
// given half-open interval. A showtime ending exactly when another begins
// does not overlap.
func (s *Showtime) Overlaps(start, end time.Time) bool {
	return s.StartTime.Before(end) && start.Before(s.EndTime)
}
