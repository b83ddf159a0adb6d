package entity

import (
	"time"

	"github.com/google/uuid"
)

// Booking has no update path: a booking exists or it was cancelled
// (row removed). Changing a booking means cancel and recreate.
type Booking struct {
	ID         uuid.UUID `db:"id"`
	ShowtimeID int64     `db:"showtime_id"`
	SeatNumber int       `db:"seat_number"`
	UserID     string    `db:"user_id"`
	CreatedAt  time.Time `db:"created_at"`
}
