package response

import (
	"time"

	"movie-ticketing/internal/data/entity"
)

type BookingResponse struct {
	ID         string    `json:"id"`
	ShowtimeID int64     `json:"showtimeId"`
	SeatNumber int       `json:"seatNumber"`
	UserID     string    `json:"userId"`
	CreatedAt  time.Time `json:"created_at"`
}

// BookingCreatedResponse is the create projection: the opaque id only.
type BookingCreatedResponse struct {
	BookingID string `json:"bookingId"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:         booking.ID.String(),
		ShowtimeID: booking.ShowtimeID,
		SeatNumber: booking.SeatNumber,
		UserID:     booking.UserID,
		CreatedAt:  booking.CreatedAt,
	}
}
