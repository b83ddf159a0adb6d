package wire

import (
	"movie-ticketing/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireShowtime(r chi.Router, showtimeHandler *adaptor.ShowtimeHandler, bookingHandler *adaptor.BookingHandler) {
	r.Route("/api/showtimes", func(r chi.Router) {
		r.Post("/", showtimeHandler.CreateShowtime)
		r.Get("/", showtimeHandler.GetShowtimes)
		r.Get("/{id}", showtimeHandler.GetShowtimeByID)
		r.Patch("/{id}", showtimeHandler.UpdateShowtime)
		r.Delete("/{id}", showtimeHandler.DeleteShowtime)

		// Bookings listed under the showtime they reference.
		r.Get("/{id}/bookings", bookingHandler.GetBookingsForShowtime)
	})
}
