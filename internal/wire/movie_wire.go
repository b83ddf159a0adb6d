package wire

import (
	"movie-ticketing/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler) {
	r.Route("/api/movies", func(r chi.Router) {
		r.Post("/", movieHandler.CreateMovie)
		r.Get("/", movieHandler.GetMovies)
		r.Get("/{id}", movieHandler.GetMovieByID)

		// Update and delete are title-scoped.
		r.Patch("/title/{title}", movieHandler.UpdateMovie)
		r.Delete("/title/{title}", movieHandler.DeleteMovie)
	})
}
