package usecase

import (
	"errors"

	"movie-ticketing/internal/data/repository"
	"movie-ticketing/pkg/apperr"

	"go.uber.org/zap"
)

type Service struct {
	Movie    MovieService
	Showtime ShowtimeService
	Booking  BookingService
}

func NewService(repo *repository.Repository, log *zap.Logger) *Service {
	return &Service{
		Movie:    NewMovieService(repo, log),
		Showtime: NewShowtimeService(repo, log),
		Booking:  NewBookingService(repo, log),
	}
}

// classify lets domain errors pass through unchanged and re-classifies
// anything else as Unexpected, so storage failure details never reach the
// caller.
func classify(err error, op string) error {
	var domainErr *apperr.Error
	if errors.As(err, &domainErr) {
		return err
	}
	return apperr.Wrap(err, op)
}
