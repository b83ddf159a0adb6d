package usecase

import (
	"context"
	"time"

	"movie-ticketing/internal/data/entity"
	"movie-ticketing/internal/data/repository"
	"movie-ticketing/internal/dto/request"
	"movie-ticketing/internal/dto/response"
	"movie-ticketing/pkg/apperr"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, req *request.BookingRequest) (*response.BookingCreatedResponse, error)
	GetBookingByID(ctx context.Context, bookingID uuid.UUID) (*response.BookingResponse, error)
	GetBookingsForShowtime(ctx context.Context, showtimeID int64) ([]response.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID uuid.UUID) error
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.BookingRequest) (*response.BookingCreatedResponse, error) {
	showtime, err := s.repo.Showtime.FindByID(ctx, req.ShowtimeID)
	if err != nil {
		return nil, classify(err, "create booking")
	}
	if showtime == nil {
		return nil, apperr.NotFoundf("showtime with ID %d not found", req.ShowtimeID)
	}

	// Early exit on a taken seat; the unique constraint is authoritative.
	existing, err := s.repo.Booking.FindBySeat(ctx, req.ShowtimeID, req.SeatNumber)
	if err != nil {
		return nil, classify(err, "create booking")
	}
	if existing != nil {
		s.log.Warn("Seat already booked",
			zap.Int64("showtime_id", req.ShowtimeID),
			zap.Int("seat_number", req.SeatNumber),
		)
		return nil, apperr.Conflictf("seat %d is already booked for this showtime", req.SeatNumber)
	}

	booking := &entity.Booking{
		ID:         uuid.New(),
		ShowtimeID: req.ShowtimeID,
		SeatNumber: req.SeatNumber,
		UserID:     req.UserID,
		CreatedAt:  time.Now(),
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		return nil, classify(err, "create booking")
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.Int64("showtime_id", booking.ShowtimeID),
		zap.Int("seat_number", booking.SeatNumber),
	)

	return &response.BookingCreatedResponse{BookingID: booking.ID.String()}, nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID uuid.UUID) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, classify(err, "get booking by ID")
	}
	if booking == nil {
		return nil, apperr.NotFoundf("booking with ID %s not found", bookingID.String())
	}

	bookingResp := response.BookingToResponse(booking)
	return &bookingResp, nil
}

// GetBookingsForShowtime returns the bookings referencing a showtime. An
// unknown showtime yields an empty list, not NotFound.
func (s *bookingService) GetBookingsForShowtime(ctx context.Context, showtimeID int64) ([]response.BookingResponse, error) {
	bookings, err := s.repo.Booking.FindByShowtimeID(ctx, showtimeID)
	if err != nil {
		return nil, classify(err, "get bookings for showtime")
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		bookingResponses[i] = response.BookingToResponse(booking)
	}

	return bookingResponses, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID uuid.UUID) error {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return classify(err, "cancel booking")
	}
	if booking == nil {
		return apperr.NotFoundf("booking with ID %s not found", bookingID.String())
	}

	if err := s.repo.Booking.Delete(ctx, bookingID); err != nil {
		return classify(err, "cancel booking")
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID.String()),
		zap.Int64("showtime_id", booking.ShowtimeID),
		zap.Int("seat_number", booking.SeatNumber),
	)

	return nil
}
