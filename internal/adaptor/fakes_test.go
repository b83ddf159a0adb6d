package adaptor

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"movie-ticketing/internal/dto/request"
	"movie-ticketing/internal/dto/response"
	"movie-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Stub services with function fields, one per interface method. Tests set
// only the functions the route under test calls.

type stubMovieService struct {
	createFn func(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	listFn   func(ctx context.Context) ([]response.MovieResponse, error)
	getFn    func(ctx context.Context, movieID int64) (*response.MovieResponse, error)
	updateFn func(ctx context.Context, title string, req *request.MovieUpdateRequest) (*response.MovieResponse, error)
	deleteFn func(ctx context.Context, title string) error
}

func (s *stubMovieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	return s.createFn(ctx, req)
}

func (s *stubMovieService) GetMovies(ctx context.Context) ([]response.MovieResponse, error) {
	return s.listFn(ctx)
}

func (s *stubMovieService) GetMovieByID(ctx context.Context, movieID int64) (*response.MovieResponse, error) {
	return s.getFn(ctx, movieID)
}

func (s *stubMovieService) UpdateMovieByTitle(ctx context.Context, title string, req *request.MovieUpdateRequest) (*response.MovieResponse, error) {
	return s.updateFn(ctx, title, req)
}

func (s *stubMovieService) DeleteMovieByTitle(ctx context.Context, title string) error {
	return s.deleteFn(ctx, title)
}

type stubShowtimeService struct {
	createFn func(ctx context.Context, req *request.ShowtimeRequest) (*response.ShowtimeResponse, error)
	listFn   func(ctx context.Context) ([]response.ShowtimeResponse, error)
	getFn    func(ctx context.Context, showtimeID int64) (*response.ShowtimeResponse, error)
	updateFn func(ctx context.Context, showtimeID int64, req *request.ShowtimeUpdateRequest) (*response.ShowtimeResponse, error)
	deleteFn func(ctx context.Context, showtimeID int64) error
}

func (s *stubShowtimeService) CreateShowtime(ctx context.Context, req *request.ShowtimeRequest) (*response.ShowtimeResponse, error) {
	return s.createFn(ctx, req)
}

func (s *stubShowtimeService) GetShowtimes(ctx context.Context) ([]response.ShowtimeResponse, error) {
	return s.listFn(ctx)
}

func (s *stubShowtimeService) GetShowtimeByID(ctx context.Context, showtimeID int64) (*response.ShowtimeResponse, error) {
	return s.getFn(ctx, showtimeID)
}

func (s *stubShowtimeService) UpdateShowtime(ctx context.Context, showtimeID int64, req *request.ShowtimeUpdateRequest) (*response.ShowtimeResponse, error) {
	return s.updateFn(ctx, showtimeID, req)
}

func (s *stubShowtimeService) DeleteShowtime(ctx context.Context, showtimeID int64) error {
	return s.deleteFn(ctx, showtimeID)
}

type stubBookingService struct {
	createFn func(ctx context.Context, req *request.BookingRequest) (*response.BookingCreatedResponse, error)
	getFn    func(ctx context.Context, bookingID uuid.UUID) (*response.BookingResponse, error)
	listFn   func(ctx context.Context, showtimeID int64) ([]response.BookingResponse, error)
	cancelFn func(ctx context.Context, bookingID uuid.UUID) error
}

func (s *stubBookingService) CreateBooking(ctx context.Context, req *request.BookingRequest) (*response.BookingCreatedResponse, error) {
	return s.createFn(ctx, req)
}

func (s *stubBookingService) GetBookingByID(ctx context.Context, bookingID uuid.UUID) (*response.BookingResponse, error) {
	return s.getFn(ctx, bookingID)
}

func (s *stubBookingService) GetBookingsForShowtime(ctx context.Context, showtimeID int64) ([]response.BookingResponse, error) {
	return s.listFn(ctx, showtimeID)
}

func (s *stubBookingService) CancelBooking(ctx context.Context, bookingID uuid.UUID) error {
	return s.cancelFn(ctx, bookingID)
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func doRequest(t *testing.T, router chi.Router, method, target, body string) (*httptest.ResponseRecorder, utils.Response) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope utils.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, rec.Code < http.StatusBadRequest, envelope.Status)

	return rec, envelope
}
