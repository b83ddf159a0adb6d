package usecase

import (
	"context"
	"testing"
	"time"

	"movie-ticketing/internal/dto/request"
	"movie-ticketing/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMovie(t *testing.T, svc *Service, title string) int64 {
	t.Helper()
	movie, err := svc.Movie.CreateMovie(context.Background(), movieRequest(title))
	require.NoError(t, err)
	return movie.ID
}

func showtimeRequest(movieID int64, theater string, start time.Time, duration time.Duration) *request.ShowtimeRequest {
	return &request.ShowtimeRequest{
		MovieID:   movieID,
		Theater:   theater,
		StartTime: start,
		EndTime:   start.Add(duration),
		Price:     12.50,
	}
}

func TestCreateShowtime(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	movieID := setupMovie(t, svc, "Inception")
	start := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)

	created, err := svc.Showtime.CreateShowtime(ctx, showtimeRequest(movieID, "IMAX 1", start, 2*time.Hour))
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.Equal(t, movieID, created.MovieID)
	// create projection carries the movie id, not the nested movie
	assert.Nil(t, created.Movie)
	assert.Equal(t, "IMAX 1", created.Theater)
	assert.Equal(t, 12.50, created.Price)
}

func TestCreateShowtimeMovieMissing(t *testing.T) {
	svc, _ := newTestService()
	start := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)

	_, err := svc.Showtime.CreateShowtime(context.Background(), showtimeRequest(99, "IMAX 1", start, 2*time.Hour))
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestShowtimeOverlapInvariant(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	movieID := setupMovie(t, svc, "Inception")
	start := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)

	_, err := svc.Showtime.CreateShowtime(ctx, showtimeRequest(movieID, "IMAX 1", start, 2*time.Hour))
	require.NoError(t, err)

	// overlapping interval in the same theater is rejected
	_, err = svc.Showtime.CreateShowtime(ctx, showtimeRequest(movieID, "IMAX 1", start.Add(time.Hour), 2*time.Hour))
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))

	// identical interval fully coincides and always conflicts
	_, err = svc.Showtime.CreateShowtime(ctx, showtimeRequest(movieID, "IMAX 1", start, 2*time.Hour))
	assert.True(t, apperr.IsConflict(err))

	// touching the boundary is no overlap: [start, end) is half-open
	_, err = svc.Showtime.CreateShowtime(ctx, showtimeRequest(movieID, "IMAX 1", start.Add(2*time.Hour), time.Hour))
	assert.NoError(t, err)

	// same interval in another theater is fine
	_, err = svc.Showtime.CreateShowtime(ctx, showtimeRequest(movieID, "IMAX 2", start, 2*time.Hour))
	assert.NoError(t, err)
}

func TestGetShowtimeResolvesMovie(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	movieID := setupMovie(t, svc, "Inception")
	start := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)

	created, err := svc.Showtime.CreateShowtime(ctx, showtimeRequest(movieID, "IMAX 1", start, 2*time.Hour))
	require.NoError(t, err)

	fetched, err := svc.Showtime.GetShowtimeByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.Movie)
	assert.Equal(t, movieID, fetched.Movie.ID)
	assert.Equal(t, "Inception", fetched.Movie.Title)

	all, err := svc.Showtime.GetShowtimes(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.NotNil(t, all[0].Movie)
	assert.Equal(t, "Inception", all[0].Movie.Title)
}

func TestGetShowtimeByIDNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Showtime.GetShowtimeByID(context.Background(), 7)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestUpdateShowtimeRebindsMovie(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	movieID := setupMovie(t, svc, "Inception")
	otherID := setupMovie(t, svc, "Interstellar")
	start := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)

	created, err := svc.Showtime.CreateShowtime(ctx, showtimeRequest(movieID, "IMAX 1", start, 2*time.Hour))
	require.NoError(t, err)

	missing := int64(99)
	_, err = svc.Showtime.UpdateShowtime(ctx, created.ID, &request.ShowtimeUpdateRequest{MovieID: &missing})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	updated, err := svc.Showtime.UpdateShowtime(ctx, created.ID, &request.ShowtimeUpdateRequest{MovieID: &otherID})
	require.NoError(t, err)
	assert.Equal(t, otherID, updated.MovieID)
	require.NotNil(t, updated.Movie)
	assert.Equal(t, "Interstellar", updated.Movie.Title)
}

func TestUpdateShowtimeRevalidatesOverlap(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	movieID := setupMovie(t, svc, "Inception")
	start := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)

	first, err := svc.Showtime.CreateShowtime(ctx, showtimeRequest(movieID, "IMAX 1", start, 2*time.Hour))
	require.NoError(t, err)
	second, err := svc.Showtime.CreateShowtime(ctx, showtimeRequest(movieID, "IMAX 1", start.Add(3*time.Hour), 2*time.Hour))
	require.NoError(t, err)

	// moving the second showtime onto the first is rejected
	newStart := start.Add(time.Hour)
	_, err = svc.Showtime.UpdateShowtime(ctx, second.ID, &request.ShowtimeUpdateRequest{StartTime: &newStart})
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))

	// a showtime never conflicts with itself
	price := 15.0
	sameStart := first.StartTime
	_, err = svc.Showtime.UpdateShowtime(ctx, first.ID, &request.ShowtimeUpdateRequest{
		StartTime: &sameStart,
		Price:     &price,
	})
	assert.NoError(t, err)

	// merged range must stay ordered
	badEnd := first.StartTime.Add(-time.Minute)
	_, err = svc.Showtime.UpdateShowtime(ctx, first.ID, &request.ShowtimeUpdateRequest{EndTime: &badEnd})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
}

func TestUpdateShowtimeTheaterChangeChecksOverlap(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	movieID := setupMovie(t, svc, "Inception")
	start := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)

	_, err := svc.Showtime.CreateShowtime(ctx, showtimeRequest(movieID, "IMAX 1", start, 2*time.Hour))
	require.NoError(t, err)
	other, err := svc.Showtime.CreateShowtime(ctx, showtimeRequest(movieID, "IMAX 2", start, 2*time.Hour))
	require.NoError(t, err)

	target := "IMAX 1"
	_, err = svc.Showtime.UpdateShowtime(ctx, other.ID, &request.ShowtimeUpdateRequest{Theater: &target})
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
}

func TestUpdateShowtimeNotFound(t *testing.T) {
	svc, _ := newTestService()

	price := 10.0
	_, err := svc.Showtime.UpdateShowtime(context.Background(), 7, &request.ShowtimeUpdateRequest{Price: &price})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestDeleteShowtime(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	movieID := setupMovie(t, svc, "Inception")
	start := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)

	created, err := svc.Showtime.CreateShowtime(ctx, showtimeRequest(movieID, "IMAX 1", start, 2*time.Hour))
	require.NoError(t, err)

	require.NoError(t, svc.Showtime.DeleteShowtime(ctx, created.ID))

	_, err = svc.Showtime.GetShowtimeByID(ctx, created.ID)
	assert.True(t, apperr.IsNotFound(err))

	err = svc.Showtime.DeleteShowtime(ctx, created.ID)
	assert.True(t, apperr.IsNotFound(err))
}
