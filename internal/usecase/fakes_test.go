package usecase

import (
	"context"
	"time"

	"movie-ticketing/internal/data/entity"
	"movie-ticketing/internal/data/repository"
	"movie-ticketing/pkg/apperr"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// memStore backs the fake repositories. It mirrors the schema-level rules:
// unique titles, the theater exclusion constraint, seat uniqueness, RESTRICT
// on movie deletes and CASCADE on showtime deletes.
type memStore struct {
	nextMovieID    int64
	nextShowtimeID int64
	movies         map[int64]*entity.Movie
	showtimes      map[int64]*entity.Showtime
	bookings       map[uuid.UUID]*entity.Booking
}

func newMemStore() *memStore {
	return &memStore{
		movies:    make(map[int64]*entity.Movie),
		showtimes: make(map[int64]*entity.Showtime),
		bookings:  make(map[uuid.UUID]*entity.Booking),
	}
}

func newTestService() (*Service, *memStore) {
	store := newMemStore()
	repo := &repository.Repository{
		Movie:    &memMovieRepo{store},
		Showtime: &memShowtimeRepo{store},
		Booking:  &memBookingRepo{store},
	}
	return NewService(repo, zap.NewNop()), store
}

// ---------------- movies ----------------

type memMovieRepo struct{ s *memStore }

func (r *memMovieRepo) Create(_ context.Context, movie *entity.Movie) error {
	for _, m := range r.s.movies {
		if m.Title == movie.Title {
			return apperr.Conflictf("movie with title '%s' already exists", movie.Title)
		}
	}
	r.s.nextMovieID++
	movie.ID = r.s.nextMovieID
	stored := *movie
	r.s.movies[movie.ID] = &stored
	return nil
}

func (r *memMovieRepo) FindByID(_ context.Context, id int64) (*entity.Movie, error) {
	m, ok := r.s.movies[id]
	if !ok {
		return nil, nil
	}
	copied := *m
	return &copied, nil
}

func (r *memMovieRepo) FindByTitle(_ context.Context, title string) (*entity.Movie, error) {
	for _, m := range r.s.movies {
		if m.Title == title {
			copied := *m
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memMovieRepo) FindAll(_ context.Context) ([]*entity.Movie, error) {
	var movies []*entity.Movie
	for id := int64(1); id <= r.s.nextMovieID; id++ {
		if m, ok := r.s.movies[id]; ok {
			copied := *m
			movies = append(movies, &copied)
		}
	}
	return movies, nil
}

func (r *memMovieRepo) Update(_ context.Context, movie *entity.Movie) error {
	if _, ok := r.s.movies[movie.ID]; !ok {
		return apperr.NotFoundf("movie with ID %d not found", movie.ID)
	}
	for _, m := range r.s.movies {
		if m.ID != movie.ID && m.Title == movie.Title {
			return apperr.Conflictf("movie with title '%s' already exists", movie.Title)
		}
	}
	stored := *movie
	r.s.movies[movie.ID] = &stored
	return nil
}

func (r *memMovieRepo) DeleteByID(_ context.Context, id int64) error {
	if _, ok := r.s.movies[id]; !ok {
		return apperr.NotFoundf("movie with ID %d not found", id)
	}
	for _, st := range r.s.showtimes {
		if st.MovieID == id {
			return apperr.Conflictf("movie with ID %d still has scheduled showtimes", id)
		}
	}
	delete(r.s.movies, id)
	return nil
}

// ---------------- showtimes ----------------

type memShowtimeRepo struct{ s *memStore }

func (r *memShowtimeRepo) findOverlap(theater string, start, end time.Time, excludeID int64) *entity.Showtime {
	for id := int64(1); id <= r.s.nextShowtimeID; id++ {
		st, ok := r.s.showtimes[id]
		if !ok || st.ID == excludeID || st.Theater != theater {
			continue
		}
		if st.Overlaps(start, end) {
			copied := *st
			return &copied
		}
	}
	return nil
}

func (r *memShowtimeRepo) Create(_ context.Context, showtime *entity.Showtime) error {
	if _, ok := r.s.movies[showtime.MovieID]; !ok {
		return apperr.NotFoundf("movie with ID %d not found", showtime.MovieID)
	}
	if r.findOverlap(showtime.Theater, showtime.StartTime, showtime.EndTime, 0) != nil {
		return apperr.Conflictf("showtime overlaps with an existing showtime in theater '%s'", showtime.Theater)
	}
	r.s.nextShowtimeID++
	showtime.ID = r.s.nextShowtimeID
	stored := *showtime
	r.s.showtimes[showtime.ID] = &stored
	return nil
}

func (r *memShowtimeRepo) FindByID(_ context.Context, id int64) (*entity.Showtime, error) {
	st, ok := r.s.showtimes[id]
	if !ok {
		return nil, nil
	}
	copied := *st
	if m, ok := r.s.movies[st.MovieID]; ok {
		copied.MovieTitle = m.Title
	}
	return &copied, nil
}

func (r *memShowtimeRepo) FindAll(_ context.Context) ([]*entity.Showtime, error) {
	var showtimes []*entity.Showtime
	for id := int64(1); id <= r.s.nextShowtimeID; id++ {
		if st, ok := r.s.showtimes[id]; ok {
			copied := *st
			if m, ok := r.s.movies[st.MovieID]; ok {
				copied.MovieTitle = m.Title
			}
			showtimes = append(showtimes, &copied)
		}
	}
	return showtimes, nil
}

func (r *memShowtimeRepo) FindOverlapping(_ context.Context, theater string, start, end time.Time, excludeID int64) (*entity.Showtime, error) {
	return r.findOverlap(theater, start, end, excludeID), nil
}

func (r *memShowtimeRepo) Update(_ context.Context, showtime *entity.Showtime) error {
	if _, ok := r.s.showtimes[showtime.ID]; !ok {
		return apperr.NotFoundf("showtime with ID %d not found", showtime.ID)
	}
	if _, ok := r.s.movies[showtime.MovieID]; !ok {
		return apperr.NotFoundf("movie with ID %d not found", showtime.MovieID)
	}
	if r.findOverlap(showtime.Theater, showtime.StartTime, showtime.EndTime, showtime.ID) != nil {
		return apperr.Conflictf("showtime overlaps with an existing showtime in theater '%s'", showtime.Theater)
	}
	stored := *showtime
	r.s.showtimes[showtime.ID] = &stored
	return nil
}

func (r *memShowtimeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.s.showtimes[id]; !ok {
		return apperr.NotFoundf("showtime with ID %d not found", id)
	}
	delete(r.s.showtimes, id)
	// cascade
	for bid, b := range r.s.bookings {
		if b.ShowtimeID == id {
			delete(r.s.bookings, bid)
		}
	}
	return nil
}

// ---------------- bookings ----------------

type memBookingRepo struct{ s *memStore }

func (r *memBookingRepo) Create(_ context.Context, booking *entity.Booking) error {
	if _, ok := r.s.showtimes[booking.ShowtimeID]; !ok {
		return apperr.NotFoundf("showtime with ID %d not found", booking.ShowtimeID)
	}
	for _, b := range r.s.bookings {
		if b.ShowtimeID == booking.ShowtimeID && b.SeatNumber == booking.SeatNumber {
			return apperr.Conflictf("seat %d is already booked for this showtime", booking.SeatNumber)
		}
	}
	stored := *booking
	r.s.bookings[booking.ID] = &stored
	return nil
}

func (r *memBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (r *memBookingRepo) FindBySeat(_ context.Context, showtimeID int64, seatNumber int) (*entity.Booking, error) {
	for _, b := range r.s.bookings {
		if b.ShowtimeID == showtimeID && b.SeatNumber == seatNumber {
			copied := *b
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memBookingRepo) FindByShowtimeID(_ context.Context, showtimeID int64) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for _, b := range r.s.bookings {
		if b.ShowtimeID == showtimeID {
			copied := *b
			bookings = append(bookings, &copied)
		}
	}
	return bookings, nil
}

func (r *memBookingRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.s.bookings[id]; !ok {
		return apperr.NotFoundf("booking with ID %s not found", id.String())
	}
	delete(r.s.bookings, id)
	return nil
}
