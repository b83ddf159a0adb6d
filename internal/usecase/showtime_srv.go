package usecase

import (
	"context"
	"time"

	"movie-ticketing/internal/data/entity"
	"movie-ticketing/internal/data/repository"
	"movie-ticketing/internal/dto/request"
	"movie-ticketing/internal/dto/response"
	"movie-ticketing/pkg/apperr"

	"go.uber.org/zap"
)

type ShowtimeService interface {
	CreateShowtime(ctx context.Context, req *request.ShowtimeRequest) (*response.ShowtimeResponse, error)
	GetShowtimes(ctx context.Context) ([]response.ShowtimeResponse, error)
	GetShowtimeByID(ctx context.Context, showtimeID int64) (*response.ShowtimeResponse, error)
	UpdateShowtime(ctx context.Context, showtimeID int64, req *request.ShowtimeUpdateRequest) (*response.ShowtimeResponse, error)
	DeleteShowtime(ctx context.Context, showtimeID int64) error
}

type showtimeService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewShowtimeService(repo *repository.Repository, log *zap.Logger) ShowtimeService {
	return &showtimeService{
		repo: repo,
		log:  log.With(zap.String("service", "showtime")),
	}
}

func (s *showtimeService) CreateShowtime(ctx context.Context, req *request.ShowtimeRequest) (*response.ShowtimeResponse, error) {
	movie, err := s.repo.Movie.FindByID(ctx, req.MovieID)
	if err != nil {
		return nil, classify(err, "create showtime")
	}
	if movie == nil {
		return nil, apperr.NotFoundf("movie with ID %d not found", req.MovieID)
	}

	// Early exit on overlap; the exclusion constraint is authoritative.
	overlapping, err := s.repo.Showtime.FindOverlapping(ctx, req.Theater, req.StartTime, req.EndTime, 0)
	if err != nil {
		return nil, classify(err, "create showtime")
	}
	if overlapping != nil {
		s.log.Warn("Overlapping showtime rejected",
			zap.String("theater", req.Theater),
			zap.Time("start_time", req.StartTime),
			zap.Time("end_time", req.EndTime),
			zap.Int64("existing_showtime_id", overlapping.ID),
		)
		return nil, apperr.Conflictf("showtime overlaps with an existing showtime in theater '%s'", req.Theater)
	}

	now := time.Now()
	showtime := &entity.Showtime{
		MovieID:   req.MovieID,
		Theater:   req.Theater,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Price:     req.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Showtime.Create(ctx, showtime); err != nil {
		return nil, classify(err, "create showtime")
	}

	s.log.Info("Showtime created",
		zap.Int64("showtime_id", showtime.ID),
		zap.Int64("movie_id", showtime.MovieID),
		zap.String("theater", showtime.Theater),
	)

	// Create projection carries the movie id only, not the nested movie.
	showtimeResp := response.ShowtimeToResponse(showtime)
	return &showtimeResp, nil
}

func (s *showtimeService) GetShowtimes(ctx context.Context) ([]response.ShowtimeResponse, error) {
	showtimes, err := s.repo.Showtime.FindAll(ctx)
	if err != nil {
		return nil, classify(err, "get showtimes")
	}

	showtimeResponses := make([]response.ShowtimeResponse, len(showtimes))
	for i, showtime := range showtimes {
		showtimeResponses[i] = response.ShowtimeToResponse(showtime)
	}

	return showtimeResponses, nil
}

func (s *showtimeService) GetShowtimeByID(ctx context.Context, showtimeID int64) (*response.ShowtimeResponse, error) {
	showtime, err := s.repo.Showtime.FindByID(ctx, showtimeID)
	if err != nil {
		return nil, classify(err, "get showtime by ID")
	}
	if showtime == nil {
		return nil, apperr.NotFoundf("showtime with ID %d not found", showtimeID)
	}

	showtimeResp := response.ShowtimeToResponse(showtime)
	return &showtimeResp, nil
}

func (s *showtimeService) UpdateShowtime(ctx context.Context, showtimeID int64, req *request.ShowtimeUpdateRequest) (*response.ShowtimeResponse, error) {
	showtime, err := s.repo.Showtime.FindByID(ctx, showtimeID)
	if err != nil {
		return nil, classify(err, "update showtime")
	}
	if showtime == nil {
		return nil, apperr.NotFoundf("showtime with ID %d not found", showtimeID)
	}

	if req.MovieID != nil && *req.MovieID != showtime.MovieID {
		movie, err := s.repo.Movie.FindByID(ctx, *req.MovieID)
		if err != nil {
			return nil, classify(err, "update showtime")
		}
		if movie == nil {
			return nil, apperr.NotFoundf("movie with ID %d not found", *req.MovieID)
		}
		showtime.MovieID = *req.MovieID
		showtime.MovieTitle = movie.Title
	}

	rangeChanged := false

	if req.Theater != nil && *req.Theater != showtime.Theater {
		showtime.Theater = *req.Theater
		rangeChanged = true
	}

	if req.StartTime != nil && !req.StartTime.Equal(showtime.StartTime) {
		showtime.StartTime = *req.StartTime
		rangeChanged = true
	}

	if req.EndTime != nil && !req.EndTime.Equal(showtime.EndTime) {
		showtime.EndTime = *req.EndTime
		rangeChanged = true
	}

	if req.Price != nil {
		showtime.Price = *req.Price
	}

	if rangeChanged {
		if !showtime.EndTime.After(showtime.StartTime) {
			return nil, apperr.Invalidf("endTime must be after startTime")
		}

		// Re-run the overlap check against the merged range, skipping this row.
		overlapping, err := s.repo.Showtime.FindOverlapping(ctx,
			showtime.Theater, showtime.StartTime, showtime.EndTime, showtime.ID)
		if err != nil {
			return nil, classify(err, "update showtime")
		}
		if overlapping != nil {
			return nil, apperr.Conflictf("showtime overlaps with an existing showtime in theater '%s'", showtime.Theater)
		}
	}

	showtime.UpdatedAt = time.Now()
	if err := s.repo.Showtime.Update(ctx, showtime); err != nil {
		return nil, classify(err, "update showtime")
	}

	s.log.Info("Showtime updated",
		zap.Int64("showtime_id", showtime.ID),
		zap.Bool("range_changed", rangeChanged),
	)

	showtimeResp := response.ShowtimeToResponse(showtime)
	return &showtimeResp, nil
}

func (s *showtimeService) DeleteShowtime(ctx context.Context, showtimeID int64) error {
	showtime, err := s.repo.Showtime.FindByID(ctx, showtimeID)
	if err != nil {
		return classify(err, "delete showtime")
	}
	if showtime == nil {
		return apperr.NotFoundf("showtime with ID %d not found", showtimeID)
	}

	if err := s.repo.Showtime.Delete(ctx, showtimeID); err != nil {
		return classify(err, "delete showtime")
	}

	s.log.Info("Showtime deleted", zap.Int64("showtime_id", showtimeID))
	return nil
}
