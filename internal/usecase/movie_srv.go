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

type MovieService interface {
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	GetMovies(ctx context.Context) ([]response.MovieResponse, error)
	GetMovieByID(ctx context.Context, movieID int64) (*response.MovieResponse, error)
	UpdateMovieByTitle(ctx context.Context, title string, req *request.MovieUpdateRequest) (*response.MovieResponse, error)
	DeleteMovieByTitle(ctx context.Context, title string) error
}

type movieService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMovieService(repo *repository.Repository, log *zap.Logger) MovieService {
	return &movieService{
		repo: repo,
		log:  log.With(zap.String("service", "movie")),
	}
}

// release years before the first motion picture or after the current year
// are rejected; the validator tag only covers the lower bound.
func validReleaseYear(year int) bool {
	return year >= 1888 && year <= time.Now().Year()
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	if !validReleaseYear(req.ReleaseYear) {
		return nil, apperr.Invalidf("releaseYear %d is out of range", req.ReleaseYear)
	}

	// Early exit on duplicate title; the unique constraint is authoritative.
	existing, err := s.repo.Movie.FindByTitle(ctx, req.Title)
	if err != nil {
		return nil, classify(err, "create movie")
	}
	if existing != nil {
		s.log.Warn("Duplicate movie title", zap.String("title", req.Title))
		return nil, apperr.Conflictf("movie with title '%s' already exists", req.Title)
	}

	now := time.Now()
	movie := &entity.Movie{
		Title:       req.Title,
		Genre:       req.Genre,
		Duration:    req.Duration,
		Rating:      req.Rating,
		ReleaseYear: req.ReleaseYear,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		return nil, classify(err, "create movie")
	}

	s.log.Info("Movie created",
		zap.Int64("movie_id", movie.ID),
		zap.String("title", movie.Title),
	)

	movieResp := response.MovieToResponse(movie)
	return &movieResp, nil
}

func (s *movieService) GetMovies(ctx context.Context) ([]response.MovieResponse, error) {
	movies, err := s.repo.Movie.FindAll(ctx)
	if err != nil {
		return nil, classify(err, "get movies")
	}

	movieResponses := make([]response.MovieResponse, len(movies))
	for i, movie := range movies {
		movieResponses[i] = response.MovieToResponse(movie)
	}

	return movieResponses, nil
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID int64) (*response.MovieResponse, error) {
	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, classify(err, "get movie by ID")
	}
	if movie == nil {
		return nil, apperr.NotFoundf("movie with ID %d not found", movieID)
	}

	movieResp := response.MovieToResponse(movie)
	return &movieResp, nil
}

func (s *movieService) UpdateMovieByTitle(ctx context.Context, title string, req *request.MovieUpdateRequest) (*response.MovieResponse, error) {
	movie, err := s.repo.Movie.FindByTitle(ctx, title)
	if err != nil {
		return nil, classify(err, "update movie")
	}
	if movie == nil {
		return nil, apperr.NotFoundf("movie with title '%s' not found", title)
	}

	// Apply partial updates only for provided fields
	updated := false

	if req.Title != nil && *req.Title != movie.Title {
		// Renaming re-checks title uniqueness.
		other, err := s.repo.Movie.FindByTitle(ctx, *req.Title)
		if err != nil {
			return nil, classify(err, "update movie")
		}
		if other != nil {
			return nil, apperr.Conflictf("movie with title '%s' already exists", *req.Title)
		}
		movie.Title = *req.Title
		updated = true
	}

	if req.Genre != nil {
		movie.Genre = *req.Genre
		updated = true
	}

	if req.Duration != nil {
		movie.Duration = *req.Duration
		updated = true
	}

	if req.Rating != nil {
		movie.Rating = *req.Rating
		updated = true
	}

	if req.ReleaseYear != nil {
		if !validReleaseYear(*req.ReleaseYear) {
			return nil, apperr.Invalidf("releaseYear %d is out of range", *req.ReleaseYear)
		}
		movie.ReleaseYear = *req.ReleaseYear
		updated = true
	}

	if updated {
		movie.UpdatedAt = time.Now()
		if err := s.repo.Movie.Update(ctx, movie); err != nil {
			return nil, classify(err, "update movie")
		}
	}

	s.log.Info("Movie updated",
		zap.Int64("movie_id", movie.ID),
		zap.String("title", movie.Title),
		zap.Bool("was_updated", updated),
	)

	movieResp := response.MovieToResponse(movie)
	return &movieResp, nil
}

func (s *movieService) DeleteMovieByTitle(ctx context.Context, title string) error {
	movie, err := s.repo.Movie.FindByTitle(ctx, title)
	if err != nil {
		return classify(err, "delete movie")
	}
	if movie == nil {
		return apperr.NotFoundf("movie with title '%s' not found", title)
	}

	if err := s.repo.Movie.DeleteByID(ctx, movie.ID); err != nil {
		return classify(err, "delete movie")
	}

	s.log.Info("Movie deleted",
		zap.Int64("movie_id", movie.ID),
		zap.String("title", title),
	)

	return nil
}
