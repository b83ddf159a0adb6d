package repository

import (
	"context"
	"fmt"
	"time"

	"movie-ticketing/internal/data/entity"
	"movie-ticketing/pkg/apperr"
	"movie-ticketing/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ShowtimeRepository interface {
	Create(ctx context.Context, showtime *entity.Showtime) error
	FindByID(ctx context.Context, id int64) (*entity.Showtime, error)
	FindAll(ctx context.Context) ([]*entity.Showtime, error)
	// FindOverlapping returns a showtime in theater whose [start_time, end_time)
	// interval intersects [start, end), or nil when there is none. excludeID
	// skips one row, so an update does not collide with itself; pass 0 on create.
	FindOverlapping(ctx context.Context, theater string, start, end time.Time, excludeID int64) (*entity.Showtime, error)
	Update(ctx context.Context, showtime *entity.Showtime) error
	Delete(ctx context.Context, id int64) error
}

type showtimeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewShowtimeRepository(db database.PgxIface, log *zap.Logger) ShowtimeRepository {
	return &showtimeRepository{
		db:  db,
		log: log.With(zap.String("repository", "showtime")),
	}
}

// translateWriteErr maps constraint violations on showtime writes to domain
// errors. The exclusion constraint decides overlap races; the FK covers a
// movie deleted between the service-level existence check and the write.
func (r *showtimeRepository) translateWriteErr(err error, showtime *entity.Showtime) error {
	switch pgErrCode(err) {
	case pgExclusionViolation:
		return apperr.Conflictf("showtime overlaps with an existing showtime in theater '%s'", showtime.Theater)
	case pgForeignKeyViolation:
		return apperr.NotFoundf("movie with ID %d not found", showtime.MovieID)
	}
	return nil
}

func (r *showtimeRepository) Create(ctx context.Context, showtime *entity.Showtime) error {
	query := `
		INSERT INTO showtimes (movie_id, theater, start_time, end_time, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		showtime.MovieID,
		showtime.Theater,
		showtime.StartTime,
		showtime.EndTime,
		showtime.Price,
		showtime.CreatedAt,
		showtime.UpdatedAt,
	).Scan(&showtime.ID)

	if err != nil {
		if domainErr := r.translateWriteErr(err, showtime); domainErr != nil {
			return domainErr
		}
		r.log.Error("Failed to create showtime",
			zap.Error(err),
			zap.Int64("movie_id", showtime.MovieID),
			zap.String("theater", showtime.Theater),
		)
		return fmt.Errorf("create showtime in theater '%s': %w", showtime.Theater, err)
	}

	return nil
}

func (r *showtimeRepository) FindByID(ctx context.Context, id int64) (*entity.Showtime, error) {
	query := `
		SELECT s.id, s.movie_id, s.theater, s.start_time, s.end_time, s.price,
		       s.created_at, s.updated_at, m.title
		FROM showtimes s
		JOIN movies m ON m.id = s.movie_id
		WHERE s.id = $1
	`

	var showtime entity.Showtime
	err := r.db.QueryRow(ctx, query, id).Scan(
		&showtime.ID,
		&showtime.MovieID,
		&showtime.Theater,
		&showtime.StartTime,
		&showtime.EndTime,
		&showtime.Price,
		&showtime.CreatedAt,
		&showtime.UpdatedAt,
		&showtime.MovieTitle,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find showtime by ID",
			zap.Error(err),
			zap.Int64("showtime_id", id),
		)
		return nil, fmt.Errorf("find showtime by ID %d: %w", id, err)
	}

	return &showtime, nil
}

func (r *showtimeRepository) FindAll(ctx context.Context) ([]*entity.Showtime, error) {
	query := `
		SELECT s.id, s.movie_id, s.theater, s.start_time, s.end_time, s.price,
		       s.created_at, s.updated_at, m.title
		FROM showtimes s
		JOIN movies m ON m.id = s.movie_id
		ORDER BY s.start_time, s.id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all showtimes", zap.Error(err))
		return nil, fmt.Errorf("find showtimes: %w", err)
	}
	defer rows.Close()

	var showtimes []*entity.Showtime
	for rows.Next() {
		var showtime entity.Showtime
		err := rows.Scan(
			&showtime.ID,
			&showtime.MovieID,
			&showtime.Theater,
			&showtime.StartTime,
			&showtime.EndTime,
			&showtime.Price,
			&showtime.CreatedAt,
			&showtime.UpdatedAt,
			&showtime.MovieTitle,
		)
		if err != nil {
			r.log.Error("Failed to scan showtime row", zap.Error(err))
			return nil, fmt.Errorf("scan showtime: %w", err)
		}
		showtimes = append(showtimes, &showtime)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate showtime rows: %w", err)
	}

	return showtimes, nil
}

func (r *showtimeRepository) FindOverlapping(ctx context.Context, theater string, start, end time.Time, excludeID int64) (*entity.Showtime, error) {
	// Half-open overlap test: [a,b) and [c,d) intersect iff a < d AND c < b.
	query := `
		SELECT id, movie_id, theater, start_time, end_time, price, created_at, updated_at
		FROM showtimes
		WHERE theater = $1 AND start_time < $3 AND end_time > $2 AND id <> $4
		LIMIT 1
	`

	var showtime entity.Showtime
	err := r.db.QueryRow(ctx, query, theater, start, end, excludeID).Scan(
		&showtime.ID,
		&showtime.MovieID,
		&showtime.Theater,
		&showtime.StartTime,
		&showtime.EndTime,
		&showtime.Price,
		&showtime.CreatedAt,
		&showtime.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to check overlapping showtimes",
			zap.Error(err),
			zap.String("theater", theater),
			zap.Time("start_time", start),
			zap.Time("end_time", end),
		)
		return nil, fmt.Errorf("check overlap in theater '%s': %w", theater, err)
	}

	return &showtime, nil
}

func (r *showtimeRepository) Update(ctx context.Context, showtime *entity.Showtime) error {
	query := `
		UPDATE showtimes
		SET movie_id = $2, theater = $3, start_time = $4, end_time = $5,
		    price = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		showtime.ID,
		showtime.MovieID,
		showtime.Theater,
		showtime.StartTime,
		showtime.EndTime,
		showtime.Price,
		showtime.UpdatedAt,
	)

	if err != nil {
		if domainErr := r.translateWriteErr(err, showtime); domainErr != nil {
			return domainErr
		}
		r.log.Error("Failed to update showtime",
			zap.Error(err),
			zap.Int64("showtime_id", showtime.ID),
		)
		return fmt.Errorf("update showtime %d: %w", showtime.ID, err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFoundf("showtime with ID %d not found", showtime.ID)
	}

	return nil
}

func (r *showtimeRepository) Delete(ctx context.Context, id int64) error {
	// Bookings referencing this showtime are removed by ON DELETE CASCADE.
	query := `DELETE FROM showtimes WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete showtime",
			zap.Error(err),
			zap.Int64("showtime_id", id),
		)
		return fmt.Errorf("delete showtime %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFoundf("showtime with ID %d not found", id)
	}

	r.log.Info("Showtime deleted", zap.Int64("showtime_id", id))
	return nil
}
