package response

import (
	"time"

	"movie-ticketing/internal/data/entity"
)

// MovieSummary is the resolved movie reference embedded in showtime reads.
// Create responses carry only movieId.
type MovieSummary struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type ShowtimeResponse struct {
	ID        int64         `json:"id"`
	MovieID   int64         `json:"movieId"`
	Movie     *MovieSummary `json:"movie,omitempty"`
	Theater   string        `json:"theater"`
	StartTime time.Time     `json:"startTime"`
	EndTime   time.Time     `json:"endTime"`
	Price     float64       `json:"price"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func ShowtimeToResponse(showtime *entity.Showtime) ShowtimeResponse {
	resp := ShowtimeResponse{
		ID:        showtime.ID,
		MovieID:   showtime.MovieID,
		Theater:   showtime.Theater,
		StartTime: showtime.StartTime,
		EndTime:   showtime.EndTime,
		Price:     showtime.Price,
		CreatedAt: showtime.CreatedAt,
		UpdatedAt: showtime.UpdatedAt,
	}

	if showtime.MovieTitle != "" {
		resp.Movie = &MovieSummary{
			ID:    showtime.MovieID,
			Title: showtime.MovieTitle,
		}
	}

	return resp
}
