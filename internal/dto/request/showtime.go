package request

import "time"

type ShowtimeRequest struct {
	MovieID   int64     `json:"movieId" validate:"required,min=1"`
	Theater   string    `json:"theater" validate:"required,min=1,max=100"`
	StartTime time.Time `json:"startTime" validate:"required"`
	EndTime   time.Time `json:"endTime" validate:"required,gtfield=StartTime"`
	Price     float64   `json:"price" validate:"gte=0"`
}

// ShowtimeUpdateRequest merges into the stored row. The end > start rule is
// re-checked in the service after the merge, since either bound may arrive
// alone.
type ShowtimeUpdateRequest struct {
	MovieID   *int64     `json:"movieId,omitempty" validate:"omitempty,min=1"`
	Theater   *string    `json:"theater,omitempty" validate:"omitempty,min=1,max=100"`
	StartTime *time.Time `json:"startTime,omitempty"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Price     *float64   `json:"price,omitempty" validate:"omitempty,gte=0"`
}
