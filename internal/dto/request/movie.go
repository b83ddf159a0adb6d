package request

type MovieRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Genre       string  `json:"genre" validate:"required"`
	Duration    int     `json:"duration" validate:"required,min=1"`
	Rating      float64 `json:"rating" validate:"gte=0,lte=10"`
	ReleaseYear int     `json:"releaseYear" validate:"required,min=1888"`
}

type MovieUpdateRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Genre       *string  `json:"genre,omitempty" validate:"omitempty,min=1"`
	Duration    *int     `json:"duration,omitempty" validate:"omitempty,min=1"`
	Rating      *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=10"`
	ReleaseYear *int     `json:"releaseYear,omitempty" validate:"omitempty,min=1888"`
}
