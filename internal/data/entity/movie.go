package entity

import (
	"time"
)

type Movie struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Genre       string    `db:"genre"`
	Duration    int       `db:"duration"`
	Rating      float64   `db:"rating"`
	ReleaseYear int       `db:"release_year"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
