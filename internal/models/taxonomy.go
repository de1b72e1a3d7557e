package models

import "time"

type Section struct {
	ID        int64     `json:"id"`
	Language  string    `json:"language"`
	Title     string    `json:"title"`
	Alias     string    `json:"alias"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Tag.Weight - число единиц контента, ссылающихся на тег.
type Tag struct {
	ID        int64     `json:"id"`
	Language  string    `json:"language"`
	Title     string    `json:"title"`
	Alias     string    `json:"alias"`
	Weight    int       `json:"weight"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TermRequest struct {
	Language string `json:"language" validate:"required"`
	Title    string `json:"title"    validate:"required,max=255"`
	Alias    string `json:"alias"    validate:"max=255"`
	Order    int    `json:"order"`
}

type RouteAlias struct {
	ID        int64     `json:"id"`
	Language  string    `json:"language"`
	Alias     string    `json:"alias"`
	Target    string    `json:"target"`
	CreatedAt time.Time `json:"created_at"`
}
