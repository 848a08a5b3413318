package domain

import "time"

// Series groups an author's chapters under one title, ordered by number.
type Series struct {
	ID            string
	AuthorID      string
	Title         string
	Description   string
	ChaptersCount int
	UpdatedAt     time.Time
}

// Chapter is a single installment of a series. Content is markdown.
type Chapter struct {
	ID        string
	SeriesID  string
	Number    int
	Title     string
	Content   string
	CreatedAt time.Time
}
