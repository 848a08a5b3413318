package app

import (
	"context"

	"github.com/writersguild/quill/domain"
)

// SeriesService fetches series and their chapters.
type SeriesService interface {
	// ListByAuthor returns the series published by an author.
	ListByAuthor(ctx context.Context, authorID string) ([]domain.Series, error)

	// Chapters returns a series' chapters in reading order.
	Chapters(ctx context.Context, seriesID string) ([]domain.Chapter, error)
}
