package app

import (
	"context"

	"github.com/writersguild/quill/domain"
)

// TimelineService fetches posts from the Writers Guild feeds.
type TimelineService interface {
	// FetchHome returns posts from followed authors, newest first.
	FetchHome(ctx context.Context, limit int) ([]domain.Post, error)

	// FetchTrending returns the explore feed, ranked by recent engagement.
	FetchTrending(ctx context.Context, limit int) ([]domain.Post, error)

	// FetchByTag returns posts tagged with the given tag, newest first.
	FetchByTag(ctx context.Context, tag string, limit int) ([]domain.Post, error)

	// FetchComments returns the comments on a post, oldest first.
	FetchComments(ctx context.Context, postID string) ([]domain.Comment, error)
}
