package app

import (
	"context"

	"github.com/writersguild/quill/domain"
)

// PostService publishes, edits, and deletes the user's own posts.
type PostService interface {
	// Publish creates a new post. Title may be empty for short posts.
	Publish(ctx context.Context, title, content string) (domain.Post, error)

	// Edit updates an existing post's title and content.
	Edit(ctx context.Context, id, title, content string) (domain.Post, error)

	// Delete removes a post by ID.
	Delete(ctx context.Context, id string) error

	// Comment adds a comment to a post.
	Comment(ctx context.Context, postID, content string) (domain.Comment, error)
}
