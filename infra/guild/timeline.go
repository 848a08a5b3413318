package guild

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/writersguild/quill/domain"
)

// timelineService implements app.TimelineService using the Guild API.
type timelineService struct {
	client           *Client
	currentAccountID string // Set after init to mark own posts.
}

// NewTimelineService creates a TimelineService backed by the Guild API.
// Pass currentAccountID to mark the user's own posts in the feed.
func NewTimelineService(client *Client, currentAccountID string) *timelineService {
	return &timelineService{
		client:           client,
		currentAccountID: currentAccountID,
	}
}

func (s *timelineService) FetchHome(ctx context.Context, limit int) ([]domain.Post, error) {
	return s.fetchPosts(ctx, fmt.Sprintf("/api/v1/timelines/home?limit=%d", limit))
}

func (s *timelineService) FetchTrending(ctx context.Context, limit int) ([]domain.Post, error) {
	return s.fetchPosts(ctx, fmt.Sprintf("/api/v1/timelines/trending?limit=%d", limit))
}

func (s *timelineService) FetchByTag(ctx context.Context, tag string, limit int) ([]domain.Post, error) {
	path := fmt.Sprintf("/api/v1/timelines/tag/%s?limit=%d", url.PathEscape(tag), limit)
	return s.fetchPosts(ctx, path)
}

func (s *timelineService) fetchPosts(ctx context.Context, path string) ([]domain.Post, error) {
	data, err := s.client.Get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetching timeline: %w", err)
	}

	var wire []guildPost
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("parsing timeline: %w", err)
	}

	posts := make([]domain.Post, 0, len(wire))
	for _, p := range wire {
		posts = append(posts, p.toDomain(s.currentAccountID))
	}
	return posts, nil
}

func (s *timelineService) FetchComments(ctx context.Context, postID string) ([]domain.Comment, error) {
	path := fmt.Sprintf("/api/v1/posts/%s/comments", url.PathEscape(postID))
	data, err := s.client.Get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetching comments: %w", err)
	}

	var wire []guildComment
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("parsing comments: %w", err)
	}

	comments := make([]domain.Comment, 0, len(wire))
	for _, cm := range wire {
		comments = append(comments, cm.toDomain(s.currentAccountID))
	}
	return comments, nil
}
