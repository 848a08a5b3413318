package guild

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/writersguild/quill/domain"
)

// postService implements app.PostService using the Guild API.
type postService struct {
	client           *Client
	currentAccountID string
}

// NewPostService creates a PostService backed by the Guild API.
func NewPostService(client *Client, currentAccountID string) *postService {
	return &postService{
		client:           client,
		currentAccountID: currentAccountID,
	}
}

type postBody struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content"`
}

type commentBody struct {
	Content string `json:"content"`
}

func (s *postService) Publish(ctx context.Context, title, content string) (domain.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Post{}, domain.ErrEmptyPost
	}

	body, err := json.Marshal(postBody{Title: strings.TrimSpace(title), Content: content})
	if err != nil {
		return domain.Post{}, fmt.Errorf("encoding post: %w", err)
	}

	data, err := s.client.Post(ctx, "/api/v1/posts", bytes.NewReader(body))
	if err != nil {
		return domain.Post{}, fmt.Errorf("publishing post: %w", err)
	}

	return s.parsePost(data)
}

func (s *postService) Edit(ctx context.Context, id, title, content string) (domain.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Post{}, domain.ErrEmptyPost
	}

	body, err := json.Marshal(postBody{Title: strings.TrimSpace(title), Content: content})
	if err != nil {
		return domain.Post{}, fmt.Errorf("encoding post: %w", err)
	}

	path := fmt.Sprintf("/api/v1/posts/%s", url.PathEscape(id))
	data, err := s.client.Put(ctx, path, bytes.NewReader(body))
	if err != nil {
		return domain.Post{}, fmt.Errorf("editing post: %w", err)
	}

	return s.parsePost(data)
}

func (s *postService) Delete(ctx context.Context, id string) error {
	path := fmt.Sprintf("/api/v1/posts/%s", url.PathEscape(id))
	if _, err := s.client.Delete(ctx, path); err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	return nil
}

func (s *postService) Comment(ctx context.Context, postID, content string) (domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Comment{}, domain.ErrEmptyComment
	}

	body, err := json.Marshal(commentBody{Content: content})
	if err != nil {
		return domain.Comment{}, fmt.Errorf("encoding comment: %w", err)
	}

	path := fmt.Sprintf("/api/v1/posts/%s/comments", url.PathEscape(postID))
	data, err := s.client.Post(ctx, path, bytes.NewReader(body))
	if err != nil {
		return domain.Comment{}, fmt.Errorf("commenting: %w", err)
	}

	var wire guildComment
	if err := json.Unmarshal(data, &wire); err != nil {
		return domain.Comment{}, fmt.Errorf("parsing comment response: %w", err)
	}
	cm := wire.toDomain(s.currentAccountID)
	cm.IsOwn = true // We just wrote it.
	return cm, nil
}

func (s *postService) parsePost(data []byte) (domain.Post, error) {
	var wire guildPost
	if err := json.Unmarshal(data, &wire); err != nil {
		return domain.Post{}, fmt.Errorf("parsing post response: %w", err)
	}
	p := wire.toDomain(s.currentAccountID)
	p.IsOwn = true
	return p, nil
}
