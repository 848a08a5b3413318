package guild

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/writersguild/quill/domain"
)

// seriesService implements app.SeriesService using the Guild API.
type seriesService struct {
	client *Client
}

// NewSeriesService creates a SeriesService backed by the Guild API.
func NewSeriesService(client *Client) *seriesService {
	return &seriesService{client: client}
}

func (s *seriesService) ListByAuthor(ctx context.Context, authorID string) ([]domain.Series, error) {
	path := "/api/v1/series?author=" + url.QueryEscape(authorID)
	data, err := s.client.Get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetching series: %w", err)
	}

	var wire []guildSeries
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("parsing series: %w", err)
	}

	out := make([]domain.Series, 0, len(wire))
	for _, sr := range wire {
		out = append(out, sr.toDomain())
	}
	return out, nil
}

func (s *seriesService) Chapters(ctx context.Context, seriesID string) ([]domain.Chapter, error) {
	path := fmt.Sprintf("/api/v1/series/%s/chapters", url.PathEscape(seriesID))
	data, err := s.client.Get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetching chapters: %w", err)
	}

	var wire []guildChapter
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("parsing chapters: %w", err)
	}

	out := make([]domain.Chapter, 0, len(wire))
	for _, ch := range wire {
		out = append(out, ch.toDomain())
	}
	return out, nil
}
