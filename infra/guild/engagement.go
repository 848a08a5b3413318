package guild

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/writersguild/quill/engage"
)

// engagementService implements engage.RelationClient using the Guild API.
// Each relation has a distinct activate and deactivate endpoint; both are
// idempotent and return the updated post, which becomes the authoritative
// receipt for the controller.
type engagementService struct {
	client *Client
}

// NewEngagementService creates a RelationClient backed by the Guild API.
func NewEngagementService(client *Client) *engagementService {
	return &engagementService{client: client}
}

var relationVerbs = map[engage.Flag][2]string{
	engage.FlagLike:     {"like", "unlike"},
	engage.FlagBookmark: {"bookmark", "unbookmark"},
	engage.FlagRepost:   {"repost", "unrepost"},
}

func (s *engagementService) Activate(ctx context.Context, postID string, flag engage.Flag) (engage.Receipt, error) {
	return s.relate(ctx, postID, flag, true)
}

func (s *engagementService) Deactivate(ctx context.Context, postID string, flag engage.Flag) (engage.Receipt, error) {
	return s.relate(ctx, postID, flag, false)
}

func (s *engagementService) relate(ctx context.Context, postID string, flag engage.Flag, on bool) (engage.Receipt, error) {
	verbs, ok := relationVerbs[flag]
	if !ok {
		return engage.Receipt{}, fmt.Errorf("unknown engagement flag %q", flag)
	}
	verb := verbs[0]
	if !on {
		verb = verbs[1]
	}

	path := fmt.Sprintf("/api/v1/posts/%s/%s", url.PathEscape(postID), verb)
	data, err := s.client.Post(ctx, path, nil)
	if err != nil {
		return engage.Receipt{}, fmt.Errorf("%s post: %w", verb, err)
	}

	// Older servers answer 204 with no body; the optimistic guess stands.
	if len(bytes.TrimSpace(data)) == 0 {
		return engage.Receipt{}, nil
	}

	var wire guildPost
	if err := json.Unmarshal(data, &wire); err != nil {
		return engage.Receipt{}, fmt.Errorf("parsing %s response: %w", verb, err)
	}

	active, count := engage.FlagState(wire.toDomain(""), flag)
	return engage.Receipt{
		HasState: true,
		Active:   active,
		HasCount: flag.HasCounter(),
		Count:    count,
	}, nil
}
