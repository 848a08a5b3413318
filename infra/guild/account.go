package guild

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/writersguild/quill/app"
)

// accountService implements app.AccountService using the Guild API.
type accountService struct {
	client *Client
}

// NewAccountService creates an AccountService backed by the Guild API.
func NewAccountService(client *Client) *accountService {
	return &accountService{client: client}
}

func (s *accountService) CurrentAccountID(ctx context.Context) (string, error) {
	profile, err := s.CurrentProfile(ctx)
	if err != nil {
		return "", err
	}
	return profile.ID, nil
}

func (s *accountService) CurrentProfile(ctx context.Context) (app.Profile, error) {
	data, err := s.client.Get(ctx, "/api/v1/accounts/me")
	if err != nil {
		return app.Profile{}, fmt.Errorf("fetching profile: %w", err)
	}

	var wire guildAccount
	if err := json.Unmarshal(data, &wire); err != nil {
		return app.Profile{}, fmt.Errorf("parsing profile: %w", err)
	}
	return wire.toProfile(), nil
}

func (s *accountService) UpdateProfile(ctx context.Context, displayName, bio string) error {
	body, err := json.Marshal(struct {
		DisplayName string `json:"display_name"`
		Bio         string `json:"bio"`
	}{DisplayName: displayName, Bio: bio})
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}

	if _, err := s.client.Patch(ctx, "/api/v1/accounts/me", bytes.NewReader(body)); err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}
	return nil
}

func (s *accountService) Follow(ctx context.Context, accountID string) error {
	path := fmt.Sprintf("/api/v1/accounts/%s/follow", url.PathEscape(accountID))
	if _, err := s.client.Post(ctx, path, nil); err != nil {
		return fmt.Errorf("following: %w", err)
	}
	return nil
}

func (s *accountService) Unfollow(ctx context.Context, accountID string) error {
	path := fmt.Sprintf("/api/v1/accounts/%s/unfollow", url.PathEscape(accountID))
	if _, err := s.client.Post(ctx, path, nil); err != nil {
		return fmt.Errorf("unfollowing: %w", err)
	}
	return nil
}
