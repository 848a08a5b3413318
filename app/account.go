package app

import "context"

// Profile describes a Writers Guild account.
type Profile struct {
	ID             string
	Username       string
	DisplayName    string
	Bio            string
	FollowersCount int
	FollowingCount int
	PostsCount     int
}

// AccountService provides information about accounts and follow relations.
type AccountService interface {
	// CurrentAccountID returns the account ID of the authenticated user.
	CurrentAccountID(ctx context.Context) (string, error)

	// CurrentProfile returns the authenticated user's profile.
	CurrentProfile(ctx context.Context) (Profile, error)

	// UpdateProfile updates display name and bio.
	UpdateProfile(ctx context.Context, displayName, bio string) error

	// Follow starts following an author by account ID.
	Follow(ctx context.Context, accountID string) error

	// Unfollow stops following an author by account ID.
	Unfollow(ctx context.Context, accountID string) error
}
