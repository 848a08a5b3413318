package domain

import "errors"

var (
	// ErrSignInRequired indicates the user attempted an action that needs
	// an authenticated session.
	ErrSignInRequired = errors.New("sign in required")

	// ErrToggleInFlight indicates an engagement toggle for the same post and
	// flag is still pending (or inside its settle cooldown).
	ErrToggleInFlight = errors.New("toggle already in flight")

	// ErrUnknownPost indicates the referenced post is not in the local store.
	ErrUnknownPost = errors.New("unknown post")

	// ErrEmptyPost indicates the user submitted a post with no content.
	ErrEmptyPost = errors.New("post cannot be empty")

	// ErrEmptyComment indicates the user submitted an empty comment.
	ErrEmptyComment = errors.New("comment cannot be empty")
)
