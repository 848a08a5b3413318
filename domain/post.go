package domain

import "time"

// Post is a single published piece on Writers Guild — anything from a short
// note to a full article. Content is markdown.
type Post struct {
	ID        string
	AuthorID  string
	Author    string // Display name
	Username  string
	Title     string // Optional; short posts have none
	Content   string // Markdown
	CreatedAt time.Time
	URL       string // Canonical web URL
	IsOwn     bool   // True if this post belongs to the authenticated user

	// Engagement state for the viewing user, paired with public counters.
	Liked         bool
	Bookmarked    bool
	Reposted      bool
	LikesCount    int
	RepostsCount  int
	CommentsCount int
}

// Comment is a reader comment attached to a post.
type Comment struct {
	ID        string
	PostID    string
	Author    string
	Username  string
	Content   string
	CreatedAt time.Time
	IsOwn     bool
}
