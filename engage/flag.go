// Package engage implements optimistic engagement toggles (like, bookmark,
// repost) against a shared post store: apply locally first, confirm with the
// server, roll back exactly on failure.
package engage

import "github.com/writersguild/quill/domain"

// Flag names a toggleable engagement relation between the viewer and a post.
type Flag string

const (
	FlagLike     Flag = "like"
	FlagBookmark Flag = "bookmark"
	FlagRepost   Flag = "repost"
)

// HasCounter reports whether the flag carries a public counter. Bookmarks are
// private and counterless.
func (f Flag) HasCounter() bool {
	return f == FlagLike || f == FlagRepost
}

// Receipt carries the server's authoritative view of a relation after an
// activate/deactivate call. HasState/HasCount are false when the response
// omitted the respective field.
type Receipt struct {
	HasState bool
	Active   bool
	HasCount bool
	Count    int
}

// FlagState reads a flag's boolean and paired counter from a post.
// Counterless flags report zero.
func FlagState(p domain.Post, f Flag) (active bool, count int) {
	switch f {
	case FlagLike:
		return p.Liked, p.LikesCount
	case FlagBookmark:
		return p.Bookmarked, 0
	case FlagRepost:
		return p.Reposted, p.RepostsCount
	}
	return false, 0
}

// SetFlagState writes a flag's boolean and paired counter on a post.
// The counter is ignored for counterless flags.
func SetFlagState(p *domain.Post, f Flag, active bool, count int) {
	switch f {
	case FlagLike:
		p.Liked = active
		p.LikesCount = count
	case FlagBookmark:
		p.Bookmarked = active
	case FlagRepost:
		p.Reposted = active
		p.RepostsCount = count
	}
}

func (f Flag) onTitle() string {
	switch f {
	case FlagLike:
		return "Liked!"
	case FlagBookmark:
		return "Bookmarked!"
	case FlagRepost:
		return "Reposted!"
	}
	return "Done!"
}

func (f Flag) offTitle() string {
	switch f {
	case FlagLike:
		return "Like removed."
	case FlagBookmark:
		return "Bookmark removed."
	case FlagRepost:
		return "Repost removed."
	}
	return "Removed."
}

func (f Flag) failTitle() string {
	switch f {
	case FlagLike:
		return "Couldn't update like"
	case FlagBookmark:
		return "Couldn't update bookmark"
	case FlagRepost:
		return "Couldn't update repost"
	}
	return "Couldn't update"
}
