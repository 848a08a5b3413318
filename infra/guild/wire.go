package guild

import (
	"time"

	"github.com/writersguild/quill/app"
	"github.com/writersguild/quill/domain"
)

// guildAccount is the subset of the API's account entity we care about.
type guildAccount struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	DisplayName    string `json:"display_name"`
	Bio            string `json:"bio"`
	FollowersCount int    `json:"followers_count"`
	FollowingCount int    `json:"following_count"`
	PostsCount     int    `json:"posts_count"`
}

// guildPost is the subset of the API's post entity we care about. Viewer
// flags (liked/bookmarked/reposted) are only present for authenticated
// requests and default to false otherwise.
type guildPost struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Content       string       `json:"content"`
	CreatedAt     string       `json:"created_at"`
	URL           string       `json:"url"`
	Author        guildAccount `json:"author"`
	Liked         bool         `json:"liked"`
	Bookmarked    bool         `json:"bookmarked"`
	Reposted      bool         `json:"reposted"`
	LikesCount    int          `json:"likes_count"`
	RepostsCount  int          `json:"reposts_count"`
	CommentsCount int          `json:"comments_count"`
}

type guildComment struct {
	ID        string       `json:"id"`
	PostID    string       `json:"post_id"`
	Content   string       `json:"content"`
	CreatedAt string       `json:"created_at"`
	Author    guildAccount `json:"author"`
}

type guildSeries struct {
	ID            string `json:"id"`
	AuthorID      string `json:"author_id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	ChaptersCount int    `json:"chapters_count"`
	UpdatedAt     string `json:"updated_at"`
}

type guildChapter struct {
	ID        string `json:"id"`
	SeriesID  string `json:"series_id"`
	Number    int    `json:"number"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

func (a guildAccount) displayOrUsername() string {
	if a.DisplayName != "" {
		return a.DisplayName
	}
	return a.Username
}

func (a guildAccount) toProfile() app.Profile {
	return app.Profile{
		ID:             a.ID,
		Username:       a.Username,
		DisplayName:    a.DisplayName,
		Bio:            a.Bio,
		FollowersCount: a.FollowersCount,
		FollowingCount: a.FollowingCount,
		PostsCount:     a.PostsCount,
	}
}

func (p guildPost) toDomain(currentAccountID string) domain.Post {
	createdAt, _ := time.Parse(time.RFC3339, p.CreatedAt)
	return domain.Post{
		ID:            p.ID,
		AuthorID:      p.Author.ID,
		Author:        p.Author.displayOrUsername(),
		Username:      p.Author.Username,
		Title:         p.Title,
		Content:       p.Content,
		CreatedAt:     createdAt,
		URL:           p.URL,
		IsOwn:         currentAccountID != "" && p.Author.ID == currentAccountID,
		Liked:         p.Liked,
		Bookmarked:    p.Bookmarked,
		Reposted:      p.Reposted,
		LikesCount:    p.LikesCount,
		RepostsCount:  p.RepostsCount,
		CommentsCount: p.CommentsCount,
	}
}

func (cm guildComment) toDomain(currentAccountID string) domain.Comment {
	createdAt, _ := time.Parse(time.RFC3339, cm.CreatedAt)
	return domain.Comment{
		ID:        cm.ID,
		PostID:    cm.PostID,
		Author:    cm.Author.displayOrUsername(),
		Username:  cm.Author.Username,
		Content:   cm.Content,
		CreatedAt: createdAt,
		IsOwn:     currentAccountID != "" && cm.Author.ID == currentAccountID,
	}
}

func (s guildSeries) toDomain() domain.Series {
	updatedAt, _ := time.Parse(time.RFC3339, s.UpdatedAt)
	return domain.Series{
		ID:            s.ID,
		AuthorID:      s.AuthorID,
		Title:         s.Title,
		Description:   s.Description,
		ChaptersCount: s.ChaptersCount,
		UpdatedAt:     updatedAt,
	}
}

func (ch guildChapter) toDomain() domain.Chapter {
	createdAt, _ := time.Parse(time.RFC3339, ch.CreatedAt)
	return domain.Chapter{
		ID:        ch.ID,
		SeriesID:  ch.SeriesID,
		Number:    ch.Number,
		Title:     ch.Title,
		Content:   ch.Content,
		CreatedAt: createdAt,
	}
}
