package feed

import (
	"context"
	"net/url"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/writersguild/quill/domain"
	"github.com/writersguild/quill/engage"
)

func (m Model) fetchPosts(reqSeq int) tea.Cmd {
	timeline := m.timeline
	source := m.source
	tag := m.tag
	queryKey := m.queryKey()
	return func() tea.Msg {
		var (
			posts []domain.Post
			err   error
		)
		switch source {
		case sourceTrending:
			posts, err = timeline.FetchTrending(context.Background(), defaultLimit)
		case sourceTag:
			posts, err = timeline.FetchByTag(context.Background(), tag, defaultLimit)
		default:
			posts, err = timeline.FetchHome(context.Background(), defaultLimit)
		}
		if err != nil {
			return PostsErrorMsg{Err: err, QueryKey: queryKey, ReqSeq: reqSeq}
		}
		return PostsLoadedMsg{Posts: posts, QueryKey: queryKey, ReqSeq: reqSeq}
	}
}

func (m Model) fetchComments(postID string) tea.Cmd {
	timeline := m.timeline
	return func() tea.Msg {
		comments, err := timeline.FetchComments(context.Background(), postID)
		if err != nil {
			return CommentsErrorMsg{PostID: postID, Err: err}
		}
		return CommentsLoadedMsg{PostID: postID, Comments: comments}
	}
}

// finishToggle settles an engagement intent on a background goroutine. The
// optimistic half already ran on the event loop in Begin.
func (m Model) finishToggle(in engage.Intent) tea.Cmd {
	engager := m.engager
	return func() tea.Msg {
		return ToggleSettledMsg{Outcome: engager.Finish(context.Background(), in)}
	}
}

func (m Model) toggleFollow(accountID, username string, follow bool) tea.Cmd {
	account := m.account
	return func() tea.Msg {
		var err error
		if follow {
			err = account.Follow(context.Background(), accountID)
		} else {
			err = account.Unfollow(context.Background(), accountID)
		}
		return FollowToggleResultMsg{AccountID: accountID, Username: username, Follow: follow, Err: err}
	}
}

func (m Model) emitPrefsChanged() tea.Cmd {
	source := m.sourceKey()
	tag := m.tag
	return func() tea.Msg {
		return FeedPrefsChangedMsg{Source: source, Tag: tag}
	}
}

func openURL(rawURL string) tea.Cmd {
	return func() tea.Msg {
		if !isSafeExternalURL(rawURL) {
			return nil
		}
		_ = exec.Command("open", rawURL).Start()
		return nil
	}
}

func isSafeExternalURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if parsed.Host == "" {
		return false
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return true
	default:
		return false
	}
}
