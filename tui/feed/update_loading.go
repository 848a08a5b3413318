package feed

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleLoadingMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PostsLoadedMsg:
		// Stale-response guards: drop results from a superseded request or
		// from a source the user has since navigated away from.
		if msg.ReqSeq != m.reqSeq {
			return m, nil
		}
		if msg.QueryKey != m.queryKey() {
			return m, nil
		}

		m.store.PutAll(msg.Posts)
		newItems := make([]PostItem, len(msg.Posts))
		for i, p := range msg.Posts {
			newItems[i] = PostItem{ID: p.ID, Status: StatusNormal}
		}

		// Keep optimistic items the server doesn't know about yet.
		var pendingItems []PostItem
		for _, it := range m.items {
			if it.Status != StatusPendingCreate && it.Status != StatusPendingUpdate {
				continue
			}
			found := false
			for j, ni := range newItems {
				if ni.ID == it.ID {
					found = true
					if it.Status == StatusPendingUpdate {
						// Keep the rollback snapshot until the edit settles.
						newItems[j] = it
					}
					break
				}
			}
			if !found && it.Status == StatusPendingCreate {
				pendingItems = append(pendingItems, it)
			}
		}

		m.items = append(pendingItems, newItems...)
		m.loading = false
		m.err = nil
		if m.cursor >= len(m.items) {
			m.cursor = 0
		}
		m.ensureCursorVisible()
		return m, nil

	case PostsErrorMsg:
		if msg.ReqSeq != m.reqSeq {
			return m, nil
		}
		if msg.QueryKey != m.queryKey() {
			return m, nil
		}
		m.loading = false
		m.err = msg.Err
		return m, nil

	case CommentsLoadedMsg:
		if !m.showDetail || msg.PostID != m.detailID {
			return m, nil
		}
		m.comments = msg.Comments
		m.loadingComments = false
		m.commentsErr = nil
		return m, nil

	case CommentsErrorMsg:
		if !m.showDetail || msg.PostID != m.detailID {
			return m, nil
		}
		m.loadingComments = false
		m.commentsErr = msg.Err
		return m, nil

	case RefreshFeedMsg:
		// Best-effort staleness signal; refetch quietly when it names the
		// feed we're looking at.
		if msg.Feed != "trending" || m.source != sourceTrending || m.loading {
			return m, nil
		}
		m.reqSeq++
		return m, m.fetchPosts(m.reqSeq)
	}

	return m, nil
}
