package feed

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/writersguild/quill/domain"
)

// selectedPost returns the post under the feed cursor.
func (m Model) selectedPost() (domain.Post, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return domain.Post{}, false
	}
	return m.store.Get(m.items[m.cursor].ID)
}

// activePost returns the post an action should apply to: the detail post
// when the detail view is open, the selected feed item otherwise.
func (m Model) activePost() (domain.Post, bool) {
	if m.showDetail {
		return m.store.Get(m.detailID)
	}
	return m.selectedPost()
}

func (m *Model) closeDetail() {
	m.showDetail = false
	m.detailID = ""
	m.comments = nil
	m.loadingComments = false
	m.commentsErr = nil
	m.detailScroll = 0
}

// visibleCount estimates how many feed cards fit in the current window.
func (m Model) visibleCount() int {
	if m.height <= 0 {
		return 4
	}
	n := (m.height - 6) / 5
	if n < 1 {
		return 1
	}
	return n
}

func (m *Model) ensureCursorVisible() {
	visible := m.visibleCount()
	if m.cursor < m.start {
		m.start = m.cursor
	}
	if m.cursor >= m.start+visible {
		m.start = m.cursor - visible + 1
	}
	if m.start < 0 {
		m.start = 0
	}
}

// Refresh returns a Cmd that re-fetches the current feed.
func (m Model) Refresh() tea.Cmd {
	return m.fetchPosts(m.reqSeq)
}

// IsInDetailView reports whether the full-post view is open.
func (m Model) IsInDetailView() bool {
	return m.showDetail
}

// IsCapturingInput reports whether keystrokes are being consumed by an
// input prompt rather than acting as commands.
func (m Model) IsCapturingInput() bool {
	return m.tagInput || m.confirmDelete
}

// Items exposes the current feed entries.
func (m Model) Items() []PostItem {
	return m.items
}

// Cursor returns the current cursor position.
func (m Model) Cursor() int {
	return m.cursor
}

// SelectedPost returns the currently highlighted post, if any.
func (m Model) SelectedPost() (domain.Post, bool) {
	return m.selectedPost()
}

// Err returns the current feed error, if any.
func (m Model) Err() error {
	return m.err
}

// Loading reports whether a feed fetch is in flight.
func (m Model) Loading() bool {
	return m.loading
}
