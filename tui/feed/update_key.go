package feed

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/writersguild/quill/engage"
)

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.tagInput {
		return m.handleTagInputKey(msg)
	}

	if m.confirmDelete {
		switch msg.String() {
		case "y":
			m.confirmDelete = false
			if p, ok := m.selectedPost(); ok && p.IsOwn {
				return m, func() tea.Msg { return DeletePostMsg{ID: p.ID} }
			}
			return m, nil
		case "n", "esc":
			m.confirmDelete = false
			return m, nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.showDetail {
			if m.detailScroll > 0 {
				m.detailScroll--
			}
			return m, nil
		}
		if m.cursor > 0 {
			m.cursor--
			m.ensureCursorVisible()
		}

	case key.Matches(msg, m.keys.Down):
		if m.showDetail {
			m.detailScroll++
			return m, nil
		}
		if m.cursor < len(m.items)-1 {
			m.cursor++
			m.ensureCursorVisible()
		}

	case key.Matches(msg, m.keys.Enter):
		if m.showDetail {
			return m, nil
		}
		p, ok := m.selectedPost()
		if !ok {
			return m, nil
		}
		m.showDetail = true
		m.detailID = p.ID
		m.detailScroll = 0
		m.comments = nil
		m.commentsErr = nil
		if isLocalID(p.ID) {
			return m, nil
		}
		m.loadingComments = true
		return m, m.fetchComments(p.ID)

	case key.Matches(msg, m.keys.Back):
		if m.showDetail {
			m.closeDetail()
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		m.err = nil
		m.reqSeq++
		return m, m.fetchPosts(m.reqSeq)

	case key.Matches(msg, m.keys.Like):
		return m.toggleEngagement(engage.FlagLike)

	case key.Matches(msg, m.keys.Bookmark):
		return m.toggleEngagement(engage.FlagBookmark)

	case key.Matches(msg, m.keys.Repost):
		return m.toggleEngagement(engage.FlagRepost)

	case key.Matches(msg, m.keys.Comment):
		p, ok := m.activePost()
		if !ok || isLocalID(p.ID) {
			return m, nil
		}
		return m, func() tea.Msg { return ReplyPostMsg{Post: p} }

	case key.Matches(msg, m.keys.Follow):
		return m.handleFollowKey()

	case key.Matches(msg, m.keys.Edit):
		if p, ok := m.activePost(); ok && p.IsOwn && !isLocalID(p.ID) {
			return m, func() tea.Msg { return EditPostMsg{Post: p, UseInline: false} }
		}

	case key.Matches(msg, m.keys.EditInline):
		if p, ok := m.activePost(); ok && p.IsOwn && !isLocalID(p.ID) {
			return m, func() tea.Msg { return EditPostMsg{Post: p, UseInline: true} }
		}

	case key.Matches(msg, m.keys.Delete):
		if m.showDetail {
			return m, nil
		}
		if p, ok := m.selectedPost(); ok && p.IsOwn && !isLocalID(p.ID) {
			m.confirmDelete = true
		}

	case key.Matches(msg, m.keys.Open):
		if p, ok := m.activePost(); ok && p.URL != "" {
			return m, openURL(p.URL)
		}

	case key.Matches(msg, m.keys.Search):
		if m.showDetail {
			return m, nil
		}
		m.tagInput = true
		m.tagBuffer = m.tag

	case key.Matches(msg, m.keys.Home):
		return m.switchSource(sourceHome)

	case key.Matches(msg, m.keys.Explore):
		return m.switchSource(sourceTrending)
	}

	return m, nil
}

// toggleEngagement runs the optimistic half of a flag toggle on the event
// loop and hands settlement to a background command. Suppressed attempts
// (pending, cooling down, signed out) produce no command; the controller
// already surfaced whatever feedback is due.
func (m Model) toggleEngagement(flag engage.Flag) (Model, tea.Cmd) {
	p, ok := m.activePost()
	if !ok || isLocalID(p.ID) {
		return m, nil
	}
	in, err := m.engager.Begin(p.ID, flag)
	if err != nil {
		return m, nil
	}
	return m, m.finishToggle(in)
}

func (m Model) handleFollowKey() (Model, tea.Cmd) {
	p, ok := m.activePost()
	if !ok || p.IsOwn || p.AuthorID == "" {
		return m, nil
	}
	if m.followPending[p.AuthorID] {
		return m, nil
	}
	target := !m.followingByID[p.AuthorID]
	m.followPending[p.AuthorID] = true
	m.followingByID[p.AuthorID] = target // Optimistic flip
	return m, m.toggleFollow(p.AuthorID, p.Username, target)
}

func (m Model) handleTagInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.tagInput = false
		m.tagBuffer = ""
		return m, nil
	case "enter":
		tag := strings.TrimSpace(strings.TrimPrefix(m.tagBuffer, "#"))
		m.tagInput = false
		m.tagBuffer = ""
		if tag == "" {
			return m, nil
		}
		m.tag = tag
		m.source = sourceTag
		m.prepareSourceChange()
		m.reqSeq++
		return m, tea.Batch(m.fetchPosts(m.reqSeq), m.emitPrefsChanged())
	case "backspace":
		if len(m.tagBuffer) > 0 {
			runes := []rune(m.tagBuffer)
			m.tagBuffer = string(runes[:len(runes)-1])
		}
		return m, nil
	}
	if msg.Type == tea.KeyRunes {
		m.tagBuffer += string(msg.Runes)
	}
	return m, nil
}

func (m Model) switchSource(source feedSource) (Model, tea.Cmd) {
	if m.showDetail || m.source == source {
		return m, nil
	}
	m.source = source
	m.prepareSourceChange()
	m.reqSeq++
	return m, tea.Batch(m.fetchPosts(m.reqSeq), m.emitPrefsChanged())
}

func (m *Model) prepareSourceChange() {
	m.loading = true
	m.err = nil
	m.items = nil
	m.cursor = 0
	m.start = 0
	m.closeDetail()
}

func isLocalID(id string) bool {
	return strings.HasPrefix(id, "local-")
}
