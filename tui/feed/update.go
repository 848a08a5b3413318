package feed

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.renderWidth != msg.Width {
			m.renderCache = make(map[string]string)
			m.renderWidth = msg.Width
		}
		m.ensureCursorVisible()
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	switch msg.(type) {
	case PostsLoadedMsg, PostsErrorMsg, CommentsLoadedMsg, CommentsErrorMsg, RefreshFeedMsg:
		return m.handleLoadingMsg(msg)
	case AddOptimisticPostMsg, UpdateOptimisticPostMsg, DeleteOptimisticPostMsg,
		PublishResultMsg, DeleteResultMsg,
		AddOptimisticCommentMsg, CommentResultMsg,
		ToggleSettledMsg, FollowToggleResultMsg:
		return m.handleOptimisticMsg(msg)
	case ResetFeedStateMsg:
		m.confirmDelete = false
		m.tagInput = false
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg.(tea.KeyMsg))
	}

	return m, nil
}
