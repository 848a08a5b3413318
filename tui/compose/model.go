package compose

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/writersguild/quill/infra/editor"
)

type mode int

const (
	editorMode mode = iota
	inlineMode
)

// DoneMsg is sent when composing is complete (success or cancel).
type DoneMsg struct {
	Content      string // Raw draft, possibly with a "# Title" first line; empty if cancelled
	PostID       string // ID of the post being edited
	TargetPostID string // Set when composing a comment on an existing post
	IsEdit       bool
	Err          error
}

// editorFinishedMsg is sent after the external editor exits.
type editorFinishedMsg struct {
	tmpPath string
	err     error
}

// Model holds the state for the compose view.
type Model struct {
	mode     mode
	editor   *editor.EnvEditor
	status   string
	err      error
	textarea textarea.Model // Only used in inline mode
	tmpPath  string         // Temp file path for editor mode
	isEdit   bool
	postID   string
	targetID string // Post being commented on
	content  string // Initial content for editing
}

// NewEditor creates a compose model that opens $EDITOR via tea.Exec.
func NewEditor(ed *editor.EnvEditor) Model {
	return Model{
		mode:   editorMode,
		editor: ed,
		status: "Opening editor...",
	}
}

// NewEditorWithContent creates a compose model for editing an existing post.
// The draft includes the "# Title" first line when the post has a title.
func NewEditorWithContent(ed *editor.EnvEditor, postID, draft string) Model {
	return Model{
		mode:    editorMode,
		editor:  ed,
		status:  "Opening editor...",
		isEdit:  true,
		postID:  postID,
		content: draft,
	}
}

// NewInline creates a compose model with an inline textarea.
func NewInline() Model {
	ta := textarea.New()
	ta.Placeholder = "Share a line, a scene, a whole chapter..."
	ta.CharLimit = 0
	ta.SetWidth(72)
	ta.SetHeight(8)
	ta.Focus()

	return Model{
		mode:     inlineMode,
		textarea: ta,
	}
}

// NewInlineWithContent creates a compose model for editing an existing post inline.
func NewInlineWithContent(postID, draft string) Model {
	ta := textarea.New()
	ta.SetValue(draft)
	ta.SetWidth(72)
	ta.SetHeight(8)
	ta.Focus()

	return Model{
		mode:     inlineMode,
		textarea: ta,
		isEdit:   true,
		postID:   postID,
		content:  draft,
	}
}

// NewComment creates an inline compose model for a comment on a post.
func NewComment(targetPostID string) Model {
	ta := textarea.New()
	ta.Placeholder = "Leave a comment..."
	ta.CharLimit = 0
	ta.SetWidth(72)
	ta.SetHeight(4)
	ta.Focus()

	return Model{
		mode:     inlineMode,
		textarea: ta,
		targetID: targetPostID,
	}
}

// Init returns the initial command for the active mode.
func (m Model) Init() tea.Cmd {
	switch m.mode {
	case editorMode:
		return m.launchEditor()
	case inlineMode:
		return textarea.Blink
	}
	return nil
}

// launchEditor prepares the editor command and uses tea.Exec to properly
// suspend Bubble Tea's raw terminal mode while the editor runs.
func (m *Model) launchEditor() tea.Cmd {
	cmd, tmpPath, err := m.editor.Cmd(m.content)
	if err != nil {
		return func() tea.Msg {
			return DoneMsg{Err: fmt.Errorf("preparing editor: %w", err)}
		}
	}
	m.tmpPath = tmpPath

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{tmpPath: tmpPath, err: err}
	})
}

// Update handles messages for the compose view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {

	case editorFinishedMsg:
		if msg.err != nil {
			return m, done(DoneMsg{Err: fmt.Errorf("editor: %w", msg.err), IsEdit: m.isEdit})
		}

		content, err := m.editor.ReadContent(msg.tmpPath)
		if err != nil {
			return m, done(DoneMsg{Err: err, IsEdit: m.isEdit, PostID: m.postID})
		}

		if content == "" || content == m.content {
			return m, done(DoneMsg{IsEdit: m.isEdit, PostID: m.postID}) // Cancel
		}

		return m, m.finish(content)

	case tea.KeyMsg:
		if m.mode != inlineMode {
			break
		}

		switch msg.String() {
		case "esc":
			return m, done(DoneMsg{IsEdit: m.isEdit, TargetPostID: m.targetID}) // Cancel.

		case "ctrl+d":
			content := m.textarea.Value()
			if content == "" || content == m.content {
				return m, done(DoneMsg{IsEdit: m.isEdit, PostID: m.postID, TargetPostID: m.targetID})
			}
			return m, m.finish(content)
		}

		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}

	// Pass through any remaining messages to textarea in inline mode.
	if m.mode == inlineMode {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) finish(content string) tea.Cmd {
	return done(DoneMsg{
		Content:      content,
		PostID:       m.postID,
		TargetPostID: m.targetID,
		IsEdit:       m.isEdit,
	})
}

// done wraps a DoneMsg into a tea.Cmd for immediate delivery.
func done(msg DoneMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}
