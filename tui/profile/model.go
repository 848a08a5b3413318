package profile

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/writersguild/quill/app"
	"github.com/writersguild/quill/tui/common"
)

// BackMsg asks the root model to leave the profile view.
type BackMsg struct{}

// LoadedMsg is sent when the profile fetch completes.
type LoadedMsg struct {
	Profile app.Profile
	Err     error
}

// SavedMsg is sent after a profile update attempt.
type SavedMsg struct {
	Err error
}

// Model holds the state for the profile view: the signed-in user's card and
// an inline editor for display name and bio.
type Model struct {
	account app.AccountService

	profile app.Profile
	loading bool
	saving  bool
	err     error

	editing   bool
	nameInput textinput.Model
	bioInput  textarea.Model
	focusBio  bool

	keys    common.KeyMap
	spinner spinner.Model
}

// New creates a profile model.
func New(account app.AccountService) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#C6A0F6"))

	return Model{
		account: account,
		loading: true,
		keys:    common.DefaultKeyMap(),
		spinner: s,
	}
}

// Init fetches the current profile.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchProfile(), m.spinner.Tick)
}

func (m Model) fetchProfile() tea.Cmd {
	account := m.account
	return func() tea.Msg {
		profile, err := account.CurrentProfile(context.Background())
		return LoadedMsg{Profile: profile, Err: err}
	}
}

func (m Model) saveProfile(displayName, bio string) tea.Cmd {
	account := m.account
	return func() tea.Msg {
		return SavedMsg{Err: account.UpdateProfile(context.Background(), displayName, bio)}
	}
}

// Update handles messages for the profile view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case LoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.profile = msg.Profile
		}
		return m, nil

	case SavedMsg:
		m.saving = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.editing = false
		// Re-fetch so counters and server-side normalization show up.
		m.loading = true
		return m, m.fetchProfile()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.editing {
		return m.updateInputs(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "esc":
			m.editing = false
			return m, nil
		case "tab", "shift+tab":
			m.focusBio = !m.focusBio
			if m.focusBio {
				m.nameInput.Blur()
				return m, m.bioInput.Focus()
			}
			m.bioInput.Blur()
			return m, m.nameInput.Focus()
		case "ctrl+d":
			m.saving = true
			return m, m.saveProfile(m.nameInput.Value(), m.bioInput.Value())
		}
		return m.updateInputs(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Edit):
		if m.loading || m.err != nil {
			return m, nil
		}
		m.startEditing()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		m.err = nil
		return m, m.fetchProfile()

	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return BackMsg{} }
	}

	return m, nil
}

func (m *Model) startEditing() {
	name := textinput.New()
	name.SetValue(m.profile.DisplayName)
	name.CharLimit = 80
	name.Width = 40
	name.Focus()

	bio := textarea.New()
	bio.SetValue(m.profile.Bio)
	bio.SetWidth(60)
	bio.SetHeight(4)

	m.nameInput = name
	m.bioInput = bio
	m.focusBio = false
	m.editing = true
}

func (m Model) updateInputs(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.focusBio {
		m.bioInput, cmd = m.bioInput.Update(msg)
	} else {
		m.nameInput, cmd = m.nameInput.Update(msg)
	}
	return m, cmd
}
