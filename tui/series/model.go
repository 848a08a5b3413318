package series

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/writersguild/quill/app"
	"github.com/writersguild/quill/domain"
	"github.com/writersguild/quill/tui/common"
)

// BackMsg asks the root model to leave the series view.
type BackMsg struct{}

// ListLoadedMsg is sent when the user's series list arrives.
type ListLoadedMsg struct {
	Series []domain.Series
	Err    error
}

// ChaptersLoadedMsg is sent when a series' chapters arrive.
type ChaptersLoadedMsg struct {
	SeriesID string
	Chapters []domain.Chapter
	Err      error
}

type level int

const (
	levelList level = iota
	levelChapters
	levelReading
)

// Model holds the state for the series browser: the user's series, their
// chapters, and a reading view.
type Model struct {
	series  app.SeriesService
	account app.AccountService

	level    level
	list     []domain.Series
	chapters []domain.Chapter
	cursor   int
	chCursor int
	scroll   int
	loading  bool
	err      error

	rendered    string // Glamour output for the open chapter
	renderedFor string

	keys    common.KeyMap
	spinner spinner.Model
	width   int
	height  int
}

// New creates a series model.
func New(series app.SeriesService, account app.AccountService) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#C6A0F6"))

	return Model{
		series:  series,
		account: account,
		loading: true,
		keys:    common.DefaultKeyMap(),
		spinner: s,
	}
}

// Init fetches the signed-in author's series.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchList(), m.spinner.Tick)
}

func (m Model) fetchList() tea.Cmd {
	series := m.series
	account := m.account
	return func() tea.Msg {
		authorID, err := account.CurrentAccountID(context.Background())
		if err != nil {
			return ListLoadedMsg{Err: err}
		}
		list, err := series.ListByAuthor(context.Background(), authorID)
		return ListLoadedMsg{Series: list, Err: err}
	}
}

func (m Model) fetchChapters(seriesID string) tea.Cmd {
	series := m.series
	return func() tea.Msg {
		chapters, err := series.Chapters(context.Background(), seriesID)
		return ChaptersLoadedMsg{SeriesID: seriesID, Chapters: chapters, Err: err}
	}
}

// Update handles messages for the series view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rendered = ""
		m.renderedFor = ""
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ListLoadedMsg:
		m.loading = false
		m.err = msg.Err
		m.list = msg.Series
		m.cursor = 0
		return m, nil

	case ChaptersLoadedMsg:
		if m.level != levelChapters {
			return m, nil
		}
		if m.cursor >= len(m.list) || m.list[m.cursor].ID != msg.SeriesID {
			return m, nil
		}
		m.loading = false
		m.err = msg.Err
		m.chapters = msg.Chapters
		m.chCursor = 0
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		switch m.level {
		case levelList:
			if m.cursor > 0 {
				m.cursor--
			}
		case levelChapters:
			if m.chCursor > 0 {
				m.chCursor--
			}
		case levelReading:
			if m.scroll > 0 {
				m.scroll--
			}
		}

	case key.Matches(msg, m.keys.Down):
		switch m.level {
		case levelList:
			if m.cursor < len(m.list)-1 {
				m.cursor++
			}
		case levelChapters:
			if m.chCursor < len(m.chapters)-1 {
				m.chCursor++
			}
		case levelReading:
			m.scroll++
		}

	case key.Matches(msg, m.keys.Enter):
		switch m.level {
		case levelList:
			if m.cursor >= len(m.list) {
				break
			}
			m.level = levelChapters
			m.chapters = nil
			m.loading = true
			m.err = nil
			return m, m.fetchChapters(m.list[m.cursor].ID)
		case levelChapters:
			if m.chCursor >= len(m.chapters) {
				break
			}
			m.level = levelReading
			m.scroll = 0
			m.rendered = ""
			m.renderedFor = ""
		}

	case key.Matches(msg, m.keys.Back):
		switch m.level {
		case levelReading:
			m.level = levelChapters
		case levelChapters:
			m.level = levelList
			m.chapters = nil
		default:
			return m, func() tea.Msg { return BackMsg{} }
		}

	case key.Matches(msg, m.keys.Refresh):
		if m.level == levelList {
			m.loading = true
			m.err = nil
			return m, m.fetchList()
		}
	}

	return m, nil
}
