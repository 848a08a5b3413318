package series

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/writersguild/quill/tui/common"
)

// View renders the series browser for the current level.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(common.AppTitleStyle.Render("✒ Quill"))
	b.WriteString("  Your Series\n\n")

	if m.loading {
		b.WriteString(fmt.Sprintf("  %s Loading...\n", m.spinner.View()))
		return b.String()
	}
	if m.err != nil {
		b.WriteString(common.ErrorStyle.Render("  "+m.err.Error()) + "\n")
		b.WriteString(common.StatusBarStyle.Render("  r: retry • esc: back"))
		return b.String()
	}

	switch m.level {
	case levelList:
		m.viewList(&b)
	case levelChapters:
		m.viewChapters(&b)
	case levelReading:
		return m.viewReading()
	}

	return b.String()
}

func (m Model) viewList(b *strings.Builder) {
	if len(m.list) == 0 {
		b.WriteString("  No series yet. Group your chapters into one from the web app.\n")
		b.WriteString(common.StatusBarStyle.Render("  esc: back"))
		return
	}
	for i, s := range m.list {
		line := common.TitleStyle.Render(s.Title) +
			common.MetaStyle.Render(fmt.Sprintf("  %d chapters", s.ChaptersCount))
		if s.Description != "" {
			line += "\n" + common.ContentStyle.Render(common.Truncate(s.Description, 72))
		}
		style := common.UnselectedStyle
		if i == m.cursor {
			style = common.SelectedStyle
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	b.WriteString(common.StatusBarStyle.Render("  ↑/↓: move • enter: chapters • r: refresh • esc: back"))
}

func (m Model) viewChapters(b *strings.Builder) {
	if m.cursor < len(m.list) {
		b.WriteString(common.TitleStyle.Render("  " + m.list[m.cursor].Title))
		b.WriteString("\n\n")
	}
	if len(m.chapters) == 0 {
		b.WriteString("  No chapters yet.\n")
	}
	for i, ch := range m.chapters {
		label := fmt.Sprintf("%d. %s", ch.Number, ch.Title)
		if i == m.chCursor {
			b.WriteString(common.TabActiveStyle.Render("› " + label))
		} else {
			b.WriteString(common.TabInactiveStyle.Render("  " + label))
		}
		b.WriteString("\n")
	}
	b.WriteString(common.StatusBarStyle.Render("  ↑/↓: move • enter: read • esc: back"))
}

func (m Model) viewReading() string {
	if m.chCursor >= len(m.chapters) {
		return common.StatusBarStyle.Render("  esc: back")
	}
	ch := m.chapters[m.chCursor]

	body := m.rendered
	if body == "" || m.renderedFor != ch.ID {
		body = renderChapter(ch.Title, ch.Content, m.width)
	}

	lines := strings.Split(body, "\n")
	visible := m.height - 3
	if visible < 5 {
		visible = 30
	}
	start := m.scroll
	if start > len(lines)-visible {
		start = len(lines) - visible
	}
	if start < 0 {
		start = 0
	}
	end := start + visible
	if end > len(lines) {
		end = len(lines)
	}

	return strings.Join(lines[start:end], "\n") + "\n" +
		common.StatusBarStyle.Render("  ↑/↓: scroll • esc: back")
}

func renderChapter(title, content string, width int) string {
	w := width - 4
	if w < 20 || w > 100 {
		w = 80
	}
	src := "# " + title + "\n\n" + content
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(w),
	)
	if err != nil {
		return src
	}
	out, err := r.Render(src)
	if err != nil {
		return src
	}
	return out
}
