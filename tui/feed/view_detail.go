package feed

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/writersguild/quill/infra/editor"
	"github.com/writersguild/quill/tui/common"
)

func (m Model) viewDetail() string {
	p, ok := m.store.Get(m.detailID)
	if !ok {
		return common.ErrorStyle.Render("  This post is gone.") + "\n" +
			common.StatusBarStyle.Render("  esc: back")
	}

	var b strings.Builder
	now := time.Now()

	header := common.AuthorStyle.Render(p.Author) +
		common.TimestampStyle.Render("  @"+p.Username+" · "+common.RelTime(p.CreatedAt, now))
	if p.IsOwn {
		header += common.OwnBadgeStyle.Render("(you)")
	}
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(m.renderMarkdown(p.ID, p.Title, p.Content))
	b.WriteString("\n")
	b.WriteString(renderEngagement(p))
	b.WriteString("\n\n")

	switch {
	case m.loadingComments:
		b.WriteString(fmt.Sprintf("  %s Loading comments...\n", m.spinner.View()))
	case m.commentsErr != nil:
		b.WriteString(common.ErrorStyle.Render("  Couldn't load comments: "+m.commentsErr.Error()) + "\n")
	case len(m.comments) == 0:
		b.WriteString(common.MetaStyle.Render("  No comments yet.") + "\n")
	default:
		b.WriteString(common.TitleStyle.Render(fmt.Sprintf("  Comments (%d)", len(m.comments))))
		b.WriteString("\n")
		for _, c := range m.comments {
			author := common.AuthorStyle.Render(c.Author)
			if c.IsOwn {
				author += common.OwnBadgeStyle.Render("(you)")
			}
			if isLocalID(c.ID) {
				author += common.StatusBarStyle.Render(" (sending...)")
			}
			b.WriteString("  " + author + " " +
				common.TimestampStyle.Render(common.RelTime(c.CreatedAt, now)) + "\n")
			b.WriteString("  " + common.ContentStyle.Render(strings.TrimSpace(c.Content)) + "\n\n")
		}
	}

	body := m.scrollLines(b.String())
	hints := "↑/↓: scroll • l: like • b: bookmark • p: repost • c: comment • o: open • esc: back"
	return body + "\n" + common.StatusBarStyle.Render("  "+hints)
}

// renderMarkdown renders post content through glamour, cached per post until
// the content changes or the window is resized.
func (m Model) renderMarkdown(id, title, content string) string {
	if cached, ok := m.renderCache[id]; ok {
		return cached
	}

	width := m.width - 4
	if width < 20 || width > 100 {
		width = 80
	}
	src := editor.JoinTitle(title, content)

	out := content
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		if rendered, rerr := r.Render(src); rerr == nil {
			out = rendered
		}
	}

	m.renderCache[id] = out
	return out
}

// scrollLines windows the detail body by the current scroll offset.
func (m Model) scrollLines(body string) string {
	lines := strings.Split(body, "\n")
	visible := m.height - 3
	if visible < 5 {
		visible = 20
	}
	if len(lines) <= visible {
		return body
	}
	start := m.detailScroll
	if start > len(lines)-visible {
		start = len(lines) - visible
	}
	if start < 0 {
		start = 0
	}
	return strings.Join(lines[start:start+visible], "\n")
}
