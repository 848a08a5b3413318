package feed

import (
	"fmt"
	"strings"
	"time"

	"github.com/writersguild/quill/domain"
	"github.com/writersguild/quill/tui/common"
)

// View renders the feed or, when open, the full-post view.
func (m Model) View() string {
	if m.showDetail {
		return m.viewDetail()
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n")

	if m.tagInput {
		b.WriteString("\n  Tag: #" + m.tagBuffer + "▌\n")
		b.WriteString(common.StatusBarStyle.Render("  enter: search • esc: cancel"))
		return b.String()
	}

	switch {
	case m.loading:
		b.WriteString(fmt.Sprintf("\n  %s Fetching %s...\n", m.spinner.View(), m.sourceLabel()))
	case m.err != nil:
		b.WriteString("\n" + common.ErrorStyle.Render("  Couldn't load the feed: "+m.err.Error()) + "\n")
		b.WriteString(common.StatusBarStyle.Render("  r: retry"))
	case len(m.items) == 0:
		b.WriteString("\n  Nothing here yet. Follow some writers or explore trending.\n")
	default:
		end := m.start + m.visibleCount()
		if end > len(m.items) {
			end = len(m.items)
		}
		now := time.Now()
		for i := m.start; i < end; i++ {
			b.WriteString(m.renderCard(i, now))
			b.WriteString("\n")
		}
	}

	if m.confirmDelete {
		b.WriteString(common.ConfirmStyle.Render("Delete this post? (y/n)"))
		b.WriteString("\n")
	}

	b.WriteString(m.viewFooter())
	return b.String()
}

func (m Model) viewHeader() string {
	var b strings.Builder
	b.WriteString(common.AppTitleStyle.Render("✒ Quill"))
	b.WriteString(common.TaglineStyle.Render("the writers guild, in your terminal"))
	b.WriteString("\n")

	tabs := []struct {
		label  string
		active bool
	}{
		{"[1] Home", m.source == sourceHome},
		{"[2] Explore", m.source == sourceTrending},
	}
	for _, t := range tabs {
		if t.active {
			b.WriteString(common.TabActiveStyle.Render(t.label))
		} else {
			b.WriteString(common.TabInactiveStyle.Render(t.label))
		}
	}
	if m.source == sourceTag {
		b.WriteString(common.TabActiveStyle.Render("#" + m.tag))
	} else if m.tag != "" {
		b.WriteString(common.TabInactiveStyle.Render("#" + m.tag))
	}
	return b.String()
}

func (m Model) renderCard(i int, now time.Time) string {
	it := m.items[i]
	p, ok := m.store.Get(it.ID)
	if !ok {
		return ""
	}

	width := m.width - 6
	if width < 24 {
		width = 72
	}

	var b strings.Builder
	if p.Title != "" {
		b.WriteString(common.TitleStyle.Render(common.Truncate(p.Title, width)))
		b.WriteString("\n")
	}
	b.WriteString(common.ContentStyle.Render(common.Truncate(common.Excerpt(p.Content, 2), width)))
	b.WriteString("\n")

	meta := common.AuthorStyle.Render(p.Author)
	if p.IsOwn {
		meta += common.OwnBadgeStyle.Render("(you)")
	} else if m.followingByID[p.AuthorID] {
		meta += common.OwnBadgeStyle.Render("(following)")
	}
	meta += " " + common.TimestampStyle.Render(common.RelTime(p.CreatedAt, now))
	b.WriteString(meta)
	b.WriteString("  ")
	b.WriteString(renderEngagement(p))

	if badge := statusBadge(it); badge != "" {
		b.WriteString("\n")
		b.WriteString(badge)
	}

	style := common.UnselectedStyle
	if i == m.cursor {
		style = common.SelectedStyle
	}
	return style.Width(width + 2).Render(b.String())
}

// renderEngagement draws the counters line. Active flags are highlighted;
// bookmarks have no public counter so only the marker shows.
func renderEngagement(p domain.Post) string {
	parts := make([]string, 0, 4)

	like := fmt.Sprintf("♥ %d", p.LikesCount)
	if p.Liked {
		parts = append(parts, common.EngagedStyle.Render(like))
	} else {
		parts = append(parts, common.MetaStyle.Render(like))
	}

	repost := fmt.Sprintf("⟳ %d", p.RepostsCount)
	if p.Reposted {
		parts = append(parts, common.EngagedStyle.Render(repost))
	} else {
		parts = append(parts, common.MetaStyle.Render(repost))
	}

	parts = append(parts, common.MetaStyle.Render(fmt.Sprintf("💬 %d", p.CommentsCount)))

	if p.Bookmarked {
		parts = append(parts, common.EngagedStyle.Render("🔖"))
	}

	return strings.Join(parts, " ")
}

func statusBadge(it PostItem) string {
	switch it.Status {
	case StatusPendingCreate:
		return common.StatusBarStyle.Render("(publishing...)")
	case StatusPendingUpdate:
		return common.StatusBarStyle.Render("(updating...)")
	case StatusFailed:
		msg := "(failed)"
		if it.Err != nil {
			msg = "(failed: " + it.Err.Error() + ")"
		}
		return common.ErrorStyle.Render(msg)
	}
	return ""
}

func (m Model) viewFooter() string {
	hints := "↑/↓: move • enter: read • l: like • b: bookmark • p: repost • c: comment • w: write • r: refresh • /: tag • q: quit"
	return common.StatusBarStyle.Render("  " + hints)
}
