package profile

import (
	"fmt"
	"strings"

	"github.com/writersguild/quill/tui/common"
)

// View renders the profile card or the inline editor.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(common.AppTitleStyle.Render("✒ Quill"))
	b.WriteString("  Profile\n\n")

	if m.loading {
		b.WriteString(fmt.Sprintf("  %s Loading...\n", m.spinner.View()))
		return b.String()
	}

	if m.editing {
		b.WriteString("  Display name\n")
		b.WriteString("  " + m.nameInput.View() + "\n\n")
		b.WriteString("  Bio\n")
		b.WriteString(m.bioInput.View() + "\n\n")
		if m.saving {
			b.WriteString(common.StatusBarStyle.Render("  Saving..."))
		} else {
			b.WriteString(common.StatusBarStyle.Render("  tab: switch field • ctrl+d: save • esc: cancel"))
		}
		if m.err != nil {
			b.WriteString("\n" + common.ErrorStyle.Render("  "+m.err.Error()))
		}
		return b.String()
	}

	if m.err != nil {
		b.WriteString(common.ErrorStyle.Render("  "+m.err.Error()) + "\n")
		b.WriteString(common.StatusBarStyle.Render("  r: retry • esc: back"))
		return b.String()
	}

	p := m.profile
	name := p.DisplayName
	if name == "" {
		name = p.Username
	}
	b.WriteString("  " + common.AuthorStyle.Render(name) +
		common.TimestampStyle.Render("  @"+p.Username) + "\n\n")
	if p.Bio != "" {
		b.WriteString("  " + common.ContentStyle.Render(p.Bio) + "\n\n")
	}
	b.WriteString("  " + common.MetaStyle.Render(fmt.Sprintf(
		"%d posts · %d followers · %d following",
		p.PostsCount, p.FollowersCount, p.FollowingCount)) + "\n")

	b.WriteString(common.StatusBarStyle.Render("  e: edit • r: refresh • esc: back"))
	return b.String()
}
