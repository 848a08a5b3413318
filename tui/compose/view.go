package compose

import (
	"fmt"
	"strings"

	"github.com/writersguild/quill/tui/common"
)

// View renders the compose view based on the active mode.
func (m Model) View() string {
	if m.err != nil {
		return common.ErrorStyle.Render("Error: "+m.err.Error()) + "\n"
	}

	switch m.mode {
	case editorMode:
		return m.status + "\n"

	case inlineMode:
		var b strings.Builder
		b.WriteString(common.AppTitleStyle.Render("✒ Quill"))
		switch {
		case m.targetID != "":
			b.WriteString("  New Comment\n\n")
		case m.isEdit:
			b.WriteString("  Edit Post\n\n")
		default:
			b.WriteString("  New Post\n\n")
		}
		b.WriteString(m.textarea.View())
		b.WriteString("\n\n")

		action := "publish"
		if m.targetID != "" {
			action = "comment"
		}
		b.WriteString(common.StatusBarStyle.Render(
			fmt.Sprintf("  ctrl+d: %s • esc: cancel • %d chars", action, len(m.textarea.Value())),
		))

		return b.String()
	}

	return ""
}
