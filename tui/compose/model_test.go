package compose

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeString(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestInline_CtrlDFinishesWithContent(t *testing.T) {
	m := NewInline()
	m = typeString(t, m, "A short scene.")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	if cmd == nil {
		t.Fatal("expected a done command")
	}
	msg, ok := cmd().(DoneMsg)
	if !ok {
		t.Fatalf("expected DoneMsg, got %T", cmd())
	}
	if msg.Content != "A short scene." || msg.IsEdit || msg.TargetPostID != "" {
		t.Fatalf("unexpected done message: %#v", msg)
	}
}

func TestInline_EscCancels(t *testing.T) {
	m := NewInline()
	m = typeString(t, m, "Draft")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	msg := cmd().(DoneMsg)
	if msg.Content != "" || msg.Err != nil {
		t.Fatalf("cancel should carry no content, got %#v", msg)
	}
}

func TestInlineEdit_UnchangedContentCancels(t *testing.T) {
	m := NewInlineWithContent("p1", "Same text")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	msg := cmd().(DoneMsg)
	if msg.Content != "" || !msg.IsEdit || msg.PostID != "p1" {
		t.Fatalf("no-op edit should cancel, got %#v", msg)
	}
}

func TestComment_CarriesTargetPost(t *testing.T) {
	m := NewComment("p7")
	m = typeString(t, m, "Loved this.")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	msg := cmd().(DoneMsg)
	if msg.TargetPostID != "p7" || msg.Content != "Loved this." {
		t.Fatalf("unexpected comment done message: %#v", msg)
	}
}
