package common

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines shared key bindings across all views.
type KeyMap struct {
	Quit        key.Binding
	Refresh     key.Binding
	Write       key.Binding // w — compose via $EDITOR
	WriteInline key.Binding // W — compose via inline textarea
	Edit        key.Binding // e — edit own post (buffer)
	EditInline  key.Binding // E — edit own post (inline)
	Delete      key.Binding // d — delete own post
	Like        key.Binding // l
	Bookmark    key.Binding // b
	Repost      key.Binding // p
	Comment     key.Binding // c
	Follow      key.Binding // f — follow/unfollow author
	Open        key.Binding // o — open in browser
	Search      key.Binding // / — tag search
	Home        key.Binding // 1
	Explore     key.Binding // 2
	Series      key.Binding // s
	Profile     key.Binding // u
	Up          key.Binding
	Down        key.Binding
	Enter       key.Binding
	Back        key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Write: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "write ($EDITOR)"),
		),
		WriteInline: key.NewBinding(
			key.WithKeys("W"),
			key.WithHelp("W", "write (inline)"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit (buffer)"),
		),
		EditInline: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "edit (inline)"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Like: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "like"),
		),
		Bookmark: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "bookmark"),
		),
		Repost: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "repost"),
		),
		Comment: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "comment"),
		),
		Follow: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "follow"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "tag search"),
		),
		Home: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "home"),
		),
		Explore: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "explore"),
		),
		Series: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "series"),
		),
		Profile: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "profile"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}
