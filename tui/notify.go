package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// ToastMsg is a transient notification shown in the status bar.
type ToastMsg struct {
	Title   string
	Body    string
	IsError bool
}

// FeedInvalidatedMsg marks an aggregate feed as stale. The feed view decides
// whether a refetch is warranted.
type FeedInvalidatedMsg struct {
	Feed string
}

// Bridge forwards engagement notifications into the Bubble Tea event loop.
// Settlement runs on network goroutines, so messages must go through
// Program.Send rather than being returned from Update. The program is
// attached after construction because the bridge is a dependency of the
// model the program is built from.
type Bridge struct {
	mu      sync.Mutex
	program *tea.Program
}

// NewBridge creates a bridge with no program attached. Calls before Attach
// are dropped.
func NewBridge() *Bridge {
	return &Bridge{}
}

// Attach connects the bridge to a running program.
func (b *Bridge) Attach(p *tea.Program) {
	b.mu.Lock()
	b.program = p
	b.mu.Unlock()
}

// Success implements engage.Notifier.
func (b *Bridge) Success(title, body string) {
	b.send(ToastMsg{Title: title, Body: body})
}

// Error implements engage.Notifier.
func (b *Bridge) Error(title, body string) {
	b.send(ToastMsg{Title: title, Body: body, IsError: true})
}

// Invalidate implements engage.FeedInvalidator.
func (b *Bridge) Invalidate(feed string) {
	b.send(FeedInvalidatedMsg{Feed: feed})
}

func (b *Bridge) send(msg tea.Msg) {
	b.mu.Lock()
	p := b.program
	b.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}
