package series

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/writersguild/quill/app"
	"github.com/writersguild/quill/domain"
)

type stubSeries struct {
	list     []domain.Series
	chapters []domain.Chapter
	err      error
}

func (s *stubSeries) ListByAuthor(ctx context.Context, authorID string) ([]domain.Series, error) {
	return s.list, s.err
}

func (s *stubSeries) Chapters(ctx context.Context, seriesID string) ([]domain.Chapter, error) {
	return s.chapters, s.err
}

type stubAccount struct{}

func (stubAccount) CurrentAccountID(ctx context.Context) (string, error) { return "me", nil }
func (stubAccount) CurrentProfile(ctx context.Context) (app.Profile, error) {
	return app.Profile{ID: "me"}, nil
}
func (stubAccount) UpdateProfile(ctx context.Context, displayName, bio string) error { return nil }
func (stubAccount) Follow(ctx context.Context, accountID string) error               { return nil }
func (stubAccount) Unfollow(ctx context.Context, accountID string) error             { return nil }

func TestListLoaded_ThenEnterFetchesChapters(t *testing.T) {
	svc := &stubSeries{
		list:     []domain.Series{{ID: "s1", Title: "Nightfall", ChaptersCount: 2}},
		chapters: []domain.Chapter{{ID: "ch1", SeriesID: "s1", Number: 1, Title: "One"}},
	}
	m := New(svc, stubAccount{})

	msg := m.fetchList()()
	loaded, ok := msg.(ListLoadedMsg)
	if !ok || len(loaded.Series) != 1 {
		t.Fatalf("unexpected list message: %#v", msg)
	}
	m, _ = m.Update(loaded)
	if m.loading || len(m.list) != 1 {
		t.Fatalf("list should be loaded, got %#v", m.list)
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.level != levelChapters || cmd == nil {
		t.Fatal("enter should descend into chapters")
	}
	m, _ = m.Update(cmd().(ChaptersLoadedMsg))
	if len(m.chapters) != 1 {
		t.Fatalf("chapters should be loaded, got %#v", m.chapters)
	}
}

func TestChaptersLoaded_ForOtherSeriesIgnored(t *testing.T) {
	svc := &stubSeries{list: []domain.Series{{ID: "s1"}, {ID: "s2"}}}
	m := New(svc, stubAccount{})
	m, _ = m.Update(ListLoadedMsg{Series: svc.list})
	m.level = levelChapters
	m.cursor = 1 // s2 selected

	m, _ = m.Update(ChaptersLoadedMsg{SeriesID: "s1", Chapters: []domain.Chapter{{ID: "ch1"}}})
	if len(m.chapters) != 0 {
		t.Fatal("chapters for a series we navigated away from should be dropped")
	}
}

func TestListError_Surfaces(t *testing.T) {
	svc := &stubSeries{err: errors.New("boom")}
	m := New(svc, stubAccount{})

	msg := m.fetchList()().(ListLoadedMsg)
	m, _ = m.Update(msg)
	if m.err == nil || m.loading {
		t.Fatal("list error should surface")
	}
}

func TestEscFromList_EmitsBack(t *testing.T) {
	m := New(&stubSeries{}, stubAccount{})
	m.loading = false

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected a back command")
	}
	if _, ok := cmd().(BackMsg); !ok {
		t.Fatalf("expected BackMsg, got %T", cmd())
	}
}
