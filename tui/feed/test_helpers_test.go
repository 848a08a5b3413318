package feed

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/writersguild/quill/app"
	"github.com/writersguild/quill/domain"
	"github.com/writersguild/quill/engage"
)

type stubTimeline struct {
	home     []domain.Post
	trending []domain.Post
	tagged   []domain.Post
	comments []domain.Comment
	err      error
}

func (s *stubTimeline) FetchHome(ctx context.Context, limit int) ([]domain.Post, error) {
	return s.home, s.err
}

func (s *stubTimeline) FetchTrending(ctx context.Context, limit int) ([]domain.Post, error) {
	return s.trending, s.err
}

func (s *stubTimeline) FetchByTag(ctx context.Context, tag string, limit int) ([]domain.Post, error) {
	return s.tagged, s.err
}

func (s *stubTimeline) FetchComments(ctx context.Context, postID string) ([]domain.Comment, error) {
	return s.comments, s.err
}

type stubAccount struct {
	followed   []string
	unfollowed []string
	followErr  error
}

func (s *stubAccount) CurrentAccountID(ctx context.Context) (string, error) { return "me", nil }

func (s *stubAccount) CurrentProfile(ctx context.Context) (app.Profile, error) {
	return app.Profile{ID: "me", Username: "me"}, nil
}

func (s *stubAccount) UpdateProfile(ctx context.Context, displayName, bio string) error {
	return nil
}

func (s *stubAccount) Follow(ctx context.Context, accountID string) error {
	s.followed = append(s.followed, accountID)
	return s.followErr
}

func (s *stubAccount) Unfollow(ctx context.Context, accountID string) error {
	s.unfollowed = append(s.unfollowed, accountID)
	return s.followErr
}

type stubRelations struct {
	rec   engage.Receipt
	err   error
	calls int
}

func (s *stubRelations) Activate(ctx context.Context, postID string, flag engage.Flag) (engage.Receipt, error) {
	s.calls++
	return s.rec, s.err
}

func (s *stubRelations) Deactivate(ctx context.Context, postID string, flag engage.Flag) (engage.Receipt, error) {
	s.calls++
	return s.rec, s.err
}

type stubSession bool

func (s stubSession) SignedIn() bool { return bool(s) }

func makePost(id string, own bool) domain.Post {
	return domain.Post{
		ID:         id,
		AuthorID:   "a-" + id,
		Author:     "Writer " + id,
		Username:   "writer" + id,
		Content:    "Content of " + id,
		CreatedAt:  time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
		URL:        "https://guild.example/posts/" + id,
		IsOwn:      own,
		LikesCount: 4,
	}
}

// newTestModel builds a feed model over a populated store and a controller
// backed by the given relation stub.
func newTestModel(t *testing.T, posts []domain.Post, rel *stubRelations, signedIn bool) (Model, *engage.Store, *stubAccount) {
	t.Helper()
	store := engage.NewStore()
	store.PutAll(posts)
	account := &stubAccount{}
	ctrl := engage.New(engage.Deps{
		Store:     store,
		Relations: rel,
		Session:   stubSession(signedIn),
		Cooldown:  time.Hour, // Effectively blocks re-toggles within a test
	})
	m := New(Deps{
		Timeline: &stubTimeline{},
		Account:  account,
		Engager:  ctrl,
		Store:    store,
	}, "home", "")
	items := make([]PostItem, len(posts))
	for i, p := range posts {
		items[i] = PostItem{ID: p.ID, Status: StatusNormal}
	}
	m.items = items
	m.loading = false
	return m, store, account
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// runCmd executes a command synchronously and returns its message.
func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	return cmd()
}
