package engage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/writersguild/quill/domain"
)

type fakeRelations struct {
	activates   int
	deactivates int
	rec         Receipt
	err         error
}

func (f *fakeRelations) Activate(_ context.Context, _ string, _ Flag) (Receipt, error) {
	f.activates++
	return f.rec, f.err
}

func (f *fakeRelations) Deactivate(_ context.Context, _ string, _ Flag) (Receipt, error) {
	f.deactivates++
	return f.rec, f.err
}

type stubSession struct{ ok bool }

func (s stubSession) SignedIn() bool { return s.ok }

type recordNotifier struct {
	successes []string
	errors    []string
}

func (n *recordNotifier) Success(title, _ string) { n.successes = append(n.successes, title) }
func (n *recordNotifier) Error(title, _ string)   { n.errors = append(n.errors, title) }

type recordInvalidator struct{ feeds []string }

func (r *recordInvalidator) Invalidate(feed string) { r.feeds = append(r.feeds, feed) }

func newTestController(rel *fakeRelations, notify *recordNotifier) (*Controller, *Store) {
	store := NewStore()
	c := New(Deps{
		Store:     store,
		Relations: rel,
		Session:   stubSession{ok: true},
		Notify:    notify,
		Cooldown:  10 * time.Millisecond,
	})
	return c, store
}

func TestToggle_BookmarkConfirmedWithToast(t *testing.T) {
	rel := &fakeRelations{rec: Receipt{HasState: true, Active: true}}
	notify := &recordNotifier{}
	c, store := newTestController(rel, notify)
	store.Put(domain.Post{ID: "p1"})

	out, err := c.Toggle(context.Background(), "p1", FlagBookmark)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !out.Confirmed || out.Reverted {
		t.Fatalf("expected confirmed outcome, got %#v", out)
	}
	p, _ := store.Get("p1")
	if !p.Bookmarked {
		t.Fatalf("expected bookmarked post, got %#v", p)
	}
	if len(notify.successes) != 1 || notify.successes[0] != "Bookmarked!" {
		t.Fatalf("expected Bookmarked! toast, got %#v", notify.successes)
	}
}

func TestToggle_RollbackIsExact(t *testing.T) {
	rel := &fakeRelations{err: errors.New("boom")}
	notify := &recordNotifier{}
	c, store := newTestController(rel, notify)
	original := domain.Post{ID: "p1", Author: "Ada", Liked: false, LikesCount: 10}
	store.Put(original)

	out, err := c.Toggle(context.Background(), "p1", FlagLike)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !out.Reverted || out.Confirmed {
		t.Fatalf("expected reverted outcome, got %#v", out)
	}
	p, _ := store.Get("p1")
	if diff := cmp.Diff(original, p); diff != "" {
		t.Fatalf("rollback not exact (-want +got):\n%s", diff)
	}
	if len(notify.errors) != 1 {
		t.Fatalf("expected one error toast, got %#v", notify.errors)
	}
}

func TestToggle_LikeFailureScenario(t *testing.T) {
	// spec scenario: {liked:false, likesCount:4} -> click -> {true, 5} ->
	// server failure -> {false, 4} plus an error toast.
	rel := &fakeRelations{err: errors.New("503")}
	notify := &recordNotifier{}
	c, store := newTestController(rel, notify)
	store.Put(domain.Post{ID: "p1", LikesCount: 4})

	in, err := c.Begin("p1", FlagLike)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	p, _ := store.Get("p1")
	if !p.Liked || p.LikesCount != 5 {
		t.Fatalf("optimistic state wrong: %#v", p)
	}

	c.Finish(context.Background(), in)
	p, _ = store.Get("p1")
	if p.Liked || p.LikesCount != 4 {
		t.Fatalf("rollback state wrong: %#v", p)
	}
	if len(notify.errors) != 1 {
		t.Fatalf("expected error toast, got %#v", notify.errors)
	}
}

func TestBegin_RequiresSignIn(t *testing.T) {
	rel := &fakeRelations{}
	notify := &recordNotifier{}
	store := NewStore()
	c := New(Deps{Store: store, Relations: rel, Session: stubSession{ok: false}, Notify: notify})
	store.Put(domain.Post{ID: "p1", LikesCount: 3})

	_, err := c.Begin("p1", FlagLike)
	if !errors.Is(err, domain.ErrSignInRequired) {
		t.Fatalf("expected ErrSignInRequired, got %v", err)
	}
	p, _ := store.Get("p1")
	if p.Liked || p.LikesCount != 3 {
		t.Fatalf("signed-out begin must not mutate: %#v", p)
	}
	if rel.activates != 0 || rel.deactivates != 0 {
		t.Fatalf("signed-out begin must not hit the network")
	}
	if len(notify.errors) != 1 {
		t.Fatalf("expected sign-in toast, got %#v", notify.errors)
	}
}

func TestBegin_SuppressesDuplicateWhilePending(t *testing.T) {
	rel := &fakeRelations{rec: Receipt{HasState: true, Active: true, HasCount: true, Count: 1}}
	c, store := newTestController(rel, &recordNotifier{})
	store.Put(domain.Post{ID: "p1"})

	in, err := c.Begin("p1", FlagLike)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := c.Begin("p1", FlagLike); !errors.Is(err, domain.ErrToggleInFlight) {
		t.Fatalf("second begin should be suppressed, got %v", err)
	}
	// A different flag on the same post is independent.
	if _, err := c.Begin("p1", FlagBookmark); err != nil {
		t.Fatalf("independent flag should not be suppressed: %v", err)
	}

	c.Finish(context.Background(), in)
	if rel.activates != 2 { // one like, one bookmark
		t.Fatalf("expected 2 activate calls, got %d", rel.activates)
	}
	p, _ := store.Get("p1")
	if p.LikesCount != 1 {
		t.Fatalf("duplicate begin double-counted: %#v", p)
	}
}

func TestBegin_CooldownAfterSettlement(t *testing.T) {
	rel := &fakeRelations{rec: Receipt{HasState: true, Active: true}}
	c, store := newTestController(rel, &recordNotifier{})
	store.Put(domain.Post{ID: "p1"})

	if _, err := c.Toggle(context.Background(), "p1", FlagBookmark); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := c.Begin("p1", FlagBookmark); !errors.Is(err, domain.ErrToggleInFlight) {
		t.Fatalf("begin inside cooldown should be suppressed, got %v", err)
	}

	time.Sleep(25 * time.Millisecond)
	if _, err := c.Begin("p1", FlagBookmark); err != nil {
		t.Fatalf("begin after cooldown should pass, got %v", err)
	}
}

func TestFinish_AdoptsAuthoritativeCount(t *testing.T) {
	// Another client reposted concurrently: server confirms reposted=true
	// with a count two above our snapshot. The displayed count must be the
	// server's, not our local +1 guess.
	rel := &fakeRelations{rec: Receipt{HasState: true, Active: true, HasCount: true, Count: 7}}
	c, store := newTestController(rel, &recordNotifier{})
	store.Put(domain.Post{ID: "p1", RepostsCount: 5})

	out, err := c.Toggle(context.Background(), "p1", FlagRepost)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !out.Confirmed {
		t.Fatalf("expected confirmed outcome: %#v", out)
	}
	p, _ := store.Get("p1")
	if !p.Reposted || p.RepostsCount != 7 {
		t.Fatalf("authoritative count not adopted: %#v", p)
	}
}

func TestFinish_AuthoritativeStateOverridesGuess(t *testing.T) {
	// We guessed off->on but the relation already existed from another
	// session and the server reports it now off (their toggle raced ours).
	// Adopt the server value and undo our counter guess.
	rel := &fakeRelations{rec: Receipt{HasState: true, Active: false}}
	c, store := newTestController(rel, &recordNotifier{})
	store.Put(domain.Post{ID: "p1", Liked: false, LikesCount: 4})

	out, err := c.Toggle(context.Background(), "p1", FlagLike)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !out.Confirmed {
		t.Fatalf("expected confirmed outcome: %#v", out)
	}
	p, _ := store.Get("p1")
	if p.Liked || p.LikesCount != 4 {
		t.Fatalf("server state not adopted verbatim: %#v", p)
	}
}

func TestToggle_OnThenOffReturnsCounter(t *testing.T) {
	rel := &fakeRelations{}
	c, store := newTestController(rel, &recordNotifier{})
	store.Put(domain.Post{ID: "p1", LikesCount: 9})

	if _, err := c.Toggle(context.Background(), "p1", FlagLike); err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	time.Sleep(25 * time.Millisecond) // Let the cooldown lapse.
	if _, err := c.Toggle(context.Background(), "p1", FlagLike); err != nil {
		t.Fatalf("toggle off: %v", err)
	}

	p, _ := store.Get("p1")
	if p.Liked || p.LikesCount != 9 {
		t.Fatalf("counter drifted after on/off: %#v", p)
	}
	if rel.activates != 1 || rel.deactivates != 1 {
		t.Fatalf("expected one activate and one deactivate, got %d/%d", rel.activates, rel.deactivates)
	}
}

func TestFinish_TargetGoneIsNoop(t *testing.T) {
	rel := &fakeRelations{err: errors.New("410 gone")}
	c, store := newTestController(rel, &recordNotifier{})
	store.Put(domain.Post{ID: "p1"})

	in, err := c.Begin("p1", FlagLike)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	store.Remove("p1") // Deleted server-side while the call is in flight.

	out := c.Finish(context.Background(), in)
	if !out.TargetGone {
		t.Fatalf("expected TargetGone outcome, got %#v", out)
	}
	if _, ok := store.Get("p1"); ok {
		t.Fatalf("settle must not resurrect a removed post")
	}
}

func TestBegin_UnknownPost(t *testing.T) {
	rel := &fakeRelations{}
	c, _ := newTestController(rel, &recordNotifier{})

	_, err := c.Begin("missing", FlagLike)
	if !errors.Is(err, domain.ErrUnknownPost) {
		t.Fatalf("expected ErrUnknownPost, got %v", err)
	}
	// The guard must not stay latched after a failed begin.
	if _, err := c.Begin("missing", FlagLike); !errors.Is(err, domain.ErrUnknownPost) {
		t.Fatalf("expected ErrUnknownPost again, got %v", err)
	}
}

func TestToggle_BookmarkHasNoCounter(t *testing.T) {
	rel := &fakeRelations{}
	c, store := newTestController(rel, &recordNotifier{})
	store.Put(domain.Post{ID: "p1", LikesCount: 3, RepostsCount: 2})

	if _, err := c.Toggle(context.Background(), "p1", FlagBookmark); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	p, _ := store.Get("p1")
	if !p.Bookmarked || p.LikesCount != 3 || p.RepostsCount != 2 {
		t.Fatalf("bookmark toggle touched counters: %#v", p)
	}
}

func TestFinish_InvalidatesTrendingFeed(t *testing.T) {
	rel := &fakeRelations{}
	store := NewStore()
	feeds := &recordInvalidator{}
	c := New(Deps{
		Store:     store,
		Relations: rel,
		Session:   stubSession{ok: true},
		Feeds:     feeds,
	})
	store.Put(domain.Post{ID: "p1"})

	if _, err := c.Toggle(context.Background(), "p1", FlagLike); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if len(feeds.feeds) != 1 || feeds.feeds[0] != "trending" {
		t.Fatalf("expected trending invalidation, got %#v", feeds.feeds)
	}
}
