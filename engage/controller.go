package engage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/writersguild/quill/domain"
)

// DefaultCooldown is how long after settlement a (post, flag) pair refuses
// new toggles, absorbing rapid repeated clicks.
const DefaultCooldown = 400 * time.Millisecond

// RelationClient performs the two network calls behind a toggle. Activate
// creates the relation (like/bookmark/repost), Deactivate deletes it. Both
// are idempotent on the server and may return an authoritative Receipt.
type RelationClient interface {
	Activate(ctx context.Context, postID string, flag Flag) (Receipt, error)
	Deactivate(ctx context.Context, postID string, flag Flag) (Receipt, error)
}

// Session answers whether an authenticated user is present.
type Session interface {
	SignedIn() bool
}

// Notifier surfaces toggle outcomes to the user.
type Notifier interface {
	Success(title, body string)
	Error(title, body string)
}

// FeedInvalidator marks an aggregate feed stale after a settled toggle.
// Best-effort; the target post's own state never depends on it.
type FeedInvalidator interface {
	Invalidate(feed string)
}

// Intent is one in-flight toggle: which flag on which post, the direction,
// and the snapshot needed for an exact rollback. It is owned by the session
// that created it and lives only for a single round-trip.
type Intent struct {
	PostID string
	Flag   Flag
	TurnOn bool

	prevActive bool
	prevCount  int
}

// Outcome reports how an intent settled.
type Outcome struct {
	Intent     Intent
	Confirmed  bool // Server accepted; store reflects confirmed state
	Reverted   bool // Call failed; store restored to the pre-toggle snapshot
	TargetGone bool // Post vanished before settlement; store untouched
	Post       domain.Post
	Err        error
}

// Deps wires a Controller. Store, Relations, and Session are required;
// Notify, Feeds, and Logger are optional, and Cooldown defaults to
// DefaultCooldown.
type Deps struct {
	Store     *Store
	Relations RelationClient
	Session   Session
	Notify    Notifier
	Feeds     FeedInvalidator
	Logger    *zap.Logger
	Cooldown  time.Duration
}

type pendingKey struct {
	postID string
	flag   Flag
}

// Controller governs optimistic engagement toggles: apply the new state to
// the store immediately, issue one network call, and reconcile. At most one
// toggle per (post, flag) pair is outstanding at a time; different pairs are
// fully independent.
type Controller struct {
	store     *Store
	relations RelationClient
	session   Session
	notify    Notifier
	feeds     FeedInvalidator
	log       *zap.Logger
	cooldown  time.Duration

	mu      sync.Mutex
	pending map[pendingKey]struct{}
	settled map[pendingKey]*rate.Limiter
}

// New creates a Controller.
func New(deps Deps) *Controller {
	if deps.Notify == nil {
		deps.Notify = nopNotifier{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Cooldown <= 0 {
		deps.Cooldown = DefaultCooldown
	}
	return &Controller{
		store:     deps.Store,
		relations: deps.Relations,
		session:   deps.Session,
		notify:    deps.Notify,
		feeds:     deps.Feeds,
		log:       deps.Logger,
		cooldown:  deps.Cooldown,
		pending:   make(map[pendingKey]struct{}),
		settled:   make(map[pendingKey]*rate.Limiter),
	}
}

// Begin checks the guards and applies the optimistic half of a toggle:
// snapshot the flag and its counter, flip the flag, adjust the counter by
// one. The returned Intent must be handed to Finish exactly once.
//
// Errors: domain.ErrSignInRequired when no user is signed in (nothing is
// mutated), domain.ErrToggleInFlight when the pair is pending or cooling
// down (the attempt is suppressed, not queued), domain.ErrUnknownPost when
// the post is not in the store.
func (c *Controller) Begin(postID string, flag Flag) (Intent, error) {
	if c.session == nil || !c.session.SignedIn() {
		c.notify.Error("Sign in required", "Log in to "+string(flag)+" posts.")
		return Intent{}, domain.ErrSignInRequired
	}

	key := pendingKey{postID: postID, flag: flag}
	c.mu.Lock()
	if _, busy := c.pending[key]; busy {
		c.mu.Unlock()
		return Intent{}, domain.ErrToggleInFlight
	}
	if lim := c.settled[key]; lim != nil && !lim.Allow() {
		c.mu.Unlock()
		return Intent{}, domain.ErrToggleInFlight
	}
	c.pending[key] = struct{}{}
	c.mu.Unlock()

	var in Intent
	_, ok := c.store.Apply(postID, func(p *domain.Post) {
		active, count := FlagState(*p, flag)
		in = Intent{
			PostID:     postID,
			Flag:       flag,
			TurnOn:     !active,
			prevActive: active,
			prevCount:  count,
		}
		next := count
		if flag.HasCounter() {
			if in.TurnOn {
				next = count + 1
			} else {
				next = count - 1
			}
		}
		SetFlagState(p, flag, !active, next)
	})
	if !ok {
		c.clearPending(key, false)
		return Intent{}, fmt.Errorf("%w: %s", domain.ErrUnknownPost, postID)
	}

	c.log.Debug("optimistic toggle applied",
		zap.String("post", postID),
		zap.String("flag", string(flag)),
		zap.Bool("on", in.TurnOn))
	return in, nil
}

// Finish issues the network call for an intent and settles it. Safe to call
// from any goroutine.
func (c *Controller) Finish(ctx context.Context, in Intent) Outcome {
	var (
		rec Receipt
		err error
	)
	if in.TurnOn {
		rec, err = c.relations.Activate(ctx, in.PostID, in.Flag)
	} else {
		rec, err = c.relations.Deactivate(ctx, in.PostID, in.Flag)
	}
	return c.settle(in, rec, err)
}

// Toggle runs a full toggle round-trip: Begin plus Finish. Intended for
// headless use and tests; interactive callers usually Begin on the event
// loop and Finish on a background goroutine.
func (c *Controller) Toggle(ctx context.Context, postID string, flag Flag) (Outcome, error) {
	in, err := c.Begin(postID, flag)
	if err != nil {
		return Outcome{}, err
	}
	return c.Finish(ctx, in), nil
}

func (c *Controller) settle(in Intent, rec Receipt, callErr error) Outcome {
	key := pendingKey{postID: in.PostID, flag: in.Flag}
	defer c.clearPending(key, true)

	if callErr != nil {
		// Restore the snapshot exactly. The post may have been deleted while
		// the call was in flight; Apply no-ops then.
		post, ok := c.store.Apply(in.PostID, func(p *domain.Post) {
			SetFlagState(p, in.Flag, in.prevActive, in.prevCount)
		})
		c.notify.Error(in.Flag.failTitle(), "Please try again.")
		c.log.Warn("toggle reverted",
			zap.String("post", in.PostID),
			zap.String("flag", string(in.Flag)),
			zap.Error(callErr))
		return Outcome{Intent: in, Reverted: true, TargetGone: !ok, Post: post, Err: callErr}
	}

	post, ok := c.store.Apply(in.PostID, func(p *domain.Post) {
		active := in.TurnOn
		_, count := FlagState(*p, in.Flag)
		if rec.HasState {
			active = rec.Active
			if active != in.TurnOn {
				// The relation already was in the server's state (another
				// session got there first); our ±1 assumed a transition that
				// never happened, so undo it before adopting server counts.
				count = in.prevCount
			}
		}
		if rec.HasCount {
			count = rec.Count
		}
		SetFlagState(p, in.Flag, active, count)
	})
	if ok {
		final := in.TurnOn
		if rec.HasState {
			final = rec.Active
		}
		if final {
			c.notify.Success(in.Flag.onTitle(), "")
		} else {
			c.notify.Success(in.Flag.offTitle(), "")
		}
	}
	if c.feeds != nil {
		c.feeds.Invalidate("trending")
	}
	c.log.Debug("toggle confirmed",
		zap.String("post", in.PostID),
		zap.String("flag", string(in.Flag)),
		zap.Bool("target_gone", !ok))
	return Outcome{Intent: in, Confirmed: true, TargetGone: !ok, Post: post}
}

// clearPending releases the guard for a pair and, when arm is set, starts
// its settle cooldown.
func (c *Controller) clearPending(key pendingKey, arm bool) {
	c.mu.Lock()
	delete(c.pending, key)
	if arm {
		lim := rate.NewLimiter(rate.Every(c.cooldown), 1)
		lim.Allow() // Consume the initial token; refills after the cooldown.
		c.settled[key] = lim
	}
	c.mu.Unlock()
}

type nopNotifier struct{}

func (nopNotifier) Success(string, string) {}
func (nopNotifier) Error(string, string)   {}
