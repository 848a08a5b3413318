package feed

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/writersguild/quill/app"
	"github.com/writersguild/quill/domain"
	"github.com/writersguild/quill/engage"
	"github.com/writersguild/quill/tui/common"
)

const defaultLimit = 20

// PostsLoadedMsg is sent when a feed fetch completes successfully.
type PostsLoadedMsg struct {
	Posts    []domain.Post
	QueryKey string
	ReqSeq   int
}

// PostsErrorMsg is sent when a feed fetch fails.
type PostsErrorMsg struct {
	Err      error
	QueryKey string
	ReqSeq   int
}

// CommentsLoadedMsg is sent when a post's comments arrive.
type CommentsLoadedMsg struct {
	PostID   string
	Comments []domain.Comment
}

// CommentsErrorMsg is sent when a comment fetch fails.
type CommentsErrorMsg struct {
	PostID string
	Err    error
}

// ToggleSettledMsg is sent after an engagement toggle round-trip finishes.
// The shared store already reflects the settled state; the message exists so
// the view re-renders and tests can observe settlement.
type ToggleSettledMsg struct {
	Outcome engage.Outcome
}

// EditPostMsg asks the root model to open the compose view for an edit.
type EditPostMsg struct {
	Post      domain.Post
	UseInline bool
}

// ReplyPostMsg asks the root model to open the compose view for a comment.
type ReplyPostMsg struct {
	Post domain.Post
}

// DeletePostMsg asks the root model to delete a post. The feed applies the
// optimistic removal before the network call is issued.
type DeletePostMsg struct {
	ID string
}

// FollowToggleResultMsg is sent after a follow/unfollow attempt.
type FollowToggleResultMsg struct {
	AccountID string
	Username  string
	Follow    bool
	Err       error
}

// RefreshFeedMsg marks a named aggregate feed stale; the feed refetches
// silently when it is currently showing that feed.
type RefreshFeedMsg struct {
	Feed string
}

// FeedPrefsChangedMsg reports a source or tag change so the root model can
// persist it.
type FeedPrefsChangedMsg struct {
	Source string
	Tag    string
}

// ResetFeedStateMsg clears transient input state after returning from
// another view.
type ResetFeedStateMsg struct{}

// --- Optimistic create/update/delete ---

// AddOptimisticPostMsg inserts a locally created post at the top of the feed
// while the publish call is in flight.
type AddOptimisticPostMsg struct {
	Post domain.Post
}

// UpdateOptimisticPostMsg applies an edit locally while the call is in flight.
type UpdateOptimisticPostMsg struct {
	ID      string
	Title   string
	Content string
}

// DeleteOptimisticPostMsg removes a post locally while the call is in flight.
type DeleteOptimisticPostMsg struct {
	ID string
}

// PublishResultMsg reports the outcome of a publish or edit call.
type PublishResultMsg struct {
	LocalID string // The optimistic ID (create) or post ID (edit)
	Post    domain.Post
	IsEdit  bool
	Err     error
}

// DeleteResultMsg reports the outcome of a delete call.
type DeleteResultMsg struct {
	ID  string
	Err error
}

// AddOptimisticCommentMsg appends a locally created comment to the open
// detail view while the call is in flight.
type AddOptimisticCommentMsg struct {
	Comment domain.Comment
}

// CommentResultMsg reports the outcome of a comment call.
type CommentResultMsg struct {
	PostID  string
	LocalID string
	Comment domain.Comment
	Err     error
}

// PostStatus tracks an item's position in the optimistic lifecycle.
type PostStatus int

const (
	StatusNormal PostStatus = iota
	StatusPendingCreate
	StatusPendingUpdate
	StatusFailed
)

// PostItem is one feed entry. Post data lives in the shared engage.Store;
// the item carries only ordering and lifecycle state, plus the snapshot
// needed to roll an edit back.
type PostItem struct {
	ID          string
	Status      PostStatus
	Err         error
	PrevTitle   string
	PrevContent string
}

type pendingDelete struct {
	post  domain.Post
	index int
}

type feedSource int

const (
	sourceHome feedSource = iota
	sourceTrending
	sourceTag
)

// --- Model ---

// Deps holds the services the feed needs.
type Deps struct {
	Timeline app.TimelineService
	Account  app.AccountService
	Engager  *engage.Controller
	Store    *engage.Store
}

type modelServices struct {
	timeline app.TimelineService
	account  app.AccountService
	engager  *engage.Controller
	store    *engage.Store
}

type feedState struct {
	source         feedSource
	tag            string
	items          []PostItem
	cursor         int
	loading        bool
	err            error
	reqSeq         int
	pendingDeletes map[string]pendingDelete
}

type uiState struct {
	keys          common.KeyMap
	spinner       spinner.Model
	width         int
	height        int
	start         int // First visible item in the list
	confirmDelete bool
}

type detailState struct {
	showDetail      bool
	detailID        string
	comments        []domain.Comment
	loadingComments bool
	commentsErr     error
	detailScroll    int
	renderCache     map[string]string
	renderWidth     int
}

type followState struct {
	followingByID map[string]bool
	followPending map[string]bool
}

type tagState struct {
	tagInput  bool
	tagBuffer string
}

// Model holds the state for the feed view.
type Model struct {
	modelServices
	feedState
	uiState
	detailState
	followState
	tagState
}

// New creates a feed model with injected dependencies. initialSource and tag
// come from persisted UI state and may be empty.
func New(deps Deps, initialSource, tag string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#C6A0F6"))

	tag = strings.TrimSpace(strings.TrimPrefix(tag, "#"))
	source := parseFeedSource(initialSource)
	if source == sourceTag && tag == "" {
		source = sourceHome
	}

	return Model{
		modelServices: modelServices{
			timeline: deps.Timeline,
			account:  deps.Account,
			engager:  deps.Engager,
			store:    deps.Store,
		},
		feedState: feedState{
			source:         source,
			tag:            tag,
			loading:        true,
			pendingDeletes: make(map[string]pendingDelete),
		},
		uiState: uiState{
			keys:    common.DefaultKeyMap(),
			spinner: s,
		},
		detailState: detailState{
			renderCache: make(map[string]string),
		},
		followState: followState{
			followingByID: make(map[string]bool),
			followPending: make(map[string]bool),
		},
	}
}

// Init starts the initial feed fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchPosts(m.reqSeq),
		m.spinner.Tick,
	)
}

// Update handles messages for the feed view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m.update(msg)
}

func parseFeedSource(s string) feedSource {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trending":
		return sourceTrending
	case "tag":
		return sourceTag
	default:
		return sourceHome
	}
}

func (m Model) sourceKey() string {
	switch m.source {
	case sourceTrending:
		return "trending"
	case sourceTag:
		return "tag"
	default:
		return "home"
	}
}

func (m Model) sourceLabel() string {
	switch m.source {
	case sourceTrending:
		return "Explore"
	case sourceTag:
		return "#" + m.tag
	default:
		return "Home"
	}
}

func (m Model) queryKey() string {
	switch m.source {
	case sourceTag:
		return "tag:" + m.tag
	default:
		return m.sourceKey()
	}
}
