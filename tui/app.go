package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/writersguild/quill/app"
	"github.com/writersguild/quill/domain"
	"github.com/writersguild/quill/engage"
	"github.com/writersguild/quill/infra/editor"
	"github.com/writersguild/quill/tui/common"
	"github.com/writersguild/quill/tui/compose"
	"github.com/writersguild/quill/tui/feed"
	"github.com/writersguild/quill/tui/profile"
	"github.com/writersguild/quill/tui/series"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Timeline app.TimelineService
	Post     app.PostService
	Account  app.AccountService
	Series   app.SeriesService
	Editor   *editor.EnvEditor
	Engager  *engage.Controller
	Store    *engage.Store
	SignedIn func() bool
	Logger   *zap.Logger

	// Persisted UI state.
	FeedSource string
	Tag        string
	SaveState  func(source, tag string) error
}

type activeView int

const (
	feedView activeView = iota
	composeView
	seriesView
	profileView
)

type prefsSavedMsg struct {
	Err error
}

// App is the root Bubble Tea model. It routes between sub-views and owns the
// status bar.
type App struct {
	deps    Deps
	active  activeView
	feed    feed.Model
	compose compose.Model
	series  series.Model
	profile profile.Model
	keys    common.KeyMap
	log     *zap.Logger

	status      string
	statusIsErr bool
	width       int
	height      int
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return App{
		deps:   deps,
		active: feedView,
		feed: feed.New(feed.Deps{
			Timeline: deps.Timeline,
			Account:  deps.Account,
			Engager:  deps.Engager,
			Store:    deps.Store,
		}, deps.FeedSource, deps.Tag),
		keys: common.DefaultKeyMap(),
		log:  deps.Logger,
	}
}

// Init delegates to the feed.
func (a App) Init() tea.Cmd {
	return a.feed.Init()
}

// Update handles messages and routes to the active sub-model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		var cmds []tea.Cmd
		var cmd tea.Cmd
		a.feed, cmd = a.feed.Update(msg)
		cmds = append(cmds, cmd)
		a.series, cmd = a.series.Update(msg)
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)

	case tea.KeyMsg:
		if model, cmd, handled := a.handleGlobalKey(msg); handled {
			return model, cmd
		}

	case ToastMsg:
		a.status = msg.Title
		if msg.Body != "" {
			a.status += " " + msg.Body
		}
		a.statusIsErr = msg.IsError
		return a, nil

	case FeedInvalidatedMsg:
		var cmd tea.Cmd
		a.feed, cmd = a.feed.Update(feed.RefreshFeedMsg{Feed: msg.Feed})
		return a, cmd

	case spinner.TickMsg:
		return a.routeToActive(msg)

	case feed.EditPostMsg:
		return a.openEdit(msg)

	case feed.ReplyPostMsg:
		a.active = composeView
		a.status = ""
		a.compose = compose.NewComment(msg.Post.ID)
		return a, a.compose.Init()

	case feed.DeletePostMsg:
		// Optimistic removal, then the network call.
		a.feed, _ = a.feed.Update(feed.DeleteOptimisticPostMsg{ID: msg.ID})
		a.setStatus("Deleting...", false)
		return a, a.deletePost(msg.ID)

	case feed.DeleteResultMsg:
		a.feed, _ = a.feed.Update(msg)
		if msg.Err != nil {
			a.setStatus("Couldn't delete: "+msg.Err.Error(), true)
		} else {
			a.setStatus("Post deleted.", false)
		}
		return a, nil

	case feed.PublishResultMsg:
		a.feed, _ = a.feed.Update(msg)
		switch {
		case msg.Err != nil:
			a.setStatus("Error: "+msg.Err.Error(), true)
		case msg.IsEdit:
			a.setStatus("✒ Post updated!", false)
		default:
			a.setStatus("✒ Post published!", false)
		}
		return a, nil

	case feed.CommentResultMsg:
		a.feed, _ = a.feed.Update(msg)
		if msg.Err != nil {
			a.setStatus("Couldn't comment: "+msg.Err.Error(), true)
		} else {
			a.setStatus("Comment posted.", false)
		}
		return a, nil

	case feed.FollowToggleResultMsg:
		a.feed, _ = a.feed.Update(msg)
		switch {
		case msg.Err != nil:
			a.setStatus("Couldn't update follow: "+msg.Err.Error(), true)
		case msg.Follow:
			a.setStatus("Following @"+msg.Username+".", false)
		default:
			a.setStatus("Unfollowed @"+msg.Username+".", false)
		}
		return a, nil

	case feed.FeedPrefsChangedMsg:
		if a.deps.SaveState == nil {
			return a, nil
		}
		save := a.deps.SaveState
		return a, func() tea.Msg {
			return prefsSavedMsg{Err: save(msg.Source, msg.Tag)}
		}

	case prefsSavedMsg:
		if msg.Err != nil {
			a.log.Warn("saving ui state", zap.Error(msg.Err))
		}
		return a, nil

	case compose.DoneMsg:
		return a.handleComposeDone(msg)

	case series.BackMsg, profile.BackMsg:
		a.active = feedView
		return a, nil
	}

	return a.routeToActive(msg)
}

func (a App) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if a.active != feedView || a.feed.IsCapturingInput() {
		return a, nil, false
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		if a.feed.IsInDetailView() && msg.String() == "q" {
			return a, nil, false
		}
		return a, tea.Quit, true

	case key.Matches(msg, a.keys.Write):
		if a.feed.IsInDetailView() {
			return a, nil, false
		}
		if !a.signedIn() {
			a.setStatus("Sign in to write. Run: quill login", true)
			return a, nil, true
		}
		a.active = composeView
		a.status = ""
		a.compose = compose.NewEditor(a.deps.Editor)
		return a, a.compose.Init(), true

	case key.Matches(msg, a.keys.WriteInline):
		if a.feed.IsInDetailView() {
			return a, nil, false
		}
		if !a.signedIn() {
			a.setStatus("Sign in to write. Run: quill login", true)
			return a, nil, true
		}
		a.active = composeView
		a.status = ""
		a.compose = compose.NewInline()
		return a, a.compose.Init(), true

	case key.Matches(msg, a.keys.Series):
		if a.feed.IsInDetailView() {
			return a, nil, false
		}
		if !a.signedIn() {
			a.setStatus("Sign in to see your series. Run: quill login", true)
			return a, nil, true
		}
		a.active = seriesView
		a.status = ""
		a.series = series.New(a.deps.Series, a.deps.Account)
		return a, a.series.Init(), true

	case key.Matches(msg, a.keys.Profile):
		if a.feed.IsInDetailView() {
			return a, nil, false
		}
		if !a.signedIn() {
			a.setStatus("Sign in to see your profile. Run: quill login", true)
			return a, nil, true
		}
		a.active = profileView
		a.status = ""
		a.profile = profile.New(a.deps.Account)
		return a, a.profile.Init(), true
	}

	return a, nil, false
}

func (a App) handleComposeDone(msg compose.DoneMsg) (tea.Model, tea.Cmd) {
	a.active = feedView
	a.feed, _ = a.feed.Update(feed.ResetFeedStateMsg{})

	if msg.Err != nil {
		a.setStatus("Error: "+msg.Err.Error(), true)
		return a, nil
	}
	if strings.TrimSpace(msg.Content) == "" {
		a.setStatus("Cancelled.", false)
		return a, nil
	}

	// Comment on an existing post.
	if msg.TargetPostID != "" {
		local := domain.Comment{
			ID:        "local-" + uuid.NewString(),
			PostID:    msg.TargetPostID,
			Author:    "You",
			Content:   msg.Content,
			CreatedAt: time.Now(),
			IsOwn:     true,
		}
		a.feed, _ = a.feed.Update(feed.AddOptimisticCommentMsg{Comment: local})
		a.setStatus("Commenting...", false)
		return a, a.publishComment(msg.TargetPostID, local.ID, msg.Content)
	}

	title, body := editor.SplitTitle(msg.Content)

	if msg.IsEdit {
		a.feed, _ = a.feed.Update(feed.UpdateOptimisticPostMsg{
			ID:      msg.PostID,
			Title:   title,
			Content: body,
		})
		a.setStatus("Updating...", false)
		return a, a.publishPost(msg.PostID, title, body, true)
	}

	local := domain.Post{
		ID:        "local-" + uuid.NewString(),
		Author:    "You",
		Username:  "you",
		Title:     title,
		Content:   body,
		CreatedAt: time.Now(),
		IsOwn:     true,
	}
	a.feed, _ = a.feed.Update(feed.AddOptimisticPostMsg{Post: local})
	a.setStatus("Publishing...", false)
	return a, a.publishPost(local.ID, title, body, false)
}

func (a App) openEdit(msg feed.EditPostMsg) (tea.Model, tea.Cmd) {
	a.active = composeView
	a.status = ""
	draft := editor.JoinTitle(msg.Post.Title, msg.Post.Content)
	if msg.UseInline {
		a.compose = compose.NewInlineWithContent(msg.Post.ID, draft)
	} else {
		a.compose = compose.NewEditorWithContent(a.deps.Editor, msg.Post.ID, draft)
	}
	return a, a.compose.Init()
}

func (a App) publishPost(localID, title, body string, isEdit bool) tea.Cmd {
	post := a.deps.Post
	return func() tea.Msg {
		var (
			p   domain.Post
			err error
		)
		if isEdit {
			p, err = post.Edit(context.Background(), localID, title, body)
		} else {
			p, err = post.Publish(context.Background(), title, body)
		}
		return feed.PublishResultMsg{LocalID: localID, Post: p, IsEdit: isEdit, Err: err}
	}
}

func (a App) publishComment(postID, localID, content string) tea.Cmd {
	post := a.deps.Post
	return func() tea.Msg {
		c, err := post.Comment(context.Background(), postID, content)
		return feed.CommentResultMsg{PostID: postID, LocalID: localID, Comment: c, Err: err}
	}
}

func (a App) deletePost(id string) tea.Cmd {
	post := a.deps.Post
	return func() tea.Msg {
		return feed.DeleteResultMsg{ID: id, Err: post.Delete(context.Background(), id)}
	}
}

func (a App) routeToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.active {
	case feedView:
		a.feed, cmd = a.feed.Update(msg)
	case composeView:
		a.compose, cmd = a.compose.Update(msg)
	case seriesView:
		a.series, cmd = a.series.Update(msg)
	case profileView:
		a.profile, cmd = a.profile.Update(msg)
	}
	return a, cmd
}

func (a *App) setStatus(s string, isErr bool) {
	a.status = s
	a.statusIsErr = isErr
}

func (a App) signedIn() bool {
	return a.deps.SignedIn != nil && a.deps.SignedIn()
}

// View renders the active sub-model plus the status bar.
func (a App) View() string {
	var s string
	switch a.active {
	case feedView:
		s = a.feed.View()
	case composeView:
		s = a.compose.View()
	case seriesView:
		s = a.series.View()
	case profileView:
		s = a.profile.View()
	}

	if a.status != "" {
		line := a.status
		if a.statusIsErr {
			line = common.ErrorStyle.Render(line)
		} else {
			line = common.SuccessStyle.Render(line)
		}
		s += "\n" + common.StatusBarStyle.Render(line)
	}
	return s
}
