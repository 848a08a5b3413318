// Package cmd wires configuration, services, and the TUI behind the quill
// command line.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/writersguild/quill/engage"
	"github.com/writersguild/quill/infra/auth"
	"github.com/writersguild/quill/infra/config"
	"github.com/writersguild/quill/infra/editor"
	"github.com/writersguild/quill/infra/guild"
	"github.com/writersguild/quill/infra/logging"
	"github.com/writersguild/quill/tui"
)

var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "Writers Guild in your terminal",
	Long: `Quill is a terminal client for Writers Guild: read the feeds, publish
and edit your writing, and react to other writers without leaving the shell.

Browsing works signed out. Run "quill login" to write and engage.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// tokenSession treats a readable, non-empty token file as "signed in".
// The server is still the authority; a stale token just means failed calls.
type tokenSession struct {
	tokens auth.TokenProvider
}

func (s tokenSession) SignedIn() bool {
	token, err := s.tokens.AccessToken()
	return err == nil && token != ""
}

func runTUI() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.LogPath, cfg.Debug)
	if err != nil {
		return err
	}
	defer log.Sync()

	tokens := auth.NewFileTokenProvider(cfg.TokenPath)
	session := tokenSession{tokens: tokens}
	client := guild.NewClient(cfg.ServerURL, tokens, log)

	// Resolve the viewer's account ID up front; own-post detection depends
	// on it. Signed-out browsing proceeds with an empty ID.
	currentID := ""
	if session.SignedIn() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if id, err := guild.NewAccountService(client).CurrentAccountID(ctx); err == nil {
			currentID = id
		} else {
			log.Warn("resolving current account", zap.Error(err))
		}
		cancel()
	}

	store := engage.NewStore()
	bridge := tui.NewBridge()
	controller := engage.New(engage.Deps{
		Store:     store,
		Relations: guild.NewEngagementService(client),
		Session:   session,
		Notify:    bridge,
		Feeds:     bridge,
		Logger:    log,
	})

	st, _ := config.LoadUIState(cfg.StatePath)

	appModel := tui.NewApp(tui.Deps{
		Timeline: guild.NewTimelineService(client, currentID),
		Post:     guild.NewPostService(client, currentID),
		Account:  guild.NewAccountService(client),
		Series:   guild.NewSeriesService(client),
		Editor:   editor.NewEnvEditor(),
		Engager:  controller,
		Store:    store,
		SignedIn: session.SignedIn,
		Logger:   log,

		FeedSource: st.FeedSource,
		Tag:        st.Tag,
		SaveState: func(source, tag string) error {
			return config.SaveUIState(cfg.StatePath, config.UIState{FeedSource: source, Tag: tag})
		},
	})

	p := tea.NewProgram(appModel, tea.WithAltScreen())
	bridge.Attach(p)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running quill: %w", err)
	}
	return nil
}
