package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/writersguild/quill/infra/auth"
	"github.com/writersguild/quill/infra/config"
	"github.com/writersguild/quill/infra/guild"
)

var loginCmd = &cobra.Command{
	Use:   "login [token]",
	Short: "Save and verify a Writers Guild access token",
	Long: `Stores an access token for the configured server and verifies it by
fetching your profile. Create a token under Settings > API on the web app.

The token is read from the argument, or prompted for when omitted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

// staticToken lets the login flow verify a token before it is saved.
type staticToken string

func (s staticToken) AccessToken() (string, error) {
	return string(s), nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var token string
	if len(args) == 1 {
		token = args[0]
	} else {
		fmt.Print("Access token: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading token: %w", err)
		}
		token = line
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("no token given")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client := guild.NewClient(cfg.ServerURL, staticToken(token), nil)
	profile, err := guild.NewAccountService(client).CurrentProfile(ctx)
	if err != nil {
		return fmt.Errorf("token rejected by %s: %w", cfg.ServerURL, err)
	}

	if err := auth.SaveToken(cfg.TokenPath, token); err != nil {
		return err
	}

	fmt.Printf("Signed in as @%s. Token saved to %s.\n", profile.Username, cfg.TokenPath)
	return nil
}
