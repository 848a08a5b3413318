package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds application-level configuration.
type Config struct {
	ServerURL string // e.g. "https://guild.example.com"
	TokenPath string // Path to file containing the access token
	StatePath string // Path to persisted UI state (JSON)
	LogPath   string // Path to the debug log file
	Debug     bool   // Enable file logging
}

// fileConfig mirrors the optional YAML config file.
type fileConfig struct {
	Server    string `yaml:"server"`
	TokenPath string `yaml:"token_path"`
	Debug     bool   `yaml:"debug"`
}

// Load reads configuration, lowest precedence first: the optional YAML file
// at ~/.config/quill/config.yaml, then a .env file in the working directory,
// then environment variables.
//
//	QUILL_SERVER — Writers Guild server URL (default: https://writersguild.app)
//	QUILL_TOKEN  — Path to token file (default: ~/.config/quill/token)
//	QUILL_DEBUG  — "1"/"true" enables file logging
func Load() (Config, error) {
	// Missing .env is fine; env vars may come from anywhere.
	_ = godotenv.Load()

	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("cannot determine home directory: %w", err)
	}
	configDir := filepath.Join(home, ".config", "quill")

	var fc fileConfig
	if data, err := os.ReadFile(filepath.Join(configDir, "config.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return Config{}, fmt.Errorf("parsing config.yaml: %w", err)
		}
	}

	server := firstNonEmpty(os.Getenv("QUILL_SERVER"), fc.Server, "https://writersguild.app")
	parsed, err := url.Parse(server)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return Config{}, fmt.Errorf("invalid QUILL_SERVER: must be an absolute URL")
	}
	if parsed.Scheme != "https" {
		return Config{}, fmt.Errorf("invalid QUILL_SERVER: only https is allowed")
	}
	server = strings.TrimRight(parsed.String(), "/")

	tokenPath := firstNonEmpty(os.Getenv("QUILL_TOKEN"), fc.TokenPath, filepath.Join(configDir, "token"))

	debug := fc.Debug
	switch strings.ToLower(os.Getenv("QUILL_DEBUG")) {
	case "1", "true", "yes":
		debug = true
	case "0", "false", "no":
		debug = false
	}

	return Config{
		ServerURL: server,
		TokenPath: tokenPath,
		StatePath: filepath.Join(configDir, "state.json"),
		LogPath:   filepath.Join(stateHome(home), "quill", "quill.log"),
		Debug:     debug,
	}, nil
}

func stateHome(home string) string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return dir
	}
	return filepath.Join(home, ".local", "state")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
