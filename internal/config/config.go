package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the client settings read from config.toml.
type Config struct {
	APIURL   string
	Backend  string
	Language string
	Poll     time.Duration
	LogFile  string
}

const (
	defaultConfigPath  = "~/.config/shelf/config.toml"
	defaultLogFile     = "~/.local/state/shelf/shelf.log"
	defaultAPIURL      = "http://127.0.0.1:8000"
	defaultBackend     = "rest"
	defaultLanguage    = "en"
	defaultPollSeconds = 5
	maxPollSeconds     = 600
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:   defaultAPIURL,
		Backend:  defaultBackend,
		Language: defaultLanguage,
		Poll:     defaultPollSeconds * time.Second,
		LogFile:  mustExpand(defaultLogFile),
	}
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL      string `toml:"api_url"`
		Backend     string `toml:"backend"`
		Language    string `toml:"language"`
		PollSeconds int    `toml:"poll_seconds"`
		LogFile     string `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.ToLower(strings.TrimSpace(raw.Backend)); v != "" {
		cfg.Backend = v
	}
	if v := strings.TrimSpace(raw.Language); v != "" {
		cfg.Language = v
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if raw.PollSeconds != 0 {
		cfg.Poll = time.Duration(raw.PollSeconds) * time.Second
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the client cannot run with.
func (c Config) Validate() error {
	switch c.Backend {
	case "rest", "odata":
	default:
		return fmt.Errorf("config: backend must be rest or odata, got %q", c.Backend)
	}
	if c.Poll < time.Second || c.Poll > maxPollSeconds*time.Second {
		return fmt.Errorf("config: poll_seconds must be between 1 and %d", maxPollSeconds)
	}
	return nil
}

// PrefsPath returns the preferences file that sits next to the config.
func PrefsPath(configPath string) string {
	resolved, err := resolvePath(configPath)
	if err != nil {
		return ""
	}
	return filepath.Join(filepath.Dir(resolved), "prefs.toml")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
