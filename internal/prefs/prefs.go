// Package prefs persists choices the user makes inside the TUI: the theme and
// the interface language. They live apart from config.toml so the client can
// rewrite them without touching hand-edited settings.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs is the contents of prefs.toml. An empty Language defers to the
// config file.
type Prefs struct {
	Theme    string `toml:"theme"`
	Language string `toml:"language,omitempty"`
}

const (
	defaultPath  = "~/.config/shelf/prefs.toml"
	defaultTheme = "Nightfox"
)

// DefaultPath returns the unexpanded default location.
func DefaultPath() string { return defaultPath }

// Defaults returns the preferences used when nothing is saved.
func Defaults() Prefs { return Prefs{Theme: defaultTheme} }

// Load reads the preferences at path, or the default path when empty. A
// missing file yields Defaults and no error. An unreadable or malformed file
// also yields Defaults, together with the error so the caller can log it.
func Load(path string) (Prefs, error) {
	resolved, err := resolve(path)
	if err != nil {
		return Defaults(), err
	}
	raw, err := os.ReadFile(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return Defaults(), nil
	case err != nil:
		return Defaults(), fmt.Errorf("read prefs: %w", err)
	}

	var p Prefs
	if err := toml.Unmarshal(raw, &p); err != nil {
		return Defaults(), fmt.Errorf("parse prefs %s: %w", resolved, err)
	}
	return p.normalized(), nil
}

func (p Prefs) normalized() Prefs {
	p.Theme = strings.TrimSpace(p.Theme)
	p.Language = strings.TrimSpace(p.Language)
	if p.Theme == "" {
		p.Theme = defaultTheme
	}
	return p
}

// Save writes p to path, creating parent directories. The file is replaced
// by rename so a crash never leaves it half written.
func Save(path string, p Prefs) error {
	resolved, err := resolve(path)
	if err != nil {
		return err
	}
	data, err := toml.Marshal(p.normalized())
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".prefs-*.toml")
	if err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp.Name(), resolved); err != nil {
		return fmt.Errorf("replace prefs: %w", err)
	}
	return nil
}

func resolve(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = defaultPath
	}
	if rest, ok := strings.CutPrefix(path, "~"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		path = filepath.Join(home, rest)
	}
	return filepath.Abs(path)
}
