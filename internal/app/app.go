package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/shelf/internal/catalog"
	"github.com/five82/shelf/internal/config"
	"github.com/five82/shelf/internal/i18n"
	"github.com/five82/shelf/internal/logtail"
	"github.com/five82/shelf/internal/prefs"
	"github.com/five82/shelf/internal/remote"
	"github.com/five82/shelf/internal/state"
	"github.com/five82/shelf/internal/ui"
)

// Options configure the shelf application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses prefs.toml next to the config file
	PollEvery  int    // seconds; zero uses the config value
}

// Run boots the shelf TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.PollEvery > 0 {
		cfg.Poll = time.Duration(opts.PollEvery) * time.Second
	}

	// The terminal belongs to the TUI, so log lines go to a file.
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return fmt.Errorf("create log dir: %w", err)
		}
		logFile, err := tea.LogToFile(cfg.LogFile, "shelf")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer func() { _ = logFile.Close() }()
	} else {
		log.SetOutput(io.Discard)
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = config.PrefsPath(opts.ConfigPath)
	}
	userPrefs, err := prefs.Load(prefsPath)
	if err != nil {
		log.Printf("load prefs: %v", err)
	}

	lang := cfg.Language
	if userPrefs.Language != "" {
		lang = userPrefs.Language
	}
	bundle, err := i18n.New(lang)
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}

	cat, err := NewCatalog(cfg)
	if err != nil {
		return err
	}

	store := state.NewStore(ctx)
	defer store.Close()
	store.Focus(state.Stores())

	poller := NewPoller(store, cat, cfg.Poll)
	poller.Start(ctx)

	return ui.Run(ui.Options{
		Context:   ctx,
		Catalog:   cat,
		Store:     store,
		Refresher: poller,
		Bundle:    bundle,
		ThemeName: userPrefs.Theme,
		PrefsPath: prefsPath,
	})
}

// NewCatalog builds the remote catalog for the configured backend.
func NewCatalog(cfg config.Config) (*remote.Catalog, error) {
	svc, err := remote.New(cfg.Backend, cfg.APIURL)
	if err != nil {
		return nil, fmt.Errorf("init %s client: %w", cfg.Backend, err)
	}
	return remote.NewCatalog(svc), nil
}

// PrintCounts writes the product counts of one store, in total and per status,
// without starting the TUI. A failed count is reported on its line and does
// not stop the others.
func PrintCounts(ctx context.Context, configPath string, storeID int64, w io.Writer) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cat, err := NewCatalog(cfg)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range cat.CountByStatus(ctx, storeID) {
		label := "ALL"
		if r.Status != 0 {
			label = r.Status.String()
		}
		if r.Err != nil {
			failed++
			fmt.Fprintf(w, "%-14s error: %v\n", label, r.Err)
			continue
		}
		fmt.Fprintf(w, "%-14s %d\n", label, r.Count)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d counts failed", failed, len(catalog.Statuses)+1)
	}
	return nil
}

// PrintLog writes the last n lines of the client log to w.
func PrintLog(configPath string, n int, w io.Writer) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	lines, err := logtail.Tail(cfg.LogFile, n)
	if err != nil {
		return err
	}
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
	return nil
}
