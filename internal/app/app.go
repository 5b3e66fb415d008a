package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/quotedrop/internal/api"
	"github.com/five82/quotedrop/internal/config"
	"github.com/five82/quotedrop/internal/prefs"
	"github.com/five82/quotedrop/internal/ui"
)

// Options configure the quotedrop application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/quotedrop/prefs.toml
	Health     bool   // also serve the health proxy while the UI runs
}

// Run boots the quotedrop TUI until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// The terminal belongs to the UI, so logs go to a file.
	logFile, err := openLog(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		log.Printf("using default preferences: %v", err)
	}
	client := newClient(cfg)
	log.Printf("quotedrop starting, backend %s, accepting %s", cfg.BaseURL(), cfg.AcceptExt)

	if opts.Health {
		proxyCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		StartHealthProxy(proxyCtx, client, cfg.HealthBind)
	}

	uiOpts := ui.Options{
		Context:   ctx,
		Backend:   client,
		Config:    &cfg,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
		StartDir:  userPrefs.LastDir,
	}
	return ui.Run(uiOpts)
}

// ProxyOptions configure RunProxy.
type ProxyOptions struct {
	ConfigPath string
	Addr       string // empty uses health_bind from the config
}

// RunProxy serves only the health proxy until the context is cancelled.
// Logs go to stderr.
func RunProxy(ctx context.Context, opts ProxyOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	addr := opts.Addr
	if addr == "" {
		addr = cfg.HealthBind
	}
	log.Printf("health proxy listening on %s, backend %s", addr, cfg.BaseURL())
	return serveUntilDone(ctx, newProxy(newClient(cfg)), addr)
}

func newClient(cfg config.Config) *api.Client {
	return api.NewClient(cfg.BaseURL(), api.Options{})
}

func openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	return tea.LogToFile(path, "quotedrop ")
}
