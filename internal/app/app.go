package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/five82/sous/internal/config"
	"github.com/five82/sous/internal/logging"
	"github.com/five82/sous/internal/prefs"
	"github.com/five82/sous/internal/search"
	"github.com/five82/sous/internal/spoonacular"
	"github.com/five82/sous/internal/ui"
)

// Options configure the sous application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/sous/prefs.toml
	Rich       bool   // force rich text rendering
	Verbose    bool   // debug-level logging
}

// Env is the wired application: configuration, logger, API client and the
// search session every front end drives.
type Env struct {
	Config    config.Config
	Prefs     prefs.Prefs
	PrefsPath string
	Logger    *zap.Logger
	Client    *spoonacular.Client
	Session   *search.Session

	// Warning is set when logging fell back to a no-op logger.
	Warning string

	rich bool
}

// Bootstrap loads configuration and builds the Env.
func Bootstrap(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	prefsPath := opts.PrefsPath
	if strings.TrimSpace(prefsPath) == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs := prefs.Load(prefsPath)

	logger, warning := logging.NewOrNop(logging.Options{Path: cfg.LogPath, Verbose: opts.Verbose})

	client, err := spoonacular.NewClient(cfg.APIBase, cfg.APIKey, spoonacular.WithTimeout(cfg.RequestTimeout))
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("init recipe client: %w", err)
	}

	session := search.New(search.Options{
		Fetcher:           client,
		Logger:            logger,
		AutocompleteLimit: cfg.AutocompleteLimit,
		SearchLimit:       cfg.SearchLimit,
		IngredientLimit:   cfg.IngredientLimit,
	})

	return &Env{
		Config:    cfg,
		Prefs:     userPrefs,
		PrefsPath: prefsPath,
		Logger:    logger,
		Client:    client,
		Session:   session,
		Warning:   warning,
		rich:      resolveRich(opts.Rich, userPrefs, cfg),
	}, nil
}

// resolveRich picks the rendering mode: the flag wins, then a saved
// preference, then the config file.
func resolveRich(flag bool, p prefs.Prefs, cfg config.Config) bool {
	if flag {
		return true
	}
	if p.RichText != nil {
		return *p.RichText
	}
	return cfg.RichText
}

// Rich reports whether recipe text renders through glamour.
func (e *Env) Rich() bool {
	return e.rich
}

// Close flushes the logger.
func (e *Env) Close() {
	if e == nil || e.Logger == nil {
		return
	}
	_ = e.Logger.Sync()
}

// Run boots the sous TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Bootstrap(opts)
	if err != nil {
		return err
	}
	defer env.Close()
	if env.Warning != "" {
		fmt.Fprintf(os.Stderr, "sous: %s\n", env.Warning)
	}

	env.Logger.Info("sous started",
		zap.String("api_base", env.Config.APIBase),
		zap.Duration("request_timeout", env.Config.RequestTimeout),
		zap.Bool("rich_text", env.rich))

	return ui.Run(ui.Options{
		Context:   ctx,
		Session:   env.Session,
		Logger:    env.Logger,
		ThemeName: env.Prefs.Theme,
		PrefsPath: env.PrefsPath,
		LogPath:   env.Config.LogPath,
		RichText:  env.rich,
	})
}
