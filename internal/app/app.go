package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/five82/recipemama/internal/config"
	"github.com/five82/recipemama/internal/controller"
	"github.com/five82/recipemama/internal/logging"
	"github.com/five82/recipemama/internal/prefs"
	"github.com/five82/recipemama/internal/recipeapi"
	"github.com/five82/recipemama/internal/ui"
)

// Options configure the RecipeMama application.
type Options struct {
	ConfigPath string // empty uses ~/.config/recipemama/config.toml
	PrefsPath  string // empty uses ~/.config/recipemama/prefs.toml
	Theme      string // overrides the saved theme for this session
	Verbose    bool   // forces debug logging
}

// Run boots the RecipeMama TUI until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := cfg.LogLevel
	if opts.Verbose {
		level = logrus.DebugLevel.String()
	}
	log, closer, err := logging.Setup(cfg.LogFile, level)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closer.Close()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, err := prefs.Load(prefsPath)
	if err != nil {
		log.WithError(err).WithField("path", prefsPath).Warn("using default prefs")
	}
	if opts.Theme != "" {
		userPrefs.Theme = opts.Theme
	}

	client, err := recipeapi.NewClient(cfg.APIURL, recipeapi.Options{
		Timeout:        cfg.RequestTimeout,
		CircuitBreaker: cfg.CircuitBreaker,
		Logger:         log,
	})
	if err != nil {
		return fmt.Errorf("init recipe client: %w", err)
	}

	ctrl := controller.New(controller.Options{
		Fetcher:      client,
		Logger:       log,
		DiscardStale: cfg.DiscardStale,
		Comments:     controller.SeedComments(),
	})

	log.WithFields(logrus.Fields{
		"api":           cfg.APIURL,
		"discard_stale": cfg.DiscardStale,
		"breaker":       cfg.CircuitBreaker,
	}).Info("session started")

	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		ctrl.Wait()
		log.Info("session ended")
	}()

	ctrl.LoadSummaries(ctx)

	uiOpts := ui.Options{
		Context:    ctx,
		Controller: ctrl,
		Logger:     log,
		LogPath:    cfg.LogFile,
		Prefs:      userPrefs,
		PrefsPath:  prefsPath,
	}
	return ui.Run(uiOpts)
}
