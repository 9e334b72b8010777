package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/five82/dropoff/internal/config"
	"github.com/five82/dropoff/internal/desk"
	"github.com/five82/dropoff/internal/ledger"
	"github.com/five82/dropoff/internal/logging"
	"github.com/five82/dropoff/internal/prefs"
	"github.com/five82/dropoff/internal/state"
	"github.com/five82/dropoff/internal/ui"
)

// Options configure the desk application.
type Options struct {
	ConfigPath string
	PrefsPath  string   // empty uses default ~/.config/dropoff/prefs.toml
	PollEvery  int      // seconds; zero uses default
	LogOutputs []string // extra log outputs besides the data dir log file
}

// Env bundles everything a front end needs to run desk operations.
type Env struct {
	Config  config.Config
	Prefs   prefs.Prefs
	Logger  *logging.Logger
	Service *desk.Service
}

// Close releases the log file.
func (e *Env) Close() error {
	if e == nil || e.Logger == nil {
		return nil
	}
	return e.Logger.Close()
}

// Open loads config and prefs and constructs the desk service.
func Open(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	l, err := ledger.Open(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	logger, err := logging.NewFromConfig(cfg, opts.LogOutputs...)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	switch {
	case errors.Is(err, prefs.ErrCorrupt):
		// Defaults are in effect; the next theme or pickup change rewrites the file.
		logger.Warn("preferences unreadable, using defaults", "error", err)
	case err != nil:
		_ = logger.Close()
		return nil, fmt.Errorf("load prefs: %w", err)
	}

	pickup := cfg.PickupHours
	if userPrefs.PickupHours > 0 {
		pickup = userPrefs.PickupHours
	}

	svc, err := desk.New(desk.Options{
		Ledger:      l,
		ReceiptsDir: cfg.ReceiptsDir,
		ShopName:    cfg.ShopName,
		PickupHours: pickup,
		Logger:      logger.Logger,
		OnPickupHours: func(hours int) error {
			_, err := prefs.Update(opts.PrefsPath, func(p *prefs.Prefs) { p.PickupHours = hours })
			return err
		},
	})
	if err != nil {
		_ = logger.Close()
		return nil, fmt.Errorf("init desk: %w", err)
	}

	return &Env{Config: cfg, Prefs: userPrefs, Logger: logger, Service: svc}, nil
}

// Run boots the desk TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Open(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	store := &state.Store{}

	interval := defaultPollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	// Start background poller
	StartPoller(ctx, store, env.Service.Ledger(), env.Logger.Logger, interval)

	// Do initial refresh to populate store before UI starts
	if err := Refresh(store, env.Service.Ledger()); err != nil {
		env.Logger.Warn("initial ledger read failed", "error", err)
	}

	env.Logger.Info("desk session started", "data_dir", env.Config.DataDir)
	defer env.Logger.Info("desk session ended")

	uiOpts := ui.Options{
		Context:      ctx,
		Service:      env.Service,
		Store:        store,
		Config:       &env.Config,
		PollTick:     interval,
		ThemeName:    env.Prefs.Theme,
		PrefsPath:    opts.PrefsPath,
		BatterySizes: env.Config.BatterySizes,
		Refresh: func() error {
			return Refresh(store, env.Service.Ledger())
		},
	}
	return ui.Run(uiOpts)
}
