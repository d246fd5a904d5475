// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/colorit/colorit/internal/binding"
	"github.com/colorit/colorit/internal/colorizer"
	"github.com/colorit/colorit/internal/config"
	"github.com/colorit/colorit/internal/iconsynth"
	"github.com/colorit/colorit/internal/ledger"
	"github.com/colorit/colorit/internal/outcome"
	"github.com/colorit/colorit/internal/refresh"

	"github.com/charmbracelet/log"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root
	// for the CLI layer: every Cobra handler receives an App and asks it for a
	// session holding the configured engine.
	App struct {
		Config     config.Provider
		attributes binding.Attributes
		notifier   refresh.Notifier
		helper     refresh.Helper
		clock      refresh.Clock
		stdout     io.Writer
		stderr     io.Writer
		// colorScheme is the ui.color_scheme of the last loaded configuration.
		colorScheme config.ColorScheme
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults, some of them derived from the
	// loaded configuration when a session starts.
	Dependencies struct {
		Config config.Provider
		// Attributes defaults to the host attribute store.
		Attributes binding.Attributes
		// Notifier defaults to a ShellNotifier built from refresh.* settings.
		Notifier refresh.Notifier
		// Helper defaults to refresh.helper_command; an empty command skips the step.
		Helper refresh.Helper
		// Clock defaults to wall-clock sleeps.
		Clock  refresh.Clock
		Stdout io.Writer
		Stderr io.Writer
	}

	// session is everything one command invocation needs, built from the
	// configuration in effect for that invocation.
	session struct {
		cfg        *config.Config
		cfgPath    string
		logger     *log.Logger
		binder     *binding.Binder
		ledger     *ledger.Ledger
		ledgerOpen outcome.Outcome
		engine     *colorizer.Engine
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	return &App{
		Config:      deps.Config,
		attributes:  deps.Attributes,
		notifier:    deps.Notifier,
		helper:      deps.Helper,
		clock:       deps.Clock,
		stdout:      deps.Stdout,
		stderr:      deps.Stderr,
		colorScheme: config.ColorSchemeAuto,
	}, nil
}

// newLogger builds the CLI logger. Best-effort failures are logged at debug
// level, so they only show with --verbose or ui.verbose.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "colorit",
		Level:  level,
	})
}

// loadConfig loads configuration honoring the --config flag.
func (a *App) loadConfig(ctx context.Context, flags *rootFlagValues) (*config.Config, string, error) {
	return a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: flags.configPath})
}

// session loads configuration and assembles the engine and its collaborators.
func (a *App) session(ctx context.Context, flags *rootFlagValues) (*session, error) {
	cfg, cfgPath, err := a.loadConfig(ctx, flags)
	if err != nil {
		return nil, err
	}

	a.colorScheme = cfg.UI.ColorScheme
	flags.verbose = flags.verbose || cfg.UI.Verbose
	logger := newLogger(a.stderr, flags.verbose)

	binderOpts := []binding.Option{binding.WithLogger(logger.WithPrefix("binding"))}
	if a.attributes != nil {
		binderOpts = append(binderOpts, binding.WithAttributes(a.attributes))
	}
	binder, err := binding.New(binding.Config{
		IconFile:       cfg.Binding.IconFile.String(),
		DescriptorFile: cfg.Binding.DescriptorFile.String(),
	}, binderOpts...)
	if err != nil {
		return nil, fmt.Errorf("configure binding: %w", err)
	}

	invalidator, err := a.invalidator(cfg, logger.WithPrefix("refresh"))
	if err != nil {
		return nil, err
	}

	ledgerPath, err := config.LedgerPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve history path: %w", err)
	}
	led, openOutcome := ledger.Open(ledgerPath, ledger.WithLogger(logger.WithPrefix("ledger")))

	engine, err := colorizer.New(colorizer.Dependencies{
		Synthesizer: iconsynth.New(),
		Binder:      binder,
		Invalidator: invalidator,
		Ledger:      led,
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:        cfg,
		cfgPath:    cfgPath,
		logger:     logger,
		binder:     binder,
		ledger:     led,
		ledgerOpen: openOutcome,
		engine:     engine,
	}, nil
}

func (a *App) invalidator(cfg *config.Config, logger *log.Logger) (*refresh.Invalidator, error) {
	notifier := a.notifier
	if notifier == nil {
		cacheDir := cfg.Refresh.CacheDir
		if cacheDir == "" {
			cacheDir = refresh.DefaultCacheDir()
		}
		shell, err := refresh.NewShellNotifier(
			refresh.WithCacheDir(cacheDir),
			refresh.WithCachePatterns(cfg.Refresh.CachePatterns...),
			refresh.WithNotifierLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("configure cache invalidation: %w", err)
		}
		notifier = shell
	}

	opts := []refresh.Option{refresh.WithLogger(logger)}
	switch {
	case a.helper != nil:
		opts = append(opts, refresh.WithHelper(a.helper))
	case len(cfg.Refresh.HelperCommand) > 0:
		helper, err := refresh.NewCommandHelper(cfg.Refresh.HelperCommand)
		if err != nil {
			return nil, fmt.Errorf("configure cache helper: %w", err)
		}
		opts = append(opts, refresh.WithHelper(helper))
	}
	if a.clock != nil {
		opts = append(opts, refresh.WithClock(a.clock))
	}

	return refresh.New(refresh.Config{
		HelperTimeout:    cfg.Refresh.HelperTimeout,
		ViewRefreshDelay: cfg.Refresh.ViewRefreshDelay,
		FallbackDelay:    cfg.Refresh.FallbackDelay,
	}, notifier, opts...), nil
}

// exclusive runs fn holding the history lock, so a running guard cannot
// re-apply a folder while another command is changing it. When the lock
// cannot be taken fn runs anyway.
func (s *session) exclusive(fn func()) {
	ran := false
	err := s.ledger.Exclusive(func() error {
		ran = true
		fn()
		return nil
	})
	if err != nil && !ran {
		s.logger.Debug("history lock unavailable", "path", s.ledger.Path(), "error", err)
		fn()
	}
}
