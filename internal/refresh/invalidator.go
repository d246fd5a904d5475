// SPDX-License-Identifier: MPL-2.0

package refresh

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/colorit/colorit/internal/outcome"
)

// Step names reported in outcome.SoftFailure.Step, in execution order.
const (
	StepClearCaches    = "clear-caches"
	StepHelper         = "rebuild-helper"
	StepNotifyItem     = "notify-item"
	StepNotifyParent   = "notify-parent"
	StepNotifyAssoc    = "notify-assoc"
	StepTouch          = "touch-timestamp"
	StepRefreshViews   = "refresh-views"
	StepNotifyFallback = "notify-fallback"
)

// Default timings.
const (
	DefaultHelperTimeout    = time.Second
	DefaultViewRefreshDelay = 100 * time.Millisecond
	DefaultFallbackDelay    = 200 * time.Millisecond
)

type (
	// Invalidator runs the cache-invalidation sequence for a folder.
	Invalidator struct {
		cfg      Config
		notifier Notifier
		helper   Helper
		clock    Clock
		logger   *log.Logger
	}

	// Config holds the timing constants of the sequence. They were tuned
	// against observed shell behavior and may need per-host adjustment.
	Config struct {
		// HelperTimeout bounds the wait on the helper process (default: 1s)
		HelperTimeout time.Duration
		// ViewRefreshDelay precedes the open-view refresh (default: 100ms)
		ViewRefreshDelay time.Duration
		// FallbackDelay precedes the fallback notification (default: 200ms)
		FallbackDelay time.Duration
	}

	// Option configures an Invalidator.
	Option func(*Invalidator)
)

// DefaultConfig returns the standard timings.
func DefaultConfig() Config {
	return Config{
		HelperTimeout:    DefaultHelperTimeout,
		ViewRefreshDelay: DefaultViewRefreshDelay,
		FallbackDelay:    DefaultFallbackDelay,
	}
}

// WithHelper sets the cache-rebuild helper. Without one the step is skipped.
func WithHelper(h Helper) Option {
	return func(inv *Invalidator) { inv.helper = h }
}

// WithClock replaces the time source.
func WithClock(c Clock) Option {
	return func(inv *Invalidator) { inv.clock = c }
}

// WithLogger sets the logger used for soft failures.
func WithLogger(l *log.Logger) Option {
	return func(inv *Invalidator) { inv.logger = l }
}

// New creates an Invalidator. Zero durations in cfg fall back to the defaults.
func New(cfg Config, n Notifier, opts ...Option) *Invalidator {
	if cfg.HelperTimeout <= 0 {
		cfg.HelperTimeout = DefaultHelperTimeout
	}
	if cfg.ViewRefreshDelay <= 0 {
		cfg.ViewRefreshDelay = DefaultViewRefreshDelay
	}
	if cfg.FallbackDelay <= 0 {
		cfg.FallbackDelay = DefaultFallbackDelay
	}

	inv := &Invalidator{cfg: cfg, notifier: n}
	for _, opt := range opts {
		opt(inv)
	}
	if inv.clock == nil {
		inv.clock = realClock{}
	}
	if inv.logger == nil {
		inv.logger = log.New(io.Discard)
	}
	return inv
}

// Invalidate runs the full sequence for path. It never fails; the returned
// outcome lists every step that did not complete. ctx only shortens the
// helper wait; the fixed delays always elapse.
func (inv *Invalidator) Invalidate(ctx context.Context, path string) outcome.Outcome {
	var out outcome.Outcome
	record := func(step string, err error) {
		if out.Record(step, err) {
			f, _ := out.Step(step)
			inv.logger.Debug("best-effort step failed", "step", step, "reason", f.Reason, "path", path, "error", err)
		}
	}

	// Stale caches would repopulate the shell on the first notification.
	record(StepClearCaches, inv.notifier.ClearCaches())

	if inv.helper != nil {
		if reason, err := inv.runHelper(ctx); err != nil {
			out.RecordReason(StepHelper, reason, err)
			inv.logger.Debug("best-effort step failed", "step", StepHelper, "reason", reason, "path", path, "error", err)
		}
	}

	record(StepNotifyItem, inv.notifier.NotifyScoped(path, EventItemUpdated|EventDirUpdated))
	if parent := filepath.Dir(path); parent != path {
		record(StepNotifyParent, inv.notifier.NotifyScoped(parent, EventDirUpdated))
	}
	record(StepNotifyAssoc, inv.notifier.NotifyGlobal(GlobalAssocChanged))
	record(StepTouch, inv.notifier.TouchTimestamp(path))

	inv.clock.Sleep(inv.cfg.ViewRefreshDelay)
	record(StepRefreshViews, inv.notifier.RefreshOpenViews(path))

	inv.clock.Sleep(inv.cfg.FallbackDelay)
	record(StepNotifyFallback, inv.notifier.NotifyGlobal(GlobalFlushAll))

	return out
}

// runHelper starts the helper and waits for it up to HelperTimeout. A timeout
// abandons the wait and leaves the process running.
func (inv *Invalidator) runHelper(ctx context.Context) (outcome.Reason, error) {
	done, err := inv.helper.Start()
	if err != nil {
		return outcome.Classify(err), err
	}

	select {
	case err := <-done:
		return helperExit(err)
	default:
	}

	select {
	case err := <-done:
		return helperExit(err)
	case <-inv.clock.After(inv.cfg.HelperTimeout):
		return outcome.ReasonTimeout, fmt.Errorf("%w after %s", ErrHelperTimeout, inv.cfg.HelperTimeout)
	case <-ctx.Done():
		return outcome.ReasonTimeout, ctx.Err()
	}
}

func helperExit(err error) (outcome.Reason, error) {
	if err != nil {
		return outcome.ReasonIO, fmt.Errorf("helper exited: %w", err)
	}
	return "", nil
}
