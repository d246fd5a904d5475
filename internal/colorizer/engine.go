// SPDX-License-Identifier: MPL-2.0

package colorizer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/colorit/colorit/internal/ledger"
	"github.com/colorit/colorit/internal/outcome"
	"github.com/colorit/colorit/pkg/ico"
	"github.com/colorit/colorit/pkg/tint"
)

// Step names for ledger failures.
const (
	StepLedgerUpsert = "ledger-upsert"
	StepLedgerRemove = "ledger-remove"
	StepLedgerList   = "ledger-list"
)

// ErrMissingDependency is returned by New when a collaborator is nil.
var ErrMissingDependency = errors.New("missing engine dependency")

type (
	// Synthesizer renders a color into an icon container.
	Synthesizer interface {
		Synthesize(c tint.ColorSpec) (*ico.Container, error)
	}

	// Binder writes and reverses a folder's shell override.
	Binder interface {
		Apply(path string, c *ico.Container) error
		Remove(path string) outcome.Outcome
	}

	// Invalidator makes the shell redraw a folder.
	Invalidator interface {
		Invalidate(ctx context.Context, path string) outcome.Outcome
	}

	// Ledger records which folders carry an override.
	Ledger interface {
		Upsert(path string, c tint.ColorSpec) error
		Remove(path string) error
		List() ([]ledger.Entry, error)
		ColorFor(path string) (tint.ColorSpec, bool)
	}

	// Dependencies are the collaborators of an Engine. Logger is optional.
	Dependencies struct {
		Synthesizer Synthesizer
		Binder      Binder
		Invalidator Invalidator
		Ledger      Ledger
		Logger      *log.Logger
	}

	// Engine is the folder color engine.
	Engine struct {
		synth       Synthesizer
		binder      Binder
		invalidator Invalidator
		ledger      Ledger
		logger      *log.Logger
	}
)

// New creates an Engine.
func New(deps Dependencies) (*Engine, error) {
	switch {
	case deps.Synthesizer == nil:
		return nil, fmt.Errorf("%w: synthesizer", ErrMissingDependency)
	case deps.Binder == nil:
		return nil, fmt.Errorf("%w: binder", ErrMissingDependency)
	case deps.Invalidator == nil:
		return nil, fmt.Errorf("%w: invalidator", ErrMissingDependency)
	case deps.Ledger == nil:
		return nil, fmt.Errorf("%w: ledger", ErrMissingDependency)
	}
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{
		synth:       deps.Synthesizer,
		binder:      deps.Binder,
		invalidator: deps.Invalidator,
		ledger:      deps.Ledger,
		logger:      logger,
	}, nil
}

// Apply tints the folder at path with c. Relative paths are resolved against
// the working directory before anything is written or recorded.
func (e *Engine) Apply(ctx context.Context, path string, c tint.ColorSpec) (outcome.Outcome, error) {
	var out outcome.Outcome
	path = absPath(path)

	container, err := e.synth.Synthesize(c)
	if err != nil {
		return out, fmt.Errorf("synthesize icon for %s: %w", c, err)
	}
	if err := e.binder.Apply(path, container); err != nil {
		return out, err
	}
	e.logger.Debug("override bound", "path", path, "color", c)

	out.Merge(e.invalidator.Invalidate(ctx, path))
	e.record(&out, StepLedgerUpsert, path, e.ledger.Upsert(path, c))
	return out, nil
}

// Remove reverses the override of path. The error is always nil; every
// problem is reported in the outcome.
func (e *Engine) Remove(ctx context.Context, path string) (outcome.Outcome, error) {
	var out outcome.Outcome
	path = absPath(path)

	out.Merge(e.binder.Remove(path))
	out.Merge(e.invalidator.Invalidate(ctx, path))
	e.record(&out, StepLedgerRemove, path, e.ledger.Remove(path))
	return out, nil
}

// ListHistory returns the ledger entries whose folders still exist. A failure
// to persist the pruned ledger is reported in the outcome.
func (e *Engine) ListHistory() ([]ledger.Entry, outcome.Outcome) {
	var out outcome.Outcome
	entries, err := e.ledger.List()
	e.record(&out, StepLedgerList, "", err)
	return entries, out
}

// ColorFor returns the recorded color of path.
func (e *Engine) ColorFor(path string) (tint.ColorSpec, bool) {
	return e.ledger.ColorFor(absPath(path))
}

// Forget drops path from the ledger without touching the folder.
func (e *Engine) Forget(path string) error {
	if err := e.ledger.Remove(absPath(path)); err != nil {
		return fmt.Errorf("forget %s: %w", path, err)
	}
	return nil
}

func (e *Engine) record(out *outcome.Outcome, step, path string, err error) {
	if out.Record(step, err) {
		f, _ := out.Step(step)
		e.logger.Debug("best-effort step failed", "step", step, "reason", f.Reason, "path", path, "error", err)
	}
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
