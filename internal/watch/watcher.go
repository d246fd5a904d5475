// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// defaultDebounce is the quiet period after the last relevant event before
// OnVanish fires.
const defaultDebounce = 500 * time.Millisecond

// ErrNoFolders is returned by New when none of the folders could be watched.
var ErrNoFolders = errors.New("watch: no folder to guard")

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Folders are the directories to guard. Missing folders are skipped
		// and the rest are reported to OnVanish as absolute paths.
		Folders []string

		// Artifacts are doublestar patterns matched case-insensitively against
		// the base name of a removed or renamed file (e.g. "folder.ico").
		Artifacts []string

		// Debounce is the quiet period after the last event before the callback
		// fires. Zero or negative values fall back to defaultDebounce.
		Debounce time.Duration

		// OnVanish is called after the debounce window with the guarded
		// folders that lost an artifact. A nil callback is a no-op.
		OnVanish func(ctx context.Context, folders []string) error

		// Logger receives watcher diagnostics. nil discards them.
		Logger *log.Logger
	}

	// Watcher monitors guarded folders and fires a debounced callback when an
	// override artifact disappears. Run must be called exactly once; calling
	// it a second time returns an error.
	Watcher struct {
		cfg       Config
		fsw       *fsnotify.Watcher
		artifacts []string
		logger    *log.Logger
		debounce  time.Duration
		started   atomic.Bool

		foldersMu sync.Mutex
		// folders maps a case-folded absolute path to the absolute path.
		folders map[string]string
	}
)

// New creates a Watcher and registers every existing folder in cfg.Folders.
func New(cfg Config) (*Watcher, error) {
	if len(cfg.Artifacts) == 0 {
		return nil, fmt.Errorf("watch: no artifact patterns")
	}
	artifacts := make([]string, 0, len(cfg.Artifacts))
	for _, pat := range cfg.Artifacts {
		if !doublestar.ValidatePattern(pat) {
			return nil, fmt.Errorf("watch: invalid artifact pattern %q", pat)
		}
		artifacts = append(artifacts, strings.ToLower(pat))
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		cfg:       cfg,
		fsw:       fsw,
		artifacts: artifacts,
		logger:    logger,
		debounce:  debounce,
		folders:   make(map[string]string),
	}
	for _, folder := range cfg.Folders {
		w.addFolder(folder)
	}
	if len(w.folders) == 0 {
		fsw.Close() //nolint:errcheck // best-effort cleanup
		return nil, ErrNoFolders
	}
	return w, nil
}

// Folders returns the guarded folders, sorted.
func (w *Watcher) Folders() []string {
	w.foldersMu.Lock()
	defer w.foldersMu.Unlock()
	out := slices.Collect(maps.Values(w.folders))
	slices.Sort(out)
	return out
}

// Run blocks until ctx is cancelled, processing filesystem events and
// dispatching debounced callbacks. It returns nil on clean context
// cancellation and propagates fatal watcher errors.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return fmt.Errorf("watch: Run called more than once")
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		running atomic.Bool
	)

	// fire drains the pending set and invokes OnVanish. A callback that is
	// still running pushes the next attempt out by one debounce period so
	// pending folders are not lost.
	fire := func() {
		if ctx.Err() != nil {
			return
		}
		if !running.CompareAndSwap(false, true) {
			w.logger.Debug("previous re-apply still running, retrying later")
			mu.Lock()
			if timer != nil {
				timer.Reset(w.debounce)
			}
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		folders := slices.Sorted(maps.Keys(pending))
		clear(pending)
		mu.Unlock()

		if w.cfg.OnVanish != nil {
			if err := w.cfg.OnVanish(ctx, folders); err != nil {
				w.logger.Error("re-apply failed", "error", err)
			}
		}
	}

	defer func() {
		mu.Lock()
		localTimer := timer
		mu.Unlock()
		if localTimer != nil {
			localTimer.Stop()
		}
		if closeErr := w.fsw.Close(); closeErr != nil {
			w.logger.Warn("close fsnotify", "error", closeErr)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return fmt.Errorf("watch: fsnotify event channel closed unexpectedly")
			}
			folder, ok := w.classify(evt)
			if !ok {
				continue
			}
			w.logger.Debug("override artifact vanished", "path", evt.Name, "op", evt.Op.String())

			mu.Lock()
			pending[folder] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return fmt.Errorf("watch: fsnotify error channel closed unexpectedly")
			}
			if isFatal(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			w.logger.Warn("fsnotify error", "error", err)
		}
	}
}

// classify returns the guarded folder an event concerns, if the event removed
// or renamed an override artifact. A removed guarded folder is dropped.
func (w *Watcher) classify(evt fsnotify.Event) (string, bool) {
	if !evt.Has(fsnotify.Remove) && !evt.Has(fsnotify.Rename) {
		return "", false
	}

	w.foldersMu.Lock()
	defer w.foldersMu.Unlock()

	if folder, ok := w.folders[folderKey(evt.Name)]; ok {
		w.logger.Info("guarded folder removed", "path", folder)
		delete(w.folders, folderKey(evt.Name))
		return "", false
	}

	folder, ok := w.folders[folderKey(filepath.Dir(evt.Name))]
	if !ok || !w.isArtifact(filepath.Base(evt.Name)) {
		return "", false
	}
	return folder, true
}

func (w *Watcher) isArtifact(name string) bool {
	name = strings.ToLower(name)
	for _, pat := range w.artifacts {
		if matched, err := doublestar.Match(pat, name); err == nil && matched {
			return true
		}
	}
	return false
}

func (w *Watcher) addFolder(folder string) {
	abs, err := filepath.Abs(folder)
	if err != nil {
		w.logger.Warn("skipping folder", "path", folder, "error", err)
		return
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		w.logger.Warn("skipping missing folder", "path", folder)
		return
	}
	if err := w.fsw.Add(abs); err != nil {
		w.logger.Warn("cannot watch folder", "path", folder, "error", err)
		return
	}
	w.folders[folderKey(abs)] = abs
}

// isFatal reports whether err leaves the watcher unable to deliver events.
func isFatal(err error) bool {
	return slices.ContainsFunc(fatalErrnos, func(errno syscall.Errno) bool {
		return errors.Is(err, errno)
	})
}

func folderKey(path string) string {
	return strings.ToLower(filepath.Clean(path))
}
