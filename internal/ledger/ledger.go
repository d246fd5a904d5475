// SPDX-License-Identifier: MPL-2.0

package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/colorit/colorit/internal/outcome"
	"github.com/colorit/colorit/pkg/tint"
)

const (
	// Capacity is the maximum number of entries kept.
	Capacity = 50
	// DefaultFileName is the ledger file name inside the config directory.
	DefaultFileName = "history.json"

	// StepLoad is the outcome step name for loading the backing file.
	StepLoad = "load-ledger"

	fileMode = 0o644
	dirMode  = 0o755
	lockMode = 0o600

	lockSuffix = ".lock"
)

type (
	// Entry records one colored folder. Field names match the persisted
	// JSON keys.
	Entry struct {
		Path        string    `json:"Path"`
		ColorHex    string    `json:"ColorHex"`
		ColoredDate Timestamp `json:"ColoredDate"`
	}

	// Ledger is the ordered sequence plus its backing file. Every operation
	// re-reads the file under an exclusive lock on a sibling ".lock" file,
	// so several processes can share one ledger. A Ledger is not safe for
	// concurrent use by multiple goroutines.
	Ledger struct {
		path      string
		entries   []Entry
		held      *fileLock
		now       func() time.Time
		dirExists func(string) bool
		logger    *log.Logger
	}

	// Option configures a Ledger.
	Option func(*Ledger)
)

// WithNow replaces the timestamp source.
func WithNow(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithDirExists replaces the existence check used by List.
func WithDirExists(fn func(string) bool) Option {
	return func(l *Ledger) { l.dirExists = fn }
}

// WithLogger sets the logger.
func WithLogger(lg *log.Logger) Option {
	return func(l *Ledger) { l.logger = lg }
}

// Open loads the ledger stored at path. A missing file yields an empty
// ledger. An unparsable file also yields an empty ledger; the corruption is
// reported in the returned outcome and the file is left for the next write
// to replace.
func Open(path string, opts ...Option) (*Ledger, outcome.Outcome) {
	l := &Ledger{
		path:      path,
		now:       time.Now,
		dirExists: isDir,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = log.New(io.Discard)
	}

	var out outcome.Outcome
	initial := func() error {
		entries, err := load(path)
		switch {
		case err == nil:
			l.entries = entries
		case errors.Is(err, outcome.ErrCorrupt):
			out.RecordReason(StepLoad, outcome.ReasonCorrupt, err)
			l.logger.Warn("ledger is corrupt, starting empty", "path", path, "error", err)
		case errors.Is(err, fs.ErrNotExist):
		default:
			out.Record(StepLoad, err)
			l.logger.Warn("ledger could not be read, starting empty", "path", path, "error", err)
		}
		return nil
	}
	if err := l.withLock(false, initial); err != nil {
		l.logger.Debug("ledger lock unavailable, reading unlocked", "path", path, "error", err)
		_ = initial()
	}
	return l, out
}

// Path returns the backing file path.
func (l *Ledger) Path() string { return l.path }

// Len returns the number of stored entries without pruning.
func (l *Ledger) Len() int {
	l.refresh()
	return len(l.entries)
}

// Exclusive runs fn while holding the ledger lock. Other processes block on
// the ledger until fn returns; calls fn makes on l reuse the held lock.
func (l *Ledger) Exclusive(fn func() error) error {
	return l.withLock(true, fn)
}

// Upsert records color c for path. An existing entry is updated in place;
// a new one goes to the front and the tail is evicted past Capacity.
func (l *Ledger) Upsert(path string, c tint.ColorSpec) error {
	return l.withLock(true, func() error {
		l.reload()
		e := Entry{Path: path, ColorHex: c.Hex(), ColoredDate: Timestamp{l.now()}}
		if i := l.index(path); i >= 0 {
			l.entries[i].ColorHex = e.ColorHex
			l.entries[i].ColoredDate = e.ColoredDate
		} else {
			l.entries = slices.Insert(l.entries, 0, e)
			if len(l.entries) > Capacity {
				l.entries = l.entries[:Capacity]
			}
		}
		return l.save()
	})
}

// Remove deletes every entry matching path. The file is rewritten even when
// nothing matched.
func (l *Ledger) Remove(path string) error {
	return l.withLock(true, func() error {
		l.reload()
		l.entries = slices.DeleteFunc(l.entries, func(e Entry) bool { return samePath(e.Path, path) })
		return l.save()
	})
}

// List returns the entries whose folder still exists, in ledger order.
// Entries for vanished folders are dropped and the pruned ledger persisted.
func (l *Ledger) List() ([]Entry, error) {
	var entries []Entry
	err := l.withLock(false, func() error {
		l.reload()
		before := len(l.entries)
		l.entries = slices.DeleteFunc(l.entries, func(e Entry) bool { return !l.dirExists(e.Path) })
		entries = slices.Clone(l.entries)
		if pruned := before - len(l.entries); pruned > 0 {
			l.logger.Debug("pruned vanished folders from ledger", "count", pruned)
			return l.save()
		}
		return nil
	})
	return entries, err
}

// Lookup returns the entry for path.
func (l *Ledger) Lookup(path string) (Entry, bool) {
	l.refresh()
	return l.lookup(path)
}

// ColorFor returns the recorded color of path. An unparsable stored color
// counts as absent.
func (l *Ledger) ColorFor(path string) (tint.ColorSpec, bool) {
	l.refresh()
	e, ok := l.lookup(path)
	if !ok {
		return tint.ColorSpec{}, false
	}
	c, err := tint.Parse(e.ColorHex)
	if err != nil {
		l.logger.Debug("stored color does not parse", "path", e.Path, "color", e.ColorHex, "error", err)
		return tint.ColorSpec{}, false
	}
	return c, true
}

func (l *Ledger) lookup(path string) (Entry, bool) {
	if i := l.index(path); i >= 0 {
		return l.entries[i], true
	}
	return Entry{}, false
}

func (l *Ledger) index(path string) int {
	return slices.IndexFunc(l.entries, func(e Entry) bool { return samePath(e.Path, path) })
}

// withLock runs fn under the ledger lock, reusing one already held. With
// create unset a missing ledger directory means nothing to guard, and fn
// runs unlocked.
func (l *Ledger) withLock(create bool, fn func() error) error {
	if l.held != nil {
		return fn()
	}
	if create {
		if err := os.MkdirAll(filepath.Dir(l.path), dirMode); err != nil {
			return fmt.Errorf("create ledger directory: %w", err)
		}
	}
	lock, err := lockFile(l.path + lockSuffix)
	if err != nil {
		if !create && errors.Is(err, fs.ErrNotExist) {
			return fn()
		}
		return err
	}
	l.held = lock
	defer func() {
		l.held = nil
		if err := lock.release(); err != nil {
			l.logger.Debug("ledger unlock failed", "path", l.path, "error", err)
		}
	}()
	return fn()
}

// refresh reloads the entries for a read-only call.
func (l *Ledger) refresh() {
	err := l.withLock(false, func() error {
		l.reload()
		return nil
	})
	if err != nil {
		l.logger.Debug("ledger lock unavailable, reading unlocked", "path", l.path, "error", err)
		l.reload()
	}
}

// reload replaces the entries with the backing file's content. A file that
// cannot be read keeps the entries already loaded.
func (l *Ledger) reload() {
	entries, err := load(l.path)
	switch {
	case err == nil:
		l.entries = entries
	case errors.Is(err, fs.ErrNotExist):
		l.entries = nil
	case errors.Is(err, outcome.ErrCorrupt):
		l.logger.Warn("ledger is corrupt, starting empty", "path", l.path, "error", err)
		l.entries = nil
	default:
		l.logger.Warn("ledger could not be re-read", "path", l.path, "error", err)
	}
}

// save rewrites the backing file with the full sequence.
func (l *Ledger) save() error {
	entries := l.entries
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(l.path), dirMode); err != nil {
		return fmt.Errorf("create ledger directory: %w", err)
	}
	if err := os.WriteFile(l.path, data, fileMode); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	return nil
}

func load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &outcome.CorruptError{Path: path, Err: err}
	}
	return entries, nil
}

// samePath compares paths case-insensitively without further normalization.
func samePath(a, b string) bool { return strings.EqualFold(a, b) }

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
