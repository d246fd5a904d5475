// SPDX-License-Identifier: MPL-2.0

package refresh

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
)

// Scoped change events.
const (
	EventItemUpdated ChangeEvent = 1 << iota
	EventDirUpdated
)

// Global change events.
const (
	// GlobalAssocChanged tells the shell file associations changed, which
	// makes it re-evaluate every icon. Expensive.
	GlobalAssocChanged GlobalEvent = iota + 1
	// GlobalFlushAll is a flushing catch-all notification used as a fallback.
	GlobalFlushAll
)

// DefaultCachePatterns match the shell's icon and thumbnail cache databases.
var DefaultCachePatterns = []string{"iconcache*", "thumbcache*"}

// ErrInvalidPattern is returned when a cache pattern is not a valid glob.
var ErrInvalidPattern = errors.New("invalid cache pattern")

type (
	// ChangeEvent is a set of path-scoped change notifications.
	ChangeEvent uint8

	// GlobalEvent is a shell-wide change notification.
	GlobalEvent uint8

	// Notifier is the host shell surface the Invalidator drives.
	Notifier interface {
		// ClearCaches deletes on-disk icon and thumbnail cache artifacts.
		ClearCaches() error
		// NotifyScoped announces ev for a single path.
		NotifyScoped(path string, ev ChangeEvent) error
		// NotifyGlobal broadcasts a shell-wide notification.
		NotifyGlobal(ev GlobalEvent) error
		// TouchTimestamp bumps the last-modified time of path.
		TouchTimestamp(path string) error
		// RefreshOpenViews asks open file-manager windows to redraw.
		RefreshOpenViews(path string) error
	}

	// ShellNotifier is the production Notifier. Cache clearing and timestamp
	// updates work everywhere; shell notifications and window refreshes need
	// Windows and report errors.ErrUnsupported elsewhere.
	ShellNotifier struct {
		cacheDir string
		patterns []string
		now      func() time.Time
		logger   *log.Logger
	}

	// NotifierOption configures a ShellNotifier.
	NotifierOption func(*ShellNotifier)
)

// String implements fmt.Stringer.
func (e ChangeEvent) String() string {
	switch e {
	case EventItemUpdated:
		return "item-updated"
	case EventDirUpdated:
		return "dir-updated"
	case EventItemUpdated | EventDirUpdated:
		return "item-updated|dir-updated"
	default:
		return fmt.Sprintf("ChangeEvent(%d)", uint8(e))
	}
}

// String implements fmt.Stringer.
func (e GlobalEvent) String() string {
	switch e {
	case GlobalAssocChanged:
		return "assoc-changed"
	case GlobalFlushAll:
		return "flush-all"
	default:
		return fmt.Sprintf("GlobalEvent(%d)", uint8(e))
	}
}

// WithCacheDir overrides the directory holding cache artifacts.
func WithCacheDir(dir string) NotifierOption {
	return func(n *ShellNotifier) { n.cacheDir = dir }
}

// WithCachePatterns overrides the cache artifact name patterns.
func WithCachePatterns(patterns ...string) NotifierOption {
	return func(n *ShellNotifier) { n.patterns = patterns }
}

// WithNow overrides the time source used by TouchTimestamp.
func WithNow(now func() time.Time) NotifierOption {
	return func(n *ShellNotifier) { n.now = now }
}

// WithNotifierLogger sets the logger.
func WithNotifierLogger(l *log.Logger) NotifierOption {
	return func(n *ShellNotifier) { n.logger = l }
}

// NewShellNotifier creates a ShellNotifier. The cache directory defaults to
// DefaultCacheDir().
func NewShellNotifier(opts ...NotifierOption) (*ShellNotifier, error) {
	n := &ShellNotifier{
		cacheDir: DefaultCacheDir(),
		patterns: DefaultCachePatterns,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.logger == nil {
		n.logger = log.New(io.Discard)
	}
	for _, p := range n.patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, p)
		}
	}
	return n, nil
}

// ClearCaches deletes every regular file in the cache directory whose name
// matches one of the patterns, ignoring case like the Windows file system
// does. Subdirectories are only searched by patterns containing a slash. A
// missing directory means there is nothing to clear. Files the shell holds
// open are skipped and reported.
func (n *ShellNotifier) ClearCaches() error {
	if n.cacheDir == "" {
		return fmt.Errorf("clear caches: no cache directory: %w", errors.ErrUnsupported)
	}
	if _, err := os.Stat(n.cacheDir); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	patterns := make([]string, len(n.patterns))
	deep := false
	for i, p := range n.patterns {
		patterns[i] = strings.ToLower(p)
		deep = deep || strings.Contains(p, "/")
	}

	var errs []error
	walkErr := fs.WalkDir(os.DirFS(n.cacheDir), ".", func(name string, d fs.DirEntry, err error) error {
		switch {
		case err != nil:
			errs = append(errs, err)
			return nil
		case d.IsDir():
			if name != "." && !deep {
				return fs.SkipDir
			}
			return nil
		case !d.Type().IsRegular() || !matchAny(patterns, strings.ToLower(name)):
			return nil
		}
		p := filepath.Join(n.cacheDir, filepath.FromSlash(name))
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
			return nil
		}
		n.logger.Debug("removed cache artifact", "path", p)
		return nil
	})
	if walkErr != nil {
		errs = append(errs, walkErr)
	}
	return errors.Join(errs...)
}

// matchAny reports whether name matches one of the validated patterns.
func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if doublestar.MatchUnvalidated(p, name) {
			return true
		}
	}
	return false
}

// TouchTimestamp sets the access and modification times of path to now.
func (n *ShellNotifier) TouchTimestamp(path string) error {
	now := n.now()
	return os.Chtimes(path, now, now)
}
