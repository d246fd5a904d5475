// SPDX-License-Identifier: MPL-2.0

package binding

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/colorit/colorit/internal/outcome"
	"github.com/colorit/colorit/internal/platform"
	"github.com/colorit/colorit/pkg/ico"
)

const (
	// DefaultIconFile is the icon container file name inside a colored folder.
	DefaultIconFile = "folder.ico"
	// DefaultDescriptorFile is the shell descriptor file name.
	DefaultDescriptorFile = "desktop.ini"

	// Remove step names reported in outcome.SoftFailure.Step.
	StepIcon       = "remove-icon"
	StepDescriptor = "remove-descriptor"
	StepFolder     = "reset-folder"

	fileMode = 0o644
)

var (
	// ErrInvalidFileName is returned when an artifact name is empty or
	// contains a path separator.
	ErrInvalidFileName = errors.New("invalid artifact file name")
	// ErrNoIconResource is returned when a descriptor names no icon.
	ErrNoIconResource = errors.New("descriptor has no IconResource")
)

type (
	// Binder writes and removes the shell override of a folder.
	Binder struct {
		cfg    Config
		attrs  Attributes
		logger *log.Logger
	}

	// Config holds the artifact file names.
	Config struct {
		// IconFile is the icon container file name (default: folder.ico)
		IconFile string
		// DescriptorFile is the descriptor file name (default: desktop.ini)
		DescriptorFile string
	}

	// Option configures a Binder.
	Option func(*Binder)
)

// WithAttributes replaces the host attribute store.
func WithAttributes(a Attributes) Option {
	return func(b *Binder) { b.attrs = a }
}

// WithLogger sets the logger used for soft failures.
func WithLogger(l *log.Logger) Option {
	return func(b *Binder) { b.logger = l }
}

// DefaultConfig returns the standard artifact names.
func DefaultConfig() Config {
	return Config{IconFile: DefaultIconFile, DescriptorFile: DefaultDescriptorFile}
}

// Validate checks that both artifact names are bare file names.
func (c Config) Validate() error {
	for _, name := range []string{c.IconFile, c.DescriptorFile} {
		if name == "" || name == "." || name == ".." || platform.HasIllegalChars(name) || platform.IsReservedName(name) {
			return fmt.Errorf("%w: %q", ErrInvalidFileName, name)
		}
	}
	return nil
}

// New creates a Binder. Empty names in cfg fall back to the defaults.
func New(cfg Config, opts ...Option) (*Binder, error) {
	if cfg.IconFile == "" {
		cfg.IconFile = DefaultIconFile
	}
	if cfg.DescriptorFile == "" {
		cfg.DescriptorFile = DefaultDescriptorFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := &Binder{cfg: cfg}
	for _, opt := range opts {
		opt(b)
	}
	if b.attrs == nil {
		b.attrs = SystemAttributes()
	}
	if b.logger == nil {
		b.logger = log.New(io.Discard)
	}
	return b, nil
}

// IconPath returns the icon container path inside dir.
func (b *Binder) IconPath(dir string) string { return filepath.Join(dir, b.cfg.IconFile) }

// DescriptorPath returns the descriptor path inside dir.
func (b *Binder) DescriptorPath(dir string) string {
	return filepath.Join(dir, b.cfg.DescriptorFile)
}

// Apply binds c to the folder at path. It fails with a
// *outcome.FolderNotFoundError if path is not an existing directory, and with
// a *outcome.PermissionDeniedError when the OS rejects a write. Steps already
// completed are not rolled back.
func (b *Binder) Apply(path string, c *ico.Container) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return &outcome.FolderNotFoundError{Path: path}
	}

	data, err := ico.Encode(c)
	if err != nil {
		return fmt.Errorf("encode icon container: %w", err)
	}
	iconPath := b.IconPath(dir)
	descPath := b.DescriptorPath(dir)

	// A previous override leaves hidden+system files the OS refuses to
	// overwrite in place.
	for _, p := range []string{iconPath, descPath} {
		if err := b.attrs.Set(p, AttrNormal); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fsError("reset attributes", p, err)
		}
	}

	if err := os.WriteFile(iconPath, data, fileMode); err != nil {
		return fsError("write icon", iconPath, err)
	}

	text, err := Descriptor{IconResource: iconPath}.MarshalText()
	if err != nil {
		return err
	}
	if err := os.WriteFile(descPath, text, fileMode); err != nil {
		return fsError("write descriptor", descPath, err)
	}

	cur, err := b.attrs.Get(dir)
	if err != nil {
		return fsError("read attributes", dir, err)
	}
	if err := b.attrs.Set(dir, (cur|AttrSystem)&^AttrReadOnly); err != nil {
		return fsError("set attributes", dir, err)
	}

	for _, p := range []string{iconPath, descPath} {
		if err := b.attrs.Set(p, AttrHidden|AttrSystem); err != nil {
			return fsError("set attributes", p, err)
		}
	}
	return nil
}

// Remove reverses Apply. Each artifact is handled independently, missing
// artifacts are skipped silently, and every other failure is recorded in the
// returned outcome rather than returned.
func (b *Binder) Remove(path string) outcome.Outcome {
	var out outcome.Outcome
	dir, err := filepath.Abs(path)
	if err != nil {
		dir = path
	}

	b.record(&out, StepIcon, dir, b.removeFile(b.IconPath(dir)))
	b.record(&out, StepDescriptor, dir, b.removeFile(b.DescriptorPath(dir)))
	b.record(&out, StepFolder, dir, b.resetFolder(dir))
	return out
}

// Bound reports whether both override artifacts exist inside path.
func (b *Binder) Bound(path string) bool {
	for _, p := range []string{b.IconPath(path), b.DescriptorPath(path)} {
		if _, err := os.Lstat(p); err != nil {
			return false
		}
	}
	return true
}

// ReadDescriptor parses the descriptor inside path.
func (b *Binder) ReadDescriptor(path string) (Descriptor, error) {
	var d Descriptor
	data, err := os.ReadFile(b.DescriptorPath(path))
	if err != nil {
		return d, err
	}
	err = d.UnmarshalText(data)
	return d, err
}

func (b *Binder) removeFile(p string) error {
	if err := b.attrs.Set(p, AttrNormal); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fsError("clear attributes", p, err)
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fsError("delete", p, err)
	}
	if m, ok := b.attrs.(*MemoryAttributes); ok {
		m.Forget(p)
	}
	return nil
}

func (b *Binder) resetFolder(dir string) error {
	cur, err := b.attrs.Get(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fsError("read attributes", dir, err)
	}
	if cur&(AttrSystem|AttrReadOnly) == 0 {
		return nil
	}
	if err := b.attrs.Set(dir, cur&^(AttrSystem|AttrReadOnly)); err != nil {
		return fsError("clear attributes", dir, err)
	}
	return nil
}

func (b *Binder) record(out *outcome.Outcome, step, path string, err error) {
	if out.Record(step, err) {
		f, _ := out.Step(step)
		b.logger.Debug("best-effort step failed", "step", step, "reason", f.Reason, "path", path, "error", err)
	}
}

func fsError(op, path string, err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return &outcome.PermissionDeniedError{Op: op, Path: path, Err: err}
	}
	return fmt.Errorf("%s %s: %w", op, path, err)
}
