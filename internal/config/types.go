// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/colorit/colorit/internal/platform"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidFileName is returned when an artifact FileName is empty or contains a separator.
	ErrInvalidFileName = errors.New("invalid file name")
	// ErrInvalidDuration is returned when a timing value is not positive.
	ErrInvalidDuration = errors.New("invalid duration")
	// ErrInvalidHelperCommand is returned when the helper argv has an empty program.
	ErrInvalidHelperCommand = errors.New("invalid helper command")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme used for rendered help.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// FileName is the bare name of an artifact written inside a colored folder.
	FileName string

	// InvalidFileNameError is returned when a FileName is empty or contains a
	// path separator.
	InvalidFileNameError struct {
		Field string
		Value FileName
	}

	// InvalidDurationError is returned when a timing value is zero or negative.
	InvalidDurationError struct {
		Field string
		Value time.Duration
	}

	// InvalidHelperCommandError is returned when refresh.helper_command names
	// no program.
	InvalidHelperCommandError struct {
		Value []string
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Ledger configures the color history file
		Ledger LedgerConfig `json:"ledger" mapstructure:"ledger"`
		// Binding configures the artifacts written into colored folders
		Binding BindingConfig `json:"binding" mapstructure:"binding"`
		// Refresh configures shell cache invalidation
		Refresh RefreshConfig `json:"refresh" mapstructure:"refresh"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
		// Watch configures the guard watcher
		Watch WatchConfig `json:"watch" mapstructure:"watch"`
	}

	// LedgerConfig configures the color history file.
	LedgerConfig struct {
		// Path overrides the history file location (default: <config dir>/history.json)
		Path string `json:"path" mapstructure:"path"`
	}

	// BindingConfig names the files written inside a colored folder.
	BindingConfig struct {
		// IconFile is the icon container file name (default: folder.ico)
		IconFile FileName `json:"icon_file" mapstructure:"icon_file"`
		// DescriptorFile is the shell descriptor file name (default: desktop.ini)
		DescriptorFile FileName `json:"descriptor_file" mapstructure:"descriptor_file"`
	}

	// RefreshConfig configures the cache invalidation choreography.
	RefreshConfig struct {
		// HelperCommand is the cache-rebuild helper argv (default: ie4uinit.exe -show)
		HelperCommand []string `json:"helper_command" mapstructure:"helper_command"`
		// HelperTimeout bounds the wait on the helper (default: 1s)
		HelperTimeout time.Duration `json:"helper_timeout" mapstructure:"helper_timeout"`
		// ViewRefreshDelay is slept before open views are refreshed (default: 100ms)
		ViewRefreshDelay time.Duration `json:"view_refresh_delay" mapstructure:"view_refresh_delay"`
		// FallbackDelay is slept before the final global flush (default: 200ms)
		FallbackDelay time.Duration `json:"fallback_delay" mapstructure:"fallback_delay"`
		// CacheDir holds the shell's icon cache artifacts (default: platform-specific)
		CacheDir string `json:"cache_dir" mapstructure:"cache_dir"`
		// CachePatterns selects the artifacts removed from CacheDir
		CachePatterns []string `json:"cache_patterns" mapstructure:"cache_patterns"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables debug logging
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// WatchConfig configures the guard watcher.
	WatchConfig struct {
		// Debounce is the quiet period before vanished overrides are re-applied (default: 500ms)
		Debounce time.Duration `json:"debounce" mapstructure:"debounce"`
	}
)

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// String returns the string representation of the FileName.
func (n FileName) String() string { return string(n) }

// validate reports whether the name can be created inside a folder on
// Windows: non-blank, no separators or forbidden characters, not a device name.
func (n FileName) validate(field string) []error {
	s := string(n)
	if strings.TrimSpace(s) == "" || platform.HasIllegalChars(s) || platform.IsReservedName(s) {
		return []error{&InvalidFileNameError{Field: field, Value: n}}
	}
	return nil
}

func (e *InvalidFileNameError) Error() string {
	return fmt.Sprintf("%s: invalid file name %q: must be a plain Windows file name", e.Field, e.Value)
}

func (e *InvalidFileNameError) Unwrap() error { return ErrInvalidFileName }

func (e *InvalidDurationError) Error() string {
	return fmt.Sprintf("%s: duration %s must be positive", e.Field, e.Value)
}

func (e *InvalidDurationError) Unwrap() error { return ErrInvalidDuration }

func (e *InvalidHelperCommandError) Error() string {
	return fmt.Sprintf("refresh.helper_command %q: first element must name a program", e.Value)
}

func (e *InvalidHelperCommandError) Unwrap() error { return ErrInvalidHelperCommand }

func positive(field string, d time.Duration) []error {
	if d <= 0 {
		return []error{&InvalidDurationError{Field: field, Value: d}}
	}
	return nil
}

// IsValid checks both artifact names.
func (c BindingConfig) IsValid() (bool, []error) {
	var errs []error
	errs = append(errs, c.IconFile.validate("binding.icon_file")...)
	errs = append(errs, c.DescriptorFile.validate("binding.descriptor_file")...)
	return len(errs) == 0, errs
}

// IsValid checks the timings and the helper argv. An empty HelperCommand
// disables the helper step and is valid.
func (c RefreshConfig) IsValid() (bool, []error) {
	var errs []error
	if len(c.HelperCommand) > 0 && strings.TrimSpace(c.HelperCommand[0]) == "" {
		errs = append(errs, &InvalidHelperCommandError{Value: c.HelperCommand})
	}
	errs = append(errs, positive("refresh.helper_timeout", c.HelperTimeout)...)
	errs = append(errs, positive("refresh.view_refresh_delay", c.ViewRefreshDelay)...)
	errs = append(errs, positive("refresh.fallback_delay", c.FallbackDelay)...)
	return len(errs) == 0, errs
}

// IsValid returns whether the Config has valid fields.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Binding.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Refresh.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	errs = append(errs, positive("watch.debounce", c.Watch.Debounce)...)
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Validate is IsValid collapsed into a single *InvalidConfigError, or nil.
func (c Config) Validate() error {
	if valid, errs := c.IsValid(); !valid {
		return errs[0]
	}
	return nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, fe := range e.FieldErrors {
		msgs[i] = fe.Error()
	}
	return fmt.Sprintf("invalid config: %d field error(s): %s", len(e.FieldErrors), strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Ledger: LedgerConfig{
			Path: "", // resolved against the config directory
		},
		Binding: BindingConfig{
			IconFile:       "folder.ico",
			DescriptorFile: "desktop.ini",
		},
		Refresh: RefreshConfig{
			HelperCommand:    []string{"ie4uinit.exe", "-show"},
			HelperTimeout:    time.Second,
			ViewRefreshDelay: 100 * time.Millisecond,
			FallbackDelay:    200 * time.Millisecond,
			CacheDir:         "", // platform default
			CachePatterns:    []string{"iconcache*", "thumbcache*"},
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
	}
}
