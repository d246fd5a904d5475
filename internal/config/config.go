// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/colorit/colorit/internal/issue"
	"github.com/colorit/colorit/internal/platform"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "colorit"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// LedgerFileName is the default history file inside the config directory.
	LedgerFileName = "history.json"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the colorit configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case platform.Windows:
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// ConfigFilePath returns the default config file location.
func ConfigFilePath() (string, error) {
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt), nil
}

// LedgerPath resolves cfg.Ledger.Path, defaulting to history.json in the
// config directory.
func LedgerPath(cfg *Config) (string, error) {
	if cfg != nil && cfg.Ledger.Path != "" {
		return cfg.Ledger.Path, nil
	}
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, LedgerFileName), nil
}

func loadFailed(path string, err error) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithSuggestion("Check that the file contains valid CUE syntax").
		WithSuggestion("Durations are strings such as \"250ms\"; file names carry no path separators").
		WithSuggestion("Run 'colorit config dump' to see every key with its default").
		WithIssue(issue.ConfigLoadFailedId).
		Wrap(err).
		BuildError()
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state. The second result is the file that was read, or ""
// when defaults were used.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("ledger.path", defaults.Ledger.Path)
	v.SetDefault("binding.icon_file", defaults.Binding.IconFile)
	v.SetDefault("binding.descriptor_file", defaults.Binding.DescriptorFile)
	v.SetDefault("refresh.helper_command", defaults.Refresh.HelperCommand)
	v.SetDefault("refresh.helper_timeout", defaults.Refresh.HelperTimeout)
	v.SetDefault("refresh.view_refresh_delay", defaults.Refresh.ViewRefreshDelay)
	v.SetDefault("refresh.fallback_delay", defaults.Refresh.FallbackDelay)
	v.SetDefault("refresh.cache_dir", defaults.Refresh.CacheDir)
	v.SetDefault("refresh.cache_patterns", defaults.Refresh.CachePatterns)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("watch.debounce", defaults.Watch.Debounce)

	resolvedPath, err := resolveConfigFile(opts)
	if err != nil {
		return nil, "", err
	}
	if resolvedPath != "" {
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			return nil, "", loadFailed(resolvedPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	// CUE checks shapes; ranges and cross-field rules are checked here.
	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Timings must be positive durations").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(err).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// resolveConfigFile picks the file to load: the explicit path (which must
// exist), then the config directory, then ./config.cue. "" means defaults.
func resolveConfigFile(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Run 'colorit config init' to create a default configuration").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(fmt.Errorf("config file not found: %w", fs.ErrNotExist)).
				BuildError()
		}
		return opts.ConfigFilePath, nil
	}

	cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
	if err != nil {
		return "", err
	}

	cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
	if fileExists(cuePath) {
		return cuePath, nil
	}

	localCuePath := ConfigFileName + "." + ConfigFileExt
	if fileExists(localCuePath) {
		return localCuePath, nil
	}

	return "", nil
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config schema,
// and merges its contents into Viper. Concrete(false) lets every field stay
// optional; omitted keys keep their Viper defaults.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := checkFileSize(data, path); err != nil {
		return err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return formatCUEError(userValue.Err(), path)
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return formatCUEError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return formatCUEError(err, path)
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false
	}
	return err == nil && !info.IsDir()
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	cfgDir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(cfgDir, 0o755)
}

// CreateDefaultConfig writes a default config file unless one exists. It
// returns the file path and whether it was created.
func CreateDefaultConfig() (string, bool, error) {
	cfgPath, err := ConfigFilePath()
	if err != nil {
		return "", false, err
	}

	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(cfgPath); err == nil {
		return cfgPath, false, nil
	}

	if err := os.WriteFile(cfgPath, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", false, fmt.Errorf("failed to write config file: %w", err)
	}

	return cfgPath, true, nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// colorit configuration file\n")
	sb.WriteString("// Durations use Go syntax: \"250ms\", \"1s\", \"1m30s\".\n")

	if cfg.Ledger.Path != "" {
		sb.WriteString("\nledger: {\n")
		fmt.Fprintf(&sb, "\tpath: %q\n", cfg.Ledger.Path)
		sb.WriteString("}\n")
	}

	sb.WriteString("\nbinding: {\n")
	fmt.Fprintf(&sb, "\ticon_file:       %q\n", cfg.Binding.IconFile)
	fmt.Fprintf(&sb, "\tdescriptor_file: %q\n", cfg.Binding.DescriptorFile)
	sb.WriteString("}\n")

	sb.WriteString("\nrefresh: {\n")
	fmt.Fprintf(&sb, "\thelper_command: %s\n", cueList(cfg.Refresh.HelperCommand))
	fmt.Fprintf(&sb, "\thelper_timeout:     %q\n", cfg.Refresh.HelperTimeout.String())
	fmt.Fprintf(&sb, "\tview_refresh_delay: %q\n", cfg.Refresh.ViewRefreshDelay.String())
	fmt.Fprintf(&sb, "\tfallback_delay:     %q\n", cfg.Refresh.FallbackDelay.String())
	if cfg.Refresh.CacheDir != "" {
		fmt.Fprintf(&sb, "\tcache_dir: %q\n", cfg.Refresh.CacheDir)
	}
	fmt.Fprintf(&sb, "\tcache_patterns: %s\n", cueList(cfg.Refresh.CachePatterns))
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\tverbose:      %v\n", cfg.UI.Verbose)
	sb.WriteString("}\n")

	sb.WriteString("\nwatch: {\n")
	fmt.Fprintf(&sb, "\tdebounce: %q\n", cfg.Watch.Debounce.String())
	sb.WriteString("}\n")

	return sb.String()
}

func cueList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
