// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/colorit/colorit/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `colorit config` command tree.
func newConfigCommand(app *App, flags *rootFlagValues) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage colorit configuration",
		Long: `Manage colorit configuration.

Configuration is stored in:
  - Linux: ~/.config/colorit/config.cue
  - macOS: ~/Library/Application Support/colorit/config.cue
  - Windows: %APPDATA%\colorit\config.cue`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: withErrorRendering(app, flags, func(cmd *cobra.Command, _ []string) error {
			cfg, path, err := app.loadConfig(cmd.Context(), flags)
			if err != nil {
				return err
			}
			ledgerPath, err := config.LedgerPath(cfg)
			if err != nil {
				return err
			}
			showConfig(app.stdout, cfg, path, ledgerPath)
			return nil
		}),
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfgDir, err := config.ConfigDir()
			if err != nil {
				return err
			}
			cfgPath, err := config.ConfigFilePath()
			if err != nil {
				return err
			}
			fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)
			fmt.Fprintf(app.stdout, "Config file: %s\n", cfgPath)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			path, created, err := config.CreateDefaultConfig()
			if err != nil {
				return fmt.Errorf("failed to create config: %w", err)
			}
			if !created {
				fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", SubtitleStyle.Render("•"), path)
				return nil
			}
			fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: withErrorRendering(app, flags, func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := app.loadConfig(cmd.Context(), flags)
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		}),
	})

	return cfgCmd
}

func showConfig(w io.Writer, cfg *config.Config, path, ledgerPath string) {
	key := PathStyle.Render
	value := SuccessStyle.Render

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)
	if path != "" {
		fmt.Fprintf(w, "%s: %s\n", key("Config file"), path)
	} else {
		fmt.Fprintf(w, "%s: %s\n", key("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintf(w, "%s: %s\n", key("History file"), ledgerPath)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", key("binding"))
	fmt.Fprintf(w, "  icon_file: %s\n", value(cfg.Binding.IconFile.String()))
	fmt.Fprintf(w, "  descriptor_file: %s\n", value(cfg.Binding.DescriptorFile.String()))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", key("refresh"))
	helper := strings.Join(cfg.Refresh.HelperCommand, " ")
	if helper == "" {
		helper = "(disabled)"
	}
	fmt.Fprintf(w, "  helper_command: %s\n", value(helper))
	fmt.Fprintf(w, "  helper_timeout: %s\n", value(cfg.Refresh.HelperTimeout.String()))
	fmt.Fprintf(w, "  view_refresh_delay: %s\n", value(cfg.Refresh.ViewRefreshDelay.String()))
	fmt.Fprintf(w, "  fallback_delay: %s\n", value(cfg.Refresh.FallbackDelay.String()))
	cacheDir := cfg.Refresh.CacheDir
	if cacheDir == "" {
		cacheDir = "(platform default)"
	}
	fmt.Fprintf(w, "  cache_dir: %s\n", value(cacheDir))
	fmt.Fprintf(w, "  cache_patterns: %s\n", value(strings.Join(cfg.Refresh.CachePatterns, ", ")))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", key("ui"))
	fmt.Fprintf(w, "  color_scheme: %s\n", value(cfg.UI.ColorScheme.String()))
	fmt.Fprintf(w, "  verbose: %s\n", value(fmt.Sprintf("%v", cfg.UI.Verbose)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", key("watch"))
	fmt.Fprintf(w, "  debounce: %s\n", value(cfg.Watch.Debounce.String()))
}
