// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/upkremap/upkremap/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `upkremap config` command tree.
func newConfigCommand(app *App, flags *rootFlags) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage upkremap configuration",
		Long: `Manage upkremap configuration.

Configuration is read from the first of:
  - the file given with --config
  - Linux: ~/.config/upkremap/config.cue
  - macOS: ~/Library/Application Support/upkremap/config.cue
  - Windows: %AppData%\upkremap\config.cue
  - ./config.cue

UPKREMAP_* environment variables (and a .env file in the working
directory) override file values; flags override both.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app, flags, cmd.OutOrStdout())
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(cmd.OutOrStdout())
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file holding every default",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd.OutOrStdout(), force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd.Context(), app, flags)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), config.GenerateCUE(cfg))
			return err
		},
	})

	return cfgCmd
}

func loadConfig(ctx context.Context, app *App, flags *rootFlags) (*config.Config, string, error) {
	return app.Config.Load(ctx, config.LoadOptions{
		ConfigFilePath: flags.configPath,
		EnvFilePath:    ".env",
	})
}

func showConfig(ctx context.Context, app *App, flags *rootFlags, w io.Writer) error {
	cfg, path, err := loadConfig(ctx, app, flags)
	if err != nil {
		renderError(app.stderr, err, flags.verbose, config.ColorSchemeAuto)
		return err
	}

	keyStyle := KeyStyle
	valueStyle := SuccessStyle
	line := func(indent, key string, value any) {
		_, _ = fmt.Fprintf(w, "%s%s: %s\n", indent, keyStyle.Render(key), valueStyle.Render(fmt.Sprint(value)))
	}

	_, _ = fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	_, _ = fmt.Fprintln(w)
	if path != "" {
		_, _ = fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		_, _ = fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	_, _ = fmt.Fprintln(w)

	line("", "reference_key", cfg.ReferenceKey)
	line("", "output_suffix", cfg.OutputSuffix)
	line("", "failure_policy", cfg.FailurePolicy)
	line("", "max_attempts", cfg.MaxAttempts)
	line("", "rewrite_payload", cfg.RewritePayload)
	line("", "jobs", cfg.Jobs)
	line("", "compression_level", cfg.CompressionLevel)

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "%s:\n", keyStyle.Render("report"))
	line("  ", "format", cfg.Report.Format)

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	line("  ", "verbose", cfg.UI.Verbose)
	line("  ", "color_scheme", cfg.UI.ColorScheme)

	return nil
}

func showConfigPath(w io.Writer) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	path, err := config.ConfigFilePath()
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "Config directory: %s\n", cfgDir)
	_, _ = fmt.Fprintf(w, "Config file: %s\n", path)
	return nil
}

func initConfig(w io.Writer, force bool) error {
	path, created, err := config.CreateDefaultConfig(force)
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}
	if !created {
		_, _ = fmt.Fprintf(w, "%s Configuration already exists at %s (use --force to overwrite)\n", WarningStyle.Render("!"), path)
		return nil
	}
	_, _ = fmt.Fprintf(w, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}
