// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/upkremap/upkremap/internal/config"
	"github.com/upkremap/upkremap/internal/pipeline"
	"github.com/upkremap/upkremap/pkg/types"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	errNoArchives = errors.New("no archives given")
	// ErrConfirmNeedsSerial is returned when --confirm is combined with jobs > 1.
	ErrConfirmNeedsSerial = errors.New("--confirm requires --jobs 1")
)

// runRemap is the root command's action: load configuration, apply flag
// overrides and run the pipeline over args.
func runRemap(cmd *cobra.Command, app *App, flags *rootFlags, args []string) error {
	if len(args) == 0 {
		// Usage goes to stderr so stdout stays reserved for the summary.
		cmd.PrintErr(cmd.UsageString())
		cmd.SilenceUsage = true
		return exitWith(types.ExitUsage, errNoArchives)
	}

	ctx := cmd.Context()
	cfg, _, err := app.Config.Load(ctx, config.LoadOptions{
		ConfigFilePath: flags.configPath,
		EnvFilePath:    ".env",
	})
	if err != nil {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		renderError(app.stderr, err, flags.verbose, config.ColorSchemeAuto)
		return exitWith(types.ExitFailure, err)
	}

	if err := applyFlags(cmd, cfg, flags); err != nil {
		cmd.SilenceUsage = true
		return exitWith(types.ExitUsage, err)
	}

	logger := newLogger(app, cfg)
	slog.SetDefault(slog.New(logger))

	opts := pipeline.OptionsFromConfig(cfg)
	opts.Logger = logger
	opts.Generator = app.Generator
	if flags.confirm {
		opts.Confirm = app.Confirm
	}

	sum := pipeline.New(opts).Run(ctx, args)

	logger.Info("done",
		"archives", len(sum.Results),
		"remapped", sum.Count(pipeline.StatusRemapped),
		"discarded", sum.Count(pipeline.StatusDiscarded),
		"failed", sum.Count(pipeline.StatusFailed),
		"skipped", sum.Count(pipeline.StatusSkipped),
		"warnings", sum.Warnings())
	printSummary(app.stdout, sum)

	cmd.SilenceUsage = true
	if ctx.Err() != nil {
		cmd.SilenceErrors = true
		return exitWith(types.ExitInterrupted, ctx.Err())
	}
	if sum.Count(pipeline.StatusFailed) > 0 {
		cmd.SilenceErrors = true
		renderFailures(app.stderr, sum, cfg.UI.Verbose, cfg.UI.ColorScheme)
		return exitWith(types.ExitFailure, nil)
	}
	return nil
}

// printSummary writes one line per archive in input order.
func printSummary(w io.Writer, sum pipeline.Summary) {
	for _, res := range sum.Results {
		line := statusBadge(res.Status) + " " + KeyStyle.Render(res.Archive)
		if res.Status == pipeline.StatusRemapped {
			line += " -> " + res.Output + SubtitleStyle.Render(fmt.Sprintf(" (%d renamed, %d references, %d warnings)",
				len(res.Renames), res.Replaced, len(res.Warnings)))
		} else {
			line += " " + SubtitleStyle.Render(string(res.Status))
		}
		_, _ = fmt.Fprintln(w, line)
	}
}

// applyFlags overrides cfg with every flag the user set and revalidates it.
func applyFlags(cmd *cobra.Command, cfg *config.Config, flags *rootFlags) error {
	changed := cmd.Flags().Changed

	if changed("suffix") {
		cfg.OutputSuffix = config.OutputSuffix(flags.suffix)
	}
	if flags.failFast {
		cfg.FailurePolicy = config.FailurePolicyAbort
	}
	if changed("max-attempts") {
		cfg.MaxAttempts = flags.maxAttempts
	}
	if changed("rewrite-payload") {
		cfg.RewritePayload = flags.rewritePayload
	}
	if changed("jobs") {
		cfg.Jobs = flags.jobs
	}
	if changed("report") {
		cfg.Report.Format = config.ReportFormat(flags.report)
	}
	if flags.verbose {
		cfg.UI.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	if flags.confirm && cfg.Jobs > 1 {
		return ErrConfirmNeedsSerial
	}
	return nil
}

// newLogger builds the diagnostics stream. The pipeline prefixes each line
// with the archive's base name.
func newLogger(app *App, cfg *config.Config) *log.Logger {
	level := log.InfoLevel
	if cfg.UI.Verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(app.stderr, log.Options{Level: level})
}
