// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"

	"github.com/upkremap/upkremap/internal/config"
	"github.com/upkremap/upkremap/pkg/guid"
	"github.com/upkremap/upkremap/pkg/unitypackage"

	"github.com/charmbracelet/log"
)

type (
	// ConfirmFunc is asked, once a package has been written, whether to keep
	// it. Returning false discards the output.
	ConfirmFunc func(ctx context.Context, res *Result) (bool, error)

	// Options configures a Pipeline.
	Options struct {
		// ReferenceKey is the metadata key holding identifiers.
		ReferenceKey string
		// OutputSuffix is inserted before the output's extension.
		OutputSuffix string
		// FailurePolicy decides whether a failure stops the batch.
		FailurePolicy config.FailurePolicy
		// MaxAttempts caps identifier generation passes.
		MaxAttempts int
		// RewritePayload also rewrites identifiers inside text payloads.
		RewritePayload bool
		// Jobs bounds concurrent packages.
		Jobs int
		// CompressionLevel is the output gzip level.
		CompressionLevel int
		// ReportFormat selects the report file written next to the output.
		ReportFormat config.ReportFormat

		// Generator mints identifiers. Nil means a guid.HashGenerator.
		Generator guid.Generator
		// Logger receives the diagnostics stream. Nil discards it.
		Logger *log.Logger
		// Confirm, when set, is consulted before a written package is kept.
		Confirm ConfirmFunc
		// TempDir is where working directories are created. Empty means os.TempDir().
		TempDir string
		// Limits bounds extraction. The zero value means unitypackage.DefaultLimits().
		Limits unitypackage.Limits
	}
)

// OptionsFromConfig maps loaded configuration onto pipeline options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		ReferenceKey:     cfg.ReferenceKey.String(),
		OutputSuffix:     cfg.OutputSuffix.String(),
		FailurePolicy:    cfg.FailurePolicy,
		MaxAttempts:      cfg.MaxAttempts,
		RewritePayload:   cfg.RewritePayload,
		Jobs:             cfg.Jobs,
		CompressionLevel: cfg.CompressionLevel,
		ReportFormat:     cfg.Report.Format,
	}
}

func (o Options) withDefaults() Options {
	d := config.DefaultConfig()
	if o.ReferenceKey == "" {
		o.ReferenceKey = d.ReferenceKey.String()
	}
	if o.OutputSuffix == "" {
		o.OutputSuffix = d.OutputSuffix.String()
	}
	if o.FailurePolicy == "" {
		o.FailurePolicy = d.FailurePolicy
	}
	if o.MaxAttempts < 1 {
		o.MaxAttempts = d.MaxAttempts
	}
	if o.Jobs < 1 {
		o.Jobs = 1
	}
	if o.ReportFormat == "" {
		o.ReportFormat = config.ReportFormatNone
	}
	if o.Generator == nil {
		o.Generator = guid.NewHashGenerator()
	}
	if o.Limits == (unitypackage.Limits{}) {
		o.Limits = unitypackage.DefaultLimits()
	}
	return o
}
