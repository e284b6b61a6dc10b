// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/upkremap/upkremap/internal/config"
	"github.com/upkremap/upkremap/pkg/guid"
	"github.com/upkremap/upkremap/pkg/metadata"
	"github.com/upkremap/upkremap/pkg/remap"
	"github.com/upkremap/upkremap/pkg/unitypackage"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Pipeline processes unitypackage archives. It holds no per-archive state,
// so one Pipeline may process many archives concurrently.
type Pipeline struct {
	opts   Options
	logger *log.Logger
}

// New returns a Pipeline configured by opts. Zero fields take their defaults.
func New(opts Options) *Pipeline {
	opts = opts.withDefaults()
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Pipeline{opts: opts, logger: logger}
}

// Run processes archives with at most Options.Jobs in flight and returns
// their results in input order. Under the abort policy the first failure
// cancels the batch and every archive that did not finish is marked skipped.
func (p *Pipeline) Run(ctx context.Context, archives []string) Summary {
	results := make([]Result, len(archives))
	for i, a := range archives {
		results[i] = Result{Archive: a, Status: StatusSkipped}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Jobs)
	for i, archive := range archives {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			res := p.Process(gctx, archive)
			if res.Status == StatusFailed && gctx.Err() != nil && errors.Is(res.Err, gctx.Err()) {
				// Canceled mid-flight by another archive's failure.
				res = Result{Archive: archive, Status: StatusSkipped}
			}
			results[i] = res
			if res.Status == StatusFailed && p.opts.FailurePolicy == config.FailurePolicyAbort {
				return res.Err
			}
			return nil
		})
	}
	_ = g.Wait() // failures are recorded in results

	return Summary{Results: results}
}

// Process runs every stage for one archive. The working directory is always
// removed before Process returns. No output file exists unless the returned
// status is StatusRemapped.
func (p *Pipeline) Process(ctx context.Context, archive string) Result {
	res := Result{Archive: archive}
	logger := p.logger.WithPrefix(filepath.Base(archive))

	fail := func(stage Stage, err error) Result {
		res.Status = StatusFailed
		res.Output, res.Digest, res.ReportPath = "", "", ""
		res.Err = &StageError{Archive: archive, Stage: stage, Err: err}
		logger.Error("processing failed", "stage", stage, "err", err)
		return res
	}

	work, err := os.MkdirTemp(p.opts.TempDir, "upkremap-*")
	if err != nil {
		return fail(StagePrepare, fmt.Errorf("creating working directory: %w", err))
	}
	defer func() {
		if rmErr := os.RemoveAll(work); rmErr != nil {
			slog.Warn("failed to remove working directory", "dir", work, "err", rmErr)
		}
	}()

	files, err := unitypackage.Extract(ctx, archive, work, unitypackage.WithLimits(p.opts.Limits))
	if err != nil {
		return fail(StageExtract, err)
	}
	logger.Debug("extracted", "files", files)

	items, err := os.ReadDir(work)
	if err != nil {
		return fail(StageExtract, fmt.Errorf("listing extracted entries: %w", err))
	}
	res.Entries = len(items)
	logger.Info("entries found", "count", len(items))

	builder := remap.Builder{
		Generator:   p.opts.Generator,
		MaxAttempts: p.opts.MaxAttempts,
		OnCollision: func(attempt int, collided []guid.GUID) {
			logger.Warn("identifier collision, regenerating", "attempt", attempt, "collided", len(collided))
		},
	}
	table, err := builder.Build(items)
	if err != nil {
		return fail(StageBuild, err)
	}
	res.Attempts = table.Attempts()

	pathnames := make(map[guid.GUID]string, table.Len())
	for _, pair := range table.Pairs() {
		name, pnErr := unitypackage.NewEntry(work, pair.Old.String()).Pathname()
		if pnErr != nil {
			return fail(StageBuild, pnErr)
		}
		pathnames[pair.New] = name
		res.Renames = append(res.Renames, Rename{Old: pair.Old, New: pair.New, Pathname: name})
		logger.Info("reassigned", "old", pair.Old, "new", pair.New, "pathname", name)
	}

	if err := remap.Rename(work, table); err != nil {
		return fail(StageRename, err)
	}

	if err := p.rewrite(ctx, work, table, pathnames, &res, logger); err != nil {
		return fail(StageRewrite, err)
	}

	output := unitypackage.OutputPath(archive, p.opts.OutputSuffix)
	names := make([]string, 0, table.Len())
	for _, pair := range table.Pairs() {
		names = append(names, pair.New.String())
	}
	dgst, err := unitypackage.Pack(ctx, work, names, output, p.opts.CompressionLevel)
	if err != nil {
		return fail(StagePack, err)
	}
	res.Output, res.Digest = output, dgst

	if p.opts.ReportFormat.Enabled() {
		path, repErr := writeReport(&res, p.opts.ReportFormat)
		if repErr != nil {
			p.discard(&res, logger)
			return fail(StageReport, repErr)
		}
		res.ReportPath = path
	}

	if p.opts.Confirm != nil {
		keep, confErr := p.opts.Confirm(ctx, &res)
		if confErr != nil {
			p.discard(&res, logger)
			return fail(StageConfirm, confErr)
		}
		if !keep {
			p.discard(&res, logger)
			res.Status = StatusDiscarded
			logger.Info("output discarded")
			return res
		}
	}

	res.Status = StatusRemapped
	logger.Info("remapped",
		"output", filepath.Base(output),
		"digest", dgst,
		"replaced", res.Replaced,
		"warnings", len(res.Warnings))
	return res
}

func (p *Pipeline) rewrite(ctx context.Context, work string, table *remap.Table, pathnames map[guid.GUID]string, res *Result, logger *log.Logger) error {
	rw := metadata.NewRewriter(p.opts.ReferenceKey)
	var payload *metadata.TextReplacer
	if p.opts.RewritePayload {
		payload = metadata.NewTextReplacer(table.OldNew()...)
	}

	news := make([]guid.GUID, 0, table.Len())
	for _, pair := range table.Pairs() {
		news = append(news, pair.New)
	}
	slices.Sort(news)

	for _, id := range news {
		if err := ctx.Err(); err != nil {
			return err
		}
		entry := unitypackage.NewEntry(work, id.String())
		pathname := pathnames[id]

		if entry.HasMeta() {
			r, err := metadata.RewriteFile(entry.MetaPath(), rw, table)
			if err != nil {
				return err
			}
			res.Replaced += r.Replaced
			for _, w := range r.Warnings {
				res.Warnings = append(res.Warnings, EntryWarning{Warning: w, Entry: id, Pathname: pathname})
				logger.Warn(w.String(), "entry", id, "pathname", pathname)
			}
			logger.Info("rewrote metadata", "entry", id, "replaced", r.Replaced, "warnings", len(r.Warnings))
		}

		if payload != nil && entry.HasAsset() {
			changed, err := rewritePayload(entry.AssetPath(), payload)
			switch {
			case errors.Is(err, metadata.ErrBinaryPayload):
				logger.Debug("binary payload left untouched", "entry", id)
			case err != nil:
				return err
			case changed:
				res.PayloadsRewritten++
				logger.Debug("rewrote payload", "entry", id)
			}
		}
	}
	return nil
}

func rewritePayload(path string, r *metadata.TextReplacer) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("failed to stat payload: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read payload: %w", err)
	}
	out, changed, err := r.Replace(data)
	if err != nil || !changed {
		return false, err
	}
	if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("failed to write payload: %w", err)
	}
	return true, nil
}

// discard removes the output and report written for res.
func (p *Pipeline) discard(res *Result, logger *log.Logger) {
	for _, path := range []string{res.Output, res.ReportPath} {
		if path == "" {
			continue
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Warn("failed to remove output", "path", path, "err", err)
		}
	}
	res.Output, res.Digest, res.ReportPath = "", "", ""
}
