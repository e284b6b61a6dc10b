// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/upkremap/upkremap/internal/config"
	"github.com/upkremap/upkremap/internal/issue"
	"github.com/upkremap/upkremap/internal/pipeline"
	"github.com/upkremap/upkremap/pkg/remap"
	"github.com/upkremap/upkremap/pkg/unitypackage"
)

// classifyFailure turns a package failure into an operator-facing error with
// suggestions and a catalog page.
func classifyFailure(err error) *issue.ActionableError {
	var existing *issue.ActionableError
	if errors.As(err, &existing) {
		return existing
	}

	var stageErr *pipeline.StageError
	stage := pipeline.Stage("")
	if errors.As(err, &stageErr) {
		stage = stageErr.Stage
	}

	// StageError already names the archive.
	ae := issue.Wrap(err, "remap package")

	switch {
	case errors.Is(err, remap.ErrInvalidPackage):
		ae.Link(issue.InvalidPackageId).
			Suggest("Make sure the file is a package exported by Unity (Assets > Export Package)")
	case errors.Is(err, unitypackage.ErrUnsafePath), errors.Is(err, unitypackage.ErrSizeLimit):
		ae.Link(issue.UnsafeArchiveId).
			Suggest("Do not process packages from untrusted sources")
	case errors.Is(err, remap.ErrRetryBudgetExhausted):
		ae.Link(issue.RetryBudgetExhaustedId).
			Suggest("Raise the limit with --max-attempts")
	case errors.Is(err, os.ErrPermission):
		ae.Link(issue.PermissionDeniedId).
			Suggest("Check that the archive is readable and its directory is writable")
	case stage == pipeline.StageExtract && errors.Is(err, os.ErrNotExist):
		ae.Link(issue.ArchiveNotFoundId).
			Suggest("Check the archive path")
	case stage == pipeline.StageExtract:
		ae.Link(issue.InvalidPackageId).
			Suggest("Make sure the file is a gzip-compressed .unitypackage")
	case stage == pipeline.StageRewrite:
		ae.Link(issue.MetadataParseFailedId).
			Suggest("Open the package in Unity and re-export it to regenerate its .meta files")
	case stage == pipeline.StagePack, stage == pipeline.StageReport:
		ae.Link(issue.PackFailedId).
			Suggest("Check free disk space next to the input archive")
	}

	return ae
}

// renderError writes one styled error to w.
func renderError(w io.Writer, err error, verbose bool, scheme config.ColorScheme) {
	ae := classifyFailure(err)
	_, _ = fmt.Fprintln(w, ErrorStyle.Render("Error: ")+ae.Format(verbose))
	renderIssues(w, []issue.Id{ae.Issue}, scheme)
}

// renderFailures writes every failed package, then the catalog page of each
// distinct failure class once.
func renderFailures(w io.Writer, sum pipeline.Summary, verbose bool, scheme config.ColorScheme) {
	var ids []issue.Id
	for _, res := range sum.Results {
		if res.Status != pipeline.StatusFailed {
			continue
		}
		ae := classifyFailure(res.Err)
		_, _ = fmt.Fprintln(w, ErrorStyle.Render("Error: ")+ae.Format(verbose))
		if ae.Issue != 0 && !slices.Contains(ids, ae.Issue) {
			ids = append(ids, ae.Issue)
		}
	}
	renderIssues(w, ids, scheme)
}

func renderIssues(w io.Writer, ids []issue.Id, scheme config.ColorScheme) {
	for _, id := range ids {
		page := issue.Get(id)
		if page == nil {
			continue
		}
		rendered, err := page.Render(scheme.String())
		if err != nil {
			continue
		}
		_, _ = fmt.Fprint(w, rendered)
	}
}
