// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/upkremap/upkremap/internal/pipeline"

	"github.com/charmbracelet/huh"
)

// promptKeep asks on the terminal whether to keep a freshly written package.
func promptKeep(ctx context.Context, res *pipeline.Result) (bool, error) {
	keep := true
	field := huh.NewConfirm().
		Title(fmt.Sprintf("Keep %s?", filepath.Base(res.Output))).
		Description(fmt.Sprintf("%d entries remapped, %d references replaced, %d warnings",
			res.Entries, res.Replaced, len(res.Warnings))).
		Affirmative("Keep").
		Negative("Discard").
		Value(&keep)

	form := huh.NewForm(huh.NewGroup(field)).
		WithAccessible(os.Getenv("ACCESSIBLE") != "")
	if err := form.RunWithContext(ctx); err != nil {
		return false, fmt.Errorf("confirmation prompt: %w", err)
	}
	return keep, nil
}
