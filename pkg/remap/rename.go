// SPDX-License-Identifier: MPL-2.0

package remap

import (
	"fmt"
	"os"
	"path/filepath"
)

// Rename moves every entry directory under root from its original name to
// its new name. Because the table is disjoint, no rename can target a
// directory that is still waiting to be renamed. On failure the entries
// renamed so far keep their new names; the caller discards the working area.
func Rename(root string, t *Table) error {
	for _, p := range t.Pairs() {
		from := filepath.Join(root, string(p.Old))
		to := filepath.Join(root, string(p.New))
		if err := os.Rename(from, to); err != nil {
			return fmt.Errorf("failed to rename entry %s to %s: %w", p.Old, p.New, err)
		}
	}
	return nil
}
