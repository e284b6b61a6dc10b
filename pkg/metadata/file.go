// SPDX-License-Identifier: MPL-2.0

package metadata

import (
	"fmt"
	"os"
)

// RewriteFile parses the metadata file at path, rewrites it with rw and
// writes the result back over the original, keeping its permissions.
func RewriteFile(path string, rw *Rewriter, resolver Resolver) (Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to stat metadata file: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read metadata file: %w", err)
	}

	doc, err := Parse(data)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", path, err)
	}
	res := rw.Rewrite(doc, resolver)

	out, err := doc.Bytes()
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
		return Result{}, fmt.Errorf("failed to write metadata file: %w", err)
	}
	return res, nil
}
