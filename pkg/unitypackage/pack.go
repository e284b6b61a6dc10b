// SPDX-License-Identifier: MPL-2.0

package unitypackage

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/klauspost/compress/gzip"
	"github.com/opencontainers/go-digest"
)

// Pack writes the entry directories names, found under dir, into a new gzip
// tar archive at dest and returns the archive's digest. level is a gzip
// compression level; gzip.DefaultCompression selects the default.
//
// The archive is assembled in a temporary file next to dest and renamed into
// place only once complete, so dest never holds a partial archive.
func Pack(ctx context.Context, dir string, names []string, dest string, level int) (_ digest.Digest, err error) {
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".upkremap-pack-*")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	renamed := false
	defer func() {
		if !renamed {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	digester := digest.Canonical.Digester()
	gz, err := gzip.NewWriterLevel(io.MultiWriter(tmp, digester.Hash()), level)
	if err != nil {
		return "", fmt.Errorf("creating gzip writer: %w", err)
	}
	tw := tar.NewWriter(gz)

	sorted := slices.Clone(names)
	slices.Sort(sorted)
	for _, name := range sorted {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if err := addTree(tw, dir, name); err != nil {
			return "", err
		}
	}

	if err := tw.Close(); err != nil {
		return "", fmt.Errorf("finishing tar stream: %w", err)
	}
	if err := gz.Close(); err != nil {
		return "", fmt.Errorf("finishing gzip stream: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return "", fmt.Errorf("syncing archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing archive: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("setting archive permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", fmt.Errorf("moving archive into place: %w", err)
	}
	renamed = true
	return digester.Digest(), nil
}

// addTree writes dir/name and everything below it, with member names
// relative to dir.
func addTree(tw *tar.Writer, dir, name string) error {
	return filepath.WalkDir(filepath.Join(dir, name), func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path: %w", err)
		}
		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("failed to get file info: %w", err)
		}

		var link string
		if info.Mode()&fs.ModeSymlink != 0 {
			if link, err = os.Readlink(path); err != nil {
				return fmt.Errorf("failed to read symlink %s: %w", rel, err)
			}
		}
		hdr, err := tar.FileInfoHeader(info, link)
		if err != nil {
			return fmt.Errorf("failed to create header for %s: %w", rel, err)
		}
		hdr.Name = filepath.ToSlash(rel)
		if d.IsDir() {
			hdr.Name += "/"
		}
		hdr.Uname, hdr.Gname = "", ""
		hdr.Uid, hdr.Gid = 0, 0

		if err := tw.WriteHeader(hdr); err != nil {
			return fmt.Errorf("failed to write header for %s: %w", rel, err)
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		return copyFile(tw, path)
	})
}

func copyFile(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }() // read-only
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to archive %s: %w", path, err)
	}
	return nil
}
