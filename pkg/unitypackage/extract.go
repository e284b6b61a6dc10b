// SPDX-License-Identifier: MPL-2.0

package unitypackage

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Default extraction limits. Unity packages bundle textures and audio, so
// the limits are generous; they exist to stop decompression bombs.
const (
	DefaultMaxFileSize  int64 = 4 << 30
	DefaultMaxTotalSize int64 = 32 << 30
	DefaultMaxMembers         = 1 << 20
)

type (
	// Limits bounds what Extract is willing to write.
	Limits struct {
		MaxFileSize  int64
		MaxTotalSize int64
		MaxMembers   int
	}

	// ExtractOption configures Extract.
	ExtractOption func(*extractor)

	extractor struct {
		limits Limits
		root   string
		files  int
		total  int64
	}
)

// DefaultLimits returns the default extraction limits.
func DefaultLimits() Limits {
	return Limits{
		MaxFileSize:  DefaultMaxFileSize,
		MaxTotalSize: DefaultMaxTotalSize,
		MaxMembers:   DefaultMaxMembers,
	}
}

// WithLimits overrides the extraction limits.
func WithLimits(l Limits) ExtractOption {
	return func(e *extractor) { e.limits = l }
}

// Extract unpacks the gzip tar archive at archive into dir, which must
// already exist, and returns the number of regular files written. Members
// that would land outside dir are rejected with an *UnsafePathError.
func Extract(ctx context.Context, archive, dir string, opts ...ExtractOption) (_ int, err error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return 0, fmt.Errorf("resolving extraction directory: %w", err)
	}
	x := &extractor{limits: DefaultLimits(), root: root}
	for _, opt := range opts {
		opt(x)
	}

	f, err := os.Open(archive)
	if err != nil {
		return 0, fmt.Errorf("opening archive: %w", err)
	}
	defer func() { _ = f.Close() }() // read-only

	gz, err := gzip.NewReader(f)
	if err != nil {
		return 0, fmt.Errorf("creating gzip reader: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		if err := ctx.Err(); err != nil {
			return x.files, err
		}
		hdr, nextErr := tr.Next()
		if errors.Is(nextErr, io.EOF) {
			break
		}
		if nextErr != nil {
			return x.files, fmt.Errorf("reading tar entry: %w", nextErr)
		}
		if err := x.member(hdr, tr); err != nil {
			return x.files, err
		}
	}
	return x.files, nil
}

func (x *extractor) member(hdr *tar.Header, r io.Reader) error {
	target, skip, err := x.join(hdr.Name)
	if err != nil || skip {
		return err
	}

	switch hdr.Typeflag {
	case tar.TypeDir:
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", hdr.Name, err)
		}
	case tar.TypeReg:
		return x.file(hdr, target, r)
	case tar.TypeSymlink, tar.TypeLink:
		// Unity never exports links, and a link followed by a later member
		// can place that member outside the root.
		return &UnsafePathError{Name: hdr.Name, Reason: "links are not allowed"}
	default:
		// Devices, fifos and vendor extensions carry no asset data.
	}
	return nil
}

func (x *extractor) file(hdr *tar.Header, target string, r io.Reader) (err error) {
	x.files++
	if x.limits.MaxMembers > 0 && x.files > x.limits.MaxMembers {
		return fmt.Errorf("%w: more than %d files", ErrSizeLimit, x.limits.MaxMembers)
	}
	if hdr.Size < 0 || (x.limits.MaxFileSize > 0 && hdr.Size > x.limits.MaxFileSize) {
		return fmt.Errorf("%w: %s is %d bytes", ErrSizeLimit, hdr.Name, hdr.Size)
	}
	x.total += hdr.Size
	if x.limits.MaxTotalSize > 0 && x.total > x.limits.MaxTotalSize {
		return fmt.Errorf("%w: more than %d bytes uncompressed", ErrSizeLimit, x.limits.MaxTotalSize)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", hdr.Name, err)
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", hdr.Name, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", hdr.Name, closeErr)
		}
	}()
	if _, err := io.CopyN(out, r, hdr.Size); err != nil {
		return fmt.Errorf("writing %s: %w", hdr.Name, err)
	}
	return nil
}

// join maps a member name onto the extraction root. The archive root itself
// ("./") is reported as skip.
func (x *extractor) join(name string) (target string, skip bool, err error) {
	clean := filepath.Clean(filepath.FromSlash(strings.TrimSpace(name)))
	if clean == "." || clean == "" {
		return "", true, nil
	}
	if filepath.IsAbs(clean) || strings.HasPrefix(name, "/") {
		return "", false, &UnsafePathError{Name: name, Reason: "absolute path"}
	}
	target = filepath.Join(x.root, clean)
	if !within(x.root, target) {
		return "", false, &UnsafePathError{Name: name, Reason: "escapes the package"}
	}
	return target, false, nil
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator))
}
