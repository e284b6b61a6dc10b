// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"archive/tar"
	"bytes"
	"errors"
	"io"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

// PackageFile is one member of a fixture archive. Names use forward slashes;
// a trailing slash or Dir=true produces a directory header.
type PackageFile struct {
	Name string
	Body string
	Dir  bool
}

// AssetFiles returns the members of one well-formed unitypackage entry: the
// directory itself, its payload, its pathname record and, when meta is
// non-empty, its asset.meta document.
func AssetFiles(id, pathname, payload, meta string) []PackageFile {
	files := []PackageFile{
		{Name: id + "/", Dir: true},
		{Name: id + "/asset", Body: payload},
		{Name: id + "/pathname", Body: pathname},
	}
	if meta != "" {
		files = append(files, PackageFile{Name: id + "/asset.meta", Body: meta})
	}
	return files
}

// WritePackage writes a gzip-compressed tar archive at dst containing files.
// The test fails immediately if the archive cannot be written.
func WritePackage(t testing.TB, dst string, files []PackageFile) {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for _, f := range files {
		hdr := &tar.Header{Name: f.Name, Mode: 0o644, Typeflag: tar.TypeReg, Size: int64(len(f.Body))}
		if f.Dir || strings.HasSuffix(f.Name, "/") {
			hdr = &tar.Header{Name: strings.TrimSuffix(f.Name, "/") + "/", Mode: 0o755, Typeflag: tar.TypeDir}
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("failed to write tar header %s: %v", f.Name, err)
		}
		if hdr.Typeflag == tar.TypeReg {
			if _, err := io.WriteString(tw, f.Body); err != nil {
				t.Fatalf("failed to write tar body %s: %v", f.Name, err)
			}
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("failed to close tar writer: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("failed to close gzip writer: %v", err)
	}
	MustWriteFile(t, dst, buf.Bytes())
}

// ReadPackage returns the regular files inside the gzip tar archive at src,
// keyed by cleaned member name (no leading "./").
// The test fails immediately if the archive cannot be read.
func ReadPackage(t testing.TB, src string) map[string]string {
	t.Helper()
	f, err := os.Open(src)
	if err != nil {
		t.Fatalf("failed to open %s: %v", src, err)
	}
	defer func() { _ = f.Close() }()

	gz, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("failed to open gzip stream %s: %v", src, err)
	}
	defer func() { _ = gz.Close() }()

	out := make(map[string]string)
	tr := tar.NewReader(gz)
	for {
		hdr, nextErr := tr.Next()
		if errors.Is(nextErr, io.EOF) {
			break
		}
		if nextErr != nil {
			t.Fatalf("failed to read tar entry in %s: %v", src, nextErr)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		body, readErr := io.ReadAll(tr)
		if readErr != nil {
			t.Fatalf("failed to read %s in %s: %v", hdr.Name, src, readErr)
		}
		out[path.Clean(hdr.Name)] = string(body)
	}
	return out
}

// PackageDirs returns the distinct top-level directory names of the members
// returned by ReadPackage.
func PackageDirs(files map[string]string) []string {
	seen := make(map[string]bool)
	var dirs []string
	for name := range files {
		top, _, _ := strings.Cut(name, "/")
		if !seen[top] {
			seen[top] = true
			dirs = append(dirs, top)
		}
	}
	return dirs
}
