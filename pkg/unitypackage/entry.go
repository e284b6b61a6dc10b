// SPDX-License-Identifier: MPL-2.0

package unitypackage

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Member file names inside an entry directory.
const (
	AssetFile    = "asset"
	MetaFile     = "asset.meta"
	PathnameFile = "pathname"
)

// Entry is one extracted asset directory.
type Entry struct {
	// ID is the directory name, the asset's identifier.
	ID string
	// Dir is the absolute path of the directory.
	Dir string
}

// NewEntry returns the entry named id under root.
func NewEntry(root, id string) Entry {
	return Entry{ID: id, Dir: filepath.Join(root, id)}
}

// AssetPath returns the path of the asset payload.
func (e Entry) AssetPath() string { return filepath.Join(e.Dir, AssetFile) }

// MetaPath returns the path of the metadata document.
func (e Entry) MetaPath() string { return filepath.Join(e.Dir, MetaFile) }

// PathnamePath returns the path of the pathname record.
func (e Entry) PathnamePath() string { return filepath.Join(e.Dir, PathnameFile) }

// HasMeta reports whether the entry carries a metadata document.
func (e Entry) HasMeta() bool { return isRegular(e.MetaPath()) }

// HasAsset reports whether the entry carries a payload. Folder assets have none.
func (e Entry) HasAsset() bool { return isRegular(e.AssetPath()) }

// Pathname returns the first line of the pathname record, or "" if the entry
// has none.
func (e Entry) Pathname() (string, error) {
	f, err := os.Open(e.PathnamePath())
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to open pathname record: %w", err)
	}
	defer func() { _ = f.Close() }() // read-only

	sc := bufio.NewScanner(f)
	if sc.Scan() {
		return strings.TrimRight(sc.Text(), "\r"), nil
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("failed to read pathname record: %w", err)
	}
	return "", nil
}

// OutputPath returns where the remapped copy of archive is written: next to
// it, with suffix inserted before the final extension.
func OutputPath(archive, suffix string) string {
	ext := filepath.Ext(archive)
	return strings.TrimSuffix(archive, ext) + suffix + ext
}

func isRegular(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
