// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"runtime"
	"testing"
)

// SetUserConfigDir makes os.UserConfigDir resolve under dir for the rest of
// the test and returns the directory it will report. macOS derives the
// config directory from HOME, so there the result is a subdirectory of dir.
//
// The environment is restored by t.Setenv, which also rules out t.Parallel.
func SetUserConfigDir(t testing.TB, dir string) string {
	t.Helper()

	switch runtime.GOOS {
	case "windows":
		t.Setenv("AppData", dir)
		return dir
	case "darwin", "ios":
		t.Setenv("HOME", dir)
		return filepath.Join(dir, "Library", "Application Support")
	default:
		t.Setenv("XDG_CONFIG_HOME", dir)
		return dir
	}
}
