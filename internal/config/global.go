// SPDX-License-Identifier: MPL-2.0

package config

import "sync/atomic"

// dirOverride replaces the platform config directory when non-empty.
// os.UserConfigDir ignores XDG_CONFIG_HOME on macOS and Windows, so tests
// that exercise the default location go through this instead.
var dirOverride atomic.Pointer[string]

// SetConfigDirOverride makes ConfigDir return dir until the returned restore
// function runs. It changes process-wide state; callers must not run in
// parallel with other tests that read the config directory.
func SetConfigDirOverride(dir string) (restore func()) {
	prev := dirOverride.Swap(&dir)
	return func() { dirOverride.Store(prev) }
}

func configDirOverride() string {
	if p := dirOverride.Load(); p != nil {
		return *p
	}
	return ""
}
