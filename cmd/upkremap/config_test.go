// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"path/filepath"
	"testing"

	"github.com/upkremap/upkremap/internal/config"
	"github.com/upkremap/upkremap/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDump(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Jobs = 7
	out, err := runCLI(t, Dependencies{Config: fixedConfig(cfg)}, "config", "dump")

	require.NoError(t, err)
	assert.Contains(t, out.stdout.String(), `reference_key:     "guid"`)
	assert.Contains(t, out.stdout.String(), "jobs:              7")
}

func TestConfigShow(t *testing.T) {
	t.Parallel()

	out, err := runCLI(t, Dependencies{}, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out.stdout.String(), "Current Configuration")
	assert.Contains(t, out.stdout.String(), "(using defaults)")
	assert.Contains(t, out.stdout.String(), "-remapped")
}

// The path and init commands read the process-wide config directory override.
func TestConfigPathAndInit(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(config.SetConfigDirOverride(dir))

	out, err := runCLI(t, Dependencies{}, "config", "path")
	require.NoError(t, err)
	assert.Contains(t, out.stdout.String(), filepath.Join(dir, "config.cue"))

	out, err = runCLI(t, Dependencies{}, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out.stdout.String(), "Created default configuration")
	assert.FileExists(t, filepath.Join(dir, "config.cue"))

	out, err = runCLI(t, Dependencies{}, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out.stdout.String(), "already exists")

	out, err = runCLI(t, Dependencies{}, "config", "init", "--force")
	require.NoError(t, err)
	assert.Contains(t, out.stdout.String(), "Created default configuration")
}

func TestConfigLoadsRealFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "custom.cue")
	testutil.MustWriteFile(t, path, []byte("jobs: 3\nreport: format: \"json\"\n"))

	out, err := runCLI(t, Dependencies{Config: config.NewProvider()}, "--config", path, "config", "dump")

	require.NoError(t, err)
	assert.Contains(t, out.stdout.String(), "jobs:              3")
	assert.Contains(t, out.stdout.String(), `format: "json"`)
}
