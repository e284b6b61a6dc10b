// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/upkremap/upkremap/internal/config"
	"github.com/upkremap/upkremap/internal/pipeline"
	"github.com/upkremap/upkremap/internal/testutil"
	"github.com/upkremap/upkremap/pkg/types"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	idA = strings.Repeat("a", 32)
	idB = strings.Repeat("b", 32)
)

// fixedConfig serves a copy of cfg without touching the filesystem.
func fixedConfig(cfg *config.Config) config.Provider {
	return config.ProviderFunc(func(context.Context, config.LoadOptions) (*config.Config, string, error) {
		c := *cfg
		return &c, "", nil
	})
}

func failingConfig(err error) config.Provider {
	return config.ProviderFunc(func(context.Context, config.LoadOptions) (*config.Config, string, error) {
		return nil, "", err
	})
}

type runOutput struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func runCLI(t *testing.T, deps Dependencies, args ...string) (*runOutput, error) {
	t.Helper()
	out := &runOutput{}
	if deps.Config == nil {
		deps.Config = fixedConfig(config.DefaultConfig())
	}
	deps.Stdout, deps.Stderr = &out.stdout, &out.stderr

	root := NewRootCommand(NewApp(deps))
	root.SetOut(&out.stdout)
	root.SetErr(&out.stderr)
	root.SetArgs(args)
	return out, root.ExecuteContext(context.Background())
}

func writeScenario(t *testing.T) string {
	t.Helper()
	archive := filepath.Join(t.TempDir(), "Props.unitypackage")
	files := testutil.AssetFiles(idA, "Assets/A.mat", "a", "guid: "+idA+"\n")
	files = append(files, testutil.AssetFiles(idB, "Assets/B.prefab", "b", "guid: "+idB+"\ndeps:\n- guid: "+idA+"\n")...)
	testutil.WritePackage(t, archive, files)
	return archive
}

func exitCode(t *testing.T, err error) types.ExitCode {
	t.Helper()
	if err == nil {
		return types.ExitSuccess
	}
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	return exitErr.Code
}

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version takes priority", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2026-06-15T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2026-06-15T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("dev build", func(t *testing.T) {
		origVersion := Version
		t.Cleanup(func() { Version = origVersion })

		Version = "dev"
		if got := getVersionString(); got != "dev (built from source)" {
			t.Errorf("getVersionString() = %q, want %q", got, "dev (built from source)")
		}
	})
}

func TestRootNoArgsIsUsageError(t *testing.T) {
	t.Parallel()

	out, err := runCLI(t, Dependencies{})

	assert.Equal(t, types.ExitUsage, exitCode(t, err))
	assert.ErrorIs(t, err, errNoArchives)
	assert.Contains(t, out.stderr.String(), "Usage:")
	assert.NotContains(t, out.stdout.String(), "Usage:")
}

func TestRootRemapsArchive(t *testing.T) {
	t.Parallel()

	archive := writeScenario(t)
	out, err := runCLI(t, Dependencies{}, archive)

	require.NoError(t, err)
	output := filepath.Join(filepath.Dir(archive), "Props-remapped.unitypackage")
	files := testutil.ReadPackage(t, output)
	assert.Len(t, testutil.PackageDirs(files), 2)
	assert.Contains(t, out.stderr.String(), "Props.unitypackage")
	assert.Contains(t, out.stderr.String(), "done")
	assert.Contains(t, out.stdout.String(), "-> "+output+" (2 renamed, 3 references, 0 warnings)")
}

func TestRootFailedArchiveExitsNonZero(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bad := filepath.Join(dir, "Loose.unitypackage")
	testutil.WritePackage(t, bad, []testutil.PackageFile{{Name: "loose.txt", Body: "x"}})
	good := writeScenario(t)

	out, err := runCLI(t, Dependencies{}, bad, good)

	assert.Equal(t, types.ExitFailure, exitCode(t, err))
	assert.Contains(t, out.stderr.String(), "Error:")
	assert.Contains(t, out.stderr.String(), "Loose.unitypackage")
	assert.FileExists(t, filepath.Join(filepath.Dir(good), "Props-remapped.unitypackage"))
	assert.NoFileExists(t, filepath.Join(dir, "Loose-remapped.unitypackage"))
	assert.Contains(t, out.stdout.String(), "Loose.unitypackage failed")
}

func TestRootFailFastSkipsRemaining(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bad := filepath.Join(dir, "Loose.unitypackage")
	testutil.WritePackage(t, bad, []testutil.PackageFile{{Name: "loose.txt", Body: "x"}})
	good := writeScenario(t)

	_, err := runCLI(t, Dependencies{}, "--fail-fast", bad, good)

	assert.Equal(t, types.ExitFailure, exitCode(t, err))
	assert.NoFileExists(t, filepath.Join(filepath.Dir(good), "Props-remapped.unitypackage"))
}

func TestRootConfigLoadFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("broken config")
	out, err := runCLI(t, Dependencies{Config: failingConfig(boom)}, writeScenario(t))

	assert.Equal(t, types.ExitFailure, exitCode(t, err))
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, out.stderr.String(), "broken config")
}

func TestRootConfirm(t *testing.T) {
	t.Parallel()

	t.Run("declined output is removed", func(t *testing.T) {
		t.Parallel()
		archive := writeScenario(t)
		asked := 0
		confirm := func(context.Context, *pipeline.Result) (bool, error) {
			asked++
			return false, nil
		}

		_, err := runCLI(t, Dependencies{Confirm: confirm}, "--confirm", archive)

		require.NoError(t, err)
		assert.Equal(t, 1, asked)
		assert.NoFileExists(t, filepath.Join(filepath.Dir(archive), "Props-remapped.unitypackage"))
	})

	t.Run("not asked without the flag", func(t *testing.T) {
		t.Parallel()
		archive := writeScenario(t)
		confirm := func(context.Context, *pipeline.Result) (bool, error) {
			t.Error("confirm called without --confirm")
			return false, nil
		}

		_, err := runCLI(t, Dependencies{Confirm: confirm}, archive)
		require.NoError(t, err)
	})

	t.Run("requires serial jobs", func(t *testing.T) {
		t.Parallel()
		_, err := runCLI(t, Dependencies{}, "--confirm", "-j", "2", writeScenario(t))

		assert.Equal(t, types.ExitUsage, exitCode(t, err))
		assert.ErrorIs(t, err, ErrConfirmNeedsSerial)
	})
}

func TestRootReportFlag(t *testing.T) {
	t.Parallel()

	archive := writeScenario(t)
	_, err := runCLI(t, Dependencies{}, "--report", "yaml", "--suffix", ".new", archive)

	require.NoError(t, err)
	dir := filepath.Dir(archive)
	assert.FileExists(t, filepath.Join(dir, "Props.new.unitypackage"))
	assert.FileExists(t, filepath.Join(dir, "Props.new.report.yaml"))
}

func TestRootInvalidFlagValue(t *testing.T) {
	t.Parallel()

	_, err := runCLI(t, Dependencies{}, "--report", "xml", writeScenario(t))

	assert.Equal(t, types.ExitUsage, exitCode(t, err))
	assert.ErrorIs(t, err, config.ErrInvalidReportFormat)
}

func TestApplyFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, cfg *config.Config)
	}{
		{
			name: "nothing set keeps config",
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, config.DefaultConfig(), cfg)
			},
		},
		{
			name: "fail-fast selects abort",
			args: []string{"--fail-fast"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, config.FailurePolicyAbort, cfg.FailurePolicy)
			},
		},
		{
			name: "numeric overrides",
			args: []string{"--max-attempts", "5", "-j", "3"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, 5, cfg.MaxAttempts)
				assert.Equal(t, 3, cfg.Jobs)
			},
		},
		{
			name: "rewrite-payload and verbose",
			args: []string{"--rewrite-payload", "-v"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.True(t, cfg.RewritePayload)
				assert.True(t, cfg.UI.Verbose)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			flags := &rootFlags{}
			cmd := &cobra.Command{Use: "upkremap"}
			flags.bind(cmd)
			require.NoError(t, cmd.ParseFlags(tt.args))

			cfg := config.DefaultConfig()
			require.NoError(t, applyFlags(cmd, cfg, flags))
			tt.check(t, cfg)
		})
	}
}

func TestExitStatus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, types.ExitSuccess, exitStatus(nil))
	assert.Equal(t, types.ExitInterrupted, exitStatus(fmt.Errorf("run: %w", exitWith(types.ExitInterrupted, context.Canceled))))
	assert.Equal(t, types.ExitUsage, exitStatus(errors.New(`unknown flag: --bogus`)))
	assert.Equal(t, "exit status 1 (failure)", exitWith(types.ExitFailure, nil).Error())
	assert.ErrorIs(t, exitWith(types.ExitUsage, errNoArchives), errNoArchives)
}
