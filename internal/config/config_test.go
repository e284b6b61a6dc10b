// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/upkremap/upkremap/internal/issue"
	"github.com/upkremap/upkremap/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func load(t *testing.T, opts LoadOptions) (*Config, string, error) {
	t.Helper()
	if opts.ConfigDirPath == "" {
		opts.ConfigDirPath = t.TempDir()
	}
	return NewProvider().Load(context.Background(), opts)
}

func TestLoad_DefaultsWhenNoConfigFile(t *testing.T) {
	t.Parallel()

	cfg, path, err := load(t, LoadOptions{})
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_UserConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	want := writeConfig(t, dir, `
failure_policy: "abort"
jobs: 4
report: format: "toml"
`)

	cfg, path, err := load(t, LoadOptions{ConfigDirPath: dir})
	require.NoError(t, err)
	assert.Equal(t, want, path)
	assert.Equal(t, FailurePolicyAbort, cfg.FailurePolicy)
	assert.Equal(t, 4, cfg.Jobs)
	assert.Equal(t, ReportFormatTOML, cfg.Report.Format)
	// untouched keys keep their defaults
	assert.Equal(t, OutputSuffix("-remapped"), cfg.OutputSuffix)
	assert.Equal(t, ColorSchemeAuto, cfg.UI.ColorScheme)
}

func TestLoad_ExplicitPathIsExclusive(t *testing.T) {
	t.Parallel()

	userDir := t.TempDir()
	writeConfig(t, userDir, `jobs: 8`)
	explicit := writeConfig(t, t.TempDir(), `output_suffix: "-fresh"`)

	cfg, path, err := load(t, LoadOptions{ConfigDirPath: userDir, ConfigFilePath: explicit})
	require.NoError(t, err)
	assert.Equal(t, explicit, path)
	assert.Equal(t, OutputSuffix("-fresh"), cfg.OutputSuffix)
	assert.Equal(t, 1, cfg.Jobs)
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Parallel()

	_, _, err := load(t, LoadOptions{ConfigFilePath: filepath.Join(t.TempDir(), "missing.cue")})
	require.Error(t, err)

	var ae *issue.ActionableError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "load configuration", ae.Operation)
	assert.Equal(t, issue.ConfigLoadFailedId, ae.Issue)
	assert.True(t, ae.HasSuggestions())
}

func TestLoad_SchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown policy", `failure_policy: "retry"`, "failure_policy"},
		{"jobs out of range", `jobs: 0`, "jobs"},
		{"unknown field", `colour: "red"`, "colour"},
		{"nested enum", `report: format: "xml"`, "report.format"},
		{"suffix with separator", `output_suffix: "a/b"`, "output_suffix"},
		{"syntax error", `jobs: [`, "config.cue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeConfig(t, dir, tt.body)

			_, _, err := load(t, LoadOptions{ConfigDirPath: dir})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

//nolint:paralleltest // mutates process environment
func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `jobs: 2
report: format: "yaml"`)
	t.Setenv("UPKREMAP_JOBS", "6")
	t.Setenv("UPKREMAP_REPORT_FORMAT", "json")

	cfg, _, err := load(t, LoadOptions{ConfigDirPath: dir})
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Jobs)
	assert.Equal(t, ReportFormatJSON, cfg.Report.Format)
}

//nolint:paralleltest // mutates process environment
func TestLoad_EnvironmentIsValidated(t *testing.T) {
	t.Setenv("UPKREMAP_FAILURE_POLICY", "sometimes")

	_, _, err := load(t, LoadOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidFailurePolicy), "got %v", err)
}

//nolint:paralleltest // godotenv writes to the process environment
func TestLoad_EnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("UPKREMAP_OUTPUT_SUFFIX=-dotenv\n"), 0o644))
	t.Setenv("UPKREMAP_OUTPUT_SUFFIX", "")
	require.NoError(t, os.Unsetenv("UPKREMAP_OUTPUT_SUFFIX"))

	cfg, _, err := load(t, LoadOptions{EnvFilePath: envFile})
	require.NoError(t, err)
	assert.Equal(t, OutputSuffix("-dotenv"), cfg.OutputSuffix)

	_, _, err = load(t, LoadOptions{EnvFilePath: filepath.Join(t.TempDir(), "absent.env")})
	require.NoError(t, err, "a missing .env file is not an error")
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := NewProvider().Load(ctx, LoadOptions{ConfigDirPath: t.TempDir()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestGenerateCUE_RoundTrip(t *testing.T) {
	t.Parallel()

	custom := DefaultConfig()
	custom.FailurePolicy = FailurePolicyAbort
	custom.RewritePayload = true
	custom.CompressionLevel = 9
	custom.Report.Format = ReportFormatYAML
	custom.UI.ColorScheme = ColorSchemeLight

	dir := t.TempDir()
	writeConfig(t, dir, GenerateCUE(custom))

	cfg, _, err := load(t, LoadOptions{ConfigDirPath: dir})
	require.NoError(t, err)
	assert.Equal(t, custom, cfg)
}

//nolint:paralleltest // uses the package-level config dir override
func TestCreateDefaultConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", AppName)
	t.Cleanup(SetConfigDirOverride(dir))

	path, created, err := CreateDefaultConfig(false)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, filepath.Join(dir, "config.cue"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "// upkremap configuration file"))

	require.NoError(t, os.WriteFile(path, []byte("jobs: 3\n"), 0o644))
	_, created, err = CreateDefaultConfig(false)
	require.NoError(t, err)
	assert.False(t, created, "existing file must be kept")

	_, created, err = CreateDefaultConfig(true)
	require.NoError(t, err)
	assert.True(t, created)

	got, err := ConfigFilePath()
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

//nolint:paralleltest // mutates the process environment
func TestConfigDir_FollowsUserConfigDir(t *testing.T) {
	t.Cleanup(SetConfigDirOverride(""))
	base := testutil.SetUserConfigDir(t, t.TempDir())

	dir, err := ConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, AppName), dir)

	path, err := ConfigFilePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, AppName, "config.cue"), path)
}
