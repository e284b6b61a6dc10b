// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/upkremap/upkremap/internal/issue"
	"github.com/upkremap/upkremap/pkg/cueutil"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "upkremap"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment variable overrides.
	EnvPrefix = "UPKREMAP"
)

//go:embed config_schema.cue
var configSchema string

var configCUE = cueutil.MustCompile(configSchema, "#Config")

// ConfigDir returns the upkremap configuration directory under the
// platform's user configuration directory.
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if dir := configDirOverride(); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(base, AppName), nil
}

// ConfigFilePath returns the path of the user config file, whether or not it exists.
func ConfigFilePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName+"."+ConfigFileExt), nil
}

// loadWithOptions performs option-driven config loading. It returns the
// config and the file it was read from ("" when only defaults apply).
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	if err := loadEnvFile(opts.EnvFilePath); err != nil {
		return nil, "", issue.Wrap(err, "load environment file").
			On(opts.EnvFilePath).
			Suggest("Check the file uses KEY=value lines").
			Link(issue.ConfigLoadFailedId)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultConfig()
	v.SetDefault("reference_key", defaults.ReferenceKey)
	v.SetDefault("output_suffix", defaults.OutputSuffix)
	v.SetDefault("failure_policy", defaults.FailurePolicy)
	v.SetDefault("max_attempts", defaults.MaxAttempts)
	v.SetDefault("rewrite_payload", defaults.RewritePayload)
	v.SetDefault("jobs", defaults.Jobs)
	v.SetDefault("compression_level", defaults.CompressionLevel)
	v.SetDefault("report.format", defaults.Report.Format)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)

	resolvedPath, err := resolveConfigFile(opts)
	if err != nil {
		return nil, "", err
	}
	if resolvedPath != "" {
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			return nil, "", issue.Wrap(err, "load configuration").
				On(resolvedPath).
				Suggest(
					"Check that the file contains valid CUE syntax",
					"Verify the configuration values match the expected schema",
					"Run 'upkremap config init' to write a file with every default",
				).
				Link(issue.ConfigLoadFailedId)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", issue.Wrap(err, "parse configuration").
			Suggest("Check " + EnvPrefix + "_* environment variables for malformed values").
			Link(issue.ConfigLoadFailedId)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", issue.Wrap(err, "validate configuration").
			Suggest("Check " + EnvPrefix + "_* environment variables for out-of-range values").
			Link(issue.ConfigLoadFailedId)
	}

	return &cfg, resolvedPath, nil
}

// resolveConfigFile picks the config file: an explicit path exclusively,
// otherwise the user config file, otherwise ./config.cue.
func resolveConfigFile(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", issue.Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath), "load configuration").
				On(opts.ConfigFilePath).
				Suggest(
					"Verify the file path is correct",
					"Use 'upkremap config show' to see the default configuration",
				).
				Link(issue.ConfigLoadFailedId)
		}
		return opts.ConfigFilePath, nil
	}

	cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
	if err != nil {
		return "", err
	}
	if userPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt); fileExists(userPath) {
		return userPath, nil
	}
	if localPath := ConfigFileName + "." + ConfigFileExt; fileExists(localPath) {
		return localPath, nil
	}
	return "", nil
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}
	return ConfigDir()
}

// loadEnvFile loads KEY=value pairs from path into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// loadCUEIntoViper validates a CUE file against the #Config schema and merges
// its contents into Viper. The file decodes to a map rather than a Config so
// that fields left out of the file keep their Viper defaults.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fields map[string]any
	if err := configCUE.Decode(data, &fields,
		cueutil.WithFilename(path),
		cueutil.WithConcrete(false),
	); err != nil {
		return err
	}

	if err := v.MergeConfigMap(fields); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes a config file holding every default to the user
// config directory and returns its path. An existing file is left untouched
// unless force is set; created reports whether anything was written.
func CreateDefaultConfig(force bool) (path string, created bool, err error) {
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", false, err
	}
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create config directory: %w", err)
	}

	path = filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
	if !force && fileExists(path) {
		return path, false, nil
	}
	if err := os.WriteFile(path, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", false, fmt.Errorf("failed to write config file: %w", err)
	}
	return path, true, nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// upkremap configuration file\n\n")

	fmt.Fprintf(&sb, "reference_key:     %q\n", cfg.ReferenceKey)
	fmt.Fprintf(&sb, "output_suffix:     %q\n", cfg.OutputSuffix)
	fmt.Fprintf(&sb, "failure_policy:    %q\n", cfg.FailurePolicy)
	fmt.Fprintf(&sb, "max_attempts:      %d\n", cfg.MaxAttempts)
	fmt.Fprintf(&sb, "rewrite_payload:   %v\n", cfg.RewritePayload)
	fmt.Fprintf(&sb, "jobs:              %d\n", cfg.Jobs)
	fmt.Fprintf(&sb, "compression_level: %d\n", cfg.CompressionLevel)

	sb.WriteString("\nreport: {\n")
	fmt.Fprintf(&sb, "\tformat: %q\n", cfg.Report.Format)
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tverbose:      %v\n", cfg.UI.Verbose)
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	sb.WriteString("}\n")

	return sb.String()
}
