// SPDX-License-Identifier: MPL-2.0

package config

import "context"

type (
	// LoadOptions selects where configuration is read from. The zero value
	// searches the user config directory, then the working directory.
	LoadOptions struct {
		// ConfigFilePath, when set, is the only file considered.
		ConfigFilePath string
		// ConfigDirPath replaces the user config directory in the search.
		ConfigDirPath string
		// EnvFilePath is a .env file applied before UPKREMAP_* variables are
		// read. A missing file is not an error.
		EnvFilePath string
	}

	// Provider resolves the effective configuration. The returned path is
	// the file that was read, or "" when only defaults and environment apply.
	Provider interface {
		Load(ctx context.Context, opts LoadOptions) (*Config, string, error)
	}

	// ProviderFunc adapts a function to Provider.
	ProviderFunc func(ctx context.Context, opts LoadOptions) (*Config, string, error)
)

// Load calls f.
func (f ProviderFunc) Load(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	return f(ctx, opts)
}

// NewProvider returns the Provider backed by files, .env and environment.
func NewProvider() Provider { return ProviderFunc(loadWithOptions) }
