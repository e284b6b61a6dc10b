// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI commands for upkremap.
//
// The root command remaps the archives given as arguments; the config
// subcommands inspect and initialize the configuration file.
package cmd
