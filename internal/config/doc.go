// SPDX-License-Identifier: MPL-2.0

// Package config loads upkremap settings using Viper with CUE as the file format.
//
// Configuration is read from <UserConfigDir>/upkremap/config.cue, falling back
// to ./config.cue, then to built-in defaults. A .env file in the working
// directory is loaded first, and UPKREMAP_* environment variables override file
// values (UPKREMAP_REPORT_FORMAT overrides report.format).
//
// Files are validated against the embedded schema (config_schema.cue) before
// they reach Viper, so typos and out-of-range values fail with the CUE path of
// the offending field.
package config
