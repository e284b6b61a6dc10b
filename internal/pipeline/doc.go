// SPDX-License-Identifier: MPL-2.0

// Package pipeline remaps the asset identifiers of whole .unitypackage files.
//
// Each package goes through strictly ordered stages in a private working
// directory: extract, build the rename table, rename entry directories,
// rewrite metadata, pack, and optionally confirm and report. The working
// directory is removed on every exit path. A batch of packages runs with a
// bounded number of concurrent jobs under an explicit failure policy.
package pipeline
