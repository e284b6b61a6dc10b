// SPDX-License-Identifier: MPL-2.0

// Package remap builds the rename table that maps every entry of a Unity
// package from its original identifier to a freshly generated one.
//
// A Table is bijective and disjoint: no two original identifiers share a new
// identifier, and no new identifier equals any original identifier. The
// second property is what allows entries to be renamed in place one by one
// without a rename ever landing on a directory that has not been processed
// yet. Builder enforces both by regenerating the whole candidate set whenever
// a collision is detected, up to a configurable attempt budget.
package remap
