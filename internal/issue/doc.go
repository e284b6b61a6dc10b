// SPDX-License-Identifier: MPL-2.0

// Package issue turns failures into operator-facing messages: errors that
// carry what was attempted and how to fix it, and a catalog of Markdown help
// pages for known failure classes.
package issue
