// SPDX-License-Identifier: MPL-2.0

// Package testutil holds test helpers that fail the test instead of
// returning errors: file helpers, a controllable clock, user config
// directory overrides and unitypackage fixtures (WritePackage, ReadPackage).
package testutil
