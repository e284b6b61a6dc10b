// SPDX-License-Identifier: MPL-2.0

// Package unitypackage reads and writes Unity .unitypackage archives.
//
// A unitypackage is a gzip-compressed tar archive. Each top-level member is a
// directory named by an asset identifier holding the asset payload ("asset"),
// an optional metadata document ("asset.meta") and an optional record of the
// asset's project path ("pathname"). This package only moves those members
// between an archive and a working directory; it knows nothing about the
// identifiers themselves.
package unitypackage
