// SPDX-License-Identifier: MPL-2.0

// Package metadata rewrites identifier references inside the YAML metadata
// documents (asset.meta) that accompany every Unity package entry.
//
// Documents are parsed into gopkg.in/yaml.v3 node trees and viewed through a
// closed set of variants (Mapping, Sequence, Scalar). The Rewriter walks every
// node; each value stored under the reserved reference key ("guid" by default)
// is resolved against a rename table. Resolved references are replaced in
// place. Unresolved references are left untouched and reported as
// missing-dependency warnings, because the referenced asset may legitimately
// live outside the package. Scalars containing non-ASCII text are reported as
// encoding warnings. Warnings never stop a rewrite.
//
// The package also offers TextReplacer for text payloads, which substitutes
// identifiers in a single pass without parsing.
package metadata
