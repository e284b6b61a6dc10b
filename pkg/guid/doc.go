// SPDX-License-Identifier: MPL-2.0

// Package guid defines the asset identifier type used inside Unity packages
// and the generators that mint fresh identifiers.
//
// A GUID is 32 lowercase hexadecimal characters. Generated values come from a
// one-way hash of caller-provided seed material salted with the current time
// and a per-generator sequence number, so repeated calls with the same seed
// never return the same value. Generation is not cryptographic; callers that
// need uniqueness across a set check for collisions themselves (see package
// remap).
package guid
