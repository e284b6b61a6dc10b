// SPDX-License-Identifier: MPL-2.0

package metadata

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// ErrBinaryPayload is returned by TextReplacer.Replace for data that is not
// valid UTF-8 text.
var ErrBinaryPayload = errors.New("payload is not UTF-8 text")

// TextReplacer substitutes identifiers inside text payloads such as Unity
// YAML scenes, prefabs and materials. Substitution is a single pass, so a
// replacement is never itself replaced again.
type TextReplacer struct {
	r *strings.Replacer
}

// NewTextReplacer builds a replacer from old, new string pairs
// (see remap.Table.OldNew).
func NewTextReplacer(oldnew ...string) *TextReplacer {
	return &TextReplacer{r: strings.NewReplacer(oldnew...)}
}

// Replace returns data with every known identifier substituted and whether
// anything changed. Binary data is returned unchanged with ErrBinaryPayload.
func (t *TextReplacer) Replace(data []byte) ([]byte, bool, error) {
	if !utf8.Valid(data) {
		return data, false, ErrBinaryPayload
	}
	in := string(data)
	out := t.r.Replace(in)
	if out == in {
		return data, false, nil
	}
	return []byte(out), true, nil
}
