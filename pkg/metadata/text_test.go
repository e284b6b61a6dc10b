// SPDX-License-Identifier: MPL-2.0

package metadata_test

import (
	"testing"

	"github.com/upkremap/upkremap/pkg/metadata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextReplacer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    string
		changed bool
	}{
		{"replaces references", "m_Material: {fileID: 2100000, guid: " + oldA + ", type: 2}", "m_Material: {fileID: 2100000, guid: " + newB + ", type: 2}", true},
		{"no references", "plain text", "plain text", false},
		{"single pass", oldA + " " + oldB, newB + " " + newA, true},
	}

	// oldA -> newB and newB -> oldB would chain in a multi-pass replace.
	r := metadata.NewTextReplacer(oldA, newB, oldB, newA, newB, oldB)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, changed, err := r.Replace([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
			assert.Equal(t, tt.changed, changed)
		})
	}
}

func TestTextReplacerBinary(t *testing.T) {
	t.Parallel()

	data := []byte{0x89, 'P', 'N', 'G', 0xff, 0xfe}
	got, changed, err := metadata.NewTextReplacer(oldA, newB).Replace(data)
	require.ErrorIs(t, err, metadata.ErrBinaryPayload)
	assert.False(t, changed)
	assert.Equal(t, data, got)
}
