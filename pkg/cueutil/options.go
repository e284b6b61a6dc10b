// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize bounds the size of a CUE file accepted by Decode.
const DefaultMaxFileSize int64 = 5 << 20

const anonymousFile = "<input>"

type (
	// Option tunes a single Decode call.
	Option func(*options)

	options struct {
		filename    string
		maxFileSize int64
		concrete    bool
	}
)

func defaultOptions() options {
	return options{filename: anonymousFile, maxFileSize: DefaultMaxFileSize, concrete: true}
}

// WithFilename names the document in error messages.
func WithFilename(name string) Option {
	return func(o *options) {
		if name != "" {
			o.filename = name
		}
	}
}

// WithMaxFileSize overrides DefaultMaxFileSize.
func WithMaxFileSize(n int64) Option {
	return func(o *options) { o.maxFileSize = n }
}

// WithConcrete controls whether every field must be concrete. Configuration
// files leave most fields out, so they validate with concrete set to false.
func WithConcrete(concrete bool) Option {
	return func(o *options) { o.concrete = concrete }
}
