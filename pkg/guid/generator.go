// SPDX-License-Identifier: MPL-2.0

package guid

import (
	"crypto/md5" //nolint:gosec // identifiers are not a security boundary
	"encoding/hex"
	"strconv"
	"sync/atomic"
	"time"
)

type (
	// Generator mints a fresh identifier from seed material. Generation never fails.
	Generator interface {
		Generate(seed []byte) GUID
	}

	// GeneratorFunc adapts a plain function to the Generator interface.
	GeneratorFunc func(seed []byte) GUID

	// Clock is the time source consulted for salting.
	Clock interface {
		Now() time.Time
	}

	// HashGenerator derives identifiers from md5(seed || time || sequence).
	// It is safe for concurrent use.
	HashGenerator struct {
		clock Clock
		seq   atomic.Uint64
	}

	// HashOption configures a HashGenerator.
	HashOption func(*HashGenerator)

	systemClock struct{}
)

// Generate calls f(seed).
func (f GeneratorFunc) Generate(seed []byte) GUID { return f(seed) }

func (systemClock) Now() time.Time { return time.Now() }

// WithClock overrides the time source. Tests use it to make output reproducible.
func WithClock(c Clock) HashOption {
	return func(g *HashGenerator) {
		if c != nil {
			g.clock = c
		}
	}
}

// NewHashGenerator returns a generator salted with the system clock.
func NewHashGenerator(opts ...HashOption) *HashGenerator {
	g := &HashGenerator{clock: systemClock{}}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a new identifier for seed. The sequence number makes two
// calls within the same clock tick differ even for identical seeds.
func (g *HashGenerator) Generate(seed []byte) GUID {
	n := g.seq.Add(1)

	h := md5.New() //nolint:gosec // see import
	_, _ = h.Write(seed)
	_, _ = h.Write([]byte(strconv.FormatInt(g.clock.Now().UnixNano(), 10)))
	_, _ = h.Write([]byte{'.'})
	_, _ = h.Write([]byte(strconv.FormatUint(n, 10)))

	return GUID(hex.EncodeToString(h.Sum(nil)))
}
