package fpk

import (
	"crypto/rand"
	"io"
)

type options struct {
	rand io.Reader
}

// Option configures a Pack call or a Builder.
type Option func(*options)

// WithRand substitutes the entropy source used for IV and padding generation.
// Intended for tests; production callers must keep the default crypto/rand
// source.
func WithRand(r io.Reader) Option {
	return func(o *options) {
		o.rand = r
	}
}

func newOptions(opts []Option) options {
	o := options{rand: rand.Reader}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
