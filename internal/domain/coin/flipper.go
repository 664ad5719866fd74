package coin

import (
	"context"
	"math/rand/v2"
)

// Source yields a uniform integer in [0, n). *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// globalSource draws from the runtime generator, which is safe for
// concurrent use and seeded per process.
type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Option applies a configuration option to the Flipper.
type Option func(*Flipper)

// WithSource replaces the default generator. A Source that is not safe for
// concurrent use must not be shared across goroutines.
func WithSource(src Source) Option {
	return func(f *Flipper) {
		if src != nil {
			f.src = src
		}
	}
}

// Flipper draws coin sides independently and uniformly.
type Flipper struct {
	src Source
}

// NewFlipper creates a Flipper backed by the runtime generator unless
// WithSource is given.
func NewFlipper(opts ...Option) *Flipper {
	f := &Flipper{src: globalSource{}}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Flip performs a single draw.
func (f *Flipper) Flip(_ context.Context) Side {
	return sides[f.src.IntN(len(sides))]
}

// Flips performs n independent draws. It returns a *CountError and no
// results when n is outside [MinFlips, MaxFlips).
func (f *Flipper) Flips(ctx context.Context, n int) ([]Side, error) {
	if err := ValidateCount(n); err != nil {
		return nil, err
	}
	out := make([]Side, n)
	for i := range out {
		out[i] = f.Flip(ctx)
	}
	return out, nil
}
