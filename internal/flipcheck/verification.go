package flipcheck

import (
	"fmt"
	"math"

	"github.com/okian/coinrng/internal/domain/coin"
)

// validLabel reports whether s is one of the coin side labels.
func validLabel(s string) bool {
	return coin.Side(s).Valid()
}

// deviation returns how many standard deviations heads lies from n/2 for n
// fair flips.
func deviation(heads, n int64) float64 {
	if n == 0 {
		return 0
	}
	sd := math.Sqrt(float64(n) / 4)
	return math.Abs(float64(heads)-float64(n)/2) / sd
}

// verifyBalance checks the heads count against the configured tolerance.
func verifyBalance(heads, tails int64, sigmas float64) error {
	n := heads + tails
	if d := deviation(heads, n); d > sigmas {
		return fmt.Errorf("%w: %d heads of %d (%.2f sigma, limit %.2f)", ErrImbalanced, heads, n, d, sigmas)
	}
	return nil
}

// verifyBatch checks a batch response has n valid labels.
func verifyBatch(labels []string, n int) error {
	if len(labels) != n {
		return fmt.Errorf("%w: got %d labels, want %d", ErrBatchLength, len(labels), n)
	}
	for i, l := range labels {
		if !validLabel(l) {
			return fmt.Errorf("%w: %q at index %d", ErrInvalidLabel, l, i)
		}
	}
	return nil
}
