// Package coin defines the two-sided coin and the uniform draw over its sides.
package coin

import "fmt"

// Side is the label produced by a single flip.
type Side string

// The only two labels a flip can produce.
const (
	Heads Side = "heads"
	Tails Side = "tails"
)

// Bounds for a batch of flips: MinFlips is inclusive, MaxFlips is exclusive.
const (
	MinFlips = 2
	MaxFlips = 101
)

// sides is indexed by the value drawn from a Source.
var sides = [2]Side{Heads, Tails}

// Sides returns both labels in a fixed order.
func Sides() []Side {
	return []Side{sides[0], sides[1]}
}

// Valid reports whether s is one of the two coin labels.
func (s Side) Valid() bool {
	return s == Heads || s == Tails
}

func (s Side) String() string { return string(s) }

// Constraint names the bound a rejected count violated.
type Constraint string

// Constraint values match the error types reported to HTTP clients.
const (
	ConstraintMin Constraint = "greater_than_equal"
	ConstraintMax Constraint = "less_than"
)

// CountError describes a batch size outside [MinFlips, MaxFlips).
type CountError struct {
	Count      int
	Min        int
	Max        int
	Constraint Constraint
}

func (e *CountError) Error() string {
	if e.Constraint == ConstraintMin {
		return fmt.Sprintf("flip count %d must be greater than or equal to %d", e.Count, e.Min)
	}
	return fmt.Sprintf("flip count %d must be less than %d", e.Count, e.Max)
}

// Unwrap lets callers match ErrInvalidCount with errors.Is.
func (e *CountError) Unwrap() error { return ErrInvalidCount }

// ValidateCount returns nil when MinFlips <= n < MaxFlips and a *CountError otherwise.
func ValidateCount(n int) error {
	switch {
	case n < MinFlips:
		return &CountError{Count: n, Min: MinFlips, Max: MaxFlips, Constraint: ConstraintMin}
	case n >= MaxFlips:
		return &CountError{Count: n, Min: MinFlips, Max: MaxFlips, Constraint: ConstraintMax}
	}
	return nil
}
