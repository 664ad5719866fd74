package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/okian/coinrng/internal/domain/coin"
)

// Error types reported in the validation envelope.
const (
	errTypeIntParsing = "int_parsing"
)

// fieldError is one entry of a 422 body. The shape follows the
// {"detail": [{type, loc, msg, input, ctx}]} envelope API clients already
// expect from this service.
type fieldError struct {
	Type  string         `json:"type"`
	Loc   []string       `json:"loc"`
	Msg   string         `json:"msg"`
	Input string         `json:"input"`
	Ctx   map[string]int `json:"ctx,omitempty"`
}

type validationResponse struct {
	Detail []fieldError `json:"detail"`
}

func (f *fieldError) Error() string {
	return fmt.Sprintf("%s %s: %s", strings.Join(f.Loc, "."), f.Type, f.Msg)
}

// parseFlips validates the raw {flips} path segment. It returns a
// *fieldError when the value is not a base-10 integer or falls outside
// [coin.MinFlips, coin.MaxFlips).
func parseFlips(name, raw string) (int, *fieldError) {
	loc := []string{"path", name}

	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		var numErr *strconv.NumError
		if !errors.As(err, &numErr) || !errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, &fieldError{
				Type:  errTypeIntParsing,
				Loc:   loc,
				Msg:   "Input should be a valid integer, unable to parse string as an integer",
				Input: raw,
			}
		}
		// Out of int range: still an integer, so report the violated bound.
		if strings.HasPrefix(strings.TrimSpace(raw), "-") {
			n = coin.MinFlips - 1
		} else {
			n = coin.MaxFlips
		}
	}

	var ce *coin.CountError
	if err := coin.ValidateCount(n); errors.As(err, &ce) {
		fe := &fieldError{Type: string(ce.Constraint), Loc: loc, Input: raw}
		switch ce.Constraint {
		case coin.ConstraintMin:
			fe.Msg = fmt.Sprintf("Input should be greater than or equal to %d", ce.Min)
			fe.Ctx = map[string]int{"ge": ce.Min}
		default:
			fe.Msg = fmt.Sprintf("Input should be less than %d", ce.Max)
			fe.Ctx = map[string]int{"lt": ce.Max}
		}
		return 0, fe
	}
	return n, nil
}
