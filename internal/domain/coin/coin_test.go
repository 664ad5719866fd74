package coin

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"strconv"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// fixedSource replays a scripted sequence of draws.
type fixedSource struct {
	values []int
	i      int
}

func (s *fixedSource) IntN(n int) int {
	v := s.values[s.i%len(s.values)] % n
	s.i++
	return v
}

func TestSide(t *testing.T) {
	Convey("Given the coin sides", t, func() {
		Convey("Then exactly heads and tails are valid", func() {
			So(Sides(), ShouldResemble, []Side{Heads, Tails})
			So(Heads.Valid(), ShouldBeTrue)
			So(Tails.Valid(), ShouldBeTrue)
			So(Side("edge").Valid(), ShouldBeFalse)
			So(Side("").Valid(), ShouldBeFalse)
		})

		Convey("And the labels have their wire values", func() {
			So(Heads.String(), ShouldEqual, "heads")
			So(Tails.String(), ShouldEqual, "tails")
		})

		Convey("And Sides returns a copy", func() {
			s := Sides()
			s[0] = "edge"
			So(Sides()[0], ShouldEqual, Heads)
		})
	})
}

func TestValidateCount(t *testing.T) {
	Convey("Given batch sizes around the bounds", t, func() {
		Convey("When the size is within [2, 101)", func() {
			Convey("Then it is accepted", func() {
				for _, n := range []int{2, 3, 50, 99, 100} {
					So(ValidateCount(n), ShouldBeNil)
				}
			})
		})

		Convey("When the size is below the minimum", func() {
			for _, n := range []int{1, 0, -5} {
				err := ValidateCount(n)

				Convey("Then it reports the lower bound for "+strconv.Itoa(n), func() {
					var ce *CountError
					So(errors.As(err, &ce), ShouldBeTrue)
					So(ce.Constraint, ShouldEqual, ConstraintMin)
					So(ce.Count, ShouldEqual, n)
					So(ce.Min, ShouldEqual, MinFlips)
					So(errors.Is(err, ErrInvalidCount), ShouldBeTrue)
					So(err.Error(), ShouldContainSubstring, "greater than or equal to 2")
				})
			}
		})

		Convey("When the size reaches the exclusive maximum", func() {
			for _, n := range []int{101, 102, 10_000} {
				err := ValidateCount(n)

				Convey("Then it reports the upper bound for "+strconv.Itoa(n), func() {
					var ce *CountError
					So(errors.As(err, &ce), ShouldBeTrue)
					So(ce.Constraint, ShouldEqual, ConstraintMax)
					So(ce.Max, ShouldEqual, MaxFlips)
					So(errors.Is(err, ErrInvalidCount), ShouldBeTrue)
					So(err.Error(), ShouldContainSubstring, "less than 101")
				})
			}
		})
	})
}

func TestFlipper(t *testing.T) {
	Convey("Given a flipper", t, func() {
		ctx := context.Background()

		Convey("When draws are scripted", func() {
			f := NewFlipper(WithSource(&fixedSource{values: []int{0, 1, 1, 0}}))

			Convey("Then Flip maps 0 to heads and 1 to tails", func() {
				So(f.Flip(ctx), ShouldEqual, Heads)
				So(f.Flip(ctx), ShouldEqual, Tails)
			})

			Convey("And Flips keeps draw order", func() {
				out, err := f.Flips(ctx, 4)
				So(err, ShouldBeNil)
				So(out, ShouldResemble, []Side{Heads, Tails, Tails, Heads})
			})
		})

		Convey("When WithSource gets nil", func() {
			f := NewFlipper(WithSource(nil))

			Convey("Then the default generator is kept", func() {
				So(f.Flip(ctx).Valid(), ShouldBeTrue)
			})
		})

		Convey("When a batch is requested for every valid size", func() {
			f := NewFlipper(WithSource(rand.New(rand.NewPCG(7, 11))))

			Convey("Then each batch has exactly n valid labels", func() {
				for n := MinFlips; n < MaxFlips; n++ {
					out, err := f.Flips(ctx, n)
					So(err, ShouldBeNil)
					So(len(out), ShouldEqual, n)
					for _, s := range out {
						So(s.Valid(), ShouldBeTrue)
					}
				}
			})
		})

		Convey("When a batch size is out of range", func() {
			f := NewFlipper()

			Convey("Then no partial result is returned", func() {
				for _, n := range []int{0, 1, 101} {
					out, err := f.Flips(ctx, n)
					So(out, ShouldBeNil)
					So(errors.Is(err, ErrInvalidCount), ShouldBeTrue)
				}
			})
		})

		Convey("When flipping many times with the default generator", func() {
			f := NewFlipper()
			const calls = 10_000
			heads := 0
			for i := 0; i < calls; i++ {
				if f.Flip(ctx) == Heads {
					heads++
				}
			}

			Convey("Then both sides appear with roughly equal frequency", func() {
				// 6 standard deviations of a fair binomial.
				tolerance := 6 * math.Sqrt(calls*0.25)
				So(math.Abs(float64(heads)-calls/2), ShouldBeLessThan, tolerance)
			})
		})
	})
}
