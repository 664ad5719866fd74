package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/okian/coinrng/internal/adapters/http/api"
	"github.com/okian/coinrng/internal/domain/coin"
	"github.com/okian/coinrng/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	_ = logger.SetLevelString("error")
}

// mockDependencies delegates draws to a real flipper and lets tests
// force a batch failure.
type mockDependencies struct {
	flipper  *coin.Flipper
	flipsErr error
	calls    int
}

func (m *mockDependencies) Flip(ctx context.Context) coin.Side {
	m.calls++
	return m.flipper.Flip(ctx)
}

func (m *mockDependencies) Flips(ctx context.Context, n int) ([]coin.Side, error) {
	m.calls++
	if m.flipsErr != nil {
		return nil, m.flipsErr
	}
	return m.flipper.Flips(ctx, n)
}

func (m *mockDependencies) GetStats() map[string]interface{} {
	return map[string]interface{}{"flips": m.calls}
}

type validationBody struct {
	Detail []struct {
		Type  string         `json:"type"`
		Loc   []string       `json:"loc"`
		Msg   string         `json:"msg"`
		Input string         `json:"input"`
		Ctx   map[string]int `json:"ctx"`
	} `json:"detail"`
}

func newMux(deps *mockDependencies) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps).Register(context.Background(), mux)
	return mux
}

func serve(mux http.Handler, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, http.NoBody)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestServer_Register(t *testing.T) {
	Convey("Given a new API server", t, func() {
		deps := &mockDependencies{flipper: coin.NewFlipper()}
		mux := newMux(deps)

		Convey("When requesting a single flip", func() {
			w := serve(mux, http.MethodGet, "/rng/coin")

			Convey("Then it returns one label under coin-flip", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "application/json")
				var body map[string]string
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body, ShouldHaveLength, 1)
				So(coin.Side(body["coin-flip"]).Valid(), ShouldBeTrue)
			})
		})

		Convey("When requesting valid batches", func() {
			Convey("Then each has exactly n labels", func() {
				for _, n := range []int{2, 3, 50, 99, 100} {
					w := serve(mux, http.MethodGet, "/rng/coin/"+strconv.Itoa(n))
					So(w.Code, ShouldEqual, http.StatusOK)

					var body map[string][]string
					So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
					So(body, ShouldContainKey, "coin-flips")
					So(body["coin-flips"], ShouldHaveLength, n)
					for _, s := range body["coin-flips"] {
						So(coin.Side(s).Valid(), ShouldBeTrue)
					}
				}
			})
		})

		Convey("When the batch size is below the minimum", func() {
			Convey("Then 0, 1 and negatives are rejected with greater_than_equal", func() {
				for _, raw := range []string{"0", "1", "-3", "-99999999999999999999999"} {
					w := serve(mux, http.MethodGet, "/rng/coin/"+raw)
					So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)

					var body validationBody
					So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
					So(body.Detail, ShouldHaveLength, 1)
					So(body.Detail[0].Type, ShouldEqual, "greater_than_equal")
					So(body.Detail[0].Loc, ShouldResemble, []string{"path", "flips"})
					So(body.Detail[0].Msg, ShouldEqual, "Input should be greater than or equal to 2")
					So(body.Detail[0].Input, ShouldEqual, raw)
					So(body.Detail[0].Ctx, ShouldResemble, map[string]int{"ge": 2})
				}
			})
		})

		Convey("When the batch size reaches the maximum", func() {
			Convey("Then 101 and above are rejected with less_than", func() {
				for _, raw := range []string{"101", "1000", "99999999999999999999999"} {
					w := serve(mux, http.MethodGet, "/rng/coin/"+raw)
					So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)

					var body validationBody
					So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
					So(body.Detail[0].Type, ShouldEqual, "less_than")
					So(body.Detail[0].Msg, ShouldEqual, "Input should be less than 101")
					So(body.Detail[0].Ctx, ShouldResemble, map[string]int{"lt": 101})
				}
			})
		})

		Convey("When the batch size is not an integer", func() {
			Convey("Then it is rejected with int_parsing", func() {
				for _, raw := range []string{"abc", "2.5", "1e3", "0x10"} {
					w := serve(mux, http.MethodGet, "/rng/coin/"+raw)
					So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)

					var body validationBody
					So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
					So(body.Detail[0].Type, ShouldEqual, "int_parsing")
					So(body.Detail[0].Input, ShouldEqual, raw)
					So(body.Detail[0].Ctx, ShouldBeNil)
				}
			})

			Convey("And the service is never called", func() {
				serve(mux, http.MethodGet, "/rng/coin/abc")
				So(deps.calls, ShouldEqual, 0)
			})
		})

		Convey("When a coin route is called with another method", func() {
			w := serve(mux, http.MethodPost, "/rng/coin")

			Convey("Then the router answers 405", func() {
				So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			})
		})

		Convey("When an unknown path is requested", func() {
			w := serve(mux, http.MethodGet, "/rng/dice")

			Convey("Then it is not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("And health endpoint should be accessible", func() {
			w := serve(mux, http.MethodGet, "/healthz")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"status":"ok"`)
		})

		Convey("And stats endpoint should be accessible", func() {
			serve(mux, http.MethodGet, "/rng/coin")
			w := serve(mux, http.MethodGet, "/stats")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"flips":1`)
		})

		Convey("And metrics endpoint should expose coin counters", func() {
			serve(mux, http.MethodGet, "/rng/coin")
			w := serve(mux, http.MethodGet, "/metrics")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "coinrng_api_http_requests_total")
		})
	})
}

func TestServer_FlipsFailure(t *testing.T) {
	Convey("Given a service whose batch call fails", t, func() {
		deps := &mockDependencies{flipper: coin.NewFlipper(), flipsErr: errors.New("boom")}
		mux := newMux(deps)

		Convey("When requesting a valid batch", func() {
			w := serve(mux, http.MethodGet, "/rng/coin/10")

			Convey("Then a 500 with a detail message is returned", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				So(w.Body.String(), ShouldContainSubstring, "Internal Server Error")
			})
		})
	})
}

func TestServer_FlipDistribution(t *testing.T) {
	Convey("Given the single flip route", t, func() {
		mux := newMux(&mockDependencies{flipper: coin.NewFlipper()})

		Convey("When it is called 10,000 times", func() {
			const calls = 10_000
			counts := map[string]int{}
			for i := 0; i < calls; i++ {
				w := serve(mux, http.MethodGet, "/rng/coin")
				var body map[string]string
				_ = json.Unmarshal(w.Body.Bytes(), &body)
				counts[body["coin-flip"]]++
			}

			Convey("Then only heads and tails appear, roughly evenly", func() {
				So(counts, ShouldHaveLength, 2)
				So(counts["heads"]+counts["tails"], ShouldEqual, calls)
				tolerance := 6 * math.Sqrt(calls*0.25)
				So(math.Abs(float64(counts["heads"])-calls/2), ShouldBeLessThan, tolerance)
			})
		})
	})
}

func TestServer_RegisterNilMux(t *testing.T) {
	Convey("Given a nil mux", t, func() {
		server := api.NewServer(&mockDependencies{flipper: coin.NewFlipper()})

		Convey("Then registering should panic", func() {
			So(func() { server.Register(context.Background(), nil) }, ShouldPanic)
		})
	})
}

func TestErrors(t *testing.T) {
	Convey("Given api error helpers", t, func() {
		cause := errors.New("cause")

		Convey("Then kinds and causes are both matchable", func() {
			err := api.WrapKind("api.op", api.ErrValidation, cause)
			So(errors.Is(err, api.ErrValidation), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.op: validation failed: cause")
		})

		Convey("And NewKind and Wrap format their parts", func() {
			So(api.NewKind("api.op", api.ErrInternal).Error(), ShouldEqual, "api.op: internal error")
			So(api.Wrap("api.op", cause).Error(), ShouldEqual, "api.op: cause")
			So(api.Wrap("api.op", nil), ShouldBeNil)
			So(strings.HasPrefix(api.Wrap("x", cause).Error(), "x"), ShouldBeTrue)
		})
	})
}
