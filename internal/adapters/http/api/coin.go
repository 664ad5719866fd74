package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/okian/coinrng/internal/domain/coin"
	"github.com/okian/coinrng/pkg/logger"
	"github.com/okian/coinrng/pkg/metrics"
)

// flipsParam names the batch-size path wildcard.
const flipsParam = "flips"

// CoinDependencies defines the interface for coin operations.
type CoinDependencies interface {
	Flip(ctx context.Context) coin.Side
	Flips(ctx context.Context, n int) ([]coin.Side, error)
}

// CoinHandler handles the randomness endpoints.
type CoinHandler struct {
	deps CoinDependencies
}

// NewCoinHandler creates a new coin handler.
func NewCoinHandler(deps CoinDependencies) *CoinHandler {
	return &CoinHandler{deps: deps}
}

// HandleFlip handles GET /rng/coin requests.
func (h *CoinHandler) HandleFlip(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, flipResponse{CoinFlip: h.deps.Flip(r.Context())})
}

// HandleFlips handles GET /rng/coin/{flips} requests. The path value is
// validated before the service is called; a rejected value yields 422.
func (h *CoinHandler) HandleFlips(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_coin_flips"
	ctx := r.Context()

	n, fe := parseFlips(flipsParam, r.PathValue(flipsParam))
	if fe != nil {
		metrics.RecordValidationFailure(fe.Type)
		logger.FromContext(ctx).Debug(ctx, "rejected flip count",
			logger.Error(WrapKind(op, ErrValidation, fe)),
		)
		writeJSON(w, http.StatusUnprocessableEntity, validationResponse{Detail: []fieldError{*fe}})
		return
	}

	out, err := h.deps.Flips(ctx, n)
	if err != nil {
		// parseFlips and the service share coin.ValidateCount, so this is
		// not reachable with the default service.
		kind := ErrInternal
		if errors.Is(err, coin.ErrInvalidCount) {
			kind = ErrValidation
		}
		logger.FromContext(ctx).Error(ctx, "flip batch failed", logger.Error(WrapKind(op, kind, err)))
		writeError(w, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, flipsResponse{CoinFlips: out})
}
