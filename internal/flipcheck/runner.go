package flipcheck

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/okian/coinrng/internal/domain/coin"
	"github.com/okian/coinrng/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// Batch sizes requested during the batch check, and raw path values that must
// be rejected.
var (
	batchSizes     = []int{coin.MinFlips, 50, coin.MaxFlips - 1}
	rejectedInputs = []string{"0", "1", strconv.Itoa(coin.MaxFlips), "abc"}
)

// Run executes the complete verification against a running service.
func Run(ctx context.Context, config *Config) (*Report, error) {
	cfg := config.withDefaults()
	log := logger.Get().Named("flipcheck")
	client := newHTTPClient(strings.TrimRight(cfg.BaseURL, "/"), cfg.Timeout)

	report := &Report{StartTime: time.Now()}

	log.Info(ctx, "starting flip check",
		logger.String("url", cfg.BaseURL),
		logger.Int("calls", cfg.Calls),
		logger.Int("workers", cfg.Workers))

	// Step 1: Landing page
	if err := checkRoot(ctx, client); err != nil {
		return nil, err
	}

	// Step 2: Single flips
	heads, tails, err := flipMany(ctx, client, cfg.Calls, cfg.Workers)
	if err != nil {
		return nil, err
	}
	report.Heads, report.Tails = heads, tails
	report.HeadsShare = float64(heads) / float64(heads+tails)
	report.Deviation = deviation(heads, heads+tails)
	log.Info(ctx, "single flips collected",
		logger.Int64("heads", heads),
		logger.Int64("tails", tails),
		logger.Float64("heads_share", report.HeadsShare),
		logger.Float64("sigma", report.Deviation))
	if err := verifyBalance(heads, tails, cfg.Sigmas); err != nil {
		return report, err
	}

	// Step 3: Batches
	for _, n := range batchSizes {
		var out flipsResponse
		if err := client.getJSON(ctx, "/rng/coin/"+strconv.Itoa(n), http.StatusOK, &out); err != nil {
			return report, err
		}
		if err := verifyBatch(out.CoinFlips, n); err != nil {
			return report, err
		}
		report.BatchesOK++
		log.Debug(ctx, "batch verified", logger.Int("flips", n))
	}

	// Step 4: Rejections
	for _, raw := range rejectedInputs {
		var out validationResponse
		if err := client.getJSON(ctx, "/rng/coin/"+raw, http.StatusUnprocessableEntity, &out); err != nil {
			return report, err
		}
		if len(out.Detail) == 0 {
			return report, fmt.Errorf("%w: empty validation detail for %q", ErrUnexpectedStatus, raw)
		}
		report.RejectionsOK++
		log.Debug(ctx, "rejection verified", logger.String("input", raw), logger.String("type", out.Detail[0].Type))
	}

	report.Duration = time.Since(report.StartTime)
	log.Info(ctx, "flip check passed",
		logger.Int("batches", report.BatchesOK),
		logger.Int("rejections", report.RejectionsOK),
		logger.Duration("duration", report.Duration))
	return report, nil
}

// checkRoot requires the landing page to link to both documentation pages.
func checkRoot(ctx context.Context, client *HTTPClient) error {
	status, body, err := client.get(ctx, "/")
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: GET / returned %d", ErrUnexpectedStatus, status)
	}
	page := string(body)
	if !strings.Contains(page, "/docs") || !strings.Contains(page, "/redocs") {
		return ErrRootPage
	}
	return nil
}

// flipMany issues calls single-flip requests with at most workers in flight
// and tallies the results.
func flipMany(ctx context.Context, client *HTTPClient, calls, workers int) (int64, int64, error) {
	var heads, tails atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for range calls {
		g.Go(func() error {
			var out flipResponse
			if err := client.getJSON(gctx, "/rng/coin", http.StatusOK, &out); err != nil {
				return err
			}
			switch coin.Side(out.CoinFlip) {
			case coin.Heads:
				heads.Add(1)
			case coin.Tails:
				tails.Add(1)
			default:
				return fmt.Errorf("%w: %q", ErrInvalidLabel, out.CoinFlip)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, 0, err
	}
	return heads.Load(), tails.Load(), nil
}
