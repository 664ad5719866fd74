// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/coinrng/internal/domain/coin"
	"github.com/okian/coinrng/pkg/logger"
	"github.com/okian/coinrng/pkg/metrics"
)

// Flipper draws coin sides. *coin.Flipper satisfies it.
type Flipper interface {
	Flip(ctx context.Context) coin.Side
	Flips(ctx context.Context, n int) ([]coin.Side, error)
}

// Service implements the API dependencies for the coin-flip endpoints.
// It holds no state that influences a draw; the counters below only feed
// GetStats.
type Service struct {
	mu sync.RWMutex

	flipper Flipper

	// State
	started   bool
	startedAt time.Time

	// Counters
	heads    atomic.Int64
	tails    atomic.Int64
	requests atomic.Int64

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithFlipper replaces the default coin flipper.
func WithFlipper(f Flipper) Option {
	return func(s *Service) {
		if f != nil {
			s.flipper = f
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		flipper: coin.NewFlipper(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start marks the service ready. Calling it twice is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "coin service started",
		logger.Int("min_flips", coin.MinFlips),
		logger.Int("max_flips", coin.MaxFlips),
	)

	return nil
}

// Stop marks the service stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "coin service stopped",
		logger.Int64("flips", s.heads.Load()+s.tails.Load()),
	)
}

// Flip performs one coin flip.
func (s *Service) Flip(ctx context.Context) coin.Side {
	s.requests.Add(1)
	side := s.flipper.Flip(ctx)
	s.record(side)
	s.log().Debug(ctx, "coin flipped", logger.String("side", side.String()))
	return side
}

// Flips performs n coin flips. Out-of-range n returns an error wrapping
// coin.ErrInvalidCount and no results.
func (s *Service) Flips(ctx context.Context, n int) ([]coin.Side, error) {
	s.requests.Add(1)
	out, err := s.flipper.Flips(ctx, n)
	if err != nil {
		return nil, err
	}
	metrics.RecordBatchSize(n)
	for _, side := range out {
		s.record(side)
	}
	s.log().Debug(ctx, "coins flipped", logger.Int("count", n))
	return out, nil
}

func (s *Service) record(side coin.Side) {
	switch side {
	case coin.Heads:
		s.heads.Add(1)
	case coin.Tails:
		s.tails.Add(1)
	}
	metrics.RecordFlip(side.String())
}

func (s *Service) log() logger.Logger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.logger == nil {
		return logger.Get()
	}
	return s.logger
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	heads, tails := s.heads.Load(), s.tails.Load()
	stats := map[string]interface{}{
		"started":  s.started,
		"heads":    heads,
		"tails":    tails,
		"flips":    heads + tails,
		"requests": s.requests.Load(),
	}
	if s.started {
		stats["uptimeSeconds"] = time.Since(s.startedAt).Seconds()
	}
	return stats
}
