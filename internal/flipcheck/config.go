package flipcheck

import "time"

// Defaults used when a Config field is zero.
const (
	DefaultCalls   = 10_000
	DefaultSigmas  = 5.0
	DefaultTimeout = 10 * time.Second
)

// Config holds configuration for a verification run.
type Config struct {
	BaseURL string        // Base URL of the service
	Calls   int           // Number of single flips to request
	Workers int           // Number of concurrent requests
	Timeout time.Duration // HTTP request timeout
	Sigmas  float64       // Allowed deviation from a fair coin, in standard deviations
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.Calls <= 0 {
		out.Calls = DefaultCalls
	}
	if out.Workers <= 0 {
		out.Workers = 1
	}
	if out.Timeout <= 0 {
		out.Timeout = DefaultTimeout
	}
	if out.Sigmas <= 0 {
		out.Sigmas = DefaultSigmas
	}
	return out
}

// Report holds the outcome of a run.
type Report struct {
	Heads        int64
	Tails        int64
	HeadsShare   float64
	Deviation    float64 // |heads - calls/2| in standard deviations
	BatchesOK    int
	RejectionsOK int
	StartTime    time.Time
	Duration     time.Duration
}

// flipResponse mirrors GET /rng/coin.
type flipResponse struct {
	CoinFlip string `json:"coin-flip"`
}

// flipsResponse mirrors GET /rng/coin/{flips}.
type flipsResponse struct {
	CoinFlips []string `json:"coin-flips"`
}

// validationResponse mirrors the 422 envelope.
type validationResponse struct {
	Detail []struct {
		Type string `json:"type"`
	} `json:"detail"`
}
