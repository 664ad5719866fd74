package flipcheck

import (
	"fmt"
	"os"

	"github.com/okian/coinrng/pkg/logger"
)

// SetupLogging initializes the logger for the verification tool.
func SetupLogging(verbose bool) error {
	if err := logger.InitWithFormat(logger.FormatText, os.Stdout); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		return logger.SetLevelString("debug")
	}
	return nil
}

// ShowHelp prints usage information for the flip check tool.
func ShowHelp() {
	os.Stdout.WriteString(`Coin RNG Flip Check
===================

Verifies a running coin-flip service: documentation links, fairness of
single flips, batch sizes and rejection of out-of-range batches.

Usage:
  go run ./cmd/flip-check [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8000")
  -calls int
        Number of single flips to request (default 10000)
  -workers int
        Number of concurrent requests (default 2 * NumCPU)
  -timeout duration
        HTTP request timeout (default 10s)
  -sigmas float
        Allowed deviation from a fair coin in standard deviations (default 5)
  -verbose
        Enable verbose logging
  -help
        Show this help

Exit status is non-zero when any check fails.
`)
}
