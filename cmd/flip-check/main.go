package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/coinrng/internal/flipcheck"
)

// Default configuration constants.
const (
	defaultWorkers    = 2 // multiplier for runtime.NumCPU()
	defaultRunTimeout = 5 * time.Minute
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:8000", "Base URL of the service")
		calls   = flag.Int("calls", flipcheck.DefaultCalls, "Number of single flips to request")
		workers = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent requests")
		timeout = flag.Duration("timeout", flipcheck.DefaultTimeout, "HTTP request timeout")
		sigmas  = flag.Float64("sigmas", flipcheck.DefaultSigmas, "Allowed deviation from a fair coin in standard deviations")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		flipcheck.ShowHelp()
		return
	}

	if err := flipcheck.SetupLogging(*verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &flipcheck.Config{
		BaseURL: *baseURL,
		Calls:   *calls,
		Workers: *workers,
		Timeout: *timeout,
		Sigmas:  *sigmas,
	}

	if _, err := flipcheck.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Flip check failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
