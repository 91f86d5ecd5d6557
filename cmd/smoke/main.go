package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/gmrcWP/exercise-tracker/internal/smoketest"
)

// Default configuration constants.
const (
	defaultNumUsers     = 5
	defaultExercises    = 20
	defaultWorkers      = 2 // multiplier for runtime.NumCPU()
	defaultLogLimit     = 10
	defaultTimeout      = 30 * time.Second
	defaultSmokeTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:3000", "Base URL of the service")
		numUsers   = flag.Int("users", defaultNumUsers, "Number of users to create")
		exercises  = flag.Int("exercises", defaultExercises, "Number of exercises to record per user")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logLimit   = flag.Int("limit", defaultLogLimit, "Limit passed to the logs route")
		outputFile = flag.String("output", "", "Output file for recorded exercises (default: recorded_exercises_TIMESTAMP.json)")
		logFile    = flag.String("log", "", "Log file for run output (default: smoke_log_TIMESTAMP.log)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		smoketest.ShowHelp()
		return
	}

	// Setup logging
	if err := smoketest.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultSmokeTimeout)
	defer cancel()

	// Create run configuration
	config := &smoketest.Config{
		BaseURL:          *baseURL,
		NumUsers:         *numUsers,
		ExercisesPerUser: *exercises,
		Workers:          *workers,
		Timeout:          *timeout,
		LogLimit:         *logLimit,
		OutputFile:       *outputFile,
		LogFile:          *logFile,
		Verbose:          *verbose,
	}

	// Run the smoke test
	if err := smoketest.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Smoke run failed: " + err.Error() + "\n")
		return
	}
}
