package smoketest

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gmrcWP/exercise-tracker/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	// Initialize the logger first
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "smoke_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the smoke tool.
func ShowHelp() {
	os.Stdout.WriteString(`Exercise Tracker Smoke Tool
===========================

Drives a live exercise tracker service end to end: creates users, records
exercises against them, fetches their logs and verifies the responses.

Usage:
  go run cmd/smoke/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:3000")
  -users int
        Number of users to create (default 5)
  -exercises int
        Number of exercises to record per user (default 20)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -limit int
        Limit passed to the logs route (default 10)
  -output string
        Output file for recorded exercises (default: recorded_exercises_TIMESTAMP.json)
  -log string
        Log file for run output (default: smoke_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Run with default settings
  go run cmd/smoke/main.go

  # Run with custom parameters
  go run cmd/smoke/main.go -users 20 -exercises 50 -url http://localhost:8080

  # Run with verbose output
  go run cmd/smoke/main.go -verbose -exercises 100
`)
}
