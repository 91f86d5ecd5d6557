package smoketest

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gmrcWP/exercise-tracker/pkg/logger"
)

// File permission constants.
const (
	directoryPermission  = 0750
	outputFilePermission = 0600
)

// Run executes the complete smoke run against a live service.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting exercise tracker smoke run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("users", config.NumUsers),
		logger.Int("exercisesPerUser", config.ExercisesPerUser),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Int("logLimit", config.LogLimit),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Create users
	users, err := createUsers(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("user creation failed: %w", err)
	}

	// Step 3: Record exercises concurrently
	recorded, err := submitExercises(ctx, config, users, stats)
	if err != nil {
		return fmt.Errorf("exercise submission failed: %w", err)
	}

	// Step 4: Retrieve logs
	logs, err := retrieveLogs(ctx, config, users, stats)
	if err != nil {
		return fmt.Errorf("log retrieval failed: %w", err)
	}

	// Step 5: Verify results
	if err := verifyResults(ctx, config, users, recorded, logs); err != nil {
		return fmt.Errorf("result verification failed: %w", err)
	}

	// Step 6: Save recorded exercises to file
	if err := saveExercisesToFile(ctx, config, recorded); err != nil {
		logger.Get().Warn(ctx, "failed to save exercises to file", logger.Error(err))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "smoke run completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	healthURL := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, healthURL)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Accept any 200 response as healthy (the route serves Prometheus metrics)
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// createUsers registers NumUsers users sequentially and returns them.
func createUsers(ctx context.Context, config *Config, stats *Stats) ([]User, error) {
	log.Printf("👤 Creating %d users...", config.NumUsers)

	client := newHTTPClient(config.Timeout)
	usersURL := config.BaseURL + "/api/users"
	runTag := time.Now().Format("20060102_150405")

	users := make([]User, 0, config.NumUsers)
	for i := 0; i < config.NumUsers; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		form := url.Values{}
		form.Set("username", fmt.Sprintf("smoke_%s_%03d", runTag, i))

		resp, err := client.PostForm(ctx, usersURL, form)
		if err != nil {
			return nil, fmt.Errorf("failed to create user %d: %w", i, err)
		}

		body, err := readResponseBody(resp)
		if err != nil {
			return nil, fmt.Errorf("failed to read user response %d: %w", i, err)
		}
		if resp.StatusCode != StatusOK {
			return nil, fmt.Errorf("user creation %d returned status %d: %s", i, resp.StatusCode, string(body))
		}

		var u User
		if err := unmarshalJSON(body, &u); err != nil {
			return nil, fmt.Errorf("failed to parse user response %d: %w", i, err)
		}
		if u.ID == "" {
			return nil, fmt.Errorf("user creation %d returned an empty id", i)
		}

		users = append(users, u)
	}

	stats.UsersCreated = len(users)
	log.Printf("✅ Created %d users", len(users))
	return users, nil
}

// submitExercises records the generated exercises concurrently using a
// worker pool and returns the parsed responses keyed by user id.
func submitExercises(ctx context.Context, config *Config, users []User, stats *Stats) (map[string][]Exercise, error) {
	inputs := generateExercises(config, users)
	log.Printf("📤 Recording %d exercises with %d workers...", len(inputs), config.Workers)

	client := newHTTPClient(config.Timeout)

	var (
		successful int64
		failed     int64
		submitted  int64
	)

	inputChan := make(chan exerciseInput, config.Workers*WorkerChannelMultiplier)
	results := make(chan Exercise, len(inputs))
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for in := range inputChan {
				select {
				case <-ctx.Done():
					return
				default:
					ex, err := submitSingleExercise(ctx, client, config.BaseURL, in)
					atomic.AddInt64(&submitted, 1)
					if err != nil {
						atomic.AddInt64(&failed, 1)
						if config.Verbose {
							log.Printf("⚠️  Exercise submission failed: %v", err)
						}
						continue
					}
					atomic.AddInt64(&successful, 1)
					results <- ex
				}
			}
		}()
	}

	go func() {
		defer close(inputChan)
		for _, in := range inputs {
			select {
			case <-ctx.Done():
				return
			case inputChan <- in:
			}
		}
	}()

	wg.Wait()
	close(results)

	recorded := make(map[string][]Exercise, len(users))
	for ex := range results {
		recorded[ex.ID] = append(recorded[ex.ID], ex)
	}

	stats.ExercisesSubmitted = int(atomic.LoadInt64(&submitted))
	stats.ExercisesSuccessful = int(atomic.LoadInt64(&successful))
	stats.ExercisesFailed = int(atomic.LoadInt64(&failed))

	log.Printf(`✅ Exercise submission completed:
   Successful: %d
   Failed: %d
`, stats.ExercisesSuccessful, stats.ExercisesFailed)

	return recorded, nil
}

// submitSingleExercise posts one exercise and parses the response.
func submitSingleExercise(ctx context.Context, client *HTTPClient, baseURL string, in exerciseInput) (Exercise, error) {
	form := url.Values{}
	form.Set("description", in.Description)
	form.Set("duration", in.Duration)
	form.Set("date", in.Date)

	resp, err := client.PostForm(ctx, baseURL+"/api/users/"+in.UserID+"/exercises", form)
	if err != nil {
		return Exercise{}, err
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return Exercise{}, err
	}
	if resp.StatusCode != StatusOK {
		return Exercise{}, fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	// The route reports unknown users as 200 with an error body
	var errBody ErrorBody
	if err := unmarshalJSON(body, &errBody); err == nil && errBody.Error != "" {
		return Exercise{}, fmt.Errorf("service error: %s", errBody.Error)
	}

	var ex Exercise
	if err := unmarshalJSON(body, &ex); err != nil {
		return Exercise{}, fmt.Errorf("failed to parse exercise response: %w", err)
	}
	return ex, nil
}

// retrieveLogs fetches each user's log with the configured limit.
func retrieveLogs(ctx context.Context, config *Config, users []User, stats *Stats) (map[string]Log, error) {
	log.Printf("📥 Retrieving logs for %d users...", len(users))

	client := newHTTPClient(config.Timeout)
	logs := make(map[string]Log, len(users))

	for _, u := range users {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		logsURL := fmt.Sprintf("%s/api/users/%s/logs?limit=%d", config.BaseURL, u.ID, config.LogLimit)
		resp, err := client.Get(ctx, logsURL)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch logs for %s: %w", u.ID, err)
		}

		body, err := readResponseBody(resp)
		if err != nil {
			return nil, fmt.Errorf("failed to read logs response for %s: %w", u.ID, err)
		}
		if resp.StatusCode != StatusOK {
			return nil, fmt.Errorf("logs for %s returned status %d: %s", u.ID, resp.StatusCode, string(body))
		}

		var errBody ErrorBody
		if err := unmarshalJSON(body, &errBody); err == nil && errBody.Error != "" {
			return nil, fmt.Errorf("logs for %s returned service error: %s", u.ID, errBody.Error)
		}

		var l Log
		if err := unmarshalJSON(body, &l); err != nil {
			return nil, fmt.Errorf("failed to parse logs response for %s: %w", u.ID, err)
		}

		logs[u.ID] = l
		stats.LogsRetrieved++
		stats.LogEntries += len(l.Log)
	}

	log.Printf("✅ Retrieved %d logs", len(logs))
	return logs, nil
}

// saveExercisesToFile saves the recorded exercises to a JSON file.
func saveExercisesToFile(ctx context.Context, config *Config, recorded map[string][]Exercise) error {
	if len(recorded) == 0 {
		return fmt.Errorf("no exercises to save")
	}

	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "recorded_exercises_" + timestamp + ".json"
	}

	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	flat := make([]Exercise, 0)
	for _, list := range recorded {
		flat = append(flat, list...)
	}

	data, err := json.MarshalIndent(flat, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal exercises: %w", err)
	}

	if err := os.WriteFile(filename, data, outputFilePermission); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	logger.Get().Info(ctx, "exercises saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final smoke run statistics.
func displayFinalStats(stats *Stats) {
	var successRate, exercisesPerSecond float64

	if stats.ExercisesSubmitted > 0 {
		successRate = float64(stats.ExercisesSuccessful) / float64(stats.ExercisesSubmitted) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		exercisesPerSecond = float64(stats.ExercisesSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("usersCreated", stats.UsersCreated),
		logger.Int("exercisesSubmitted", stats.ExercisesSubmitted),
		logger.Int("exercisesSuccessful", stats.ExercisesSuccessful),
		logger.Int("exercisesFailed", stats.ExercisesFailed),
		logger.Int("logsRetrieved", stats.LogsRetrieved),
		logger.Int("logEntries", stats.LogEntries),
		logger.String("duration", stats.Duration.String()),
		logger.Any("successRate", successRate),
		logger.Any("exercisesPerSecond", exercisesPerSecond))
}
