package smoketest

import "time"

// Config holds configuration for the smoke run
type Config struct {
	BaseURL          string        // Base URL of the service
	NumUsers         int           // Number of users to create
	ExercisesPerUser int           // Number of exercises to record per user
	Workers          int           // Number of concurrent workers
	Timeout          time.Duration // HTTP request timeout
	LogLimit         int           // Limit passed to the logs route
	OutputFile       string        // Output file for recorded exercises
	LogFile          string        // Log file for run output
	Verbose          bool          // Enable verbose logging
}

// User mirrors the user creation response
type User struct {
	Username string `json:"username"`
	ID       string `json:"id"`
}

// Exercise mirrors the exercise creation response.
// The ID field carries the owner's user id.
type Exercise struct {
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
	ID          string `json:"id"`
}

// LogEntry mirrors one entry of the logs response
type LogEntry struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// Log mirrors the logs response envelope
type Log struct {
	Username string     `json:"username"`
	Count    int        `json:"count"`
	ID       string     `json:"id"`
	Log      []LogEntry `json:"log"`
}

// ErrorBody mirrors the error payload
type ErrorBody struct {
	Error string `json:"error"`
}

// Stats holds smoke run statistics
type Stats struct {
	UsersCreated        int
	ExercisesSubmitted  int
	ExercisesSuccessful int
	ExercisesFailed     int
	LogsRetrieved       int
	LogEntries          int
	StartTime           time.Time
	EndTime             time.Time
	Duration            time.Duration
}
