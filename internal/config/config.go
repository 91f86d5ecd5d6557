// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep defaults in New and let Load layer file/env sources on top.
// - External errors must be wrapped via this package's error helpers.
package config

// Store backend names accepted by the "store" key.
const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":3000".
	Addr string `koanf:"addr"`

	// MongoURI is the MongoDB connection string.
	MongoURI string `koanf:"mongo_uri"`

	// MongoDatabase names the database holding the users and exercises collections.
	MongoDatabase string `koanf:"mongo_database"`

	// Store selects the persistence backend: "mongo" or "memory".
	Store string `koanf:"store"`

	// DefaultLogLimit caps log entries returned when no limit is supplied.
	DefaultLogLimit int `koanf:"default_log_limit"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":3000",
		MongoURI:        "mongodb://localhost:27017",
		MongoDatabase:   "exercise_tracker",
		Store:           StoreMongo,
		DefaultLogLimit: 10,
	}
}
