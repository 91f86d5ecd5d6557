package smoketest

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gmrcWP/exercise-tracker/internal/domain/model"
)

// verifyResults checks the recorded exercises and retrieved logs for
// contract consistency.
func verifyResults(ctx context.Context, config *Config, users []User, recorded map[string][]Exercise, logs map[string]Log) error {
	log.Println("🔍 Verifying results...")

	if len(users) == 0 {
		return fmt.Errorf("no users to verify")
	}

	var warnings int
	for _, u := range users {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		warnings += verifyUserExercises(u, recorded[u.ID])

		l, ok := logs[u.ID]
		if !ok {
			log.Printf("⚠️  No log retrieved for user %s", u.ID)
			warnings++
			continue
		}
		warnings += verifyUserLog(config, u, recorded[u.ID], l)
	}

	if warnings > 0 {
		return fmt.Errorf("verification found %d inconsistencies", warnings)
	}

	log.Println("✅ Result verification completed")
	return nil
}

// verifyUserExercises checks each exercise response against its owner.
func verifyUserExercises(u User, exercises []Exercise) int {
	var warnings int
	for _, ex := range exercises {
		// The id field echoes the owner's user id
		if ex.ID != u.ID {
			log.Printf("⚠️  Exercise id %q does not match user id %q", ex.ID, u.ID)
			warnings++
		}
		if ex.Username != u.Username {
			log.Printf("⚠️  Exercise username %q does not match user %q", ex.Username, u.Username)
			warnings++
		}
		if _, err := time.Parse(model.DateLayout, ex.Date); err != nil {
			log.Printf("⚠️  Exercise date %q is not in the expected format: %v", ex.Date, err)
			warnings++
		}
	}
	return warnings
}

// verifyUserLog checks the log envelope against what was recorded.
func verifyUserLog(config *Config, u User, exercises []Exercise, l Log) int {
	var warnings int

	if l.ID != u.ID {
		log.Printf("⚠️  Log id %q does not match user id %q", l.ID, u.ID)
		warnings++
	}
	if l.Username != u.Username {
		log.Printf("⚠️  Log username %q does not match user %q", l.Username, u.Username)
		warnings++
	}
	if l.Count != len(l.Log) {
		log.Printf("⚠️  Log count %d does not match entry count %d", l.Count, len(l.Log))
		warnings++
	}

	expected := len(exercises)
	if config.LogLimit > 0 && expected > config.LogLimit {
		expected = config.LogLimit
	}
	if l.Count != expected {
		log.Printf("⚠️  User %s: expected %d log entries, got %d", u.ID, expected, l.Count)
		warnings++
	}

	for _, entry := range l.Log {
		if _, err := time.Parse(model.DateLayout, entry.Date); err != nil {
			log.Printf("⚠️  Log entry date %q is not in the expected format: %v", entry.Date, err)
			warnings++
		}
	}

	return warnings
}
