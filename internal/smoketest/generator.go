package smoketest

import (
	"fmt"
	"math/rand"
	"time"
)

// exerciseInput is one form submission to the exercises route.
type exerciseInput struct {
	UserID      string
	Description string
	Duration    string
	Date        string
}

var descriptions = []string{
	"morning run",
	"evening walk",
	"swimming",
	"cycling",
	"yoga",
	"weight lifting",
	"rowing",
	"jump rope",
	"hiking",
	"stretching",
}

const (
	maxDuration    = 120
	dateRangeDays  = 90
	inputDateShape = "2006-01-02"
)

// generateExercises builds ExercisesPerUser random entries for each user.
// Dates land within the last dateRangeDays so from/to filters have
// something to bite on.
func generateExercises(config *Config, users []User) []exerciseInput {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now().UTC()

	inputs := make([]exerciseInput, 0, len(users)*config.ExercisesPerUser)
	for _, u := range users {
		for i := 0; i < config.ExercisesPerUser; i++ {
			day := now.AddDate(0, 0, -rng.Intn(dateRangeDays))
			inputs = append(inputs, exerciseInput{
				UserID:      u.ID,
				Description: descriptions[rng.Intn(len(descriptions))],
				Duration:    fmt.Sprintf("%d", 1+rng.Intn(maxDuration)),
				Date:        day.Format(inputDateShape),
			})
		}
	}

	return inputs
}
