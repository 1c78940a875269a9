// ABOUTME: Activity-log queries and updates driven by finished workouts.
// ABOUTME: Only a fully completed workout records its exercises.
package workout

import (
	"time"

	"github.com/harperreed/intervals/internal/models"
)

// RecordFinished stamps every exercise task of w with now.
// It is a no-op for workouts that have not ended.
func RecordFinished(log *models.ActivityLog, w *models.Workout, now time.Time) bool {
	if !w.HasEnded() {
		return false
	}
	recorded := false
	for _, t := range w.Tasks {
		if t.Type != models.TaskExercise {
			continue
		}
		log.Touch(t.Name, now)
		recorded = true
	}
	return recorded
}

// LastFinishedForGroup returns the most recent finish time of any exercise in group.
func LastFinishedForGroup(log models.ActivityLog, group models.ExerciseGroup) (time.Time, bool) {
	names := make(map[string]bool, len(group.Exercises))
	for _, e := range group.Exercises {
		names[e.Name] = true
	}

	var last time.Time
	found := false
	for _, e := range log.Exercises {
		if !names[e.Name] {
			continue
		}
		if !found || e.LastFinished.After(last) {
			last = e.LastFinished
			found = true
		}
	}
	return last, found
}

// LastFinishedWorkout returns the most recent finish time across all exercises.
func LastFinishedWorkout(log models.ActivityLog) (time.Time, bool) {
	var last time.Time
	found := false
	for _, e := range log.Exercises {
		if !found || e.LastFinished.After(last) {
			last = e.LastFinished
			found = true
		}
	}
	return last, found
}
