// ABOUTME: ActivityLog model recording when each exercise was last finished.
// ABOUTME: Feeds the rest-day policy for subsequent workout generation.
package models

import "time"

// ExerciseLog is the last completion time of one exercise, keyed by name.
type ExerciseLog struct {
	Name         string    `json:"name" yaml:"name"`
	LastFinished time.Time `json:"last_finished" yaml:"last_finished"`
}

// ActivityLog maps exercise names to their last finish timestamps.
type ActivityLog struct {
	Exercises []ExerciseLog `json:"exercises" yaml:"exercises"`
}

// Lookup returns the log entry for name.
func (a *ActivityLog) Lookup(name string) (ExerciseLog, bool) {
	for _, e := range a.Exercises {
		if e.Name == name {
			return e, true
		}
	}
	return ExerciseLog{}, false
}

// Touch sets name's last finish time, adding an entry if needed.
func (a *ActivityLog) Touch(name string, at time.Time) {
	for i := range a.Exercises {
		if a.Exercises[i].Name == name {
			a.Exercises[i].LastFinished = at
			return
		}
	}
	a.Exercises = append(a.Exercises, ExerciseLog{Name: name, LastFinished: at})
}
