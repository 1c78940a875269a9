// ABOUTME: Cue computation for each task type at its current second.
// ABOUTME: Cues are short phrases handed to a speaker by the caller.
package workout

import (
	"fmt"

	"github.com/harperreed/intervals/internal/models"
)

const (
	cueHalfway      = "Halfway through!"
	cueFiveToGo     = "5 seconds to go!"
	cueFifteenToGo  = "15 seconds to go!"
	cueThirtyToGo   = "30 seconds to go!"
	cueWarmupStart  = "Starting with warmup!"
	cueExerciseGo   = "GO!"
	cueCooldownGo   = "Go!"
	cueWorkoutDone  = "DONE!"
	cuePause        = "[pause]"
	fifteenCueFloor = 25
	thirtyCueFloor  = 90
)

// CueFor returns the cue for the task at index, evaluated at its current second.
func CueFor(w *models.Workout, index int, settings models.Settings) (string, bool) {
	if index < 0 || index >= len(w.Tasks) {
		return "", false
	}
	task := w.Tasks[index]

	var next *models.WorkoutTask
	if index+1 < len(w.Tasks) {
		next = &w.Tasks[index+1]
	}

	secondsToGo := task.Duration - task.CurrentSecond
	justStarted := task.CurrentSecond == 0
	justEnded := secondsToGo == 0
	fiveToGo := secondsToGo == 5
	halfway := task.CurrentSecond == task.Duration/2
	reps := nextRepetitions(w, index)

	switch task.Type {
	case models.TaskWarmup:
		switch {
		case justStarted:
			return cueWarmupStart, true
		case halfway:
			return cueHalfway, true
		case fiveToGo:
			return cueFiveToGo, true
		}

	case models.TaskInitialPreparation:
		switch {
		case justStarted && next != nil:
			return "Prepare " + setsOf(reps, next.Name) + "!", true
		case fiveToGo:
			return cueFiveToGo, true
		}

	case models.TaskExercise:
		switch {
		case justStarted:
			return cueExerciseGo, true
		case task.CurrentSecond == task.Duration-settings.NextExerciseAnnouncementOffset:
			if next != nil {
				return nextUpCue(task, *next, reps), true
			}
		case settings.NextExerciseAnnouncementOffset >= fifteenCueFloor && secondsToGo == 15:
			return cueFifteenToGo, true
		case fiveToGo:
			return cueFiveToGo, true
		}

	case models.TaskCooldown:
		switch {
		case justStarted:
			return cueCooldownGo, true
		case halfway:
			return cueHalfway, true
		case task.Duration >= thirtyCueFloor && secondsToGo == 30:
			return cueThirtyToGo, true
		case fiveToGo:
			return cueFiveToGo, true
		}
	}

	if next == nil && justEnded {
		return cueWorkoutDone, true
	}
	return "", false
}

// nextRepetitions counts how many consecutive tasks after index share the
// name of the task immediately after index.
func nextRepetitions(w *models.Workout, index int) int {
	if index+1 >= len(w.Tasks) {
		return 0
	}
	name := w.Tasks[index+1].Name
	n := 0
	for _, t := range w.Tasks[index+1:] {
		if t.Name != name {
			break
		}
		n++
	}
	return n
}

func nextUpCue(current, next models.WorkoutTask, reps int) string {
	if next.Name == current.Name {
		if reps == 1 {
			return fmt.Sprintf("Next up: %s Same exercise one more time!", cuePause)
		}
		return fmt.Sprintf("Next up: %s Same exercise %d more times!", cuePause, reps)
	}
	return fmt.Sprintf("Next up: %s %s!", cuePause, setsOf(reps, next.Name))
}

func setsOf(reps int, name string) string {
	if reps == 1 {
		return name
	}
	return fmt.Sprintf("%d sets of %s", reps, name)
}
