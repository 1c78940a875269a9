// ABOUTME: Workout and WorkoutTask models for timed execution.
// ABOUTME: Progress lives in CurrentSecond; everything else is fixed at generation.
package models

// TaskType classifies a workout task.
type TaskType string

const (
	TaskWarmup             TaskType = "warmup"
	TaskInitialPreparation TaskType = "initial-preparation"
	TaskExercise           TaskType = "exercise"
	TaskCooldown           TaskType = "cooldown"
)

// IsValid reports whether t is a known task type.
func (t TaskType) IsValid() bool {
	switch t {
	case TaskWarmup, TaskInitialPreparation, TaskExercise, TaskCooldown:
		return true
	}
	return false
}

// WorkoutTask is one timed segment. Name doubles as the identity used to
// detect back-to-back repetitions of the same exercise.
type WorkoutTask struct {
	Name          string   `json:"name" yaml:"name"`
	Duration      int      `json:"duration" yaml:"duration"`
	CurrentSecond int      `json:"current_second" yaml:"current_second"`
	Type          TaskType `json:"type" yaml:"type"`
}

// IsDone reports whether the task has run its full duration.
func (t WorkoutTask) IsDone() bool {
	return t.CurrentSecond >= t.Duration
}

// Remaining returns the seconds left in the task.
func (t WorkoutTask) Remaining() int {
	if t.IsDone() {
		return 0
	}
	return t.Duration - t.CurrentSecond
}

// Workout is an ordered sequence of tasks.
type Workout struct {
	Tasks []WorkoutTask `json:"tasks" yaml:"tasks"`
}

// HasBegun reports whether any task has progressed.
func (w Workout) HasBegun() bool {
	for _, t := range w.Tasks {
		if t.CurrentSecond > 0 {
			return true
		}
	}
	return false
}

// HasEnded reports whether every task is done. An empty workout has ended.
func (w Workout) HasEnded() bool {
	for _, t := range w.Tasks {
		if !t.IsDone() {
			return false
		}
	}
	return true
}

// TotalTime returns the summed duration of all tasks in seconds.
func (w Workout) TotalTime() int {
	total := 0
	for _, t := range w.Tasks {
		total += t.Duration
	}
	return total
}

// RemainingTime returns the seconds left across all tasks.
func (w Workout) RemainingTime() int {
	remaining := 0
	for _, t := range w.Tasks {
		remaining += t.Remaining()
	}
	return remaining
}

// ElapsedTime returns the summed progress across all tasks.
func (w Workout) ElapsedTime() int {
	elapsed := 0
	for _, t := range w.Tasks {
		elapsed += t.CurrentSecond
	}
	return elapsed
}

// CurrentTaskIndex returns the first task that is not done, or -1.
func (w Workout) CurrentTaskIndex() int {
	for i, t := range w.Tasks {
		if !t.IsDone() {
			return i
		}
	}
	return -1
}

// Reset zeroes all progress.
func (w *Workout) Reset() {
	for i := range w.Tasks {
		w.Tasks[i].CurrentSecond = 0
	}
}

// ExerciseNames returns the distinct exercise task names in order.
func (w Workout) ExerciseNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, t := range w.Tasks {
		if t.Type != TaskExercise || seen[t.Name] {
			continue
		}
		seen[t.Name] = true
		names = append(names, t.Name)
	}
	return names
}

// Clone returns a copy whose tasks can be mutated independently.
func (w Workout) Clone() Workout {
	return Workout{Tasks: append([]WorkoutTask(nil), w.Tasks...)}
}
