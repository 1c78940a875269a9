// ABOUTME: Tests for Workout inspection and reset helpers.
// ABOUTME: Covers begun/ended derivation, time totals, and cloning.
package models

import (
	"slices"
	"testing"
)

func sampleWorkout() Workout {
	return Workout{Tasks: []WorkoutTask{
		{Name: "Warmup", Duration: 60, Type: TaskWarmup},
		{Name: "Squat", Duration: 30, Type: TaskExercise},
		{Name: "Squat", Duration: 30, Type: TaskExercise},
		{Name: "Lunge", Duration: 30, Type: TaskExercise},
		{Name: "Cooldown", Duration: 120, Type: TaskCooldown},
	}}
}

func TestEmptyWorkoutEndedNotBegun(t *testing.T) {
	w := &Workout{}
	if !w.HasEnded() {
		t.Error("empty workout should be ended")
	}
	if w.HasBegun() {
		t.Error("empty workout should not be begun")
	}
	if w.CurrentTaskIndex() != -1 {
		t.Errorf("CurrentTaskIndex = %d, want -1", w.CurrentTaskIndex())
	}
}

func TestWorkoutProgressInspection(t *testing.T) {
	w := sampleWorkout()

	if w.HasBegun() || w.HasEnded() {
		t.Fatal("fresh workout should be neither begun nor ended")
	}
	if got := w.TotalTime(); got != 270 {
		t.Errorf("TotalTime = %d, want 270", got)
	}

	w.Tasks[0].CurrentSecond = 60
	w.Tasks[1].CurrentSecond = 10

	for i := 0; i < 3; i++ {
		if !w.HasBegun() {
			t.Error("workout should be begun")
		}
		if got := w.RemainingTime(); got != 200 {
			t.Errorf("RemainingTime = %d, want 200", got)
		}
		if got := w.ElapsedTime(); got != 70 {
			t.Errorf("ElapsedTime = %d, want 70", got)
		}
		if got := w.CurrentTaskIndex(); got != 1 {
			t.Errorf("CurrentTaskIndex = %d, want 1", got)
		}
	}
}

type workoutHolder struct {
	Workout Workout
}

func TestInspectionOnReturnedValue(t *testing.T) {
	get := func() workoutHolder {
		w := sampleWorkout()
		w.Tasks[0].CurrentSecond = 60
		w.Tasks[1].CurrentSecond = 10
		return workoutHolder{Workout: w}
	}

	if got := get().Workout.ElapsedTime(); got != 70 {
		t.Errorf("ElapsedTime = %d, want 70", got)
	}
	if got := get().Workout.CurrentTaskIndex(); got != 1 {
		t.Errorf("CurrentTaskIndex = %d, want 1", got)
	}
	if !get().Workout.HasBegun() || get().Workout.HasEnded() {
		t.Error("workout should be begun and not ended")
	}
	if got := get().Workout.RemainingTime(); got != get().Workout.TotalTime()-70 {
		t.Errorf("RemainingTime = %d", got)
	}
}

func TestWorkoutReset(t *testing.T) {
	w := sampleWorkout()
	for i := range w.Tasks {
		w.Tasks[i].CurrentSecond = w.Tasks[i].Duration
	}
	if !w.HasEnded() {
		t.Fatal("expected workout to be ended")
	}

	w.Reset()
	if w.HasBegun() {
		t.Error("reset workout should not be begun")
	}
	if w.RemainingTime() != w.TotalTime() {
		t.Error("reset workout should have full time remaining")
	}
}

func TestExerciseNames(t *testing.T) {
	w := sampleWorkout()
	want := []string{"Squat", "Lunge"}
	if got := w.ExerciseNames(); !slices.Equal(got, want) {
		t.Errorf("ExerciseNames = %v, want %v", got, want)
	}
}

func TestWorkoutClone(t *testing.T) {
	w := sampleWorkout()
	c := w.Clone()
	c.Tasks[0].CurrentSecond = 5
	if w.Tasks[0].CurrentSecond != 0 {
		t.Error("Clone should not share task storage")
	}
}

func TestTaskTypeIsValid(t *testing.T) {
	for _, tt := range []TaskType{TaskWarmup, TaskInitialPreparation, TaskExercise, TaskCooldown} {
		if !tt.IsValid() {
			t.Errorf("%q should be valid", tt)
		}
	}
	if TaskType("rest").IsValid() {
		t.Error("unknown task type should be invalid")
	}
}
