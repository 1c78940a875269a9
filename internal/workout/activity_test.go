// ABOUTME: Tests for recording finished workouts into the activity log.
package workout

import (
	"testing"
	"time"

	"github.com/harperreed/intervals/internal/models"
)

func TestRecordFinished(t *testing.T) {
	w := squatWorkout()
	var log models.ActivityLog

	if RecordFinished(&log, &w, testNow) {
		t.Fatal("unfinished workout should not be recorded")
	}
	if len(log.Exercises) != 0 {
		t.Fatalf("log changed for unfinished workout: %+v", log)
	}

	for i := range w.Tasks {
		w.Tasks[i].CurrentSecond = w.Tasks[i].Duration
	}
	if !RecordFinished(&log, &w, testNow) {
		t.Fatal("finished workout should be recorded")
	}

	if len(log.Exercises) != 1 {
		t.Fatalf("expected only Squat in log, got %+v", log.Exercises)
	}
	entry, ok := log.Lookup("Squat")
	if !ok || !entry.LastFinished.Equal(testNow) {
		t.Errorf("Squat entry = %+v, %v", entry, ok)
	}
	if _, ok := log.Lookup("Warmup"); ok {
		t.Error("warmup should not be logged")
	}
}

func TestRecordFinishedWithoutExercises(t *testing.T) {
	w := models.DefaultWorkout()
	for i := range w.Tasks {
		w.Tasks[i].CurrentSecond = w.Tasks[i].Duration
	}
	var log models.ActivityLog
	if RecordFinished(&log, &w, testNow) {
		t.Error("workout without exercises should record nothing")
	}
}

func TestLastFinishedForGroup(t *testing.T) {
	log := logWith(map[string]time.Time{
		"Squat":   testNow.AddDate(0, 0, -4),
		"Lunge":   testNow.AddDate(0, 0, -2),
		"Push-up": testNow,
	})

	last, ok := LastFinishedForGroup(log, legsGroup())
	if !ok || !last.Equal(testNow.AddDate(0, 0, -2)) {
		t.Errorf("LastFinishedForGroup() = %v, %v", last, ok)
	}

	if _, ok := LastFinishedForGroup(log, models.ExerciseGroup{Name: "Empty"}); ok {
		t.Error("group with no logged exercises should report not found")
	}

	workout, ok := LastFinishedWorkout(log)
	if !ok || !workout.Equal(testNow) {
		t.Errorf("LastFinishedWorkout() = %v, %v", workout, ok)
	}

	if _, ok := LastFinishedWorkout(models.ActivityLog{}); ok {
		t.Error("empty log should have no last workout")
	}
}
