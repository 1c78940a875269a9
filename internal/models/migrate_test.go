// ABOUTME: Tests for stored-shape migrations.
// ABOUTME: Covers the legacy camelCase layout and missing-field defaults.
package models

import (
	"testing"
	"time"
)

func TestMigrateLegacySettings(t *testing.T) {
	legacy := `{
		"exerciseGroups": [
			{"identifier": "g1", "name": "Legs", "exercises": [{"identifier": "e1", "name": "Squat"}]}
		],
		"warmupDuration": 60,
		"cooldownDuration": 120,
		"defaultTaskDuration": 100,
		"groupsPerWorkout": 2,
		"minSetsPerGroup": 4,
		"maxSetsPerGroup": 7
	}`

	s, changed, err := MigrateSettings([]byte(legacy))
	if err != nil {
		t.Fatalf("MigrateSettings failed: %v", err)
	}
	if !changed {
		t.Error("expected legacy settings to be reported as changed")
	}
	if s.Version != CurrentSettingsVersion {
		t.Errorf("Version = %d, want %d", s.Version, CurrentSettingsVersion)
	}
	if s.WarmupDuration != 60 || s.DefaultTaskDuration != 100 || s.MaxSetsPerGroup != 7 {
		t.Errorf("numeric fields not carried over: %+v", s)
	}
	if s.MinSetRepetitions != 2 || s.MaxSetRepetitions != 3 {
		t.Errorf("repetition defaults = %d-%d, want 2-3", s.MinSetRepetitions, s.MaxSetRepetitions)
	}
	if s.NextExerciseAnnouncementOffset != 30 {
		t.Errorf("NextExerciseAnnouncementOffset = %d, want 30", s.NextExerciseAnnouncementOffset)
	}
	if s.RestDaysPerGroups != 1 {
		t.Errorf("RestDaysPerGroups = %d, want 1", s.RestDaysPerGroups)
	}

	if len(s.ExerciseGroups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(s.ExerciseGroups))
	}
	g := s.ExerciseGroups[0]
	if g.ID != "g1" || !g.Active {
		t.Errorf("group not migrated: %+v", g)
	}
	if g.Exercises[0].ID != "e1" || g.Exercises[0].DurationOverride != "+0" {
		t.Errorf("exercise not migrated: %+v", g.Exercises[0])
	}
}

func TestMigrateCurrentSettingsUnchanged(t *testing.T) {
	data, err := encodeForTest(DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	s, changed, err := MigrateSettings(data)
	if err != nil {
		t.Fatalf("MigrateSettings failed: %v", err)
	}
	if changed {
		t.Error("current settings should not need migration")
	}
	if len(s.ExerciseGroups) != 5 {
		t.Errorf("expected 5 groups, got %d", len(s.ExerciseGroups))
	}
}

func TestMigrateSettingsInvalidJSON(t *testing.T) {
	if _, _, err := MigrateSettings([]byte("not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestMigrateWorkout(t *testing.T) {
	legacy := `{"tasks": [
		{"name": "Squat", "duration": 30, "currentSecond": 12},
		{"name": "Cooldown", "duration": 60, "current_second": 99, "type": "cooldown"}
	]}`

	w, changed, err := MigrateWorkout([]byte(legacy))
	if err != nil {
		t.Fatalf("MigrateWorkout failed: %v", err)
	}
	if !changed {
		t.Error("expected change to be reported")
	}
	if w.Tasks[0].Type != TaskExercise || w.Tasks[0].CurrentSecond != 12 {
		t.Errorf("task 0 not migrated: %+v", w.Tasks[0])
	}
	if w.Tasks[1].CurrentSecond != 60 {
		t.Errorf("CurrentSecond should be clamped to duration, got %d", w.Tasks[1].CurrentSecond)
	}
}

func TestMigrateActivityLogMillis(t *testing.T) {
	finished := time.Date(2025, 5, 1, 18, 0, 0, 0, time.UTC)
	legacy := `{"exercises": [{"name": "Squat", "lastFinished": ` + itoa(finished.UnixMilli()) + `}]}`

	a, changed, err := MigrateActivityLog([]byte(legacy))
	if err != nil {
		t.Fatalf("MigrateActivityLog failed: %v", err)
	}
	if !changed {
		t.Error("expected change to be reported")
	}
	e, ok := a.Lookup("Squat")
	if !ok {
		t.Fatal("expected Squat entry")
	}
	if !e.LastFinished.Equal(finished) {
		t.Errorf("LastFinished = %v, want %v", e.LastFinished, finished)
	}
}

func TestActivityLogTouch(t *testing.T) {
	var a ActivityLog
	t1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(24 * time.Hour)

	a.Touch("Squat", t1)
	a.Touch("Squat", t2)
	a.Touch("Row", t1)

	if len(a.Exercises) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(a.Exercises))
	}
	if e, _ := a.Lookup("Squat"); !e.LastFinished.Equal(t2) {
		t.Errorf("Squat LastFinished = %v, want %v", e.LastFinished, t2)
	}
	if _, ok := a.Lookup("Deadlift"); ok {
		t.Error("unexpected entry for Deadlift")
	}
}
