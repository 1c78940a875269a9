// ABOUTME: Schema migrations for stored settings, workouts and activity logs.
// ABOUTME: Upgrades older JSON shapes, including the legacy camelCase layout.
package models

import (
	"encoding/json"
	"fmt"
	"time"
)

var legacySettingsKeys = map[string]string{
	"exerciseGroups":                   "exercise_groups",
	"warmupDuration":                   "warmup_duration",
	"cooldownDuration":                 "cooldown_duration",
	"defaultTaskDuration":              "default_task_duration",
	"firstExercisePreparationDuration": "first_exercise_preparation_duration",
	"groupsPerWorkout":                 "groups_per_workout",
	"minSetsPerGroup":                  "min_sets_per_group",
	"maxSetsPerGroup":                  "max_sets_per_group",
	"minSetRepetitions":                "min_set_repetitions",
	"maxSetRepetitions":                "max_set_repetitions",
	"nextExerciseAnnouncementOffset":   "next_exercise_announcement_offset",
	"restDaysPerGroups":                "rest_days_per_groups",
	"showExtraSettings":                "show_extra_settings",
}

var legacyCatalogKeys = map[string]string{
	"identifier":       "id",
	"durationOverride": "duration_override",
	"isPrimary":        "is_primary",
}

// settingsDefaults fills fields introduced after the first schema version.
var settingsDefaults = map[string]any{
	"first_exercise_preparation_duration": 0,
	"min_set_repetitions":                 2,
	"max_set_repetitions":                 3,
	"next_exercise_announcement_offset":   30,
	"rest_days_per_groups":                1,
}

// MigrateSettings decodes stored settings of any known version.
// changed reports whether the stored shape should be rewritten.
func MigrateSettings(data []byte) (s Settings, changed bool, err error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Settings{}, false, fmt.Errorf("decode settings: %w", err)
	}

	changed = renameKeys(raw, legacySettingsKeys)
	if v, ok := raw["version"].(float64); !ok || int(v) < CurrentSettingsVersion {
		raw["version"] = CurrentSettingsVersion
		changed = true
	}
	for k, v := range settingsDefaults {
		if _, ok := raw[k]; !ok {
			raw[k] = v
			changed = true
		}
	}

	groups, _ := raw["exercise_groups"].([]any)
	for _, g := range groups {
		group, ok := g.(map[string]any)
		if !ok {
			continue
		}
		if renameKeys(group, legacyCatalogKeys) {
			changed = true
		}
		if _, ok := group["active"]; !ok {
			group["active"] = true
			changed = true
		}
		exercises, _ := group["exercises"].([]any)
		for _, e := range exercises {
			exercise, ok := e.(map[string]any)
			if !ok {
				continue
			}
			if renameKeys(exercise, legacyCatalogKeys) {
				changed = true
			}
			if _, ok := exercise["duration_override"]; !ok {
				exercise["duration_override"] = "+0"
				changed = true
			}
		}
	}

	if err := remarshal(raw, &s); err != nil {
		return Settings{}, false, fmt.Errorf("decode settings: %w", err)
	}
	if s.ExerciseGroups == nil {
		s.ExerciseGroups = []ExerciseGroup{}
	}
	return s, changed, nil
}

// MigrateWorkout decodes a stored workout; tasks without a type are exercises.
func MigrateWorkout(data []byte) (w Workout, changed bool, err error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Workout{}, false, fmt.Errorf("decode workout: %w", err)
	}

	tasks, _ := raw["tasks"].([]any)
	for _, t := range tasks {
		task, ok := t.(map[string]any)
		if !ok {
			continue
		}
		if renameKeys(task, map[string]string{"currentSecond": "current_second"}) {
			changed = true
		}
		if _, ok := task["type"]; !ok {
			task["type"] = string(TaskExercise)
			changed = true
		}
	}

	if err := remarshal(raw, &w); err != nil {
		return Workout{}, false, fmt.Errorf("decode workout: %w", err)
	}
	for i := range w.Tasks {
		t := &w.Tasks[i]
		if t.CurrentSecond < 0 {
			t.CurrentSecond = 0
		}
		if t.CurrentSecond > t.Duration {
			t.CurrentSecond = t.Duration
		}
	}
	return w, changed, nil
}

// MigrateActivityLog decodes a stored activity log. Legacy entries store
// lastFinished as Unix milliseconds.
func MigrateActivityLog(data []byte) (a ActivityLog, changed bool, err error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return ActivityLog{}, false, fmt.Errorf("decode activity log: %w", err)
	}

	entries, _ := raw["exercises"].([]any)
	for _, e := range entries {
		entry, ok := e.(map[string]any)
		if !ok {
			continue
		}
		if renameKeys(entry, map[string]string{"lastFinished": "last_finished"}) {
			changed = true
		}
		if ms, ok := entry["last_finished"].(float64); ok {
			entry["last_finished"] = time.UnixMilli(int64(ms)).Format(time.RFC3339Nano)
			changed = true
		}
	}

	if err := remarshal(raw, &a); err != nil {
		return ActivityLog{}, false, fmt.Errorf("decode activity log: %w", err)
	}
	return a, changed, nil
}

func renameKeys(m map[string]any, names map[string]string) bool {
	renamed := false
	for old, current := range names {
		v, ok := m[old]
		if !ok {
			continue
		}
		if _, exists := m[current]; !exists {
			m[current] = v
		}
		delete(m, old)
		renamed = true
	}
	return renamed
}

func remarshal(in any, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
