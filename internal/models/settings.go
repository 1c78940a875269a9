// ABOUTME: Settings model holding timing, randomization and the exercise catalog.
// ABOUTME: Exercise groups own their exercises; settings own the groups.
package models

import "fmt"

// CurrentSettingsVersion is the schema version written by this build.
const CurrentSettingsVersion = 2

// Exercise is a single movement within a group.
type Exercise struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	// DurationOverride is "+N"/"-N" (offset), "N" (absolute seconds) or "xN"
	// (multiplier of the default task duration).
	DurationOverride string `json:"duration_override" yaml:"duration_override"`
	IsPrimary        bool   `json:"is_primary,omitempty" yaml:"is_primary,omitempty"`
}

// ExerciseGroup is a named set of exercises sharing rest-day spacing.
type ExerciseGroup struct {
	ID        string     `json:"id" yaml:"id"`
	Name      string     `json:"name" yaml:"name"`
	Exercises []Exercise `json:"exercises" yaml:"exercises"`
	Active    bool       `json:"active" yaml:"active"`
}

// Settings is the full generator and timer configuration.
// Durations are in seconds; a zero warmup, cooldown or preparation omits that task.
type Settings struct {
	Version        int             `json:"version" yaml:"version"`
	ExerciseGroups []ExerciseGroup `json:"exercise_groups" yaml:"exercise_groups"`

	WarmupDuration                   int `json:"warmup_duration" yaml:"warmup_duration"`
	CooldownDuration                 int `json:"cooldown_duration" yaml:"cooldown_duration"`
	DefaultTaskDuration              int `json:"default_task_duration" yaml:"default_task_duration"`
	FirstExercisePreparationDuration int `json:"first_exercise_preparation_duration" yaml:"first_exercise_preparation_duration"`

	GroupsPerWorkout  int `json:"groups_per_workout" yaml:"groups_per_workout"`
	MinSetsPerGroup   int `json:"min_sets_per_group" yaml:"min_sets_per_group"`
	MaxSetsPerGroup   int `json:"max_sets_per_group" yaml:"max_sets_per_group"`
	MinSetRepetitions int `json:"min_set_repetitions" yaml:"min_set_repetitions"`
	MaxSetRepetitions int `json:"max_set_repetitions" yaml:"max_set_repetitions"`

	// NextExerciseAnnouncementOffset is how many seconds before the end of an
	// exercise the next one is announced.
	NextExerciseAnnouncementOffset int `json:"next_exercise_announcement_offset" yaml:"next_exercise_announcement_offset"`
	RestDaysPerGroups              int `json:"rest_days_per_groups" yaml:"rest_days_per_groups"`

	// AssumeNextDayAfterWorkout treats a workout generated after one was
	// already finished today as tomorrow's workout for rest-day purposes.
	AssumeNextDayAfterWorkout bool `json:"assume_next_day_after_workout,omitempty" yaml:"assume_next_day_after_workout,omitempty"`
	ShowExtraSettings         bool `json:"show_extra_settings,omitempty" yaml:"show_extra_settings,omitempty"`
}

// Clone returns a deep copy so edits never alias the original catalog.
func (s Settings) Clone() Settings {
	out := s
	out.ExerciseGroups = make([]ExerciseGroup, len(s.ExerciseGroups))
	for i, g := range s.ExerciseGroups {
		g.Exercises = append([]Exercise(nil), g.Exercises...)
		out.ExerciseGroups[i] = g
	}
	return out
}

// CheckNonNegative returns an error naming the first numeric setting below zero.
func (s Settings) CheckNonNegative() error {
	fields := []struct {
		name  string
		value int
	}{
		{"warmup_duration", s.WarmupDuration},
		{"cooldown_duration", s.CooldownDuration},
		{"default_task_duration", s.DefaultTaskDuration},
		{"first_exercise_preparation_duration", s.FirstExercisePreparationDuration},
		{"groups_per_workout", s.GroupsPerWorkout},
		{"min_sets_per_group", s.MinSetsPerGroup},
		{"max_sets_per_group", s.MaxSetsPerGroup},
		{"min_set_repetitions", s.MinSetRepetitions},
		{"max_set_repetitions", s.MaxSetRepetitions},
		{"next_exercise_announcement_offset", s.NextExerciseAnnouncementOffset},
		{"rest_days_per_groups", s.RestDaysPerGroups},
	}
	for _, f := range fields {
		if f.value < 0 {
			return fmt.Errorf("%s must not be negative (got %d)", f.name, f.value)
		}
	}
	return nil
}

// Validate reports configuration problems that degrade generation.
// Nothing here blocks generation; callers surface the warnings.
func (s Settings) Validate() []string {
	var warnings []string
	if s.MinSetsPerGroup > s.MaxSetsPerGroup {
		warnings = append(warnings, fmt.Sprintf("min sets per group (%d) exceeds max (%d)", s.MinSetsPerGroup, s.MaxSetsPerGroup))
	}
	if s.MinSetRepetitions > s.MaxSetRepetitions {
		warnings = append(warnings, fmt.Sprintf("min set repetitions (%d) exceeds max (%d)", s.MinSetRepetitions, s.MaxSetRepetitions))
	}
	if s.MinSetRepetitions < 1 {
		warnings = append(warnings, "min set repetitions below 1 is treated as 1")
	}
	if s.DefaultTaskDuration < 1 {
		warnings = append(warnings, "default task duration below 1 second is treated as 1")
	}
	for _, g := range s.ExerciseGroups {
		if g.Name == "" {
			warnings = append(warnings, fmt.Sprintf("group %s has no name", shortID(g.ID)))
		}
		if len(g.Exercises) == 0 && g.Active {
			warnings = append(warnings, fmt.Sprintf("group %q has no exercises", g.Name))
		}
	}
	return warnings
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
