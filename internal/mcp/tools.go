// ABOUTME: MCP tool implementations for intervals workouts.
// ABOUTME: Generates and inspects workouts, edits the exercise catalog and reports history.
package mcp

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/harperreed/intervals/internal/models"
	"github.com/harperreed/intervals/internal/workout"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// generate_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "generate_workout",
		Description: "Generate a new randomized workout from the exercise catalog, replacing the current one",
	}, s.handleGenerateWorkout)

	// get_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_workout",
		Description: "Show the current workout with per-task progress",
	}, s.handleGetWorkout)

	// reset_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "reset_workout",
		Description: "Reset progress of the current workout to the beginning",
	}, s.handleResetWorkout)

	// list_groups
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_groups",
		Description: "List exercise groups with their exercises, resolved durations and rest-day eligibility",
	}, s.handleListGroups)

	// add_group
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_group",
		Description: "Add a new exercise group",
	}, s.handleAddGroup)

	// update_group
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_group",
		Description: "Rename an exercise group or change whether it is active",
	}, s.handleUpdateGroup)

	// remove_group
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "remove_group",
		Description: "Remove an exercise group and its exercises",
	}, s.handleRemoveGroup)

	// add_exercise
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_exercise",
		Description: "Add an exercise to a group",
	}, s.handleAddExercise)

	// update_exercise
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_exercise",
		Description: "Rename an exercise, change its duration override, or mark it primary",
	}, s.handleUpdateExercise)

	// remove_exercise
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "remove_exercise",
		Description: "Remove an exercise from its group",
	}, s.handleRemoveExercise)

	// update_settings
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_settings",
		Description: "Change workout timing and randomization settings",
	}, s.handleUpdateSettings)

	// get_history
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_history",
		Description: "Show when each exercise was last finished",
	}, s.handleGetHistory)
}

// Tool input/output types

type emptyInput struct{}

type taskOutput struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	Duration      int    `json:"duration"`
	CurrentSecond int    `json:"current_second"`
}

type workoutOutput struct {
	Tasks     []taskOutput `json:"tasks"`
	Total     string       `json:"total"`
	Remaining string       `json:"remaining"`
	Exercises []string     `json:"exercises"`
	Message   string       `json:"message"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type exerciseOutput struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	DurationOverride string `json:"duration_override"`
	Duration         int    `json:"duration"`
	OverrideValid    bool   `json:"override_valid"`
	Primary          bool   `json:"primary"`
}

type groupOutput struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Active       bool             `json:"active"`
	Eligible     bool             `json:"eligible"`
	LastFinished string           `json:"last_finished"`
	NextEligible string           `json:"next_eligible,omitempty"`
	Exercises    []exerciseOutput `json:"exercises"`
}

type listGroupsOutput struct {
	Groups []groupOutput `json:"groups"`
}

type addGroupInput struct {
	Name string `json:"name" jsonschema:"Name of the new exercise group"`
}

type updateGroupInput struct {
	Group  string `json:"group" jsonschema:"Group ID, ID prefix, or name"`
	Name   string `json:"name,omitempty" jsonschema:"New name for the group"`
	Active *bool  `json:"active,omitempty" jsonschema:"Whether the group can be scheduled"`
}

type groupRefInput struct {
	Group string `json:"group" jsonschema:"Group ID, ID prefix, or name"`
}

type addExerciseInput struct {
	Group            string `json:"group" jsonschema:"Group ID, ID prefix, or name"`
	Name             string `json:"name" jsonschema:"Name of the exercise"`
	DurationOverride string `json:"duration_override,omitempty" jsonschema:"Duration override: +N or -N seconds, N seconds, or xN times the default (default +0)"`
	Primary          bool   `json:"primary,omitempty" jsonschema:"Schedule this exercise first within its group"`
}

type updateExerciseInput struct {
	Exercise         string `json:"exercise" jsonschema:"Exercise ID, ID prefix, or name"`
	Name             string `json:"name,omitempty" jsonschema:"New name for the exercise"`
	DurationOverride string `json:"duration_override,omitempty" jsonschema:"Duration override: +N or -N seconds, N seconds, or xN times the default"`
	Primary          *bool  `json:"primary,omitempty" jsonschema:"Schedule this exercise first within its group"`
}

type exerciseRefInput struct {
	Exercise string `json:"exercise" jsonschema:"Exercise ID, ID prefix, or name"`
}

type updateSettingsInput struct {
	WarmupDuration                   *int  `json:"warmup_duration,omitempty" jsonschema:"Warmup length in seconds (0 disables)"`
	CooldownDuration                 *int  `json:"cooldown_duration,omitempty" jsonschema:"Cooldown length in seconds (0 disables)"`
	DefaultTaskDuration              *int  `json:"default_task_duration,omitempty" jsonschema:"Default exercise length in seconds"`
	FirstExercisePreparationDuration *int  `json:"first_exercise_preparation_duration,omitempty" jsonschema:"Preparation before the first exercise in seconds (0 disables)"`
	GroupsPerWorkout                 *int  `json:"groups_per_workout,omitempty" jsonschema:"Number of exercise groups per workout"`
	MinSetsPerGroup                  *int  `json:"min_sets_per_group,omitempty" jsonschema:"Minimum sets per group"`
	MaxSetsPerGroup                  *int  `json:"max_sets_per_group,omitempty" jsonschema:"Maximum sets per group"`
	MinSetRepetitions                *int  `json:"min_set_repetitions,omitempty" jsonschema:"Minimum back-to-back repetitions of one exercise"`
	MaxSetRepetitions                *int  `json:"max_set_repetitions,omitempty" jsonschema:"Maximum back-to-back repetitions of one exercise"`
	NextExerciseAnnouncementOffset   *int  `json:"next_exercise_announcement_offset,omitempty" jsonschema:"Seconds before the end of an exercise to announce the next one"`
	RestDaysPerGroups                *int  `json:"rest_days_per_groups,omitempty" jsonschema:"Days a group rests after being trained"`
	AssumeNextDayAfterWorkout        *bool `json:"assume_next_day_after_workout,omitempty" jsonschema:"Treat a second workout on the same day as the next day's workout"`
}

type settingsOutput struct {
	Settings models.Settings `json:"settings"`
	Warnings []string        `json:"warnings,omitempty"`
	Message  string          `json:"message"`
}

type historyEntry struct {
	Name         string `json:"name"`
	LastFinished string `json:"last_finished"`
	When         string `json:"when"`
}

type historyOutput struct {
	Exercises   []historyEntry `json:"exercises"`
	LastWorkout string         `json:"last_workout"`
}

// Tool handlers

func (s *Server) handleGenerateWorkout(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, workoutOutput, error) {
	settings, err := s.repo.GetSettings()
	if err != nil {
		return nil, workoutOutput{}, fmt.Errorf("failed to load settings: %w", err)
	}
	activity, err := s.repo.GetActivityLog()
	if err != nil {
		return nil, workoutOutput{}, fmt.Errorf("failed to load activity log: %w", err)
	}

	w := s.gen.Generate(settings, activity)
	if err := s.repo.SaveWorkout(w); err != nil {
		return nil, workoutOutput{}, fmt.Errorf("failed to save workout: %w", err)
	}
	s.log.Info("generated workout", "tasks", len(w.Tasks), "total", w.TotalTime())

	out := describeWorkout(w)
	out.Message = fmt.Sprintf("Generated workout with %d tasks (%s)", len(w.Tasks), out.Total)
	return nil, out, nil
}

func (s *Server) handleGetWorkout(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, workoutOutput, error) {
	w, err := s.repo.GetWorkout()
	if err != nil {
		return nil, workoutOutput{}, fmt.Errorf("failed to load workout: %w", err)
	}

	out := describeWorkout(w)
	switch {
	case w.HasEnded():
		out.Message = "Workout finished."
	case w.HasBegun():
		out.Message = fmt.Sprintf("Workout in progress, %s remaining.", out.Remaining)
	default:
		out.Message = "Workout not started."
	}
	return nil, out, nil
}

func (s *Server) handleResetWorkout(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, simpleOutput, error) {
	w, err := s.repo.GetWorkout()
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to load workout: %w", err)
	}
	w.Reset()
	if err := s.repo.SaveWorkout(w); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to save workout: %w", err)
	}
	return nil, simpleOutput{Message: "Workout reset to the beginning."}, nil
}

func (s *Server) handleListGroups(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, listGroupsOutput, error) {
	settings, err := s.repo.GetSettings()
	if err != nil {
		return nil, listGroupsOutput{}, fmt.Errorf("failed to load settings: %w", err)
	}
	activity, err := s.repo.GetActivityLog()
	if err != nil {
		return nil, listGroupsOutput{}, fmt.Errorf("failed to load activity log: %w", err)
	}

	now := s.now()
	out := listGroupsOutput{Groups: []groupOutput{}}
	for _, g := range settings.ExerciseGroups {
		last, ok := workout.LastFinishedForGroup(activity, g)
		group := groupOutput{
			ID:           g.ID,
			Name:         g.Name,
			Active:       g.Active,
			Eligible:     workout.IsGroupEligible(g, settings, activity, now),
			LastFinished: workout.LastFinishedLabel(last, ok, now),
			Exercises:    []exerciseOutput{},
		}
		if day, ok := workout.NextEligibleDay(g, settings, activity, now); ok && !group.Eligible {
			group.NextEligible = day.Format("2006-01-02")
		}
		for _, e := range g.Exercises {
			d := workout.ResolveDuration(e, settings)
			group.Exercises = append(group.Exercises, exerciseOutput{
				ID:               e.ID,
				Name:             e.Name,
				DurationOverride: e.DurationOverride,
				Duration:         d.Duration,
				OverrideValid:    d.OverrideIsValid,
				Primary:          e.IsPrimary,
			})
		}
		out.Groups = append(out.Groups, group)
	}
	return nil, out, nil
}

func (s *Server) handleAddGroup(ctx context.Context, req *mcp.CallToolRequest, input addGroupInput) (*mcp.CallToolResult, simpleOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, simpleOutput{}, fmt.Errorf("group name is required")
	}

	var added models.ExerciseGroup
	err := s.editSettings(func(settings models.Settings) (models.Settings, error) {
		out, g := settings.AddGroup(name)
		added = g
		return out, nil
	})
	if err != nil {
		return nil, simpleOutput{}, err
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Added group %s (ID: %s)", added.Name, added.ID[:8])}, nil
}

func (s *Server) handleUpdateGroup(ctx context.Context, req *mcp.CallToolRequest, input updateGroupInput) (*mcp.CallToolResult, simpleOutput, error) {
	if input.Name == "" && input.Active == nil {
		return nil, simpleOutput{}, fmt.Errorf("nothing to update: set name or active")
	}

	err := s.editSettings(func(settings models.Settings) (models.Settings, error) {
		var err error
		if input.Name != "" {
			if settings, err = settings.RenameGroup(input.Group, strings.TrimSpace(input.Name)); err != nil {
				return settings, err
			}
		}
		if input.Active != nil {
			if settings, err = settings.SetGroupActive(input.Group, *input.Active); err != nil {
				return settings, err
			}
		}
		return settings, nil
	})
	if err != nil {
		return nil, simpleOutput{}, err
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Updated group: %s", input.Group)}, nil
}

func (s *Server) handleRemoveGroup(ctx context.Context, req *mcp.CallToolRequest, input groupRefInput) (*mcp.CallToolResult, simpleOutput, error) {
	err := s.editSettings(func(settings models.Settings) (models.Settings, error) {
		return settings.RemoveGroup(input.Group)
	})
	if err != nil {
		return nil, simpleOutput{}, err
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Removed group: %s", input.Group)}, nil
}

func (s *Server) handleAddExercise(ctx context.Context, req *mcp.CallToolRequest, input addExerciseInput) (*mcp.CallToolResult, exerciseOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, exerciseOutput{}, fmt.Errorf("exercise name is required")
	}

	var added models.Exercise
	var resolved workout.DurationResult
	err := s.editSettings(func(settings models.Settings) (models.Settings, error) {
		out, e, err := settings.AddExercise(input.Group, name)
		if err != nil {
			return settings, err
		}
		if input.DurationOverride != "" {
			if out, err = out.SetExerciseDurationOverride(e.ID, input.DurationOverride); err != nil {
				return settings, err
			}
		}
		if input.Primary {
			if out, err = out.SetExercisePrimary(e.ID, true); err != nil {
				return settings, err
			}
		}
		added, _ = out.Exercise(e.ID)
		resolved = workout.ResolveDuration(added, out)
		return out, nil
	})
	if err != nil {
		return nil, exerciseOutput{}, err
	}

	return nil, exerciseOutput{
		ID:               added.ID,
		Name:             added.Name,
		DurationOverride: added.DurationOverride,
		Duration:         resolved.Duration,
		OverrideValid:    resolved.OverrideIsValid,
		Primary:          added.IsPrimary,
	}, nil
}

func (s *Server) handleUpdateExercise(ctx context.Context, req *mcp.CallToolRequest, input updateExerciseInput) (*mcp.CallToolResult, exerciseOutput, error) {
	if input.Name == "" && input.DurationOverride == "" && input.Primary == nil {
		return nil, exerciseOutput{}, fmt.Errorf("nothing to update: set name, duration_override or primary")
	}

	var updated models.Exercise
	var resolved workout.DurationResult
	err := s.editSettings(func(settings models.Settings) (models.Settings, error) {
		e, err := settings.Exercise(input.Exercise)
		if err != nil {
			return settings, err
		}
		if input.Name != "" {
			if settings, err = settings.RenameExercise(e.ID, strings.TrimSpace(input.Name)); err != nil {
				return settings, err
			}
		}
		if input.DurationOverride != "" {
			if settings, err = settings.SetExerciseDurationOverride(e.ID, input.DurationOverride); err != nil {
				return settings, err
			}
		}
		if input.Primary != nil {
			if settings, err = settings.SetExercisePrimary(e.ID, *input.Primary); err != nil {
				return settings, err
			}
		}
		updated, _ = settings.Exercise(e.ID)
		resolved = workout.ResolveDuration(updated, settings)
		return settings, nil
	})
	if err != nil {
		return nil, exerciseOutput{}, err
	}

	return nil, exerciseOutput{
		ID:               updated.ID,
		Name:             updated.Name,
		DurationOverride: updated.DurationOverride,
		Duration:         resolved.Duration,
		OverrideValid:    resolved.OverrideIsValid,
		Primary:          updated.IsPrimary,
	}, nil
}

func (s *Server) handleRemoveExercise(ctx context.Context, req *mcp.CallToolRequest, input exerciseRefInput) (*mcp.CallToolResult, simpleOutput, error) {
	err := s.editSettings(func(settings models.Settings) (models.Settings, error) {
		return settings.RemoveExercise(input.Exercise)
	})
	if err != nil {
		return nil, simpleOutput{}, err
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Removed exercise: %s", input.Exercise)}, nil
}

func (s *Server) handleUpdateSettings(ctx context.Context, req *mcp.CallToolRequest, input updateSettingsInput) (*mcp.CallToolResult, settingsOutput, error) {
	var saved models.Settings
	err := s.editSettings(func(settings models.Settings) (models.Settings, error) {
		setInt(&settings.WarmupDuration, input.WarmupDuration)
		setInt(&settings.CooldownDuration, input.CooldownDuration)
		setInt(&settings.DefaultTaskDuration, input.DefaultTaskDuration)
		setInt(&settings.FirstExercisePreparationDuration, input.FirstExercisePreparationDuration)
		setInt(&settings.GroupsPerWorkout, input.GroupsPerWorkout)
		setInt(&settings.MinSetsPerGroup, input.MinSetsPerGroup)
		setInt(&settings.MaxSetsPerGroup, input.MaxSetsPerGroup)
		setInt(&settings.MinSetRepetitions, input.MinSetRepetitions)
		setInt(&settings.MaxSetRepetitions, input.MaxSetRepetitions)
		setInt(&settings.NextExerciseAnnouncementOffset, input.NextExerciseAnnouncementOffset)
		setInt(&settings.RestDaysPerGroups, input.RestDaysPerGroups)
		if input.AssumeNextDayAfterWorkout != nil {
			settings.AssumeNextDayAfterWorkout = *input.AssumeNextDayAfterWorkout
		}
		if err := settings.CheckNonNegative(); err != nil {
			return settings, err
		}
		saved = settings
		return settings, nil
	})
	if err != nil {
		return nil, settingsOutput{}, err
	}

	warnings := saved.Validate()
	saved.ExerciseGroups = nil
	return nil, settingsOutput{
		Settings: saved,
		Warnings: warnings,
		Message:  "Settings updated.",
	}, nil
}

func (s *Server) handleGetHistory(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, historyOutput, error) {
	activity, err := s.repo.GetActivityLog()
	if err != nil {
		return nil, historyOutput{}, fmt.Errorf("failed to load activity log: %w", err)
	}

	now := s.now()
	out := historyOutput{Exercises: []historyEntry{}}
	for _, e := range sortedHistory(activity) {
		out.Exercises = append(out.Exercises, historyEntry{
			Name:         e.Name,
			LastFinished: e.LastFinished.Format("2006-01-02 15:04"),
			When:         workout.LastFinishedLabel(e.LastFinished, true, now),
		})
	}
	last, ok := workout.LastFinishedWorkout(activity)
	out.LastWorkout = workout.LastFinishedLabel(last, ok, now)
	return nil, out, nil
}

// editSettings loads settings, applies fn and saves the result.
func (s *Server) editSettings(fn func(models.Settings) (models.Settings, error)) error {
	settings, err := s.repo.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	updated, err := fn(settings)
	if err != nil {
		return err
	}
	if err := s.repo.SaveSettings(updated); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func describeWorkout(w models.Workout) workoutOutput {
	out := workoutOutput{
		Tasks:     make([]taskOutput, 0, len(w.Tasks)),
		Total:     workout.FormatClock(w.TotalTime()),
		Remaining: workout.FormatClock(w.RemainingTime()),
		Exercises: w.ExerciseNames(),
	}
	if out.Exercises == nil {
		out.Exercises = []string{}
	}
	for _, t := range w.Tasks {
		out.Tasks = append(out.Tasks, taskOutput{
			Name:          t.Name,
			Type:          string(t.Type),
			Duration:      t.Duration,
			CurrentSecond: t.CurrentSecond,
		})
	}
	return out
}

// sortedHistory returns log entries, most recently finished first.
func sortedHistory(log models.ActivityLog) []models.ExerciseLog {
	entries := slices.Clone(log.Exercises)
	slices.SortStableFunc(entries, func(a, b models.ExerciseLog) int {
		return b.LastFinished.Compare(a.LastFinished)
	})
	return entries
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
