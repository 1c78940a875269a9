// ABOUTME: CLI commands for editing the exercise catalog.
// ABOUTME: Supports group and exercise add, remove, rename and toggles.
package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/intervals/internal/models"
	"github.com/harperreed/intervals/internal/workout"
	"github.com/spf13/cobra"
)

var (
	exerciseOverride string
	exercisePrimary  bool
)

var groupCmd = &cobra.Command{
	Use:     "group",
	Aliases: []string{"g", "groups"},
	Short:   "Manage exercise groups",
	Long: `Exercise groups bundle exercises that train the same muscles.

Each workout picks groups_per_workout groups at random from the groups that
are active and have rested for rest_days_per_groups days.

Groups and exercises can be referenced by name, full ID or ID prefix.

COMMANDS:

  list      List groups with exercises and rest status
  add       Add a group
  rename    Rename a group
  remove    Remove a group and its exercises
  enable    Include a group in new workouts
  disable   Exclude a group from new workouts`,
}

var groupListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List groups and exercises",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := store.GetSettings()
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		activity, err := store.GetActivityLog()
		if err != nil {
			return fmt.Errorf("failed to load activity log: %w", err)
		}
		printCatalog(cmd.OutOrStdout(), settings, activity, time.Now())
		return nil
	},
}

var groupAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an exercise group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var added models.ExerciseGroup
		err := editSettings(func(s models.Settings) (models.Settings, error) {
			out, g := s.AddGroup(args[0])
			added = g
			return out, nil
		})
		if err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Added group %s (%s)\n", added.Name, shortID(added.ID))
		return nil
	},
}

var groupRenameCmd = &cobra.Command{
	Use:   "rename <group> <new-name>",
	Short: "Rename an exercise group",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := editSettings(func(s models.Settings) (models.Settings, error) {
			return s.RenameGroup(args[0], args[1])
		})
		if err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Renamed group to %s\n", args[1])
		return nil
	},
}

var groupRemoveCmd = &cobra.Command{
	Use:     "remove <group>",
	Aliases: []string{"rm"},
	Short:   "Remove an exercise group and its exercises",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := editSettings(func(s models.Settings) (models.Settings, error) {
			return s.RemoveGroup(args[0])
		})
		if err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Removed group %s\n", args[0])
		return nil
	},
}

var groupEnableCmd = &cobra.Command{
	Use:   "enable <group>",
	Short: "Include a group in new workouts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setGroupActive(cmd.OutOrStdout(), args[0], true)
	},
}

var groupDisableCmd = &cobra.Command{
	Use:   "disable <group>",
	Short: "Exclude a group from new workouts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setGroupActive(cmd.OutOrStdout(), args[0], false)
	},
}

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex", "e"},
	Short:   "Manage exercises",
	Long: `Manage the exercises inside groups.

DURATION OVERRIDES:

  Every exercise lasts default_task_duration seconds unless it has an
  override:

    +N / -N   add or subtract N seconds        (+0 is the default)
    N         exactly N seconds
    xN        N times the default duration

  Invalid overrides are kept but ignored, and flagged in 'group list'.

PRIMARY EXERCISES:

  Primary exercises are always scheduled before the other exercises of
  their group.

COMMANDS:

  add        Add an exercise to a group
  rename     Rename an exercise
  remove     Remove an exercise
  override   Set an exercise's duration override
  primary    Mark or unmark an exercise as primary`,
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <group> <name>",
	Short: "Add an exercise to a group",
	Long: `Add an exercise to a group.

Examples:
  intervals exercise add Legs "Goblet Squat"
  intervals exercise add Legs "Wall Sit" --override 45
  intervals exercise add Legs "Lunge" --override x2 --primary`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var added models.Exercise
		var resolved workout.DurationResult
		err := editSettings(func(s models.Settings) (models.Settings, error) {
			out, e, err := s.AddExercise(args[0], args[1])
			if err != nil {
				return s, err
			}
			if exerciseOverride != "" {
				if out, err = out.SetExerciseDurationOverride(e.ID, exerciseOverride); err != nil {
					return s, err
				}
			}
			if exercisePrimary {
				if out, err = out.SetExercisePrimary(e.ID, true); err != nil {
					return s, err
				}
			}
			added, _ = out.Exercise(e.ID)
			resolved = workout.ResolveDuration(added, out)
			return out, nil
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Added %s (%s)\n", added.Name, shortID(added.ID))
		printDuration(out, added, resolved)
		return nil
	},
}

var exerciseRenameCmd = &cobra.Command{
	Use:   "rename <exercise> <new-name>",
	Short: "Rename an exercise",
	Long: `Rename an exercise.

History is tracked by name, so the renamed exercise starts with no
recorded finishes.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := editSettings(func(s models.Settings) (models.Settings, error) {
			return s.RenameExercise(args[0], args[1])
		})
		if err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Renamed exercise to %s\n", args[1])
		return nil
	},
}

var exerciseRemoveCmd = &cobra.Command{
	Use:     "remove <exercise>",
	Aliases: []string{"rm"},
	Short:   "Remove an exercise",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := editSettings(func(s models.Settings) (models.Settings, error) {
			return s.RemoveExercise(args[0])
		})
		if err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Removed exercise %s\n", args[0])
		return nil
	},
}

var exerciseOverrideCmd = &cobra.Command{
	Use:   "override <exercise> <expression>",
	Short: "Set an exercise's duration override",
	Long: `Set an exercise's duration override.

Examples:
  intervals exercise override "Bench Dip" +20
  intervals exercise override "Bench Dip" 45
  intervals exercise override "Bench Dip" x2
  intervals exercise override "Bench Dip" +0    # back to the default`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var updated models.Exercise
		var resolved workout.DurationResult
		err := editSettings(func(s models.Settings) (models.Settings, error) {
			out, err := s.SetExerciseDurationOverride(args[0], args[1])
			if err != nil {
				return s, err
			}
			updated, _ = out.Exercise(args[0])
			resolved = workout.ResolveDuration(updated, out)
			return out, nil
		})
		if err != nil {
			return err
		}
		printDuration(cmd.OutOrStdout(), updated, resolved)
		return nil
	},
}

var exercisePrimaryCmd = &cobra.Command{
	Use:   "primary <exercise> [true|false]",
	Short: "Mark or unmark an exercise as primary",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		primary := true
		if len(args) == 2 {
			v, err := strconv.ParseBool(args[1])
			if err != nil {
				return fmt.Errorf("invalid value %q: use true or false", args[1])
			}
			primary = v
		}

		err := editSettings(func(s models.Settings) (models.Settings, error) {
			return s.SetExercisePrimary(args[0], primary)
		})
		if err != nil {
			return err
		}

		state := "primary"
		if !primary {
			state = "not primary"
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ %s is %s\n", args[0], state)
		return nil
	},
}

// editSettings loads settings, applies fn and saves the result.
func editSettings(fn func(models.Settings) (models.Settings, error)) error {
	settings, err := store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	updated, err := fn(settings)
	if err != nil {
		return err
	}
	if err := store.SaveSettings(updated); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func setGroupActive(out io.Writer, ref string, active bool) error {
	err := editSettings(func(s models.Settings) (models.Settings, error) {
		return s.SetGroupActive(ref, active)
	})
	if err != nil {
		return err
	}
	state := "enabled"
	if !active {
		state = "disabled"
	}
	color.New(color.FgGreen).Fprintf(out, "✓ Group %s %s\n", ref, state)
	return nil
}

func printDuration(out io.Writer, e models.Exercise, d workout.DurationResult) {
	if d.OverrideIsValid {
		fmt.Fprintf(out, "  %s: %s (%s)\n", e.Name, workout.FormatClock(d.Duration), e.DurationOverride)
		return
	}
	color.New(color.FgYellow).Fprintf(out, "  ⚠ override %q is invalid, using default %s\n", e.DurationOverride, workout.FormatClock(d.Duration))
}

func printCatalog(out io.Writer, settings models.Settings, activity models.ActivityLog, now time.Time) {
	if len(settings.ExerciseGroups) == 0 {
		fmt.Fprintln(out, "No exercise groups.")
		return
	}

	faint := color.New(color.Faint)
	bold := color.New(color.Bold)
	for _, g := range settings.ExerciseGroups {
		last, ok := workout.LastFinishedForGroup(activity, g)
		status := color.New(color.FgGreen).Sprint("ready")
		switch {
		case !g.Active:
			status = faint.Sprint("disabled")
		case !workout.IsGroupEligible(g, settings, activity, now):
			status = color.New(color.FgYellow).Sprint("resting")
			if day, ok := workout.NextEligibleDay(g, settings, activity, now); ok {
				status += faint.Sprintf(" until %s", day.Format("Mon Jan 2"))
			}
		}

		fmt.Fprintf(out, "%s %s  %s  %s\n",
			faint.Sprint(shortID(g.ID)),
			bold.Sprint(g.Name),
			status,
			faint.Sprintf("last: %s", workout.LastFinishedLabel(last, ok, now)))

		for _, e := range g.Exercises {
			d := workout.ResolveDuration(e, settings)
			extra := ""
			if e.IsPrimary {
				extra += " ★"
			}
			if !d.OverrideIsValid {
				extra += color.New(color.FgYellow).Sprintf(" ⚠ invalid override %q", e.DurationOverride)
			}
			fmt.Fprintf(out, "    %s %s %s%s\n",
				faint.Sprint(shortID(e.ID)),
				padRight(truncate(e.Name, 36), 36),
				workout.FormatClock(d.Duration),
				extra)
		}
	}
}

func init() {
	groupCmd.AddCommand(groupListCmd)
	groupCmd.AddCommand(groupAddCmd)
	groupCmd.AddCommand(groupRenameCmd)
	groupCmd.AddCommand(groupRemoveCmd)
	groupCmd.AddCommand(groupEnableCmd)
	groupCmd.AddCommand(groupDisableCmd)

	exerciseAddCmd.Flags().StringVar(&exerciseOverride, "override", "", "duration override (+N, -N, N or xN)")
	exerciseAddCmd.Flags().BoolVar(&exercisePrimary, "primary", false, "schedule first within its group")

	exerciseCmd.AddCommand(exerciseAddCmd)
	exerciseCmd.AddCommand(exerciseRenameCmd)
	exerciseCmd.AddCommand(exerciseRemoveCmd)
	exerciseCmd.AddCommand(exerciseOverrideCmd)
	exerciseCmd.AddCommand(exercisePrimaryCmd)

	rootCmd.AddCommand(groupCmd)
	rootCmd.AddCommand(exerciseCmd)
}
