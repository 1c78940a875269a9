// ABOUTME: CLI commands for workout timing and randomization settings.
// ABOUTME: Supports show, set and reset.
package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/intervals/internal/models"
	"github.com/spf13/cobra"
)

var (
	settingsResetCatalog bool
	settingsResetYes     bool
)

// settingField binds a settings key to its value in a Settings.
type settingField struct {
	help    string
	intVal  func(*models.Settings) *int
	boolVal func(*models.Settings) *bool
	order   int
}

var settingFields = map[string]settingField{
	"warmup_duration": {order: 1, help: "warmup length in seconds, 0 disables",
		intVal: func(s *models.Settings) *int { return &s.WarmupDuration }},
	"cooldown_duration": {order: 2, help: "cooldown length in seconds, 0 disables",
		intVal: func(s *models.Settings) *int { return &s.CooldownDuration }},
	"default_task_duration": {order: 3, help: "default exercise length in seconds",
		intVal: func(s *models.Settings) *int { return &s.DefaultTaskDuration }},
	"first_exercise_preparation_duration": {order: 4, help: "preparation before the first exercise, 0 disables",
		intVal: func(s *models.Settings) *int { return &s.FirstExercisePreparationDuration }},
	"groups_per_workout": {order: 5, help: "exercise groups per workout",
		intVal: func(s *models.Settings) *int { return &s.GroupsPerWorkout }},
	"min_sets_per_group": {order: 6, help: "minimum sets per group",
		intVal: func(s *models.Settings) *int { return &s.MinSetsPerGroup }},
	"max_sets_per_group": {order: 7, help: "maximum sets per group",
		intVal: func(s *models.Settings) *int { return &s.MaxSetsPerGroup }},
	"min_set_repetitions": {order: 8, help: "minimum back-to-back repetitions of one exercise",
		intVal: func(s *models.Settings) *int { return &s.MinSetRepetitions }},
	"max_set_repetitions": {order: 9, help: "maximum back-to-back repetitions of one exercise",
		intVal: func(s *models.Settings) *int { return &s.MaxSetRepetitions }},
	"next_exercise_announcement_offset": {order: 10, help: "seconds before the end to announce what is next",
		intVal: func(s *models.Settings) *int { return &s.NextExerciseAnnouncementOffset }},
	"rest_days_per_groups": {order: 11, help: "days a group rests after training",
		intVal: func(s *models.Settings) *int { return &s.RestDaysPerGroups }},
	"assume_next_day_after_workout": {order: 12, help: "count a second workout on the same day as tomorrow's",
		boolVal: func(s *models.Settings) *bool { return &s.AssumeNextDayAfterWorkout }},
}

var settingsCmd = &cobra.Command{
	Use:     "settings",
	Aliases: []string{"config"},
	Short:   "View and change workout settings",
	Long: `View and change how workouts are generated and played.

COMMANDS:

  show    Show all settings
  set     Change one setting
  reset   Restore default timings (and optionally the default catalog)`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show all settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := store.GetSettings()
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		printSettings(cmd.OutOrStdout(), settings)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting.

Run 'intervals settings show' for the available keys.

Examples:
  intervals settings set default_task_duration 90
  intervals settings set rest_days_per_groups 2
  intervals settings set assume_next_day_after_workout true`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: settingKeys(),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := strings.ReplaceAll(strings.ToLower(args[0]), "-", "_")
		field, ok := settingFields[key]
		if !ok {
			return fmt.Errorf("unknown setting: %s\nValid settings: %s", args[0], strings.Join(settingKeys(), ", "))
		}

		var saved models.Settings
		err := editSettings(func(s models.Settings) (models.Settings, error) {
			if err := field.set(&s, args[1]); err != nil {
				return s, fmt.Errorf("invalid value for %s: %w", key, err)
			}
			if err := s.CheckNonNegative(); err != nil {
				return s, err
			}
			saved = s
			return s, nil
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ %s = %s\n", key, field.get(&saved))
		printWarnings(out, saved.Validate())
		return nil
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	Long: `Restore the default timing settings.

The exercise catalog is kept unless --catalog is given, which also restores
the built-in exercise groups.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if settingsResetCatalog && !settingsResetYes {
			if !confirm(cmd.InOrStdin(), out, "This replaces your exercise groups with the defaults. Continue?") {
				fmt.Fprintln(out, "Canceled.")
				return nil
			}
		}

		err := editSettings(func(s models.Settings) (models.Settings, error) {
			defaults := models.DefaultSettings()
			if !settingsResetCatalog {
				defaults.ExerciseGroups = s.ExerciseGroups
			}
			return defaults, nil
		})
		if err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintln(out, "✓ Settings restored to defaults")
		return nil
	},
}

func (f settingField) set(s *models.Settings, raw string) error {
	if f.boolVal != nil {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("expected true or false")
		}
		*f.boolVal(s) = v
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("expected a whole number")
	}
	*f.intVal(s) = v
	return nil
}

func (f settingField) get(s *models.Settings) string {
	if f.boolVal != nil {
		return strconv.FormatBool(*f.boolVal(s))
	}
	return strconv.Itoa(*f.intVal(s))
}

func settingKeys() []string {
	keys := make([]string, 0, len(settingFields))
	for k := range settingFields {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return settingFields[keys[i]].order < settingFields[keys[j]].order
	})
	return keys
}

func printSettings(out io.Writer, settings models.Settings) {
	faint := color.New(color.Faint)
	for _, key := range settingKeys() {
		field := settingFields[key]
		fmt.Fprintf(out, "%s %s %s\n",
			padRight(key, 36),
			padRight(field.get(&settings), 6),
			faint.Sprint(field.help))
	}
	printWarnings(out, settings.Validate())
}

func printWarnings(out io.Writer, warnings []string) {
	yellow := color.New(color.FgYellow)
	for _, w := range warnings {
		yellow.Fprintf(out, "⚠ %s\n", w)
	}
}

func init() {
	settingsResetCmd.Flags().BoolVar(&settingsResetCatalog, "catalog", false, "also restore the default exercise groups")
	settingsResetCmd.Flags().BoolVarP(&settingsResetYes, "yes", "y", false, "skip confirmation prompt")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)

	rootCmd.AddCommand(settingsCmd)
}
