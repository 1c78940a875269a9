// ABOUTME: CLI commands for exercise history and rest-day eligibility.
// ABOUTME: Supports history, history mark and eligible.
package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/intervals/internal/models"
	"github.com/harperreed/intervals/internal/workout"
	"github.com/spf13/cobra"
)

var historyMarkAt string

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"h", "log"},
	Short:   "Show when each exercise was last finished",
	Long: `Show when each exercise was last finished, most recent first.

Finishing a workout records every exercise in it. Use 'history mark' to
record an exercise done outside of intervals so its group gets a rest day.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		activity, err := store.GetActivityLog()
		if err != nil {
			return fmt.Errorf("failed to load activity log: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(activity.Exercises) == 0 {
			fmt.Fprintln(out, "No finished exercises yet.")
			return nil
		}

		entries := append([]models.ExerciseLog(nil), activity.Exercises...)
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].LastFinished.After(entries[j].LastFinished)
		})

		now := time.Now()
		faint := color.New(color.Faint)
		for _, e := range entries {
			fmt.Fprintf(out, "%s %s %s\n",
				faint.Sprint(e.LastFinished.Format("2006-01-02 15:04")),
				padRight(truncate(e.Name, 40), 40),
				faint.Sprint(workout.LastFinishedLabel(e.LastFinished, true, now)))
		}
		return nil
	},
}

var historyMarkCmd = &cobra.Command{
	Use:   "mark <exercise>",
	Short: "Record an exercise as finished",
	Long: `Record an exercise as finished now or at a given time.

Examples:
  intervals history mark "Barbell Curl"
  intervals history mark "Barbell Curl" --at "2025-01-31 08:00"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		at := time.Now()
		if historyMarkAt != "" {
			t, err := parseTime(historyMarkAt)
			if err != nil {
				return fmt.Errorf("invalid timestamp: %s", historyMarkAt)
			}
			at = t
		}

		settings, err := store.GetSettings()
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		e, err := settings.Exercise(args[0])
		if err != nil {
			return err
		}

		activity, err := store.GetActivityLog()
		if err != nil {
			return fmt.Errorf("failed to load activity log: %w", err)
		}
		activity.Touch(e.Name, at)
		if err := store.SaveActivityLog(activity); err != nil {
			return fmt.Errorf("failed to save activity log: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Marked %s finished at %s\n", e.Name, at.Format("2006-01-02 15:04"))
		return nil
	},
}

var eligibleCmd = &cobra.Command{
	Use:   "eligible",
	Short: "Show which groups can be trained today",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := store.GetSettings()
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		activity, err := store.GetActivityLog()
		if err != nil {
			return fmt.Errorf("failed to load activity log: %w", err)
		}

		out := cmd.OutOrStdout()
		now := time.Now()
		green := color.New(color.FgGreen)
		yellow := color.New(color.FgYellow)
		faint := color.New(color.Faint)

		for _, g := range settings.ExerciseGroups {
			switch {
			case !g.Active:
				fmt.Fprintf(out, "%s %s\n", faint.Sprint("○"), faint.Sprintf("%s (disabled)", g.Name))
			case workout.IsGroupEligible(g, settings, activity, now):
				fmt.Fprintf(out, "%s %s\n", green.Sprint("✓"), g.Name)
			default:
				day, _ := workout.NextEligibleDay(g, settings, activity, now)
				fmt.Fprintf(out, "%s %s %s\n", yellow.Sprint("✗"), g.Name, faint.Sprintf("(rests until %s)", day.Format("Mon Jan 2")))
			}
		}

		if n := len(workout.EligibleGroups(settings, activity, now)); n < settings.GroupsPerWorkout {
			yellow.Fprintf(out, "\nOnly %d groups ready; the next workout will be shorter than usual.\n", n)
		}
		return nil
	},
}

func init() {
	historyMarkCmd.Flags().StringVar(&historyMarkAt, "at", "", "timestamp (YYYY-MM-DD HH:MM)")
	historyCmd.AddCommand(historyMarkCmd)

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(eligibleCmd)
}
