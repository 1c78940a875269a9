// ABOUTME: CLI commands for the current workout.
// ABOUTME: Supports new, show, play, reset and status.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/intervals/internal/charm"
	"github.com/harperreed/intervals/internal/models"
	"github.com/harperreed/intervals/internal/player"
	"github.com/harperreed/intervals/internal/speech"
	"github.com/harperreed/intervals/internal/workout"
	"github.com/spf13/cobra"
)

var (
	playNew   bool
	playReset bool
	playTick  time.Duration
	playQuiet bool
)

var newCmd = &cobra.Command{
	Use:     "new",
	Aliases: []string{"generate", "n"},
	Short:   "Generate a new workout",
	Long: `Generate a new randomized workout, replacing the current one.

Groups that were trained within the last rest_days_per_groups days are
skipped. If fewer groups are eligible than groups_per_workout, the workout
uses what is available.

Examples:
  intervals new
  intervals new && intervals play`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := generateWorkout()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Generated workout (%s)\n", workout.FormatClock(w.TotalTime()))
		printWorkout(out, w)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:     "show",
	Aliases: []string{"s"},
	Short:   "Show the current workout",
	Long: `Show the current workout task by task with progress.

A ▶ marks the task playback would resume from.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := store.GetWorkout()
		if err != nil {
			return fmt.Errorf("failed to load workout: %w", err)
		}
		printWorkout(cmd.OutOrStdout(), w)
		return nil
	},
}

var playCmd = &cobra.Command{
	Use:     "play",
	Aliases: []string{"p", "start"},
	Short:   "Play the current workout with spoken cues",
	Long: `Play the current workout, advancing one second at a time.

Cues are printed and, when speech_command is configured (for example "say"
or "espeak"), spoken aloud. Press Ctrl+C to pause; progress is saved and
the next 'intervals play' resumes where you left off.

Examples:
  intervals play
  intervals play --new       # Generate a fresh workout first
  intervals play --reset     # Start the current workout over`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if playTick <= 0 {
			return fmt.Errorf("--tick must be positive, got %s", playTick)
		}

		out := cmd.OutOrStdout()
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		speaker, closeSpeaker, err := buildSpeaker(ctx, out)
		if err != nil {
			return err
		}
		defer closeSpeaker()

		opts := player.Options{
			Speaker: speaker,
			Logger:  cmdLogger("player"),
		}
		if !playQuiet {
			opts.OnTick = progressPrinter(out)
		}
		if client, ok := store.Backend().(*charm.Client); ok {
			opts.Syncer = client
		}

		p, err := player.New(store, opts)
		if err != nil {
			return err
		}

		switch {
		case playNew:
			w, err := generateWorkout()
			if err != nil {
				return err
			}
			if err := p.Load(w); err != nil {
				return err
			}
		case playReset:
			if err := p.Reset(); err != nil {
				return err
			}
		}

		if err := p.Play(ctx); err != nil {
			if errors.Is(err, player.ErrWorkoutEnded) {
				return fmt.Errorf("workout already finished: run 'intervals play --reset' or 'intervals new'")
			}
			return err
		}

		ticker := time.NewTicker(playTick)
		defer ticker.Stop()

		err = p.Run(ctx, ticker.C)
		switch {
		case errors.Is(err, context.Canceled):
			w := p.State().Workout
			fmt.Fprintln(out)
			color.New(color.FgYellow).Fprintf(out, "⏸ Paused with %s remaining\n", workout.FormatClock(w.RemainingTime()))
			return nil
		case err != nil:
			return err
		}

		color.New(color.FgGreen).Fprintln(out, "✓ Workout complete!")
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Start the current workout over",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := store.GetWorkout()
		if err != nil {
			return fmt.Errorf("failed to load workout: %w", err)
		}
		w.Reset()
		if err := store.SaveWorkout(w); err != nil {
			return fmt.Errorf("failed to save workout: %w", err)
		}
		color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "✓ Workout reset")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Summarize workout progress and rest days",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := store.GetWorkout()
		if err != nil {
			return fmt.Errorf("failed to load workout: %w", err)
		}
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

		switch {
		case w.HasEnded():
			fmt.Fprintln(out, "Workout: finished")
		case w.HasBegun():
			fmt.Fprintf(out, "Workout: %s of %s done\n", workout.FormatClock(w.ElapsedTime()), workout.FormatClock(w.TotalTime()))
		default:
			fmt.Fprintf(out, "Workout: not started (%s)\n", workout.FormatClock(w.TotalTime()))
		}

		last, ok := workout.LastFinishedWorkout(activity)
		fmt.Fprintf(out, "Last workout: %s\n", workout.LastFinishedLabel(last, ok, now))

		eligible := workout.EligibleGroups(settings, activity, now)
		names := make([]string, 0, len(eligible))
		for _, g := range eligible {
			names = append(names, g.Name)
		}
		fmt.Fprintf(out, "Ready to train: %d of %d groups %v\n", len(eligible), len(settings.ExerciseGroups), names)
		return nil
	},
}

// generateWorkout builds and saves a workout from the stored catalog.
func generateWorkout() (models.Workout, error) {
	settings, err := store.GetSettings()
	if err != nil {
		return models.Workout{}, fmt.Errorf("failed to load settings: %w", err)
	}
	activity, err := store.GetActivityLog()
	if err != nil {
		return models.Workout{}, fmt.Errorf("failed to load activity log: %w", err)
	}

	log := cmdLogger("generate")
	for _, warning := range settings.Validate() {
		log.Warn(warning)
	}

	w := workout.NewGenerator(nil, nil).Generate(settings, activity)
	if err := store.SaveWorkout(w); err != nil {
		return models.Workout{}, fmt.Errorf("failed to save workout: %w", err)
	}
	log.Info("generated workout", "tasks", len(w.Tasks), "total", w.TotalTime())
	return w, nil
}

func printWorkout(out io.Writer, w models.Workout) {
	faint := color.New(color.Faint)
	current := w.CurrentTaskIndex()

	for i, t := range w.Tasks {
		marker := "  "
		if i == current && w.HasBegun() {
			marker = "▶ "
		}
		progress := workout.FormatClock(t.Duration)
		if t.CurrentSecond > 0 {
			progress = fmt.Sprintf("%s/%s", workout.FormatClock(t.CurrentSecond), workout.FormatClock(t.Duration))
		}
		fmt.Fprintf(out, "%s%s %s %s\n",
			marker,
			padRight(truncate(t.Name, 40), 40),
			faint.Sprint(padRight(string(t.Type), 20)),
			progress)
	}
	fmt.Fprintf(out, "\nTotal %s, remaining %s\n", workout.FormatClock(w.TotalTime()), workout.FormatClock(w.RemainingTime()))
}

// progressPrinter announces each task as playback reaches it.
func progressPrinter(out io.Writer) func(player.State) {
	last := -1
	return func(s player.State) {
		idx := s.Workout.CurrentTaskIndex()
		if idx < 0 || idx == last {
			return
		}
		last = idx
		t := s.Workout.Tasks[idx]
		color.New(color.Bold).Fprintf(out, "▶ %s (%s)\n", t.Name, workout.FormatClock(t.Remaining()))
	}
}

// buildSpeaker prints every cue, records it in the log file when one is
// configured, and speaks it through a background queue when speech_command is set.
func buildSpeaker(ctx context.Context, out io.Writer) (speech.Speaker, func(), error) {
	speakers := speech.Multi{speech.Console{Out: out}}
	if cfg != nil && cfg.GetLogFile() != "" {
		speakers = append(speakers, speech.Log{Logger: cmdLogger("cue")})
	}
	if cfg == nil || cfg.SpeechCommand == "" {
		return speakers, func() {}, nil
	}

	command, err := speech.ParseCommand(cfg.SpeechCommand)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid speech_command: %w", err)
	}
	queue := speech.NewQueue(ctx, command, speech.DefaultQueueSize, cmdLogger("speech"))
	return append(speakers, queue), func() { _ = queue.Close() }, nil
}

func init() {
	playCmd.Flags().BoolVar(&playNew, "new", false, "generate a new workout before playing")
	playCmd.Flags().BoolVar(&playReset, "reset", false, "start the current workout over")
	playCmd.Flags().BoolVarP(&playQuiet, "quiet", "q", false, "only print cues, not task changes")
	playCmd.Flags().DurationVar(&playTick, "tick", time.Second, "length of one workout second")
	_ = playCmd.Flags().MarkHidden("tick")
	playCmd.MarkFlagsMutuallyExclusive("new", "reset")

	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statusCmd)
}
