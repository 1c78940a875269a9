// ABOUTME: Root Cobra command for intervals CLI.
// ABOUTME: Handles config, logging and storage lifecycle via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/harperreed/intervals/internal/config"
	"github.com/harperreed/intervals/internal/logging"
	"github.com/harperreed/intervals/internal/storage"
	"github.com/spf13/cobra"
)

// annotationNoStorage marks commands that manage storage themselves.
const annotationNoStorage = "intervals/no-storage"

var (
	cfg       *config.Config
	logger    = logging.Discard()
	logCloser io.Closer
	store     *storage.Store

	flagBackend  string
	flagLogLevel string
	flagLogFile  string
)

var rootCmd = &cobra.Command{
	Use:   "intervals",
	Short: "Randomized interval workouts with spoken cues",
	Long: `Intervals builds randomized strength workouts from your exercise catalog
and coaches you through them one second at a time.

HOW IT WORKS:

  Exercises live in groups (Chest, Back, Arms...). Each workout picks a few
  groups that have rested long enough, shuffles their exercises into sets,
  and wraps them in a warmup and a cooldown. While playing, intervals
  announces what is next, counts down the last seconds and tells you when
  to switch.

QUICK START:

  $ intervals new                  # Generate a workout
  $ intervals show                 # See what's in it
  $ intervals play                 # Start the coach (Ctrl+C pauses)
  $ intervals eligible             # Which groups are rested

CATALOG:

  $ intervals group list
  $ intervals group add Legs
  $ intervals exercise add Legs "Goblet Squat" --override x2
  $ intervals settings set rest_days_per_groups 2

SYNC (AUTOMATIC):

  Workouts, settings and history sync across devices using Charm Cloud.
  Data is E2E encrypted with your SSH key. Sync pauses during playback.

  $ intervals sync link      # Link device to your Charm account
  $ intervals sync status    # Check sync status

MCP INTEGRATION:

  Run 'intervals mcp' to start the Model Context Protocol server:

  {
    "mcpServers": {
      "intervals": { "command": "intervals", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  The default backend is Charm KV. Set "backend": "badger" in
  ~/.config/intervals/config.json (or INTERVALS_BACKEND=badger) to keep
  everything in a local Badger database under ~/.local/share/intervals.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip setup for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if flagBackend != "" {
			cfg.Backend = flagBackend
		}
		if flagLogLevel != "" {
			cfg.LogLevel = flagLogLevel
		}
		if flagLogFile != "" {
			cfg.LogFile = flagLogFile
		}

		logger, logCloser, err = logging.New(logging.Options{
			Level: cfg.GetLogLevel(),
			File:  cfg.GetLogFile(),
		}, os.Stderr)
		if err != nil {
			return fmt.Errorf("failed to set up logging: %w", err)
		}

		if cmd.Annotations[annotationNoStorage] == "true" {
			return nil
		}

		store, err = cfg.OpenStorage(logger.WithPrefix("storage"))
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeResources()
	},
}

func closeResources() error {
	var err error
	if store != nil {
		err = store.Close()
		store = nil
	}
	if logCloser != nil {
		if cerr := logCloser.Close(); err == nil {
			err = cerr
		}
		logCloser = nil
	}
	logger = logging.Discard()
	return err
}

// Execute runs the root command, releasing storage even when a command fails.
func Execute() error {
	err := rootCmd.Execute()
	if cerr := closeResources(); err == nil {
		err = cerr
	}
	return err
}

// cmdLogger returns a component logger for command code.
func cmdLogger(component string) *log.Logger {
	return logger.WithPrefix(component)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "storage backend: charm, badger or memory")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "write logs to a rotating file instead of stderr")
}
