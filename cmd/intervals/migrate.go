// ABOUTME: CLI command for copying intervals data between storage backends.
// ABOUTME: Moves settings, workout and history from one backend to another.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/harperreed/intervals/internal/config"
	"github.com/harperreed/intervals/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateDryRun bool
	migrateForce  bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy data between storage backends",
	Long: `Copy settings, the current workout and history from one storage backend
to another.

BACKENDS:

  charm    Charm KV, synced across devices (default)
  badger   Local Badger database under ~/.local/share/intervals/badger

IMPORTANT:

  - Everything in the destination is overwritten
  - A non-empty Badger destination needs --force
  - Run with --dry-run first to see what would be copied

USAGE:

  intervals migrate --from charm --to badger --dry-run
  intervals migrate --from charm --to badger
  intervals migrate --from badger --to charm

AFTER MIGRATION:

  Point intervals at the new backend in ~/.config/intervals/config.json:
    { "backend": "badger" }`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNoStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if migrateFrom == migrateTo {
			return fmt.Errorf("--from and --to must differ")
		}
		for _, b := range []string{migrateFrom, migrateTo} {
			if b != config.BackendCharm && b != config.BackendBadger {
				return fmt.Errorf("unknown backend: %q (use charm or badger)", b)
			}
		}

		if migrateTo == config.BackendBadger && !migrateForce && !migrateDryRun {
			nonEmpty, err := storage.IsDirNonEmpty(filepath.Join(cfg.GetDataDir(), "badger"))
			if err != nil {
				return err
			}
			if nonEmpty {
				return fmt.Errorf("destination badger database already has data: use --force to overwrite")
			}
		}

		src, err := openBackendStore(migrateFrom)
		if err != nil {
			return fmt.Errorf("failed to open source: %w", err)
		}
		defer src.Close()

		var dst *storage.Store
		if !migrateDryRun {
			dst, err = openBackendStore(migrateTo)
			if err != nil {
				return fmt.Errorf("failed to open destination: %w", err)
			}
			defer dst.Close()
		} else {
			color.New(color.FgYellow).Fprintln(out, "Dry run mode - no changes will be made")
			fmt.Fprintln(out)
		}

		summary, err := storage.MigrateData(src, dst, migrateDryRun)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		verb := "Copied"
		if migrateDryRun {
			verb = "Would copy"
		}
		color.New(color.FgGreen).Fprintf(out, "✓ %s %s → %s\n", verb, migrateFrom, migrateTo)
		fmt.Fprintf(out, "  Groups:        %d\n", summary.Groups)
		fmt.Fprintf(out, "  Exercises:     %d\n", summary.Exercises)
		fmt.Fprintf(out, "  Workout tasks: %d\n", summary.Tasks)
		fmt.Fprintf(out, "  History:       %d\n", summary.LogEntries)
		return nil
	},
}

func openBackendStore(backend string) (*storage.Store, error) {
	c := *cfg
	c.Backend = backend
	return c.OpenStorage(cmdLogger("migrate"))
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", config.BackendCharm, "source backend: charm or badger")
	migrateCmd.Flags().StringVar(&migrateTo, "to", config.BackendBadger, "destination backend: charm or badger")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "overwrite a non-empty destination")
	rootCmd.AddCommand(migrateCmd)
}
