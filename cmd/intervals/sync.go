// ABOUTME: CLI commands for Charm-based sync.
// ABOUTME: Supports link, unlink, status, repair, reset, and wipe operations.
package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/charmbracelet/charm/kv"
	"github.com/fatih/color"
	"github.com/harperreed/intervals/internal/charm"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync intervals data across devices",
	Long: `Sync settings, the current workout and history across devices using
Charm Cloud.

Your data is E2E encrypted with your SSH key before upload.
The server never sees your unencrypted data.

GETTING STARTED:

  1. Link your device (creates/uses SSH key automatically):
     intervals sync link

  2. On other devices, link with the same Charm account:
     intervals sync link

  3. Check sync status:
     intervals sync status

COMMANDS:

  link        Link this device to your Charm account
  unlink      Disconnect this device from Charm
  status      Show sync status and account info
  repair      Repair database corruption
  reset       Reset local data and restore from cloud (destructive)
  wipe        Delete cloud and local data (destructive)

Data syncs automatically after each change. During 'intervals play' sync
pauses and catches up when playback stops.`,
}

var syncLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link this device to Charm",
	Long: `Link this device to your Charm account.

If you don't have a Charm account, one will be created using your SSH key.
If you already have an account, you'll be prompted to link via charm.sh.

Example:
  intervals sync link`,
	Annotations: map[string]string{annotationNoStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if err := charm.ConfigureHost(cfg.CharmHost); err != nil {
			return err
		}

		// Use charm CLI to link
		charmCmd := exec.Command("charm", "link")
		charmCmd.Stdin = os.Stdin
		charmCmd.Stdout = os.Stdout
		charmCmd.Stderr = os.Stderr

		if err := charmCmd.Run(); err != nil {
			return fmt.Errorf("failed to link: %w\n\nMake sure 'charm' CLI is installed: go install github.com/charmbracelet/charm@latest", err)
		}

		color.New(color.FgGreen).Fprintln(out, "\n✓ Device linked to Charm")
		fmt.Fprintln(out, "Your workouts and history will now sync automatically across devices.")

		// Sync immediately after linking
		client, err := charm.InitClient(cfg.CharmHost)
		if err != nil {
			color.New(color.FgYellow).Fprintf(out, "⚠ Initial sync failed: %v\n", err)
			return nil
		}
		defer client.Close()
		if err := client.Sync(); err != nil {
			color.New(color.FgYellow).Fprintf(out, "⚠ Initial sync failed: %v\n", err)
		} else {
			color.New(color.FgGreen).Fprintln(out, "✓ Initial sync complete")
		}

		return nil
	},
}

var syncUnlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Disconnect from Charm",
	Long: `Disconnect this device from Charm.

This does not delete your local data.
You can link again later with 'intervals sync link'.`,
	Annotations: map[string]string{annotationNoStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := charm.ConfigureHost(cfg.CharmHost); err != nil {
			return err
		}

		// Use charm CLI to unlink
		charmCmd := exec.Command("charm", "unlink")
		charmCmd.Stdin = os.Stdin
		charmCmd.Stdout = os.Stdout
		charmCmd.Stderr = os.Stderr

		if err := charmCmd.Run(); err != nil {
			return fmt.Errorf("failed to unlink: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintln(out, "✓ Device unlinked from Charm")
		fmt.Fprintln(out, "Your local data is preserved.")

		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	Long: `Show current sync status including:
- Storage backend
- Charm account info
- Which documents exist locally`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		client, ok := store.Backend().(*charm.Client)
		if !ok {
			fmt.Fprintf(out, "Backend: %s (sync disabled)\n", cfg.GetBackend())
			fmt.Fprintln(out, "\nSet \"backend\": \"charm\" in the config to sync across devices.")
			return nil
		}

		id, err := client.ID()
		if err != nil {
			color.New(color.FgYellow).Fprintln(out, "Not linked to Charm")
			fmt.Fprintln(out, "\nRun 'intervals sync link' to connect to Charm.")
			return nil
		}

		host := cfg.CharmHost
		if host == "" {
			host = charm.DefaultHost
		}
		fmt.Fprintln(out, "Charm ID:", id)
		fmt.Fprintln(out, "Server:", host)
		fmt.Fprintln(out)

		color.New(color.FgGreen).Fprintln(out, "✓ Connected to Charm")
		if client.IsReadOnly() {
			color.New(color.FgYellow).Fprintln(out, "  ⚠ Read-only: another intervals process holds the database")
		}

		docs, err := client.Documents()
		if err != nil {
			return fmt.Errorf("failed to list documents: %w", err)
		}
		if len(docs) == 0 {
			fmt.Fprintln(out, "  No data stored yet")
		}
		for _, d := range docs {
			fmt.Fprintf(out, "  • %s\n", d)
		}

		return nil
	},
}

var syncWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete all cloud and local data",
	Long: `Delete all cloud backups and local data.

This is a DESTRUCTIVE operation. ALL data will be permanently deleted,
including your exercise catalog and history.`,
	Annotations: map[string]string{annotationNoStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		// Confirm
		fmt.Fprintln(out, "This will PERMANENTLY DELETE all cloud backups and local intervals data.")
		fmt.Fprint(out, "Type 'wipe' to confirm: ")
		var confirmText string
		fmt.Fscanln(cmd.InOrStdin(), &confirmText)
		if confirmText != "wipe" {
			fmt.Fprintln(out, "Canceled.")
			return nil
		}

		if err := charm.ConfigureHost(cfg.CharmHost); err != nil {
			return err
		}
		result, err := kv.Wipe(charm.DBName)
		if err != nil {
			return fmt.Errorf("wipe failed: %w", err)
		}

		color.New(color.FgGreen).Fprintln(out, "✓ Data wiped successfully")
		fmt.Fprintf(out, "  Cloud backups deleted: %d\n", result.CloudBackupsDeleted)
		fmt.Fprintf(out, "  Local files deleted: %d\n", result.LocalFilesDeleted)

		return nil
	},
}

var syncRepairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Repair database corruption",
	Long: `Repair database corruption by checkpointing WAL, removing SHM files, checking integrity, and vacuuming.

Use this when you encounter database lock errors or corruption.
Run with --force to attempt recovery even if integrity checks fail.`,
	Annotations: map[string]string{annotationNoStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		force, _ := cmd.Flags().GetBool("force")
		green := color.New(color.FgGreen)

		if err := charm.ConfigureHost(cfg.CharmHost); err != nil {
			return err
		}

		fmt.Fprintln(out, "Repairing intervals database...")
		result, err := kv.Repair(charm.DBName, force)

		// Show what happened
		if result.WalCheckpointed {
			green.Fprintln(out, "  ✓ WAL checkpointed")
		}
		if result.ShmRemoved {
			green.Fprintln(out, "  ✓ SHM file removed")
		}
		if result.IntegrityOK {
			green.Fprintln(out, "  ✓ Integrity check passed")
		} else {
			color.New(color.FgRed).Fprintln(out, "  ✗ Integrity check failed")
		}
		if result.Vacuumed {
			green.Fprintln(out, "  ✓ Database vacuumed")
		}

		if err != nil {
			if !force {
				color.New(color.FgYellow).Fprintln(out, "\nRun with --force to attempt recovery.")
			}
			return fmt.Errorf("repair failed: %w", err)
		}

		green.Fprintln(out, "\n✓ Repair complete")
		return nil
	},
}

var syncResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset local data and restore from cloud",
	Long: `Delete all local data and restore from Charm Cloud.

This is a destructive operation. All local data will be lost and restored from cloud.
Use this to:
- Fix sync conflicts
- Reset a device to cloud state
- Start fresh on a device`,
	Annotations: map[string]string{annotationNoStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if !confirm(cmd.InOrStdin(), out, "This will DELETE all local intervals data and restore from cloud. Continue?") {
			fmt.Fprintln(out, "Canceled.")
			return nil
		}

		if err := charm.ConfigureHost(cfg.CharmHost); err != nil {
			return err
		}
		if err := kv.Reset(charm.DBName); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}

		color.New(color.FgGreen).Fprintln(out, "✓ Local data reset and restored from cloud")
		return nil
	},
}

func init() {
	syncCmd.AddCommand(syncLinkCmd)
	syncCmd.AddCommand(syncUnlinkCmd)
	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncRepairCmd)
	syncCmd.AddCommand(syncResetCmd)
	syncCmd.AddCommand(syncWipeCmd)

	// Add --force flag to repair command
	syncRepairCmd.Flags().Bool("force", false, "Attempt recovery even if integrity checks fail")

	rootCmd.AddCommand(syncCmd)
}
