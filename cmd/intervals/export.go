// ABOUTME: CLI commands for exporting and importing intervals data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/intervals/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	importFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export settings, workout and history",
	Long: `Export all intervals data in various formats.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable, also importable)
  markdown   Markdown tables (for documentation/sharing)

OPTIONS:

  --output, -o   Write to file instead of stdout

EXAMPLES:

  intervals export json                     # Export all data as JSON
  intervals export json -o backup.json      # Save to file
  intervals export yaml -o backup.yaml      # Export as YAML
  intervals export markdown                 # Tables for sharing`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := storage.ParseFormat(args[0])
		if err != nil {
			return err
		}

		bundle, err := storage.GetAllData(store)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		data, err := storage.Encode(bundle, format)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		out := cmd.OutOrStdout()
		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.New(color.FgGreen).Fprintf(out, "✓ Exported to %s\n", exportOutput)
		} else {
			fmt.Fprintln(out, string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import intervals data from JSON or YAML",
	Long: `Import intervals data from a previously exported JSON or YAML file.

Every section present in the file (settings, workout, activity_log)
replaces the stored one. Sections missing from the file are left alone, so
a file with only settings restores just the catalog and timings. Files
from older versions are upgraded on import.

EXAMPLES:

  intervals import backup.json
  intervals import backup.yaml
  intervals import backup.txt --format yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		raw, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		name := importFormat
		if name == "" {
			name = strings.TrimPrefix(filepath.Ext(filename), ".")
		}
		format, err := storage.ParseFormat(name)
		if err != nil || format == storage.FormatMarkdown {
			return fmt.Errorf("cannot import %s: use a .json or .yaml file or --format", filename)
		}

		bundle, err := storage.Decode(raw, format)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		if err := storage.ImportData(store, bundle); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Imported from %s\n", filename)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	importCmd.Flags().StringVar(&importFormat, "format", "", "input format: json or yaml (default: from file extension)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
