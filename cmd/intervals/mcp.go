// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/intervals/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to build workouts and edit your exercise
catalog through a standardized protocol. The server communicates via
stdin/stdout, so logs go to stderr or --log-file.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "intervals": {
        "command": "intervals",
        "args": ["mcp"]
      }
    }
  }

  On macOS, the config is at:
    ~/Library/Application Support/Claude/claude_desktop_config.json

AVAILABLE TOOLS:

  generate_workout   Generate a new workout
  get_workout        Show the current workout and progress
  reset_workout      Start the current workout over
  list_groups        List groups, exercises and rest status
  add_group          Add an exercise group
  update_group       Rename or enable/disable a group
  remove_group       Remove a group
  add_exercise       Add an exercise to a group
  update_exercise    Rename an exercise, set its override or primary flag
  remove_exercise    Remove an exercise
  update_settings    Change timing and randomization settings
  get_history        When each exercise was last finished

AVAILABLE RESOURCES:

  intervals://workout    Current workout
  intervals://settings   Settings and exercise catalog
  intervals://activity   History and rested groups`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(store, version, cmdLogger("mcp"))
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
