// Maptools is a terminal map editor's developer toolbox.
//
// It opens a map from the data directory and shows the dev tools menu:
// change the map, edit or draw Osmosis polygons, browse scenarios and their
// trips, and page through imported shape datasets. The rendered session can
// be mirrored to other terminals over WebSocket.
//
// Usage:
//
//	maptools [command] [flags]
//
// Running without arguments opens the editor on the default map.
// See 'maptools --help' for available commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/muurk/maptools/internal/logging"
	"github.com/muurk/maptools/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logging.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "maptools",
	Short: "Map editor dev tools",
	Long: `Developer tools for a city map editor.

Opens the map in the terminal with a menu for switching maps, editing
Osmosis polygons, viewing scenarios, browsing trips and shape datasets.

Data is read from the data directory:
  maps/<map>.yaml
  scenarios/<map>/<scenario>.yaml
  input/<city>/polygons/<name>.poly
  input/<city>/datasets/<name>.yaml

If no command is specified, the editor opens on the default map.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEditor(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "maptools %s (commit: %s, %s)\n",
			version.Version, version.Commit, version.Platform())
	},
}
