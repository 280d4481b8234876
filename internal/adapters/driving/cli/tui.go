package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/keysent/internal/adapters/driving/tui"
)

var tuiNoWatch bool

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui [LEFT] [RIGHT]",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the two-pane terminal user interface.

Each pane ranks its own articles, so two sets can be compared side by
side. LEFT and RIGHT are optional paths or comma separated path lists
loaded on start. Panes re-rank automatically when their files change.

Controls:
  Tab      - Switch pane
  o, /     - Enter article paths
  ↑/k, ↓/j - Navigate sentences
  Enter    - Load paths / open sentence source
  r        - Re-rank with current settings
  s        - Settings
  ?        - Toggle help
  q        - Quit`,
	Args: cobra.MaximumNArgs(2),
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().BoolVar(&tuiNoWatch, "no-watch", false, "do not re-rank when article files change")
	rootCmd.AddCommand(tuiCmd)
}

// tuiPorts builds the TUI ports from the wired services.
func tuiPorts() *tui.Ports {
	ports := tui.NewPorts(rankService, corpusService, settingsService)
	if !tuiNoWatch {
		ports.Watcher = sourceWatcher
	}
	return ports
}

func runTUI(cmd *cobra.Command, args []string) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = errors.New("TUI crashed")
		}
	}()

	app, err := tui.NewApp(tuiPorts())
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	var left, right []string
	if len(args) > 0 {
		left = splitPaths(args[0])
	}
	if len(args) > 1 {
		right = splitPaths(args[1])
	}
	app.WithContext(cmd.Context()).WithPaths(left, right)

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
