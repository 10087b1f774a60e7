package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/minairva-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/minairva-cli/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for minairva.

Drop a file onto the terminal or type its path, then press Enter to send it
for triage. Results appear in three tabs.

Controls:
  Enter        - Submit the path
  Esc          - Leave the path field
  / or i       - Edit the path
  Tab, 1, 2, 3 - Switch result tabs
  t            - Toggle light/dark theme
  q            - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	// Logging to stderr would corrupt the alternate screen.
	if tuiLogPath != "" {
		restore, err := logger.RedirectToFile(tuiLogPath)
		if err != nil {
			logger.Warn("tui: could not open log file: %v", err)
		} else {
			defer func() { _ = restore() }()
		}
	}

	ports := tui.NewPorts(triageService, themeService, settingsService)

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(cmd.Context())

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
