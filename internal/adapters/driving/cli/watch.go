package cli

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/minairva-cli/internal/adapters/driving/watch"
	"github.com/custodia-labs/minairva-cli/internal/core/domain"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Triage every document dropped into a folder",
	Long: `Watches a folder and submits each file written into it.

Hidden files and editor backups ending in ~ are ignored. Drops are
submitted concurrently; only the newest result is kept as the current one.
Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce,
		"how long a file must be quiet before it is submitted")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if triageService == nil {
		return errNotConfigured("triage")
	}

	w := watch.New(args[0], triageService, watch.WithDebounce(watchDebounce))
	defer w.Close()

	cmd.Printf("Watching %s for documents. Press Ctrl+C to stop.\n", w.Dir())

	// Handlers run concurrently; keep each report on its own lines.
	var mu sync.Mutex
	err := w.Run(cmd.Context(), func(drop watch.Drop, snap domain.Snapshot, err error) {
		mu.Lock()
		defer mu.Unlock()
		reportDrop(cmd, drop, snap, err)
	})
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}

func reportDrop(cmd *cobra.Command, drop watch.Drop, snap domain.Snapshot, err error) {
	name := drop.Upload.DisplayName()
	switch {
	case errors.Is(err, domain.ErrStaleResponse):
		cmd.Printf("- %s: superseded by a newer document\n", name)
	case err != nil:
		cmd.Printf("x %s\n", (&submitError{name: name, err: err}).Error())
	case snap.Result != nil:
		cmd.Printf("+ %s: %s (%d clauses, %d risks)\n",
			name, describeType(snap.Result), len(snap.Result.Clauses), len(snap.Result.Risks))
	default:
		cmd.Printf("+ %s\n", name)
	}
}
