package cli

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/idelchi/treestat/internal/treestat"
)

func logic(cmd *cobra.Command, mode treestat.Mode, options treestat.Options, quiet bool) error {
	enableProgress := options.Output != "json" &&
		!options.Debug &&
		isatty.IsTerminal(os.Stderr.Fd())

	if !quiet {
		options.Diagnostics = cmd.ErrOrStderr()
	}

	// Simple progress callback that prints directly to stderr
	var progressHook func(files, bytes int64)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(os.Stderr, "\033[?25l")
		defer fmt.Fprint(os.Stderr, "\033[?25h")

		progressHook = func(files, bytes int64) {
			msg := fmt.Sprintf("Scanning… %d files", files)
			if mode == treestat.ModeSize {
				msg += ", " + humanize.IBytes(uint64(bytes)) //nolint:gosec // Bytes is always positive
			}

			fmt.Fprintf(os.Stderr, "\r\033[2K%s\r", msg)
		}
	}

	result, err := treestat.Run(cmd.Context(), options, mode, progressHook)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(os.Stderr, "\r\033[2K\r")
	}

	if err != nil {
		return err
	}

	switch options.Output {
	case "json":
		return PrintJSON(result, cmd.OutOrStdout())
	case "table":
		return PrintTable(result, cmd.OutOrStdout())
	default:
		return fmt.Errorf("unknown output format: %s", options.Output)
	}
}
