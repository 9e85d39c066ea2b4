package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/treestat/internal/treestat"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// PrintJSON outputs the walk result in JSON format.
func PrintJSON(result *treestat.Result, writer io.Writer) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintTable outputs the walk result in human-readable table format.
func PrintTable(result *treestat.Result, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	if len(result.Skipped) > 0 {
		fmt.Fprintln(w, "\nSkipped paths:\t\t")

		for i, s := range result.Skipped {
			fmt.Fprintf(w, "  %d) '%s'\t%s\n", i+1, filepath.ToSlash(s.Path), s.Kind)
		}
	}

	fmt.Fprintln(w, "\nStats:\t\t")
	fmt.Fprintf(w, "Total files:\t%d\n", result.Files)

	if result.Mode == treestat.ModeSize {
		fmt.Fprintf(w, "Total size:\t%s (%d bytes)\n",
			humanize.IBytes(uint64(result.Bytes)), result.Bytes) //nolint:gosec // Bytes is always positive
	}

	if result.Complete() {
		fmt.Fprintf(w, "Complete:\tyes\n")
	} else {
		fmt.Fprintf(w, "Complete:\tno (%d skipped, totals are a lower bound)\n", len(result.Skipped))
	}

	fmt.Fprintf(w, "\nElapsed:\t%v\n", result.Elapsed)

	return w.Flush()
}
