// Command treestat counts files and sums file sizes within a directory tree.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/treestat/internal/cli"
)

//nolint:gochecknoglobals // Set at build time
var version = "unknown - unofficial & generated by unknown"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
