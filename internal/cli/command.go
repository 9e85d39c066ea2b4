package cli

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/treestat/internal/pathsep"
	"github.com/idelchi/treestat/internal/treestat"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// EnvPrefix prefixes the environment variables that supply flag defaults.
const EnvPrefix = "TREESTAT"

//nolint:gochecknoglobals // Config constant
var allowedOutputs = []string{"table", "json"}

// Execute runs the CLI with the process arguments.
func (c CLI) Execute() error {
	return c.Command().Execute()
}

// Command builds the root command and its subcommands.
func (c CLI) Command() *cobra.Command {
	root := &cobra.Command{
		Use:   "treestat",
		Short: "Count files and sum file sizes within a directory tree",
		Long: heredoc.Doc(`
			treestat counts files and sums file sizes within a directory tree.

			Files are selected by plain name suffix: '-x txt' matches both
			'report.txt' and 'subtxt'. Subdirectories that cannot be read are
			reported and skipped; the total then covers everything else.

			Every flag can also be set through the environment as
			TREESTAT_<FLAG>, e.g. TREESTAT_SYMLINKS=true or TREESTAT_EXT="go,md".
		`),
		Version:       c.version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		walkCommand(treestat.ModeCount, "Count the files in a directory tree"),
		walkCommand(treestat.ModeSize, "Sum the sizes of the files in a directory tree"),
		sepCommand(),
	)

	return root
}

func walkCommand(mode treestat.Mode, short string) *cobra.Command {
	cfg := viper.New()

	cmd := &cobra.Command{
		Use:   mode.String() + " [path]",
		Short: short,
		Long: heredoc.Docf(`
			%s.

			Positional Arguments:
			  path    Directory to walk. Defaults to the current directory.
		`, short),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("binding flags: %w", err)
			}

			options, err := optionsFrom(cfg, args)
			if err != nil {
				return err
			}

			return logic(cmd, mode, options, cfg.GetBool("quiet"))
		},
	}

	cfg.SetEnvPrefix(EnvPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cfg.AutomaticEnv()

	flags := cmd.Flags()
	flags.StringSliceP("ext", "x", []string{}, "File name suffixes to include (e.g., txt,jpeg). Empty includes all files")
	flags.Bool("recursive", true, "Descend into subdirectories")
	flags.BoolP("symlinks", "L", false, "Follow symbolic links to files and directories")
	flags.IntP("depth", "d", 0, "Maximum traversal depth when recursive (0=unlimited)")
	flags.StringSliceP("exclude", "e", []string{}, "Regex patterns to exclude")
	flags.StringP("output", "o", "table", "Output format: json or table")
	flags.BoolP("quiet", "q", false, "Do not report skipped paths on stderr")
	flags.Bool("debug", false, "Enable debug output")
	flags.SortFlags = false

	return cmd
}

func sepCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sep <path>...",
		Short: "Rewrite path separators to the host convention",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), pathsep.Normalize(arg)); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

// optionsFrom assembles walk options from flags and environment.
func optionsFrom(cfg *viper.Viper, args []string) (treestat.Options, error) {
	options := treestat.Options{
		Path:       ".",
		Extensions: splitList(cfg.GetStringSlice("ext")),
		Recursive:  cfg.GetBool("recursive"),
		Symlinks:   cfg.GetBool("symlinks"),
		Depth:      cfg.GetInt("depth"),
		Excludes:   cfg.GetStringSlice("exclude"),
		Output:     strings.ToLower(cfg.GetString("output")),
		Debug:      cfg.GetBool("debug"),
	}

	if len(args) > 0 {
		options.Path = args[0]
	}

	if !slices.Contains(allowedOutputs, options.Output) {
		return options, fmt.Errorf("invalid output format %q: must be one of %v", options.Output, allowedOutputs)
	}

	if options.Depth < 0 {
		return options, errors.New("depth cannot be negative")
	}

	return options, nil
}

// splitList splits comma-separated items, as environment values arrive as a
// single string while flags are already split by pflag.
func splitList(values []string) []string {
	items := make([]string, 0, len(values))

	for _, value := range values {
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
	}

	return items
}
