// Package cli provides the Cobra command structure for qdiff.
package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// appName prefixes user-facing error messages.
const appName = "qdiff"

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the qdiff command.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "qdiff [OPTION]... FILE1 FILE2",
		Short: "Quick binary diff: compare two files byte by byte and show the differences side by side",
		Long: `qdiff compares two files of any kind and shows matching, deleted, inserted
and substituted bytes side by side.

It resynchronizes after differences by searching for runs of equal bytes,
so insertions and deletions in binary files are found without aligning
lines. Text files are shown line by line, other files as a hex dump;
one of the output mode options overrides the automatic choice.`,
		Example: `  qdiff old.bin new.bin
  qdiff --hex --alignment-marks a.img b.img
  qdiff -m 8 --range-match firmware-1.0 firmware-1.1
  qdiff --vertical --stop-on-eof short.dat long.dat`,
		Args:          exactFiles,
		Version:       info.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, args, flags)
		},
	}
	rootCmd.SetVersionTemplate(versionTemplate(info))
	rootCmd.SetFlagErrorFunc(flagError)

	rootCmd.Flags().SortFlags = false
	addFlags(rootCmd, flags)

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(colorFromArgs(os.Args[1:]), os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

// colorFromArgs picks the help color mode before flags are parsed.
func colorFromArgs(args []string) string {
	mode := "auto"
	for i, arg := range args {
		switch {
		case arg == "--no-color" || arg == "-c":
			return "never"
		case arg == "--color" && i+1 < len(args):
			mode = args[i+1]
		default:
			if value, ok := strings.CutPrefix(arg, "--color="); ok {
				mode = value
			}
		}
	}
	return mode
}
