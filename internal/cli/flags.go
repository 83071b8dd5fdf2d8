package cli

import (
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/qdiff/internal/apperr"
	"github.com/yaklabco/qdiff/pkg/config"
)

// groupAnnotation tags each flag with the help section it is listed under.
const groupAnnotation = "qdiff_group"

// Help sections, in display order.
const (
	groupDiff    = "diff options"
	groupModes   = "output modes (override automatic file type determination)"
	groupOutput  = "output options"
	groupCommon  = "common options"
	groupConfig  = "configuration"
	defaultGroup = groupCommon
)

//nolint:gochecknoglobals // Read-only lookup table.
var modeNames = []string{"hex", "formatted", "unformatted", "vertical"}

//nolint:gochecknoglobals // Read-only lookup table.
var flagGroups = []string{groupDiff, groupModes, groupOutput, groupCommon, groupConfig}

// rootFlags holds raw flag values. Scalars only reach the configuration
// when the flag was given, so file and environment values survive.
type rootFlags struct {
	values config.Config

	hex         bool
	formatted   bool
	unformatted bool
	vertical    bool

	noColor  bool
	rangeAll bool

	configPath string
	noConfig   bool
	summary    bool
}

func addFlags(cmd *cobra.Command, f *rootFlags) {
	defaults := config.NewConfig()
	flags := cmd.Flags()
	group := func(g string, names ...string) {
		for _, name := range names {
			_ = flags.SetAnnotation(name, groupAnnotation, []string{g})
		}
	}

	flags.BoolVarP(&f.values.ByteByByte, "byte-by-byte", "b", false, "compare files byte by byte, like 'cmp'")
	flags.BoolVarP(&f.values.NoHeuristics, "no-heuristics", "f", false,
		"do not use heuristics to speed up large differing blocks; the result is always correct "+
			"but may show fewer differing bytes without them")
	flags.IntVarP(&f.values.MinMatch, "min-match", "m", defaults.MinMatch,
		"allow resynchronization only after NUM bytes match; lower values give a more detailed "+
			"analysis, higher values a coarser but more robust one")
	flags.BoolVarP(&f.values.LargeFiles, "large-files", "O", false,
		"optimize disk access for large files on the same disk (uses 16MB per file)")
	flags.BoolVarP(&f.values.StopOnEOF, "stop-on-eof", "e", false, "stop when the end of either file is reached")
	group(groupDiff, "byte-by-byte", "no-heuristics", "min-match", "large-files", "stop-on-eof")

	flags.BoolVarP(&f.formatted, "formatted", "a", false, "print formatted ascii text, line by line")
	flags.BoolVarP(&f.unformatted, "unformatted", "u", false, "print unformatted ascii text, block by block")
	flags.BoolVarP(&f.hex, "hex", "x", false, "print hex dump, block by block")
	flags.BoolVarP(&f.vertical, "vertical", "t", false, "print one byte per line (ignores width)")
	group(groupModes, "formatted", "unformatted", "hex", "vertical")

	flags.BoolVarP(&f.noColor, "no-color", "c", false, "disable ansi coloring of output")
	flags.StringVar(&f.values.Color, "color", defaults.Color, "colorize output: auto, always, never")
	flags.BoolVarP(&f.values.AltColors, "alt-colors", "C", false, "no bold ansi coloring")
	flags.IntVarP(&f.values.Width, "width", "w", 0, "output at most NUM chars per line (0 = terminal width)")
	flags.IntVarP(&f.values.BytesPerLine, "bytes-per-line", "B", 0, "print NUM bytes/chars per line")
	flags.IntVarP(&f.values.TabSize, "tab-size", "T", defaults.TabSize, "tab size in formatted mode")
	flags.BoolVarP(&f.values.LineNumbers, "line-numbers", "l", false, "print line numbers in formatted mode")
	flags.BoolVarP(&f.values.NoLineBreak, "no-line-break", "n", false, "truncate (not break) lines in formatted mode")
	flags.BoolVarP(&f.values.ShowLFAndTab, "show-lf-and-tab", "L", false,
		"show newline/tab as <LF>/<HT> in formatted mode")
	flags.BoolVarP(&f.values.ShowSpace, "show-space", "S", false, "show space as <SPC> in non hex modes")
	flags.StringVarP(&f.values.Unprintable, "unprintable", "U", "", "print CHAR for unprintable chars in non hex modes")
	flags.BoolVarP(&f.values.ControlHex, "control-hex", "H", false, "print control codes in hex (<x1B>, not <ESC>)")
	flags.BoolVarP(&f.values.AlignmentMarks, "alignment-marks", "A", false,
		"print '-/+' before 32/64-bit words in hex mode")
	flags.BoolVar(&f.values.Hide.Match, "hide-match", false, "do not print matches")
	flags.BoolVar(&f.values.Hide.Deletion, "hide-deletion", false, "do not print deletions")
	flags.BoolVar(&f.values.Hide.Insertion, "hide-insertion", false, "do not print insertions")
	flags.BoolVar(&f.values.Hide.Substitution, "hide-substitution", false, "do not print substitutions")
	flags.BoolVar(&f.values.Range.Match, "range-match", false, "print matches as byte ranges")
	flags.BoolVar(&f.values.Range.Deletion, "range-deletion", false, "print deletions as byte ranges")
	flags.BoolVar(&f.values.Range.Insertion, "range-insertion", false, "print insertions as byte ranges")
	flags.BoolVar(&f.values.Range.Substitution, "range-substitution", false,
		"print substitutions as two byte ranges")
	flags.BoolVarP(&f.rangeAll, "range", "R", false, "print everything as byte ranges")
	group(groupOutput, "no-color", "color", "alt-colors", "width", "bytes-per-line", "tab-size",
		"line-numbers", "no-line-break", "show-lf-and-tab", "show-space", "unprintable", "control-hex",
		"alignment-marks", "hide-match", "hide-deletion", "hide-insertion", "hide-substitution",
		"range-match", "range-deletion", "range-insertion", "range-substitution", "range")

	flags.BoolVarP(&f.values.Verbose, "verbose", "v", false, "verbose execution")
	flags.BoolVarP(&f.values.Progress, "progress", "P", false, "show progress during work")
	flags.BoolVar(&f.summary, "summary", false, "print a summary of the differences at the end")
	group(groupCommon, "verbose", "progress", "summary")

	flags.StringVar(&f.configPath, "config", "", "path to config file")
	flags.BoolVar(&f.noConfig, "no-config", false, "ignore all config files")
	group(groupConfig, "config", "no-config")
}

// cliConfig builds the CLI layer of the configuration from the flags that
// were set on the command line.
func (f *rootFlags) cliConfig(flags *pflag.FlagSet) (*config.Config, error) {
	cfg := f.values.Clone()

	modes := []bool{f.hex, f.formatted, f.unformatted, f.vertical}
	switch lo.Count(modes, true) {
	case 0:
		cfg.Mode = ""
	case 1:
		cfg.Mode = modeNames[lo.IndexOf(modes, true)]
	default:
		return nil, apperr.User(appName, "specify only one of {--hex, --formatted, --unformatted, --vertical}")
	}

	if !flags.Changed("min-match") {
		cfg.MinMatch = 0
	} else if cfg.MinMatch < 1 {
		return nil, apperr.User(appName, "--min-match must be at least 1 (was %d)", cfg.MinMatch)
	}

	if !flags.Changed("tab-size") {
		cfg.TabSize = 0
	} else if cfg.TabSize < 1 {
		return nil, apperr.User(appName, "--tab-size must be at least 1 (was %d)", cfg.TabSize)
	}

	if cfg.Width < 0 {
		return nil, apperr.User(appName, "--width must not be negative (was %d)", cfg.Width)
	}
	if cfg.BytesPerLine < 0 {
		return nil, apperr.User(appName, "--bytes-per-line must not be negative (was %d)", cfg.BytesPerLine)
	}

	if !flags.Changed("color") {
		cfg.Color = ""
	}
	if f.noColor {
		cfg.Color = config.ColorNever
	}

	if f.rangeAll {
		cfg.Range = config.KindSwitches{Match: true, Deletion: true, Insertion: true, Substitution: true}
	}

	return cfg, nil
}
