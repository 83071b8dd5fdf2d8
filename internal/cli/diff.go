package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/qdiff/internal/apperr"
	"github.com/yaklabco/qdiff/internal/configloader"
	"github.com/yaklabco/qdiff/internal/logging"
	"github.com/yaklabco/qdiff/internal/ui/pretty"
	"github.com/yaklabco/qdiff/pkg/bindiff"
	"github.com/yaklabco/qdiff/pkg/bytesource"
	"github.com/yaklabco/qdiff/pkg/config"
	"github.com/yaklabco/qdiff/pkg/render"
	"github.com/yaklabco/qdiff/pkg/resync"
	"github.com/yaklabco/qdiff/pkg/sniff"
)

// exactFiles requires the two input paths.
func exactFiles(_ *cobra.Command, args []string) error {
	if len(args) != 2 {
		return apperr.User(appName, "need two files to compare, try '--help' for more information")
	}
	return nil
}

// flagError classifies flag parsing failures as usage errors.
func flagError(_ *cobra.Command, err error) error {
	return apperr.New(appName, apperr.KindUser, err)
}

func runDiff(cmd *cobra.Command, args []string, flags *rootFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cliCfg, err := flags.cliConfig(cmd.Flags())
	if err != nil {
		return err
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		ExplicitPath: flags.configPath,
		NoConfig:     flags.noConfig,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return apperr.New(appName, apperr.KindConfig, fmt.Errorf("load configuration: %w", err))
	}
	cfg := loadResult.Config

	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
	ctx = logging.WithLogger(ctx, logger)

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldPaths, loadResult.LoadedFrom)
	}
	logger.Debug("configuration resolved",
		logging.FieldMode, cfg.Mode,
		logging.FieldMinMatch, cfg.MinMatch,
		logging.FieldHeuristics, !cfg.NoHeuristics,
	)

	s1, s2, err := openInputs(ctx, args[0], args[1], cfg.LargeFiles)
	if err != nil {
		return err
	}
	defer closeInput(ctx, s1)
	defer closeInput(ctx, s2)

	out := cmd.OutOrStdout()
	colorEnabled := pretty.IsColorEnabled(cfg.Color, out)
	styles := pretty.NewStyles(colorEnabled)

	if notice := emptyNotice(s1, s2); notice != "" {
		if _, err := io.WriteString(out, styles.FormatNotice(notice)); err != nil {
			return apperr.New(appName, apperr.KindIO, fmt.Errorf("write output: %w", err))
		}
		return nil
	}

	if err := describeInputs(ctx, s1, s2); err != nil {
		return classify(err)
	}

	renderer, err := render.New(out, s1, s2, renderOptions(cfg, out, colorEnabled))
	if err != nil {
		return classify(err)
	}
	if err := announceMode(ctx, renderer, cfg.Verbose); err != nil {
		return classify(err)
	}

	var meter *resync.Meter
	if cfg.Progress {
		meter = resync.NewMeter(cmd.ErrOrStderr())
	}

	start := time.Now()
	result, err := bindiff.Run(ctx, s1, s2, renderer, bindiff.Options{
		MinMatch:   int64(cfg.MinMatch),
		Heuristics: !cfg.NoHeuristics,
		ByteByByte: cfg.ByteByByte,
		StopOnEOF:  cfg.StopOnEOF,
		Meter:      meter,
	})
	if err != nil {
		// Keep what was already rendered before reporting.
		if flushErr := renderer.Flush(); flushErr != nil {
			logger.Debug("flush partial output", logging.FieldError, flushErr)
		}
		return classify(err)
	}

	if result.Uncompared > 0 {
		ended, longer := s1.Name(), s2.Name()
		if result.UncomparedSide == 1 {
			ended, longer = longer, ended
		}
		if err := renderer.Note("eof in file '%s', %d uncompared bytes follow in file '%s'",
			ended, result.Uncompared, longer); err != nil {
			return classify(err)
		}
	}

	if err := renderer.Flush(); err != nil {
		return classify(err)
	}

	logger.Debug("comparison finished",
		logging.FieldEvents, result.Events,
		logging.FieldUncompared, result.Uncompared,
		logging.FieldElapsed, time.Since(start).Round(time.Millisecond),
	)

	if flags.summary {
		if _, err := io.WriteString(out, styles.FormatSummary(result.Stats, s1.Name(), s2.Name())); err != nil {
			return apperr.New(appName, apperr.KindIO, fmt.Errorf("write output: %w", err))
		}
	}

	return nil
}

// newLogger returns the run's logger. Verbose runs log at debug level.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := "info"
	if verbose {
		level = "debug"
	}
	return logging.NewWithWriter(w, level)
}

// openInputs opens both files with the cache geometry chosen by largeFiles.
func openInputs(ctx context.Context, path1, path2 string, largeFiles bool) (*bytesource.Source, *bytesource.Source, error) {
	slots, slotSize := bytesource.DefaultSlots, bytesource.DefaultSlotSize
	if largeFiles {
		slots, slotSize = bytesource.LargeSlots, bytesource.LargeSlotSize
	}

	s1, err := openInput(ctx, path1, slots, slotSize)
	if err != nil {
		return nil, nil, err
	}
	s2, err := openInput(ctx, path2, slots, slotSize)
	if err != nil {
		closeInput(ctx, s1)
		return nil, nil, err
	}
	return s1, s2, nil
}

func openInput(ctx context.Context, path string, slots, slotSize int) (*bytesource.Source, error) {
	logger := logging.FromContext(logging.WithFields(ctx, logging.FieldFile, path))

	src, err := bytesource.Open(path, slots, slotSize)
	if err != nil {
		return nil, classifyOpen(err)
	}

	if src.Probed() {
		logger.Warn("input is not a regular file, size was probed",
			logging.FieldSize, humanize.IBytes(uint64(src.Size())),
		)
	}
	return src, nil
}

func closeInput(ctx context.Context, src *bytesource.Source) {
	if err := src.Close(); err != nil {
		logging.FromContext(ctx).Warn("close input", logging.FieldFile, src.Name(), logging.FieldError, err)
	}
}

// emptyNotice returns the message printed instead of a comparison when
// either input is empty.
func emptyNotice(s1, s2 *bytesource.Source) string {
	switch {
	case s1.Size() == 0 && s2.Size() == 0:
		return "both files are empty, nothing to compare"
	case s1.Size() == 0:
		return fmt.Sprintf("file '%s' is empty, nothing to compare", s1.Name())
	case s2.Size() == 0:
		return fmt.Sprintf("file '%s' is empty, nothing to compare", s2.Name())
	default:
		return ""
	}
}

// describeInputs logs what each input looks like. It reads only when debug
// logging is on.
func describeInputs(ctx context.Context, sources ...*bytesource.Source) (err error) {
	defer bytesource.Guard(&err)

	logger := logging.FromContext(ctx)
	if logger.GetLevel() > log.DebugLevel {
		return nil
	}

	for _, src := range sources {
		report := sniff.Describe(src.Name(), sniff.Head(src, sniff.HeadSize))
		logger.Debug("input",
			logging.FieldFile, src.Name(),
			logging.FieldSize, humanize.IBytes(uint64(src.Size())),
			logging.FieldKind, report.Kind,
			logging.FieldLanguage, report.Language,
			logging.FieldMIME, report.MIME,
		)
	}
	return nil
}

// announceMode prints the verbose mode lines ahead of the diff.
func announceMode(ctx context.Context, r *render.Renderer, verbose bool) error {
	mode := r.Mode()
	if sample := r.Sample(); sample != nil {
		logging.FromContext(ctx).Debug("automatic mode",
			logging.FieldMode, mode,
			logging.FieldReason, sample.Reason(),
		)
		if verbose {
			if err := r.Note("%s ==> %s mode", sample.Reason(), mode); err != nil {
				return err
			}
		}
	}
	if !verbose {
		return nil
	}
	return r.Note("printing %s (%s mode)", mode.Description(), mode)
}

// renderOptions maps the resolved configuration onto renderer options.
func renderOptions(cfg *config.Config, out io.Writer, colorEnabled bool) render.Options {
	opts := render.DefaultOptions()

	// Validated by the loader.
	opts.Mode, _ = render.ParseMode(cfg.Mode)

	opts.Width = cfg.Width
	if opts.Width == 0 {
		opts.Width = terminalWidth(out)
	}
	opts.BytesPerLine = cfg.BytesPerLine
	opts.TabSize = cfg.TabSize
	opts.LineNumbers = cfg.LineNumbers
	opts.NoLineBreak = cfg.NoLineBreak
	opts.ShowLFAndTab = cfg.ShowLFAndTab
	opts.ShowSpace = cfg.ShowSpace
	opts.ControlHex = cfg.ControlHex
	opts.AlignmentMarks = cfg.AlignmentMarks
	opts.Unprintable = cfg.Unprintable
	opts.Palette = render.SelectPalette(colorEnabled, cfg.AltColors)
	opts.Hide = kindSet(cfg.Hide)
	opts.Range = kindSet(cfg.Range)

	return opts
}

func kindSet(k config.KindSwitches) render.KindSet {
	var kinds []bindiff.Kind
	if k.Match {
		kinds = append(kinds, bindiff.KindMatch)
	}
	if k.Deletion {
		kinds = append(kinds, bindiff.KindDelete)
	}
	if k.Insertion {
		kinds = append(kinds, bindiff.KindInsert)
	}
	if k.Substitution {
		kinds = append(kinds, bindiff.KindSubstitute)
	}
	return render.KindsOf(kinds...)
}

// terminalWidth returns the width of the terminal behind w, or the default
// width when w is not a terminal.
func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return render.DefaultWidth
}

// classifyOpen maps a failure to open an input to an error kind. A missing
// or unreadable file is the user's to fix; a failed size probe is I/O.
func classifyOpen(err error) error {
	if errors.Is(err, bytesource.ErrNotFound) || errors.Is(err, bytesource.ErrOpen) {
		return apperr.New(appName, apperr.KindUser, err)
	}
	return apperr.New(appName, apperr.KindIO, err)
}

// classify maps a failure of the diff pipeline to an error kind.
func classify(err error) error {
	switch {
	case errors.Is(err, render.ErrInvalidOptions), errors.Is(err, bindiff.ErrMinMatch):
		return apperr.New(appName, apperr.KindUser, err)
	case errors.Is(err, bindiff.ErrInvariant), errors.Is(err, bytesource.ErrIndexOutOfRange):
		return apperr.New(appName, apperr.KindInternal, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		// Byte source faults and failed writes to the output.
		return apperr.New(appName, apperr.KindIO, err)
	}
}
