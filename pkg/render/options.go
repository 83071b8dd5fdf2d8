package render

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/yaklabco/qdiff/pkg/bindiff"
)

// ErrInvalidOptions is returned for option combinations that make no sense
// in the selected mode.
var ErrInvalidOptions = errors.New("invalid output options")

// Width limits.
const (
	DefaultWidth = 80
	MinWidth     = 42
)

// KindSet is a set of event kinds.
type KindSet uint8

// AllKinds contains every event kind.
const AllKinds = KindSet(1<<bindiff.KindMatch | 1<<bindiff.KindDelete | 1<<bindiff.KindInsert | 1<<bindiff.KindSubstitute)

// KindsOf returns the set holding kinds.
func KindsOf(kinds ...bindiff.Kind) KindSet {
	var s KindSet
	for _, k := range kinds {
		s |= 1 << k
	}
	return s
}

// Has reports whether k is in s.
func (s KindSet) Has(k bindiff.Kind) bool {
	return s&(1<<k) != 0
}

// Options configures a Renderer.
type Options struct {
	// Mode selects the display mode. ModeAuto samples both inputs.
	Mode Mode

	// Width is the total output width. Values below MinWidth are raised.
	Width int

	// BytesPerLine limits the columns per side. Zero means as many as fit.
	BytesPerLine int

	// TabSize is the tab stop distance in formatted mode.
	TabSize int

	LineNumbers    bool
	NoLineBreak    bool
	ShowLFAndTab   bool
	ShowSpace      bool
	ControlHex     bool
	AlignmentMarks bool

	// Unprintable replaces every non-printable byte when non-empty. It must
	// be a single character.
	Unprintable string

	Palette Palette

	// Hide lists kinds that are skipped. Range lists kinds printed as one
	// summary line per event.
	Hide  KindSet
	Range KindSet
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Mode:    ModeAuto,
		Width:   DefaultWidth,
		TabSize: 8,
		Palette: DefaultPalette,
	}
}

// validate checks opts against the resolved mode.
func (o Options) validate(mode Mode) error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidOptions}, args...)...))
	}

	if !mode.IsValid() || mode == ModeAuto {
		add("unknown mode %q", mode)
	}
	if utf8.RuneCountInString(o.Unprintable) > 1 {
		add("unprintable replacement should be a single character (was %q)", o.Unprintable)
	}
	if o.TabSize < 1 {
		add("tab size must be at least 1 (was %d)", o.TabSize)
	}
	if o.Hide&AllKinds == AllKinds {
		add("hiding every kind of difference leaves nothing to print")
	}

	if mode == ModeHex {
		if o.Unprintable != "" {
			add("unprintable replacement is not useful in hex mode")
		}
		if o.ShowSpace {
			add("show-space is not useful in hex mode")
		}
		if o.ControlHex {
			add("control-hex is not useful in hex mode")
		}
	}
	if mode != ModeFormatted {
		if o.LineNumbers {
			add("line numbers only make sense in formatted mode")
		}
		if o.NoLineBreak {
			add("no-line-break only makes sense in formatted mode")
		}
	}

	return errors.Join(errs...)
}
