// Package render turns diff events into side-by-side text.
//
// Hex, formatted and unformatted output share one line-buffer renderer that
// is parameterized by a glyph policy. Vertical output prints one byte pair
// per line.
package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/yaklabco/qdiff/pkg/bindiff"
	"github.com/yaklabco/qdiff/pkg/bytesource"
	"github.com/yaklabco/qdiff/pkg/resync"
)

// bufWriterSize is the buffer size for the output writer (64 KiB).
const bufWriterSize = 64 * 1024

// prefixWidth is the width of an "%08X:" or "%8d:" line prefix.
const prefixWidth = 9

var blankPrefix = strings.Repeat(" ", prefixWidth)

// side is the line state of one input.
type side struct {
	buf        []byte
	col        int
	color      bindiff.Kind
	colored    bool
	needPrefix bool
	line       int
}

func (s *side) reset() {
	s.buf = s.buf[:0]
	s.col = 0
	s.colored = false
	s.needPrefix = true
}

// Renderer writes diff events for two streams. It reads the bytes it prints
// directly from the streams and tracks its own cursors.
type Renderer struct {
	out    *bufio.Writer
	s1, s2 resync.Stream
	o1, o2 int64

	opts   Options
	mode   Mode
	sample *Sample
	pal    Palette

	policy       glyphPolicy
	prefixed     bool
	half         int
	bytesPerLine int
	maxPerLine   int

	left, right side
}

// Compile-time interface check.
var _ bindiff.Sink = (*Renderer)(nil)

// New creates a Renderer writing to out. When opts.Mode is ModeAuto the
// leading bytes of both streams are sampled to pick a mode.
func New(out io.Writer, s1, s2 resync.Stream, opts Options) (_ *Renderer, err error) {
	defer bytesource.Guard(&err)

	if opts.Mode == "" {
		opts.Mode = ModeAuto
	}
	if !opts.Mode.IsValid() {
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidOptions, opts.Mode)
	}

	r := &Renderer{
		out:  bufio.NewWriterSize(out, bufWriterSize),
		s1:   s1,
		s2:   s2,
		mode: opts.Mode,
		pal:  opts.Palette,
	}

	if r.mode == ModeAuto {
		sample := SampleStreams(s1, s2)
		r.sample = &sample
		r.mode = sample.Mode()
	}

	if err := opts.validate(r.mode); err != nil {
		return nil, err
	}

	opts.Width = max(opts.Width, MinWidth)
	if r.mode != ModeFormatted {
		opts.ShowLFAndTab = true
	}
	r.opts = opts
	r.half = (opts.Width - 1) / 2

	switch r.mode {
	case ModeHex:
		r.maxPerLine = (r.half - 8) / 3
		r.policy = hexGlyphs{alignmentMarks: opts.AlignmentMarks}
	case ModeFormatted:
		r.maxPerLine = r.half
		if opts.LineNumbers {
			r.maxPerLine -= prefixWidth
		}
	case ModeUnformatted:
		r.maxPerLine = r.half - prefixWidth
	}
	if r.mode == ModeFormatted || r.mode == ModeUnformatted {
		r.policy = asciiGlyphs{
			tabSize:      opts.TabSize,
			showLFAndTab: opts.ShowLFAndTab,
			showSpace:    opts.ShowSpace,
			controlHex:   opts.ControlHex,
			unprintable:  opts.Unprintable,
		}
	}
	r.prefixed = r.mode != ModeFormatted || opts.LineNumbers

	r.bytesPerLine = opts.BytesPerLine
	if r.bytesPerLine <= 0 {
		r.bytesPerLine = r.maxPerLine
	}

	r.left.reset()
	r.right.reset()
	r.left.line, r.right.line = 1, 1

	return r, nil
}

// Mode returns the display mode in use.
func (r *Renderer) Mode() Mode { return r.mode }

// Sample returns the auto-detection sample, or nil if the mode was explicit.
func (r *Renderer) Sample() *Sample { return r.sample }

// Render implements bindiff.Sink.
func (r *Renderer) Render(ev bindiff.Event) (err error) {
	defer bytesource.Guard(&err)

	d1, d2 := ev.Advance()
	defer func() {
		r.o1 += d1
		r.o2 += d2
	}()

	switch {
	case r.opts.Hide.Has(ev.Kind):
		if r.mode == ModeVertical {
			return nil
		}
		return r.flushLine()
	case r.opts.Range.Has(ev.Kind):
		if r.mode == ModeVertical {
			return r.verticalRange(ev)
		}
		return r.rangeLine(ev)
	case r.mode == ModeVertical:
		return r.vertical(ev)
	default:
		return r.bytes(ev)
	}
}

// Flush writes any partial line and flushes the output.
func (r *Renderer) Flush() error {
	if err := r.flushLine(); err != nil {
		return err
	}
	if err := r.out.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}

// Note writes an informational line after the pending output.
func (r *Renderer) Note(format string, args ...any) error {
	if err := r.flushLine(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(r.out, format+"\n", args...)
	return err
}

// bytes renders every byte of ev as a glyph pair.
func (r *Renderer) bytes(ev bindiff.Event) error {
	o1, o2 := r.o1, r.o2
	put := func(off1, off2 int64) error {
		return r.pair(off1, off2, ev.Kind)
	}

	switch ev.Kind {
	case bindiff.KindMatch:
		for k := range ev.N {
			if err := put(o1+k, o2+k); err != nil {
				return err
			}
		}
	case bindiff.KindDelete:
		for k := range ev.N {
			if err := put(o1+k, -1); err != nil {
				return err
			}
		}
	case bindiff.KindInsert:
		for k := range ev.N {
			if err := put(-1, o2+k); err != nil {
				return err
			}
		}
	case bindiff.KindSubstitute:
		for k := range ev.N {
			if err := put(o1+k, o2+k); err != nil {
				return err
			}
		}
		for k := range ev.Del {
			if err := put(o1+ev.N+k, -1); err != nil {
				return err
			}
		}
		for k := range ev.Ins {
			if err := put(-1, o2+ev.N+k); err != nil {
				return err
			}
		}
	}
	return nil
}

// pair places one byte pair. A negative offset marks a missing side.
func (r *Renderer) pair(off1, off2 int64, kind bindiff.Kind) error {
	var b1, b2 byte
	if off1 >= 0 {
		b1 = r.s1.ByteAt(off1)
	}
	if off2 >= 0 {
		b2 = r.s2.ByteAt(off2)
	}

	g1, g2, width := r.glyphs(off1, b1, off2, b2)
	if r.left.col > 0 && r.left.col+width > r.bytesPerLine && !r.opts.NoLineBreak {
		if err := r.flushLine(); err != nil {
			return err
		}
		g1, g2, width = r.glyphs(off1, b1, off2, b2)
	}

	if r.left.col > r.maxPerLine {
		r.left.col += width
		r.right.col += width
	} else {
		r.place(&r.left, off1, g1, width, kind)
		r.place(&r.right, off2, g2, width, kind)
	}

	if r.mode == ModeFormatted {
		nl1 := off1 >= 0 && b1 == '\n'
		nl2 := off2 >= 0 && b2 == '\n'
		if nl1 {
			r.left.line++
		}
		if nl2 {
			r.right.line++
		}
		if nl1 || nl2 {
			return r.breakLine()
		}
	}
	return nil
}

// glyphs returns the glyphs of a pair at the current column and the width
// both sides are padded to.
func (r *Renderer) glyphs(off1 int64, b1 byte, off2 int64, b2 byte) (glyph, glyph, int) {
	var g1, g2 glyph
	if off1 >= 0 {
		g1 = r.policy.glyph(off1, b1, r.left.col)
	}
	if off2 >= 0 {
		g2 = r.policy.glyph(off2, b2, r.right.col)
	}
	return g1, g2, max(g1.width, g2.width)
}

// place appends a glyph, or a blank when off is negative, to s.
func (r *Renderer) place(s *side, off int64, g glyph, width int, kind bindiff.Kind) {
	present := off >= 0

	if r.prefixed {
		switch {
		case s.col == 0 && present:
			s.buf = append(s.buf, r.prefix(off, s.line)...)
			s.needPrefix = false
		case s.col == 0:
			s.buf = append(s.buf, blankPrefix...)
		case present && s.needPrefix:
			copy(s.buf[:prefixWidth], r.prefix(off, s.line))
			s.needPrefix = false
		}
	}

	if !present {
		s.buf = append(s.buf, r.policy.blank(s.col, width)...)
		s.col += width
		return
	}

	if !s.colored || s.color != kind {
		s.buf = append(s.buf, r.pal.Color(kind)...)
		s.color, s.colored = kind, true
	}
	s.buf = append(s.buf, g.text...)
	for range width - g.width {
		s.buf = append(s.buf, ' ')
	}
	s.col += width
}

func (r *Renderer) prefix(off int64, line int) string {
	if r.mode == ModeFormatted {
		return fmt.Sprintf("%8d:", line)
	}
	return fmt.Sprintf("%08X:", off)
}

// flushLine prints the buffered line pair, if any, and starts a new one.
func (r *Renderer) flushLine() error {
	if r.left.col == 0 && r.right.col == 0 {
		r.left.reset()
		r.right.reset()
		return nil
	}
	return r.breakLine()
}

// breakLine prints the buffered line pair even when it holds no columns, so
// a line consisting of a newline alone still shows up, and starts a new one.
func (r *Renderer) breakLine() error {
	err := r.splitLine(string(r.left.buf), string(r.right.buf))
	r.left.reset()
	r.right.reset()
	return err
}

// splitLine prints two halves fitted to the half width around the separator.
func (r *Renderer) splitLine(a, b string) error {
	line := r.fit(a) + r.pal.Separator + "|" + r.pal.Normal + r.fit(b) + "\n"
	if _, err := r.out.WriteString(line); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// fit pads or truncates s to the half width, ignoring escape sequences.
func (r *Renderer) fit(s string) string {
	w := ansi.StringWidth(s)
	switch {
	case w > r.half:
		s = ansi.Truncate(s, r.half, "")
	case w < r.half:
		s += strings.Repeat(" ", r.half-w)
	}
	if strings.IndexByte(s, '\x1b') >= 0 {
		s += r.pal.Normal
	}
	return s
}

// rangeLine prints one summary line for ev.
func (r *Renderer) rangeLine(ev bindiff.Event) error {
	if err := r.flushLine(); err != nil {
		return err
	}

	color := r.pal.Color(ev.Kind)
	summary := func(off, n int64, what string) string {
		return fmt.Sprintf("%08X: %s%10d bytes %s%s", off, color, n, what, r.pal.Normal)
	}

	switch ev.Kind {
	case bindiff.KindMatch:
		return r.splitLine(summary(r.o1, ev.N, "match"), summary(r.o2, ev.N, "match"))
	case bindiff.KindSubstitute:
		return r.splitLine(summary(r.o1, ev.N+ev.Del, "substituted"), summary(r.o2, ev.N+ev.Ins, "substituted"))
	case bindiff.KindDelete:
		return r.splitLine(summary(r.o1, ev.N, "deleted"), "")
	case bindiff.KindInsert:
		return r.splitLine("", summary(r.o2, ev.N, "inserted"))
	}
	return nil
}
