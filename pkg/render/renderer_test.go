package render_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/qdiff/pkg/bindiff"
	"github.com/yaklabco/qdiff/pkg/bytesource"
	"github.com/yaklabco/qdiff/pkg/render"
)

type mem []byte

func (m mem) ByteAt(i int64) byte { return m[i] }
func (m mem) Size() int64         { return int64(len(m)) }

// plain returns options without color for the given mode and width.
func plain(mode render.Mode, width int) render.Options {
	opts := render.DefaultOptions()
	opts.Mode = mode
	opts.Width = width
	opts.Palette = render.NoColorPalette
	return opts
}

// renderAll feeds events to a new renderer and returns everything written.
func renderAll(t *testing.T, a, b string, opts render.Options, events ...bindiff.Event) string {
	t.Helper()

	var out strings.Builder
	r, err := render.New(&out, mem(a), mem(b), opts)
	require.NoError(t, err)
	for _, ev := range events {
		require.NoError(t, r.Render(ev))
	}
	require.NoError(t, r.Flush())
	return out.String()
}

// row builds one uncolored output line.
func row(left, right string, half int) string {
	return fmt.Sprintf("%-*s|%-*s\n", half, left, half, right)
}

func TestHex_MatchLine(t *testing.T) {
	t.Parallel()

	got := renderAll(t, "ABC", "ABC", plain(render.ModeHex, 80), bindiff.Match(3))
	assert.Equal(t, row("00000000:41 42 43", "00000000:41 42 43", 39), got)
}

func TestHex_WrapsAtBytesPerLine(t *testing.T) {
	t.Parallel()

	data := string([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11})
	got := renderAll(t, data, data, plain(render.ModeHex, 80), bindiff.Match(12))

	want := row("00000000:00 01 02 03 04 05 06 07 08 09", "00000000:00 01 02 03 04 05 06 07 08 09", 39) +
		row("0000000A:0A 0B", "0000000A:0A 0B", 39)
	assert.Equal(t, want, got)

	opts := plain(render.ModeHex, 80)
	opts.BytesPerLine = 4
	got = renderAll(t, data[:6], data[:6], opts, bindiff.Match(6))
	want = row("00000000:00 01 02 03", "00000000:00 01 02 03", 39) +
		row("00000004:04 05", "00000004:04 05", 39)
	assert.Equal(t, want, got)
}

func TestHex_MissingSide(t *testing.T) {
	t.Parallel()

	got := renderAll(t, "AB", "ABxy", plain(render.ModeHex, 80), bindiff.Match(2), bindiff.Insert(2))
	assert.Equal(t, row("00000000:41 42", "00000000:41 42 78 79", 39), got)

	// The address of a side that starts blank is filled in by its first byte.
	got = renderAll(t, "D", "I", plain(render.ModeHex, 80), bindiff.Insert(1), bindiff.Delete(1))
	assert.Equal(t, row("00000000:   44", "00000000:49", 39), got)
}

func TestHex_AlignmentMarks(t *testing.T) {
	t.Parallel()

	data := string([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8})
	opts := plain(render.ModeHex, 80)
	opts.AlignmentMarks = true

	got := renderAll(t, data, data, opts, bindiff.Match(9))
	line := "00000000:00 01 02 03-04 05 06 07+08"
	assert.Equal(t, row(line, line, 39), got)
}

func TestHex_Colors(t *testing.T) {
	t.Parallel()

	opts := plain(render.ModeHex, 80)
	opts.Palette = render.DefaultPalette

	got := renderAll(t, "AB", "AX", opts, bindiff.Match(1), bindiff.Substitute(1, 0, 0))

	p := render.DefaultPalette
	left := "00000000:" + p.Match + "41" + p.Substitute + " 42" + strings.Repeat(" ", 39-14) + p.Normal
	right := "00000000:" + p.Match + "41" + p.Substitute + " 58" + strings.Repeat(" ", 39-14) + p.Normal
	assert.Equal(t, left+p.Separator+"|"+p.Normal+right+"\n", got)
}

func TestFormatted_BreaksOnNewline(t *testing.T) {
	t.Parallel()

	got := renderAll(t, "ab\ncd", "ab\ncd", plain(render.ModeFormatted, 42), bindiff.Match(5))
	assert.Equal(t, row("ab", "ab", 20)+row("cd", "cd", 20), got)

	opts := plain(render.ModeFormatted, 42)
	opts.LineNumbers = true
	got = renderAll(t, "ab\ncd", "ab\ncd", opts, bindiff.Match(5))
	assert.Equal(t, row("       1:ab", "       1:ab", 20)+row("       2:cd", "       2:cd", 20), got)
}

func TestFormatted_BlankLines(t *testing.T) {
	t.Parallel()

	got := renderAll(t, "a\n\nb\n", "a\n\nb\n", plain(render.ModeFormatted, 42), bindiff.Match(5))
	assert.Equal(t, row("a", "a", 20)+row("", "", 20)+row("b", "b", 20), got)

	opts := plain(render.ModeFormatted, 42)
	opts.LineNumbers = true
	got = renderAll(t, "a\n\nb\n", "a\n\nb\n", opts, bindiff.Match(5))
	assert.Equal(t, row("       1:a", "       1:a", 20)+
		row("       2:", "       2:", 20)+
		row("       3:b", "       3:b", 20), got)
}

func TestFormatted_DeletedBlankLine(t *testing.T) {
	t.Parallel()

	opts := plain(render.ModeFormatted, 42)
	opts.LineNumbers = true

	got := renderAll(t, "a\n\nb", "a\nb", opts, bindiff.Match(2), bindiff.Delete(1), bindiff.Match(1))
	assert.Equal(t, row("       1:a", "       1:a", 20)+
		row("       2:", "", 20)+
		row("       3:b", "       2:b", 20), got)

	got = renderAll(t, "a\n\nb", "a\nb", plain(render.ModeFormatted, 42),
		bindiff.Match(2), bindiff.Delete(1), bindiff.Match(1))
	assert.Equal(t, 3, strings.Count(got, "\n"))
}

func TestFormatted_Tabs(t *testing.T) {
	t.Parallel()

	opts := plain(render.ModeFormatted, 42)
	opts.TabSize = 4

	got := renderAll(t, "a\tb", "a\tb", opts, bindiff.Match(3))
	assert.Equal(t, row("a   b", "a   b", 20), got)

	opts.ShowLFAndTab = true
	got = renderAll(t, "a\tb", "a\tb", opts, bindiff.Match(3))
	assert.Equal(t, row("a<HT>b", "a<HT>b", 20), got)
}

func TestFormatted_WrapsLongLines(t *testing.T) {
	t.Parallel()

	opts := plain(render.ModeFormatted, 42)
	opts.BytesPerLine = 4

	got := renderAll(t, "abcdef", "abcdef", opts, bindiff.Match(6))
	assert.Equal(t, row("abcd", "abcd", 20)+row("ef", "ef", 20), got)

	opts.NoLineBreak = true
	got = renderAll(t, "abcdef", "abcdef", opts, bindiff.Match(6))
	assert.Equal(t, row("abcdef", "abcdef", 20), got)
}

func TestUnformatted_PadsNarrowerGlyph(t *testing.T) {
	t.Parallel()

	got := renderAll(t, "A", "\x01", plain(render.ModeUnformatted, 80), bindiff.Substitute(1, 0, 0))
	assert.Equal(t, row("00000000:A    ", "00000000:<SOH>", 39), got)
}

func TestUnformatted_GlyphVariants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		data  string
		setup func(*render.Options)
		want  string
	}{
		{"newline marker", "a\n", nil, "00000000:a<LF>"},
		{"high byte", "\xff", nil, "00000000:<xFF>"},
		{"delete char", "\x7f", nil, "00000000:<DEL>"},
		{"space", " x", nil, "00000000: x"},
		{"shown space", " x", func(o *render.Options) { o.ShowSpace = true }, "00000000:<SPC>x"},
		{"control hex", "\x1b", func(o *render.Options) { o.ControlHex = true }, "00000000:<x1B>"},
		{"unprintable", "\x1b\xffa", func(o *render.Options) { o.Unprintable = "." }, "00000000:..a"},
		{"unprintable rune", "\x00", func(o *render.Options) { o.Unprintable = "·" }, "00000000:·"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := plain(render.ModeUnformatted, 80)
			if tt.setup != nil {
				tt.setup(&opts)
			}
			got := renderAll(t, tt.data, tt.data, opts, bindiff.Match(int64(len(tt.data))))
			assert.Equal(t, row(tt.want, tt.want, 39), got)
		})
	}
}

func TestRange_SummaryLines(t *testing.T) {
	t.Parallel()

	opts := plain(render.ModeHex, 80)
	opts.Range = render.AllKinds

	got := renderAll(t, "aaQQbb", "aaXYZbbI", opts,
		bindiff.Match(2), bindiff.Substitute(2, 1, 0), bindiff.Match(2), bindiff.Insert(1))

	summary := func(off, n int, what string) string {
		return fmt.Sprintf("%08X: %10d bytes %s", off, n, what)
	}
	want := row(summary(0, 2, "match"), summary(0, 2, "match"), 39) +
		row(summary(2, 2, "substituted"), summary(2, 3, "substituted"), 39) +
		row(summary(4, 2, "match"), summary(5, 2, "match"), 39) +
		row("", summary(7, 1, "inserted"), 39)
	assert.Equal(t, want, got)
}

func TestRange_DeletionIsLeftOnly(t *testing.T) {
	t.Parallel()

	opts := plain(render.ModeUnformatted, 80)
	opts.Range = render.KindsOf(bindiff.KindDelete)

	got := renderAll(t, "abXYZ", "ab", opts, bindiff.Match(2), bindiff.Delete(3))
	want := row("00000000:ab", "00000000:ab", 39) +
		row(fmt.Sprintf("%08X: %10d bytes deleted", 2, 3), "", 39)
	assert.Equal(t, want, got)
}

func TestHide_AdvancesCursors(t *testing.T) {
	t.Parallel()

	opts := plain(render.ModeHex, 80)
	opts.Hide = render.KindsOf(bindiff.KindMatch)

	got := renderAll(t, "abcD", "abc", opts, bindiff.Match(3), bindiff.Delete(1))
	assert.Equal(t, row("00000003:44", "", 39), got)
}

func TestVertical(t *testing.T) {
	t.Parallel()

	got := renderAll(t, "A\n", "AB", plain(render.ModeVertical, 80),
		bindiff.Match(1), bindiff.Delete(1), bindiff.Insert(1))

	want := "0x00000000 (         0): 'A'  65 0x41   0x41  65 'A' :(         0) 0x00000000\n" +
		"0x00000001 (         1): LF   10 0x0A <\n" +
		strings.Repeat(" ", 38) + "> 0x42  66 'B' :(         1) 0x00000001\n"
	assert.Equal(t, want, got)
}

func TestVertical_SubstitutionAndRange(t *testing.T) {
	t.Parallel()

	got := renderAll(t, "ab", "x", plain(render.ModeVertical, 80), bindiff.Substitute(1, 0, 1))
	want := "0x00000000 (         0): 'a'  97 0x61 ! 0x78 120 'x' :(         0) 0x00000000\n" +
		"0x00000001 (         1): 'b'  98 0x62 !\n"
	assert.Equal(t, want, got)

	opts := plain(render.ModeVertical, 80)
	opts.Range = render.AllKinds
	got = renderAll(t, "ab", "x", opts, bindiff.Substitute(1, 0, 1))
	assert.Equal(t, "0x00000000 (         0):          2 subst          1 :(         0) 0x00000000\n", got)
}

func TestNew_AutoModeSamplesBothFiles(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("abc\n", 25)
	binary := strings.Repeat("\xff", 100)

	r, err := render.New(&strings.Builder{}, mem(text), mem(binary), render.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, render.ModeHex, r.Mode())
	require.NotNil(t, r.Sample())
	assert.Equal(t, 200, r.Sample().Bytes)
	assert.InDelta(t, 50.0, r.Sample().NonASCII, 0.001)

	r, err = render.New(&strings.Builder{}, mem(text), mem(text), render.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, render.ModeFormatted, r.Mode())

	r, err = render.New(&strings.Builder{}, mem("abcdef"), mem("abcdef"), render.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, render.ModeUnformatted, r.Mode())

	r, err = render.New(&strings.Builder{}, mem(text), mem(text), plain(render.ModeHex, 80))
	require.NoError(t, err)
	assert.Nil(t, r.Sample())
}

func TestSample_Mode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		sample render.Sample
		want   render.Mode
	}{
		{"binary", render.Sample{Bytes: 10, NonASCII: 10.5}, render.ModeHex},
		{"no newlines", render.Sample{Bytes: 10, Newline: 0.5}, render.ModeUnformatted},
		{"text", render.Sample{Bytes: 10, Newline: 1}, render.ModeFormatted},
		{"empty", render.SampleStreams(mem(""), mem("")), render.ModeUnformatted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.sample.Mode())
			assert.Contains(t, tt.sample.Reason(), "files contain")
		})
	}
}

func TestNew_RejectsInvalidOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		mode  render.Mode
		setup func(*render.Options)
	}{
		{"unprintable in hex", render.ModeHex, func(o *render.Options) { o.Unprintable = "." }},
		{"show space in hex", render.ModeHex, func(o *render.Options) { o.ShowSpace = true }},
		{"control hex in hex", render.ModeHex, func(o *render.Options) { o.ControlHex = true }},
		{"line numbers unformatted", render.ModeUnformatted, func(o *render.Options) { o.LineNumbers = true }},
		{"no line break vertical", render.ModeVertical, func(o *render.Options) { o.NoLineBreak = true }},
		{"long unprintable", render.ModeFormatted, func(o *render.Options) { o.Unprintable = "ab" }},
		{"hide everything", render.ModeFormatted, func(o *render.Options) { o.Hide = render.AllKinds }},
		{"unknown mode", render.Mode("sideways"), func(*render.Options) {}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := plain(tt.mode, 80)
			tt.setup(&opts)
			_, err := render.New(&strings.Builder{}, mem("a"), mem("a"), opts)
			require.ErrorIs(t, err, render.ErrInvalidOptions)
		})
	}
}

func TestRender_Idempotent(t *testing.T) {
	t.Parallel()

	a := "line one\nline two\n\x00\x01binary\xff"
	b := "line one\nline 2\n\x00binary\xfe"
	events := []bindiff.Event{
		bindiff.Match(14), bindiff.Substitute(1, 0, 2), bindiff.Match(2),
		bindiff.Delete(1), bindiff.Match(6), bindiff.Substitute(1, 0, 0),
	}

	opts := render.DefaultOptions()
	opts.Mode = render.ModeUnformatted
	first := renderAll(t, a, b, opts, events...)
	second := renderAll(t, a, b, opts, events...)
	assert.Equal(t, first, second)
}

// faulty fails every read.
type faulty struct{ mem }

func (faulty) ByteAt(i int64) byte {
	panic(&bytesource.FaultError{Name: "faulty", Offset: i, Err: bytesource.ErrShortRead})
}

func TestRender_FaultBecomesError(t *testing.T) {
	t.Parallel()

	r, err := render.New(&strings.Builder{}, faulty{mem("abc")}, mem("abc"), plain(render.ModeHex, 80))
	require.NoError(t, err)
	err = r.Render(bindiff.Match(3))
	require.ErrorIs(t, err, bytesource.ErrShortRead)

	_, err = render.New(&strings.Builder{}, faulty{mem("abc")}, mem("abc"), render.DefaultOptions())
	require.ErrorIs(t, err, bytesource.ErrShortRead)
}

type failingWriter struct{}

var errWrite = errors.New("disk full")

func (failingWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestFlush_ReportsWriteError(t *testing.T) {
	t.Parallel()

	r, err := render.New(failingWriter{}, mem("abc"), mem("abc"), plain(render.ModeHex, 80))
	require.NoError(t, err)
	require.NoError(t, r.Render(bindiff.Match(3)))
	require.ErrorIs(t, r.Flush(), errWrite)
}

func TestNote_FollowsPendingLine(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	r, err := render.New(&out, mem("ab"), mem("abcd"), plain(render.ModeHex, 80))
	require.NoError(t, err)
	require.NoError(t, r.Render(bindiff.Match(2)))
	require.NoError(t, r.Note("eof in file '%s'", "a"))
	require.NoError(t, r.Flush())

	assert.Equal(t, row("00000000:61 62", "00000000:61 62", 39)+"eof in file 'a'\n", out.String())
}

func TestSelectPalette(t *testing.T) {
	t.Parallel()

	assert.Equal(t, render.DefaultPalette, render.SelectPalette(true, false))
	assert.Equal(t, render.AltPalette, render.SelectPalette(true, true))
	assert.Equal(t, render.NoColorPalette, render.SelectPalette(false, true))
	assert.Equal(t, "alternate", render.AltPalette.Name())
	assert.Equal(t, render.AltPalette.Insert, render.AltPalette.Color(bindiff.KindInsert))
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	m, err := render.ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, render.ModeAuto, m)

	m, err = render.ParseMode("vertical")
	require.NoError(t, err)
	assert.Equal(t, render.ModeVertical, m)

	_, err = render.ParseMode("diagonal")
	require.Error(t, err)
}
