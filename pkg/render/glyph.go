package render

import (
	"strings"
	"unicode/utf8"
)

const hexDigits = "0123456789ABCDEF"

// controlNames holds the mnemonics of the C0 control codes.
var controlNames = [32]string{
	"NUL", "SOH", "STX", "ETX", "EOT", "ENQ", "ACK", "BEL",
	"BS", "HT", "LF", "VT", "FF", "CR", "SO", "SI",
	"DLE", "DC1", "DC2", "DC3", "DC4", "NAK", "SYN", "ETB",
	"CAN", "EM", "SUB", "ESC", "FS", "GS", "RS", "US",
}

// glyph is the rendering of one byte on one side of a line.
type glyph struct {
	text  string
	width int
}

// glyphPolicy maps bytes to glyphs for a line-oriented mode. col is the
// number of columns already used on the current line.
type glyphPolicy interface {
	glyph(off int64, b byte, col int) glyph
	blank(col, width int) string
}

// hexGlyphs renders each byte as two hex digits. A column is one byte.
type hexGlyphs struct {
	alignmentMarks bool
}

func (h hexGlyphs) glyph(off int64, b byte, col int) glyph {
	digits := []byte{hexDigits[b>>4], hexDigits[b&15]}
	if col == 0 {
		return glyph{text: string(digits), width: 1}
	}

	mark := byte(' ')
	if h.alignmentMarks {
		switch {
		case off&7 == 0:
			mark = '+'
		case off&3 == 0:
			mark = '-'
		}
	}
	return glyph{text: string(append([]byte{mark}, digits...)), width: 1}
}

func (hexGlyphs) blank(col, _ int) string {
	if col == 0 {
		return "  "
	}
	return "   "
}

// asciiGlyphs renders printable bytes as themselves and everything else as a
// bracketed mnemonic, a bracketed hex escape or a substitute character.
type asciiGlyphs struct {
	tabSize      int
	showLFAndTab bool
	showSpace    bool
	controlHex   bool
	unprintable  string
}

func (a asciiGlyphs) glyph(_ int64, b byte, col int) glyph {
	text := a.text(b, col)
	return glyph{text: text, width: utf8.RuneCountInString(text)}
}

func (asciiGlyphs) blank(_, width int) string {
	return strings.Repeat(" ", width)
}

func (a asciiGlyphs) text(b byte, col int) string {
	switch {
	case b >= 128:
		if a.unprintable != "" {
			return a.unprintable
		}
		return hexEscape(b)
	case b > ' ' && b < 127:
		return string(rune(b))
	case b == ' ' && !a.showSpace:
		return " "
	case b == '\n' && !a.showLFAndTab:
		return ""
	case b == '\t' && !a.showLFAndTab:
		return strings.Repeat(" ", a.tabSize-col%a.tabSize)
	case a.unprintable != "":
		return a.unprintable
	case a.controlHex:
		return hexEscape(b)
	case b == ' ':
		return "<SPC>"
	case b == 127:
		return "<DEL>"
	default:
		return "<" + controlNames[b] + ">"
	}
}

func hexEscape(b byte) string {
	return string([]byte{'<', 'x', hexDigits[b>>4], hexDigits[b&15], '>'})
}

// charName returns the three-column label of b used by vertical mode.
func charName(b byte, showSpace bool) string {
	switch {
	case b == ' ' && showSpace:
		return "SPC"
	case b >= ' ' && b < 127:
		return "'" + string(rune(b)) + "'"
	case b < ' ':
		return padName(controlNames[b])
	case b == 127:
		return "DEL"
	default:
		return "   "
	}
}

func padName(name string) string {
	if len(name) < 3 {
		return name + strings.Repeat(" ", 3-len(name))
	}
	return name
}
