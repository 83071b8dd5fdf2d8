package render

import "github.com/yaklabco/qdiff/pkg/bindiff"

// Palette holds the escape sequences written around rendered bytes.
type Palette struct {
	Normal     string
	Match      string
	Substitute string
	Insert     string
	Delete     string
	Separator  string
}

// Built-in palettes.
var (
	DefaultPalette = Palette{
		Normal:     "\033[m",
		Match:      "\033[01;37m",
		Substitute: "\033[01;33m",
		Insert:     "\033[00;32m",
		Delete:     "\033[01;31m",
		Separator:  "\033[00;34m",
	}

	AltPalette = Palette{
		Normal:     "\033[00m",
		Match:      "\033[37m",
		Substitute: "\033[33m",
		Insert:     "\033[35m",
		Delete:     "\033[31m",
		Separator:  "\033[34m",
	}

	NoColorPalette = Palette{}
)

// SelectPalette returns the palette for the given switches. Disabling color
// wins over the alternate palette.
func SelectPalette(color, alt bool) Palette {
	switch {
	case !color:
		return NoColorPalette
	case alt:
		return AltPalette
	default:
		return DefaultPalette
	}
}

// Color returns the sequence for an event kind.
func (p Palette) Color(kind bindiff.Kind) string {
	switch kind {
	case bindiff.KindMatch:
		return p.Match
	case bindiff.KindSubstitute:
		return p.Substitute
	case bindiff.KindInsert:
		return p.Insert
	case bindiff.KindDelete:
		return p.Delete
	default:
		return p.Normal
	}
}

// Name returns a short label for logs.
func (p Palette) Name() string {
	switch p {
	case DefaultPalette:
		return "default"
	case AltPalette:
		return "alternate"
	case NoColorPalette:
		return "none"
	default:
		return "custom"
	}
}
