package render

import "fmt"

// Mode is a display mode. It is chosen once per renderer.
type Mode string

// Display modes.
const (
	ModeAuto        Mode = "auto"
	ModeHex         Mode = "hex"
	ModeFormatted   Mode = "formatted"
	ModeUnformatted Mode = "unformatted"
	ModeVertical    Mode = "vertical"
)

// ParseMode parses a mode name, returning an error for unknown modes.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "auto", "":
		return ModeAuto, nil
	case "hex":
		return ModeHex, nil
	case "formatted":
		return ModeFormatted, nil
	case "unformatted":
		return ModeUnformatted, nil
	case "vertical":
		return ModeVertical, nil
	default:
		return "", fmt.Errorf("unknown mode %q; valid modes: auto, hex, formatted, unformatted, vertical", s)
	}
}

// String returns the string representation of the mode.
func (m Mode) String() string {
	return string(m)
}

// IsValid returns true if m is a known mode.
func (m Mode) IsValid() bool {
	switch m {
	case ModeAuto, ModeHex, ModeFormatted, ModeUnformatted, ModeVertical:
		return true
	default:
		return false
	}
}

// Description returns the phrase used when announcing the mode.
func (m Mode) Description() string {
	switch m {
	case ModeHex:
		return "hex dump, block by block"
	case ModeFormatted:
		return "formatted ascii text, line by line"
	case ModeUnformatted:
		return "unformatted ascii text, block by block"
	case ModeVertical:
		return "one byte per line"
	default:
		return "automatic"
	}
}
