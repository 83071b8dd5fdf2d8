// Package config defines core configuration types for qdiff.
// These types are pure data structures; discovery and merging live in
// internal/configloader.
package config

// Default values.
const (
	DefaultMinMatch = 20
	DefaultTabSize  = 8
	DefaultColor    = ColorAuto
	DefaultMode     = "auto"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// KindSwitches holds one switch per diff event kind.
type KindSwitches struct {
	Match        bool `yaml:"match,omitempty" toml:"match,omitempty"`
	Deletion     bool `yaml:"deletion,omitempty" toml:"deletion,omitempty"`
	Insertion    bool `yaml:"insertion,omitempty" toml:"insertion,omitempty"`
	Substitution bool `yaml:"substitution,omitempty" toml:"substitution,omitempty"`
}

// All reports whether every switch is on.
func (k KindSwitches) All() bool {
	return k.Match && k.Deletion && k.Insertion && k.Substitution
}

// Config is the root configuration structure for qdiff.
type Config struct {
	// Diff options.

	// MinMatch is the number of equal bytes needed to resynchronize.
	MinMatch int `yaml:"min_match,omitempty" toml:"min_match,omitempty"`

	// NoHeuristics selects the exhaustive resynchronization search.
	NoHeuristics bool `yaml:"no_heuristics,omitempty" toml:"no_heuristics,omitempty"`

	// ByteByByte reports substitutions only.
	ByteByByte bool `yaml:"byte_by_byte,omitempty" toml:"byte_by_byte,omitempty"`

	// StopOnEOF stops at the end of the shorter file.
	StopOnEOF bool `yaml:"stop_on_eof,omitempty" toml:"stop_on_eof,omitempty"`

	// LargeFiles uses fewer, larger read buffers.
	LargeFiles bool `yaml:"large_files,omitempty" toml:"large_files,omitempty"`

	// Output mode: "auto", "hex", "formatted", "unformatted" or "vertical".
	Mode string `yaml:"mode,omitempty" toml:"mode,omitempty"`

	// Output options.

	// Width is the output width; 0 means the terminal width.
	Width          int    `yaml:"width,omitempty" toml:"width,omitempty"`
	BytesPerLine   int    `yaml:"bytes_per_line,omitempty" toml:"bytes_per_line,omitempty"`
	TabSize        int    `yaml:"tab_size,omitempty" toml:"tab_size,omitempty"`
	LineNumbers    bool   `yaml:"line_numbers,omitempty" toml:"line_numbers,omitempty"`
	NoLineBreak    bool   `yaml:"no_line_break,omitempty" toml:"no_line_break,omitempty"`
	ShowLFAndTab   bool   `yaml:"show_lf_and_tab,omitempty" toml:"show_lf_and_tab,omitempty"`
	ShowSpace      bool   `yaml:"show_space,omitempty" toml:"show_space,omitempty"`
	Unprintable    string `yaml:"unprintable,omitempty" toml:"unprintable,omitempty"`
	ControlHex     bool   `yaml:"control_hex,omitempty" toml:"control_hex,omitempty"`
	AlignmentMarks bool   `yaml:"alignment_marks,omitempty" toml:"alignment_marks,omitempty"`

	// Color is "auto", "always" or "never".
	Color     string `yaml:"color,omitempty" toml:"color,omitempty"`
	AltColors bool   `yaml:"alt_colors,omitempty" toml:"alt_colors,omitempty"`

	// Hide suppresses event kinds. Range prints them as summary lines.
	Hide  KindSwitches `yaml:"hide,omitempty" toml:"hide,omitempty"`
	Range KindSwitches `yaml:"range,omitempty" toml:"range,omitempty"`

	// Progress writes progress lines to stderr.
	Progress bool `yaml:"progress,omitempty" toml:"progress,omitempty"`

	// CLI-level options (not persisted to config files).

	// Verbose enables debug logging.
	Verbose bool `yaml:"-" toml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		MinMatch: DefaultMinMatch,
		TabSize:  DefaultTabSize,
		Color:    DefaultColor,
		Mode:     DefaultMode,
	}
}
