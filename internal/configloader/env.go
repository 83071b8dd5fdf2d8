package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/qdiff/pkg/config"
)

// envVarPrefix is the prefix for all qdiff environment variables.
const envVarPrefix = "QDIFF_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeKinds
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
	help  string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"MIN_MATCH":       {field: "min_match", typ: envTypeInt, help: "Bytes needed to resynchronize"},
	"NO_HEURISTICS":   {field: "no_heuristics", typ: envTypeBool, help: "Exhaustive search: true or false"},
	"BYTE_BY_BYTE":    {field: "byte_by_byte", typ: envTypeBool, help: "Report substitutions only: true or false"},
	"STOP_ON_EOF":     {field: "stop_on_eof", typ: envTypeBool, help: "Stop at end of the shorter file: true or false"},
	"LARGE_FILES":     {field: "large_files", typ: envTypeBool, help: "Use large read buffers: true or false"},
	"MODE":            {field: "mode", typ: envTypeString, help: "Output mode: auto, hex, formatted, unformatted, or vertical"},
	"WIDTH":           {field: "width", typ: envTypeInt, help: "Output width (0 = terminal width)"},
	"BYTES_PER_LINE":  {field: "bytes_per_line", typ: envTypeInt, help: "Bytes per output line (0 = fit width)"},
	"TAB_SIZE":        {field: "tab_size", typ: envTypeInt, help: "Tab stop distance"},
	"LINE_NUMBERS":    {field: "line_numbers", typ: envTypeBool, help: "Show line numbers: true or false"},
	"NO_LINE_BREAK":   {field: "no_line_break", typ: envTypeBool, help: "Do not wrap long lines: true or false"},
	"SHOW_LF_AND_TAB": {field: "show_lf_and_tab", typ: envTypeBool, help: "Name newlines and tabs: true or false"},
	"SHOW_SPACE":      {field: "show_space", typ: envTypeBool, help: "Name spaces: true or false"},
	"UNPRINTABLE":     {field: "unprintable", typ: envTypeString, help: "Character shown for unprintable bytes"},
	"CONTROL_HEX":     {field: "control_hex", typ: envTypeBool, help: "Show control characters as hex: true or false"},
	"ALIGNMENT_MARKS": {field: "alignment_marks", typ: envTypeBool, help: "Mark 4 and 8 byte boundaries: true or false"},
	"COLOR":           {field: "color", typ: envTypeString, help: "Color mode: auto, always, or never"},
	"ALT_COLORS":      {field: "alt_colors", typ: envTypeBool, help: "Use the alternate palette: true or false"},
	"HIDE":            {field: "hide", typ: envTypeKinds, help: "Comma-separated kinds to hide"},
	"RANGE":           {field: "range", typ: envTypeKinds, help: "Comma-separated kinds to summarize (or all)"},
	"PROGRESS":        {field: "progress", typ: envTypeBool, help: "Report progress on stderr: true or false"},
	"VERBOSE":         {field: "verbose", typ: envTypeBool, help: "Enable debug logging: true or false"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with QDIFF_ (e.g., QDIFF_MIN_MATCH).
// Unlike config files, a false boolean here switches an option off.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeKinds:
		kinds, err := parseKinds(parseSliceValue(value))
		if err != nil {
			return fmt.Errorf("invalid kinds for %s: %w", envVar, err)
		}
		return setKindsField(cfg, mapping.field, kinds)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// parseKinds turns kind names into switches. "all" sets every kind.
func parseKinds(names []string) (config.KindSwitches, error) {
	var kinds config.KindSwitches
	for _, name := range names {
		switch strings.ToLower(name) {
		case "match":
			kinds.Match = true
		case "deletion", "delete":
			kinds.Deletion = true
		case "insertion", "insert":
			kinds.Insertion = true
		case "substitution", "subst":
			kinds.Substitution = true
		case "all":
			kinds = config.KindSwitches{Match: true, Deletion: true, Insertion: true, Substitution: true}
		default:
			return kinds, fmt.Errorf("unknown kind %q", name)
		}
	}
	return kinds, nil
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "mode":
		cfg.Mode = value
	case "unprintable":
		cfg.Unprintable = value
	case "color":
		cfg.Color = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "no_heuristics":
		cfg.NoHeuristics = value
	case "byte_by_byte":
		cfg.ByteByByte = value
	case "stop_on_eof":
		cfg.StopOnEOF = value
	case "large_files":
		cfg.LargeFiles = value
	case "line_numbers":
		cfg.LineNumbers = value
	case "no_line_break":
		cfg.NoLineBreak = value
	case "show_lf_and_tab":
		cfg.ShowLFAndTab = value
	case "show_space":
		cfg.ShowSpace = value
	case "control_hex":
		cfg.ControlHex = value
	case "alignment_marks":
		cfg.AlignmentMarks = value
	case "alt_colors":
		cfg.AltColors = value
	case "progress":
		cfg.Progress = value
	case "verbose":
		cfg.Verbose = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "min_match":
		cfg.MinMatch = value
	case "width":
		cfg.Width = value
	case "bytes_per_line":
		cfg.BytesPerLine = value
	case "tab_size":
		cfg.TabSize = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setKindsField sets a per-kind switch group on the config by field path.
func setKindsField(cfg *config.Config, field string, value config.KindSwitches) error {
	switch field {
	case "hide":
		cfg.Hide = value
	case "range":
		cfg.Range = value
	default:
		return fmt.Errorf("unknown kinds field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their
// descriptions, sorted by name.
func ListEnvVars() [][2]string {
	vars := make([][2]string, 0, len(envMappings))
	for suffix, mapping := range envMappings {
		vars = append(vars, [2]string{envVarPrefix + suffix, mapping.help})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i][0] < vars[j][0] })
	return vars
}
