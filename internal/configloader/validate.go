package configloader

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/qdiff/pkg/config"
	"github.com/yaklabco/qdiff/pkg/render"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "hide.match").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownColors lists valid color values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownColors = map[string]bool{
	config.ColorAuto:   true,
	config.ColorAlways: true,
	config.ColorNever:  true,
}

// Validate checks a configuration for errors and warnings. Checks that
// depend on the display mode chosen at run time are left to the renderer.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	if cfg.MinMatch < 1 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "min_match",
			Value:   cfg.MinMatch,
			Message: "min_match must be >= 1",
		})
	}

	if cfg.TabSize < 1 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "tab_size",
			Value:   cfg.TabSize,
			Message: "tab_size must be >= 1",
		})
	}

	if cfg.Width < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "width",
			Value:   cfg.Width,
			Message: "width must be >= 0 (0 means terminal width)",
		})
	} else if cfg.Width > 0 && cfg.Width < render.MinWidth {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "width",
			Value:   cfg.Width,
			Message: fmt.Sprintf("width %d is below the minimum; using %d", cfg.Width, render.MinWidth),
		})
	}

	if cfg.BytesPerLine < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "bytes_per_line",
			Value:   cfg.BytesPerLine,
			Message: "bytes_per_line must be >= 0 (0 means fit the width)",
		})
	}

	if _, err := render.ParseMode(cfg.Mode); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "mode",
			Value:   cfg.Mode,
			Message: err.Error(),
		})
	}

	if cfg.Color != "" && !knownColors[cfg.Color] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "color",
			Value:   cfg.Color,
			Message: fmt.Sprintf("invalid color %q; must be one of: auto, always, never", cfg.Color),
		})
	}

	if utf8.RuneCountInString(cfg.Unprintable) > 1 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "unprintable",
			Value:   cfg.Unprintable,
			Message: "unprintable must be a single character",
		})
	}

	validateKinds(cfg, result)

	return result
}

// validateKinds checks the hide and range switches.
func validateKinds(cfg *config.Config, result *ValidationResult) {
	if cfg.Hide.All() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "hide",
			Value:   cfg.Hide,
			Message: "hiding every kind leaves nothing to show",
		})
		return
	}

	pairs := []struct {
		name            string
		hide, summarize bool
	}{
		{"match", cfg.Hide.Match, cfg.Range.Match},
		{"deletion", cfg.Hide.Deletion, cfg.Range.Deletion},
		{"insertion", cfg.Hide.Insertion, cfg.Range.Insertion},
		{"substitution", cfg.Hide.Substitution, cfg.Range.Substitution},
	}
	for _, p := range pairs {
		if p.hide && p.summarize {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "range." + p.name,
				Value:   true,
				Message: fmt.Sprintf("%s is both hidden and summarized; hiding wins", p.name),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	// Add file path to all errors and warnings
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidColor returns true if the color mode is valid.
func IsValidColor(color string) bool {
	return knownColors[color]
}
