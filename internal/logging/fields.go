// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldWorkingDir = "working_dir"

	// Input fields.
	FieldFile     = "file"
	FieldSize     = "size"
	FieldProbed   = "probed"
	FieldKind     = "kind"
	FieldLanguage = "language"
	FieldMIME     = "mime"

	// Configuration fields.
	FieldMode       = "mode"
	FieldReason     = "reason"
	FieldMinMatch   = "min_match"
	FieldHeuristics = "heuristics"
	FieldWidth      = "width"
	FieldConfig     = "config"

	// Statistics fields.
	FieldEvents     = "events"
	FieldUncompared = "uncompared"
	FieldElapsed    = "elapsed"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
