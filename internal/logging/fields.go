// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldInput  = "input"
	FieldOutput = "output"

	// Parameter loader fields.
	FieldParam     = "param"
	FieldNamespace = "namespace"
	FieldInclude   = "include"

	// Located string fields.
	FieldLength  = "length"
	FieldRegions = "regions"

	// Scoring fields.
	FieldCategory = "category"
	FieldSamples  = "samples"
	FieldSeed     = "seed"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
