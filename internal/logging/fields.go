// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldLanguage = "language"
	FieldDryRun   = "dry_run"
	FieldJobs     = "jobs"
	FieldBlocks   = "blocks"
	FieldRules    = "rules"

	// Statistics fields.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldFilesChanged     = "files_changed"
	FieldFilesWritten     = "files_written"
	FieldFilesSkipped     = "files_skipped"
	FieldEditsApplied     = "edits_applied"
	FieldDiagnosticsTotal = "diagnostics_total"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Rule fields.
	FieldName    = "name"
	FieldPattern = "pattern"
	FieldReplace = "replace"
)
