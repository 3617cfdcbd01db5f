package configloader

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/yaklabco/excise/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "rules[0].pattern").
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

	// Warnings are non-fatal issues (e.g., unknown languages).
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

// knownLanguages lists language values that map to a dedicated
// string-literal profile. Other values fall back to the default profile,
// which is usually a sign of a typo.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownLanguages = map[string]bool{
	config.LanguageAuto: true,
	"typescript":        true,
	"javascript":        true,
	"go":                true,
	"text":              true,
}

// knownFormats lists valid output format values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatText: true,
	config.FormatJSON: true,
	config.FormatDiff: true,
}

// knownBackupModes lists valid backup mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	"sidecar": true,
	"none":    true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	// Validate language
	if cfg.Language != "" && !knownLanguages[cfg.Language] {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "language",
			Value:   cfg.Language,
			Message: fmt.Sprintf("unknown language %q; the default string-literal profile will be used", cfg.Language),
		})
	}

	// Validate format
	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, json, diff", cfg.Format),
		})
	}

	// Validate jobs
	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	// Validate backups.mode
	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "backups.mode",
			Value:   cfg.Backups.Mode,
			Message: fmt.Sprintf("invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode),
		})
	}

	// Validate blocks
	validateBlocks(cfg, result)

	// Validate rules
	validateRules(cfg, result)

	// Validate ignore patterns
	validateIgnorePatterns(cfg, result)

	return result
}

// validateBlocks checks block names for errors.
func validateBlocks(cfg *config.Config, result *ValidationResult) {
	for i, name := range cfg.Blocks {
		if strings.TrimSpace(name) == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("blocks[%d]", i),
				Value:   name,
				Message: "block name must not be empty",
			})
		}
	}
}

// validateRules checks pattern rule configurations for errors.
func validateRules(cfg *config.Config, result *ValidationResult) {
	seen := make(map[string]int, len(cfg.Rules))

	for i, rule := range cfg.Rules {
		field := fmt.Sprintf("rules[%d]", i)

		if rule.ID == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   field + ".id",
				Value:   rule.ID,
				Message: "rule id must not be empty",
			})
		} else if prev, dup := seen[rule.ID]; dup {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   field + ".id",
				Value:   rule.ID,
				Message: fmt.Sprintf("duplicate rule id %q (also rules[%d])", rule.ID, prev),
			})
		} else {
			seen[rule.ID] = i
		}

		if rule.Pattern == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   field + ".pattern",
				Value:   rule.Pattern,
				Message: "rule pattern must not be empty",
			})
			continue
		}

		// Literal patterns are quoted before compiling, so only regular
		// expressions can fail here.
		if !rule.Literal {
			if _, err := regexp.Compile(rule.Pattern); err != nil {
				result.Errors = append(result.Errors, ValidationError{
					Field:   field + ".pattern",
					Value:   rule.Pattern,
					Message: fmt.Sprintf("invalid regular expression: %v", err),
				})
			}
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		// filepath.Match returns an error only for malformed patterns
		_, err := filepath.Match(pattern, "")
		if err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
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

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f config.OutputFormat) bool {
	return knownFormats[f]
}

// IsValidBackupMode returns true if the backup mode is valid.
func IsValidBackupMode(mode string) bool {
	return knownBackupModes[mode]
}
