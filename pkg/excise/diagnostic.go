package excise

import "github.com/yaklabco/excise/pkg/config"

// DiagnosticCode identifies a category of transform diagnostic.
type DiagnosticCode string

const (
	// CodeBlockNotFound reports a requested block name with no matching
	// declaration in the buffer.
	CodeBlockNotFound DiagnosticCode = "block-not-found"

	// CodeUnbalancedBlock reports a block whose braces never balance
	// before the end of the buffer. The file must not be written when
	// this is present.
	CodeUnbalancedBlock DiagnosticCode = "unbalanced-block"

	// CodeOverlappingEdit reports an edit dropped because it overlaps
	// one discovered earlier.
	CodeOverlappingEdit DiagnosticCode = "overlapping-edit"

	// CodePatternNoMatch reports a pattern rule that matched nothing.
	CodePatternNoMatch DiagnosticCode = "pattern-no-match"
)

// DefaultSeverity returns the severity a code carries.
func (c DiagnosticCode) DefaultSeverity() config.Severity {
	switch c {
	case CodeUnbalancedBlock:
		return config.SeverityError
	case CodePatternNoMatch:
		return config.SeverityInfo
	default:
		return config.SeverityWarning
	}
}

// Diagnostic represents a single issue found while transforming a buffer.
// Positions always refer to the original buffer.
type Diagnostic struct {
	// Code is the diagnostic category.
	Code DiagnosticCode

	// Severity indicates the importance of the diagnostic.
	Severity config.Severity

	// Message is the human-readable description of the issue.
	Message string

	// Subject is the block name or rule ID the diagnostic is about.
	Subject string

	// FilePath is the path to the file, when known.
	FilePath string

	// StartLine is the 1-based line number where the issue starts, or 0
	// when the diagnostic has no position.
	StartLine int

	// StartColumn is the 1-based column number where the issue starts.
	StartColumn int
}

// IsError reports whether the diagnostic prevents writing output.
func (d *Diagnostic) IsError() bool {
	return d.Severity == config.SeverityError
}

// newDiagnostic builds a diagnostic with the code's default severity,
// positioned at offset when the index is non-nil and offset is
// non-negative.
func newDiagnostic(code DiagnosticCode, subject, message string, index *LineIndex, offset int) Diagnostic {
	d := Diagnostic{
		Code:     code,
		Severity: code.DefaultSeverity(),
		Message:  message,
		Subject:  subject,
	}
	if index != nil && offset >= 0 {
		pos := index.PositionAt(offset)
		d.StartLine = pos.Line
		d.StartColumn = pos.Column
	}
	return d
}
