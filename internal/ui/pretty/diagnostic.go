package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/excise/pkg/config"
	"github.com/yaklabco/excise/pkg/excise"
)

// FormatDiagnostic formats a single diagnostic for terminal output.
func (s *Styles) FormatDiagnostic(diag *excise.Diagnostic, showContext bool, sourceLine string) string {
	var builder strings.Builder

	// Location: path:line:col, or just path for diagnostics without a
	// position (block-not-found has nowhere to point).
	location := s.FilePath.Render(diag.FilePath)
	if diag.StartLine > 0 {
		location = fmt.Sprintf("%s:%d:%d",
			s.FilePath.Render(diag.FilePath),
			diag.StartLine,
			diag.StartColumn,
		)
	}

	// Severity with prefix
	severity := s.FormatSeverity(diag.Severity)

	codeDisplay := s.Code.Render("(" + string(diag.Code) + ")")

	// Main line: location  severity  message  (code)
	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		severity,
		s.Message.Render(diag.Message),
		codeDisplay,
	))

	// Source context
	if showContext && sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, diag.StartColumn))
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	// Indent to align with diagnostic output
	const indent = "        "

	// Source line
	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	// Caret marker
	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d notes)", issueCount))
	}
	return header
}
