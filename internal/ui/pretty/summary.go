package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/excise/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 blocks removed in 2 files, 1 warning".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.DiagnosticsTotal == 0 && stats.EditsApplied == 0 {
		return s.Success.Render("Nothing to do") +
			s.Dim.Render(fmt.Sprintf(" (%d files checked)", stats.FilesProcessed)) + "\n"
	}

	var parts []string

	if stats.EditsApplied > 0 {
		editWord := "edits"
		if stats.EditsApplied == 1 {
			editWord = "edit"
		}
		fileWord := wordFiles
		if stats.FilesChanged == 1 {
			fileWord = wordFile
		}
		parts = append(parts, s.Success.Render(
			fmt.Sprintf("%d %s in %d %s", stats.EditsApplied, editWord, stats.FilesChanged, fileWord)))
	}

	// Severity breakdown
	if errors := stats.DiagnosticsBySeverity["error"]; errors > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d errors", errors)))
	}
	if warnings := stats.DiagnosticsBySeverity["warning"]; warnings > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d warnings", warnings)))
	}
	if infos := stats.DiagnosticsBySeverity["info"]; infos > 0 {
		parts = append(parts, s.Info.Render(fmt.Sprintf("%d info", infos)))
	}

	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	// Files
	builder.WriteString("  Files checked:   " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")

	if stats.FilesChanged > 0 {
		builder.WriteString("  Files changed:   " +
			s.Success.Render(strconv.Itoa(stats.FilesChanged)) + "\n")
	}

	if stats.FilesWritten > 0 {
		builder.WriteString("  Files written:   " +
			s.Success.Render(strconv.Itoa(stats.FilesWritten)) + "\n")
	}

	if stats.FilesSkipped > 0 {
		builder.WriteString("  Files skipped:   " +
			s.Failure.Render(strconv.Itoa(stats.FilesSkipped)) + "\n")
	}

	builder.WriteString("\n")

	builder.WriteString("  Edits applied:   " +
		s.SummaryValue.Render(strconv.Itoa(stats.EditsApplied)) + "\n")
	builder.WriteString("  Notes:           " +
		s.SummaryValue.Render(strconv.Itoa(stats.DiagnosticsTotal)) + "\n")

	if errors := stats.DiagnosticsBySeverity["error"]; errors > 0 {
		builder.WriteString("    Errors:        " +
			s.Error.Render(strconv.Itoa(errors)) + "\n")
	}
	if warnings := stats.DiagnosticsBySeverity["warning"]; warnings > 0 {
		builder.WriteString("    Warnings:      " +
			s.Warning.Render(strconv.Itoa(warnings)) + "\n")
	}
	if infos := stats.DiagnosticsBySeverity["info"]; infos > 0 {
		builder.WriteString("    Info:          " +
			s.Info.Render(strconv.Itoa(infos)) + "\n")
	}

	builder.WriteString("\n")

	// Overall status
	switch {
	case stats.DiagnosticsBySeverity["error"] > 0:
		builder.WriteString(s.Failure.Render("Completed with errors"))
	case stats.DiagnosticsBySeverity["warning"] > 0:
		builder.WriteString(s.Warning.Render("Completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Completed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
