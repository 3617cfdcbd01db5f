package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/excise/internal/ui/pretty"
	"github.com/yaklabco/excise/pkg/runner"
)

func TestFormatSummary_Basic(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesProcessed:        10,
		FilesChanged:          3,
		FilesWritten:          3,
		EditsApplied:          7,
		DiagnosticsTotal:      15,
		DiagnosticsBySeverity: map[string]int{"error": 5, "warning": 10},
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files checked:")
	assert.Contains(t, result, "10")
	assert.Contains(t, result, "Files changed:")
	assert.Contains(t, result, "Edits applied:")
	assert.Contains(t, result, "7")
	assert.Contains(t, result, "Errors:")
	assert.Contains(t, result, "5")
	assert.Contains(t, result, "Warnings:")
}

func TestFormatSummary_Clean(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesProcessed:        5,
		DiagnosticsTotal:      0,
		DiagnosticsBySeverity: map[string]int{},
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Completed")
	assert.NotContains(t, result, "Files changed:")
	assert.NotContains(t, result, "Errors:")
}

func TestFormatSummaryOneLine_NothingToDo(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesProcessed:        4,
		DiagnosticsBySeverity: map[string]int{},
	}

	result := styles.FormatSummaryOneLine(stats)

	assert.Contains(t, result, "Nothing to do")
	assert.Contains(t, result, "(4 files checked)")
}

func TestFormatSummaryOneLine_EditsAndWarnings(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesProcessed:        4,
		FilesChanged:          2,
		EditsApplied:          5,
		DiagnosticsTotal:      1,
		DiagnosticsBySeverity: map[string]int{"warning": 1},
	}

	result := styles.FormatSummaryOneLine(stats)

	assert.Contains(t, result, "5 edits in 2 files")
	assert.Contains(t, result, "1 warnings")
}

func TestFormatSummaryOneLine_SingleEdit(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesProcessed:        1,
		FilesChanged:          1,
		EditsApplied:          1,
		DiagnosticsBySeverity: map[string]int{},
	}

	result := styles.FormatSummaryOneLine(stats)

	assert.Contains(t, result, "1 edit in 1 file")
}

func TestFormatSummaryOneLine_SkippedFiles(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesProcessed:        2,
		FilesSkipped:          1,
		DiagnosticsTotal:      1,
		DiagnosticsBySeverity: map[string]int{"error": 1},
	}

	result := styles.FormatSummaryOneLine(stats)

	assert.Contains(t, result, "1 errors")
	assert.Contains(t, result, "1 skipped")
}
