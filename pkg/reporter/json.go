package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/excise/pkg/runner"
)

// Severity string constants.
const (
	severityWarning = "warning"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path        string           `json:"path"`
	Language    string           `json:"language,omitempty"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Edits       []JSONEdit       `json:"edits,omitempty"`
	Written     bool             `json:"written,omitempty"`
	Skipped     bool             `json:"skipped,omitempty"`
	SkipReason  string           `json:"skipReason,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// JSONDiagnostic represents a single diagnostic.
type JSONDiagnostic struct {
	Code        string `json:"code"`
	Subject     string `json:"subject"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	StartLine   int    `json:"startLine,omitempty"`
	StartColumn int    `json:"startColumn,omitempty"`
}

// JSONEdit represents an applied edit.
type JSONEdit struct {
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
	NewText     string `json:"newText"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked int            `json:"filesChecked"`
	FilesChanged int            `json:"filesChanged"`
	FilesWritten int            `json:"filesWritten"`
	FilesSkipped int            `json:"filesSkipped"`
	FilesErrored int            `json:"filesErrored"`
	EditsApplied int            `json:"editsApplied"`
	TotalNotes   int            `json:"totalNotes"`
	BySeverity   map[string]int `json:"bySeverity"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalNotes, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			BySeverity: make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	if len(result.Files) > 0 {
		output.Files = make([]JSONFileResult, 0, len(result.Files))
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:        file.Path,
			Diagnostics: make([]JSONDiagnostic, 0),
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
			output.Summary.FilesErrored++
		}

		if file.Result != nil {
			fileResult.Written = file.Result.Written
			fileResult.Skipped = file.Result.Skipped
			fileResult.SkipReason = file.Result.SkipReason

			if file.Result.FileResult != nil {
				fileResult.Language = file.Result.Language

				for _, diag := range file.Result.Diagnostics {
					fileResult.Diagnostics = append(fileResult.Diagnostics, JSONDiagnostic{
						Code:        string(diag.Code),
						Subject:     diag.Subject,
						Severity:    string(diag.Severity),
						Message:     diag.Message,
						StartLine:   diag.StartLine,
						StartColumn: diag.StartColumn,
					})
					output.Summary.TotalNotes++

					severity := string(diag.Severity)
					if severity == "" {
						severity = severityWarning
					}
					output.Summary.BySeverity[severity]++
				}

				if file.Result.Modified {
					for _, e := range file.Result.Edits {
						fileResult.Edits = append(fileResult.Edits, JSONEdit{
							StartOffset: e.Start,
							EndOffset:   e.End,
							NewText:     e.Text,
						})
					}
					output.Summary.EditsApplied += len(file.Result.Edits)
					output.Summary.FilesChanged++
				}
			}
		}

		if file.Result != nil && file.Result.Written {
			output.Summary.FilesWritten++
		}
		if file.Result != nil && file.Result.Skipped {
			output.Summary.FilesSkipped++
		}

		output.Files = append(output.Files, fileResult)
		output.Summary.FilesChecked++
	}

	return output
}
