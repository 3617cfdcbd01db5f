package excise

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/excise/pkg/config"
	"github.com/yaklabco/excise/pkg/edit"
	"github.com/yaklabco/excise/pkg/fsutil"
)

// Pipeline error types for categorization.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrTransformFailure indicates the transform itself failed.
	ErrTransformFailure = errors.New("transform failure")

	// ErrWriteFailure indicates a write error.
	ErrWriteFailure = errors.New("write failure")
)

// PipelineResult contains the result of processing a single file through
// the safety pipeline.
type PipelineResult struct {
	// FileResult contains the transform diagnostics and edits.
	*FileResult

	// Path is the file path that was processed.
	Path string

	// OriginalInfo is the file state before processing.
	OriginalInfo *fsutil.FileInfo

	// Modified is true if the content changed.
	Modified bool

	// Diff is the unified diff for dry-run mode (nil otherwise).
	Diff *edit.Diff

	// Skipped is true if the file was skipped, for example because an
	// unbalanced block made the output unsafe to write.
	Skipped bool

	// SkipReason explains why the file was skipped.
	SkipReason string

	// BackupCreated is true if a backup was created for this file.
	BackupCreated bool

	// Written is true if the file was written to disk.
	Written bool
}

// Summary returns a human-readable summary of the pipeline result.
func (pr *PipelineResult) Summary() string {
	if pr.Skipped {
		return "skipped: " + pr.SkipReason
	}
	if pr.Written {
		if pr.BackupCreated {
			return "rewritten (backup created)"
		}
		return "rewritten"
	}
	if pr.Modified {
		return "changes pending"
	}
	if pr.FileResult != nil && pr.IssueCount() > 0 {
		return "notes"
	}
	return "ok"
}

// PipelineOptions controls safety pipeline behavior.
type PipelineOptions struct {
	// DryRun generates diffs without writing files.
	DryRun bool

	// Backup configures backup behavior.
	Backup fsutil.BackupConfig

	// StrictRaceDetection uses hash comparison for modification
	// detection. When false, only mod time and size are checked.
	StrictRaceDetection bool
}

// DefaultPipelineOptions returns sensible defaults.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		DryRun:              false,
		Backup:              fsutil.DefaultBackupConfig(),
		StrictRaceDetection: true,
	}
}

// Pipeline orchestrates the safe rewriting of a single file.
type Pipeline struct {
	// Engine performs the transform.
	Engine *Engine
}

// NewPipeline creates a new safety pipeline with the given engine.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile runs the full safety pipeline for a single file.
//
// The pipeline performs the following steps:
//  1. Read and hash the original file.
//  2. Run the transform on the original content.
//  3. Refuse to write when any diagnostic is at error severity.
//  4. Generate a diff instead of writing (dry-run mode).
//  5. Check for concurrent modifications.
//  6. Create a backup (if enabled).
//  7. Write the new content atomically.
func (p *Pipeline) ProcessFile(
	ctx context.Context,
	path string,
	opts PipelineOptions,
) (*PipelineResult, error) {
	result := &PipelineResult{Path: path}

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}
	result.OriginalInfo = info

	fileResult, err := p.Engine.TransformContent(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransformFailure, err)
	}
	result.FileResult = fileResult
	result.Modified = fileResult.Changed

	// An error-severity diagnostic means the buffer could not be
	// understood; writing a partial result would corrupt the file.
	if fileResult.HasErrors() {
		result.Skipped = true
		result.SkipReason = "errors found, refusing to write"
		return result, nil
	}

	if !result.Modified {
		return result, nil
	}

	if opts.DryRun {
		result.Diff = edit.NewDiff(path, content, fileResult.Output)
		return result, nil
	}

	modified, err := p.checkModified(ctx, info, opts.StrictRaceDetection)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if modified {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}

	if opts.Backup.Enabled {
		created, err := fsutil.CreateBackup(ctx, path, opts.Backup)
		if err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}
		result.BackupCreated = created
	}

	if err := fsutil.WriteAtomic(ctx, path, fileResult.Output, info.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	return result, nil
}

// ProcessContent transforms in-memory content without file I/O. This is
// useful for testing or when content is already loaded.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	content []byte,
	opts PipelineOptions,
) (*PipelineResult, error) {
	result := &PipelineResult{Path: path}

	fileResult, err := p.Engine.TransformContent(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransformFailure, err)
	}
	result.FileResult = fileResult
	result.Modified = fileResult.Changed

	if fileResult.HasErrors() {
		result.Skipped = true
		result.SkipReason = "errors found, refusing to write"
		return result, nil
	}

	if result.Modified && opts.DryRun {
		result.Diff = edit.NewDiff(path, content, fileResult.Output)
	}

	return result, nil
}

// checkModified checks if a file has been modified since it was read.
func (p *Pipeline) checkModified(ctx context.Context, info *fsutil.FileInfo, strict bool) (bool, error) {
	var modified bool
	var err error

	if strict {
		modified, err = fsutil.CheckModified(ctx, info)
	} else {
		modified, err = fsutil.CheckModifiedQuick(ctx, info)
	}

	if err != nil {
		return false, fmt.Errorf("check modified: %w", err)
	}
	return modified, nil
}

// categorizeError wraps an error with the appropriate pipeline error
// type. It uses errors.Is rather than string matching.
func categorizeError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}
	if errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}
	return err
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrTransformFailure) ||
		errors.Is(err, ErrWriteFailure)
}

// BackupConfigFromConfig creates an fsutil.BackupConfig from the root
// configuration.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.DefaultBackupConfig()
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
}

// PipelineOptionsFromConfig creates PipelineOptions from the root
// configuration.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	if cfg == nil {
		return DefaultPipelineOptions()
	}
	return PipelineOptions{
		DryRun:              cfg.DryRun,
		Backup:              BackupConfigFromConfig(cfg),
		StrictRaceDetection: true,
	}
}
