package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/yaklabco/excise/pkg/config"
	"github.com/yaklabco/excise/pkg/excise"
	"github.com/yaklabco/excise/pkg/runner"
)

// newTestRunner builds a runner whose engine removes the named blocks.
func newTestRunner(t *testing.T, cfg *config.Config) *runner.Runner {
	t.Helper()

	engine, err := excise.NewEngine(cfg)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return runner.New(excise.NewPipeline(engine))
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	engine, err := excise.NewEngine(config.NewConfig())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	pipeline := excise.NewPipeline(engine)

	r := runner.New(pipeline)
	if r.Pipeline != pipeline {
		t.Error("Pipeline not set correctly")
	}
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	r := newTestRunner(t, config.NewConfig())

	result, err := r.Run(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Config:     config.NewConfig(),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesDiscovered != 0 {
		t.Errorf("FilesDiscovered = %d, want 0", result.Stats.FilesDiscovered)
	}
	if len(result.Files) != 0 {
		t.Errorf("len(Files) = %d, want 0", len(result.Files))
	}
}

func TestRunner_Run_RemovesBlocks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.ts": "function drop() {\n  return 1;\n}\nkeep();\n",
		"b.ts": "keep();\n",
	})

	cfg := config.NewConfig()
	cfg.Blocks = []string{"drop"}
	cfg.NoBackups = true
	r := newTestRunner(t, cfg)

	result, err := r.Run(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Config:     cfg,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesDiscovered != 2 {
		t.Errorf("FilesDiscovered = %d, want 2", result.Stats.FilesDiscovered)
	}
	if result.Stats.FilesProcessed != 2 {
		t.Errorf("FilesProcessed = %d, want 2", result.Stats.FilesProcessed)
	}
	if result.Stats.FilesWritten != 1 {
		t.Errorf("FilesWritten = %d, want 1", result.Stats.FilesWritten)
	}
	if result.Stats.EditsApplied != 1 {
		t.Errorf("EditsApplied = %d, want 1", result.Stats.EditsApplied)
	}

	rewritten, err := os.ReadFile(filepath.Join(dir, "a.ts"))
	if err != nil {
		t.Fatalf("read rewritten file: %v", err)
	}
	if want := "// REMOVED: drop\nkeep();\n"; string(rewritten) != want {
		t.Errorf("rewritten content = %q, want %q", rewritten, want)
	}

	// b.ts had no block named drop: diagnostic, no write.
	if result.Stats.DiagnosticsByCode[string(excise.CodeBlockNotFound)] != 1 {
		t.Errorf("expected one block-not-found diagnostic, got %v", result.Stats.DiagnosticsByCode)
	}
}

func TestRunner_Run_DryRunWritesNothing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := "function drop() {\n  return 1;\n}\n"
	writeFiles(t, dir, map[string]string{"a.ts": source})

	cfg := config.NewConfig()
	cfg.Blocks = []string{"drop"}
	cfg.DryRun = true
	r := newTestRunner(t, cfg)

	result, err := r.Run(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Config:     cfg,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesWritten != 0 {
		t.Errorf("FilesWritten = %d, want 0", result.Stats.FilesWritten)
	}
	if result.Stats.FilesChanged != 1 {
		t.Errorf("FilesChanged = %d, want 1", result.Stats.FilesChanged)
	}
	if result.Files[0].Result.Diff == nil {
		t.Error("expected a diff in dry-run mode")
	}

	content, err := os.ReadFile(filepath.Join(dir, "a.ts"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(content) != source {
		t.Error("dry-run must not modify the file")
	}
}

func TestRunner_Run_SkipsUnbalancedFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := "function broken() {\n  if (x) {\n"
	writeFiles(t, dir, map[string]string{"a.ts": source})

	cfg := config.NewConfig()
	cfg.Blocks = []string{"broken"}
	cfg.NoBackups = true
	r := newTestRunner(t, cfg)

	result, err := r.Run(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Config:     cfg,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesSkipped != 1 {
		t.Errorf("FilesSkipped = %d, want 1", result.Stats.FilesSkipped)
	}
	if result.Stats.FilesWritten != 0 {
		t.Errorf("FilesWritten = %d, want 0", result.Stats.FilesWritten)
	}
	if !result.HasFailures() {
		t.Error("expected error-severity diagnostics")
	}

	content, err := os.ReadFile(filepath.Join(dir, "a.ts"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(content) != source {
		t.Error("unbalanced file must stay untouched")
	}
}

func TestRunner_Run_CreatesBackups(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := "function drop() {\n}\n"
	writeFiles(t, dir, map[string]string{"a.ts": source})

	cfg := config.NewConfig()
	cfg.Blocks = []string{"drop"}
	r := newTestRunner(t, cfg)

	result, err := r.Run(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Config:     cfg,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesWritten != 1 {
		t.Fatalf("FilesWritten = %d, want 1", result.Stats.FilesWritten)
	}

	backup, err := os.ReadFile(filepath.Join(dir, "a.ts.excise.bak"))
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(backup) != source {
		t.Errorf("backup content = %q, want original", backup)
	}
}

func TestRunner_Run_DeterministicOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	names := []string{"z.ts", "a.ts", "m.ts", "b.ts", "q.ts"}
	files := make(map[string]string, len(names))
	for _, name := range names {
		files[name] = "keep();\n"
	}
	writeFiles(t, dir, files)

	cfg := config.NewConfig()
	r := newTestRunner(t, cfg)

	for range 3 {
		result, err := r.Run(context.Background(), runner.Options{
			Paths:      []string{"."},
			WorkingDir: dir,
			Config:     cfg,
			Jobs:       4,
		})
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}

		got := make([]string, len(result.Files))
		for idx, f := range result.Files {
			got[idx] = filepath.Base(f.Path)
		}
		if !sort.StringsAreSorted(got) {
			t.Errorf("outcomes not in sorted order: %v", got)
		}
	}
}

func TestRunner_Run_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.ts": "keep();\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := config.NewConfig()
	r := newTestRunner(t, cfg)

	_, err := r.Run(ctx, runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Config:     cfg,
	})
	if err == nil {
		t.Fatal("expected cancellation error")
	}
	if !strings.Contains(err.Error(), "cancelled") {
		t.Errorf("unexpected error: %v", err)
	}
}
