package configloader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/excise/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	// Create temp directory with no config files
	tmpDir := t.TempDir()

	ctx := context.Background()
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
	}

	result, err := Load(ctx, opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}

	// Check defaults are applied
	if result.Config.Language != config.LanguageAuto {
		t.Errorf("expected language %q, got %q", config.LanguageAuto, result.Config.Language)
	}
	if result.Config.Marker != config.DefaultMarker {
		t.Errorf("expected marker %q, got %q", config.DefaultMarker, result.Config.Marker)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	// Create a project config
	// Note: jobs is a CLI-only option (yaml:"-"), so it won't be loaded from file
	configContent := `
language: typescript
blocks:
  - deployLegacyArtifact
rules:
  - id: prune-enum
    pattern: "'workflow',\\s*"
    replace: ""
`
	configPath := filepath.Join(tmpDir, ".excise.yml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ctx := context.Background()
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}

	result, err := Load(ctx, opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Language != "typescript" {
		t.Errorf("expected language %q, got %q", "typescript", result.Config.Language)
	}

	if len(result.Config.Blocks) != 1 || result.Config.Blocks[0] != "deployLegacyArtifact" {
		t.Errorf("unexpected blocks: %v", result.Config.Blocks)
	}

	if len(result.Config.Rules) != 1 || result.Config.Rules[0].ID != "prune-enum" {
		t.Errorf("unexpected rules: %v", result.Config.Rules)
	}

	if len(result.LoadedFrom) != 1 {
		t.Errorf("expected 1 loaded file, got %d", len(result.LoadedFrom))
	}
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	// Create a custom config
	// Note: format is a CLI-only option (yaml:"-"), so we test marker instead
	configContent := `
language: go
marker: "// gone: {name}\n"
`
	customPath := filepath.Join(tmpDir, "custom-config.yml")
	if err := os.WriteFile(customPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ctx := context.Background()
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		ExplicitPath:       customPath,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}

	result, err := Load(ctx, opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Language != "go" {
		t.Errorf("expected language %q, got %q", "go", result.Config.Language)
	}

	if result.Config.Marker != "// gone: {name}\n" {
		t.Errorf("unexpected marker %q", result.Config.Marker)
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	// Create a project config
	configContent := `
language: typescript
`
	configPath := filepath.Join(tmpDir, ".excise.yml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ctx := context.Background()
	cliCfg := &config.Config{
		Language: "go",
		Jobs:     8,
		DryRun:   true,
	}
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
		CLIConfig:          cliCfg,
	}

	result, err := Load(ctx, opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// CLI should override project config
	if result.Config.Language != "go" {
		t.Errorf("expected language %q (CLI override), got %q", "go", result.Config.Language)
	}

	if result.Config.Jobs != 8 {
		t.Errorf("expected jobs 8 (CLI override), got %d", result.Config.Jobs)
	}

	if !result.Config.DryRun {
		t.Error("expected dry_run true (CLI override)")
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	// Create an invalid config
	configContent := `
backups:
  mode: elsewhere
`
	configPath := filepath.Join(tmpDir, ".excise.yml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ctx := context.Background()
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}

	_, err := Load(ctx, opts)
	if err == nil {
		t.Fatal("expected validation error for invalid backup mode")
	}
}

func TestLoad_InvalidRulePattern(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	configContent := `
rules:
  - id: broken
    pattern: "(unclosed"
    replace: ""
`
	configPath := filepath.Join(tmpDir, ".excise.yml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ctx := context.Background()
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}

	_, err := Load(ctx, opts)
	if err == nil {
		t.Fatal("expected validation error for invalid rule pattern")
	}
	if !strings.Contains(err.Error(), "regular expression") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_UnknownLanguageWarns(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	configContent := `
language: cobol
`
	configPath := filepath.Join(tmpDir, ".excise.yml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ctx := context.Background()
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}

	result, err := Load(ctx, opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	foundWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "cobol") {
			foundWarning = true
			break
		}
	}
	if !foundWarning {
		t.Errorf("expected warning about unknown language, got warnings: %v", result.Warnings)
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	opts := LoadOptions{
		WorkingDir:         t.TempDir(),
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
	}

	_, err := Load(ctx, opts)
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("EXCISE_LANGUAGE", "go")
	t.Setenv("EXCISE_JOBS", "4")
	t.Setenv("EXCISE_BLOCKS", "alpha, beta")
	t.Setenv("EXCISE_NO_BACKUPS", "true")

	cfg := config.NewConfig()
	if err := LoadFromEnv(cfg); err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	if cfg.Language != "go" {
		t.Errorf("expected language go, got %q", cfg.Language)
	}
	if cfg.Jobs != 4 {
		t.Errorf("expected jobs 4, got %d", cfg.Jobs)
	}
	if len(cfg.Blocks) != 2 || cfg.Blocks[0] != "alpha" || cfg.Blocks[1] != "beta" {
		t.Errorf("unexpected blocks: %v", cfg.Blocks)
	}
	if !cfg.NoBackups {
		t.Error("expected no_backups true")
	}
}

func TestLoadFromEnv_InvalidValue(t *testing.T) {
	t.Setenv("EXCISE_JOBS", "lots")

	cfg := config.NewConfig()
	if err := LoadFromEnv(cfg); err == nil {
		t.Fatal("expected error for invalid EXCISE_JOBS")
	}
}

func TestMerge_SlicesReplace(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	base.Blocks = []string{"a", "b"}

	override := &config.Config{Blocks: []string{"c"}}

	merged := merge(base, override)
	if len(merged.Blocks) != 1 || merged.Blocks[0] != "c" {
		t.Errorf("expected override to replace blocks, got %v", merged.Blocks)
	}

	// nil slice in override keeps base
	merged = merge(base, &config.Config{})
	if len(merged.Blocks) != 2 {
		t.Errorf("expected base blocks preserved, got %v", merged.Blocks)
	}
}
