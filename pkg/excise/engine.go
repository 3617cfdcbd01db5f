package excise

import (
	"context"
	"fmt"

	"github.com/yaklabco/excise/pkg/config"
	"github.com/yaklabco/excise/pkg/edit"
	"github.com/yaklabco/excise/pkg/langdetect"
)

// FileResult contains the outcome of transforming a single file.
type FileResult struct {
	// Path is the file the buffer came from.
	Path string

	// Language is the normalized language the buffer was treated as.
	Language string

	// Original is the input buffer.
	Original []byte

	// Output is the edited buffer. Diagnostics always point into
	// Original.
	Output []byte

	// Edits are the accepted edits, sorted by start offset.
	Edits []edit.TextEdit

	// Diagnostics contains all issues found.
	Diagnostics []Diagnostic

	// Changed reports whether Output differs from Original.
	Changed bool
}

// HasErrors reports whether any diagnostic is at error severity. An
// erroring file must not be written back.
func (fr *FileResult) HasErrors() bool {
	for i := range fr.Diagnostics {
		if fr.Diagnostics[i].IsError() {
			return true
		}
	}
	return false
}

// IssueCount returns the total number of diagnostics.
func (fr *FileResult) IssueCount() int {
	return len(fr.Diagnostics)
}

// Engine applies a configuration's block list and pattern rules to file
// buffers. It is safe for concurrent use once constructed.
type Engine struct {
	cfg   *config.Config
	rules []CompiledRule
}

// NewEngine creates an Engine from a validated configuration, compiling
// its pattern rules up front.
func NewEngine(cfg *config.Config) (*Engine, error) {
	rules, err := CompileRules(cfg.Rules)
	if err != nil {
		return nil, fmt.Errorf("compile rules: %w", err)
	}
	return &Engine{cfg: cfg, rules: rules}, nil
}

// Rules returns the compiled pattern rules.
func (e *Engine) Rules() []CompiledRule {
	return e.rules
}

// TransformContent transforms one buffer. The language is taken from
// configuration, or detected from the path and content when set to
// "auto".
func (e *Engine) TransformContent(ctx context.Context, path string, content []byte) (*FileResult, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("transform cancelled: %w", ctx.Err())
	default:
	}

	lang := e.cfg.Language
	if lang == "" || lang == config.LanguageAuto {
		lang = langdetect.Detect(path, content)
	}

	res, err := Transform(content, e.cfg.Blocks, Options{
		Profile:   ProfileForLanguage(lang),
		Marker:    e.cfg.Marker,
		Modifiers: e.cfg.Modifiers,
		Rules:     e.rules,
	})
	if err != nil {
		return nil, fmt.Errorf("transform %s: %w", path, err)
	}

	for i := range res.Diagnostics {
		if res.Diagnostics[i].FilePath == "" {
			res.Diagnostics[i].FilePath = path
		}
	}

	return &FileResult{
		Path:        path,
		Language:    lang,
		Original:    content,
		Output:      res.Output,
		Edits:       res.Edits,
		Diagnostics: res.Diagnostics,
		Changed:     res.Changed,
	}, nil
}
