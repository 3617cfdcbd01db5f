package excise

import (
	"fmt"
	"regexp"

	"github.com/yaklabco/excise/pkg/config"
	"github.com/yaklabco/excise/pkg/edit"
)

// CompiledRule is a pattern rule ready to run against a buffer. Rules
// are matched against the original buffer, never intermediate edit
// results, so rule order cannot change what a rule sees.
type CompiledRule struct {
	// ID identifies the rule in diagnostics and reports.
	ID string

	pattern *regexp.Regexp
	replace string
}

// CompileRules compiles the configured pattern rules. Literal rules have
// their pattern quoted so regex metacharacters match themselves.
func CompileRules(rules []config.RuleConfig) ([]CompiledRule, error) {
	compiled := make([]CompiledRule, 0, len(rules))
	for _, rc := range rules {
		expr := rc.Pattern
		if rc.Literal {
			expr = regexp.QuoteMeta(expr)
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("rule %s: compile pattern: %w", rc.ID, err)
		}
		compiled = append(compiled, CompiledRule{
			ID:      rc.ID,
			pattern: re,
			replace: rc.Replace,
		})
	}
	return compiled, nil
}

// Edits returns one replacement edit per match in source. The
// replacement text may reference capture groups with $1, $name syntax.
func (r *CompiledRule) Edits(source []byte) []edit.TextEdit {
	matches := r.pattern.FindAllSubmatchIndex(source, -1)
	if matches == nil {
		return nil
	}

	edits := make([]edit.TextEdit, 0, len(matches))
	for _, m := range matches {
		text := r.pattern.Expand(nil, []byte(r.replace), source, m)
		edits = append(edits, edit.TextEdit{
			Start: m[0],
			End:   m[1],
			Text:  string(text),
		})
	}
	return edits
}
