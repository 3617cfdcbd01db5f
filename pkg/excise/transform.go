package excise

import (
	"fmt"
	"strings"

	"github.com/yaklabco/excise/pkg/edit"
)

// Options configure a single transform pass.
type Options struct {
	// Profile selects the lexical profile for the buffer's language.
	Profile Profile

	// Marker is the replacement template for an excised block. The
	// "{name}" placeholder expands to the block name. The block's
	// leading indentation is preserved in front of it.
	Marker string

	// Modifiers are the keywords permitted before a declared name.
	Modifiers []string

	// Rules are the compiled pattern rules to run alongside block
	// removal.
	Rules []CompiledRule
}

// Result carries the outcome of a transform. Output is always valid:
// when some requested work could not be done the remaining edits are
// still applied and the failures are reported as diagnostics.
type Result struct {
	// Output is the edited buffer.
	Output []byte

	// Edits are the accepted edits, sorted by start offset.
	Edits []edit.TextEdit

	// Diagnostics are the issues found, in discovery order.
	Diagnostics []Diagnostic

	// Changed reports whether Output differs from the input.
	Changed bool
}

// directive is a candidate edit awaiting conflict resolution.
type directive struct {
	edit    edit.TextEdit
	subject string
}

// Transform removes the named blocks from source and applies the
// configured pattern rules, in one conflict-checked pass. The input
// buffer is never modified. Blocks are processed in caller order, then
// rules in configuration order; when two edits overlap, the
// later-discovered one is dropped with an overlapping-edit diagnostic.
func Transform(source []byte, blocks []string, opts Options) (Result, error) {
	index := NewLineIndex(source)
	locator := NewLocator(opts.Profile, opts.Modifiers)

	var res Result
	var pending []directive

	for _, name := range blocks {
		match, ok := locator.Locate(source, name)
		if !ok {
			res.Diagnostics = append(res.Diagnostics, newDiagnostic(
				CodeBlockNotFound, name,
				fmt.Sprintf("block %q not found", name),
				nil, -1))
			continue
		}

		end, ok := ScanBalanced(source, match.OpenBrace, opts.Profile)
		if !ok {
			res.Diagnostics = append(res.Diagnostics, newDiagnostic(
				CodeUnbalancedBlock, name,
				fmt.Sprintf("block %q never closes", name),
				index, match.Start))
			continue
		}
		end = consumeTrailing(source, end)

		indent := leadingIndent(source, match.Start)
		pending = append(pending, directive{
			edit: edit.TextEdit{
				Start: match.Start,
				End:   end,
				Text:  indent + expandMarker(opts.Marker, name),
			},
			subject: name,
		})
	}

	for i := range opts.Rules {
		rule := &opts.Rules[i]
		edits := rule.Edits(source)
		if len(edits) == 0 {
			res.Diagnostics = append(res.Diagnostics, newDiagnostic(
				CodePatternNoMatch, rule.ID,
				fmt.Sprintf("rule %s matched nothing", rule.ID),
				nil, -1))
			continue
		}
		for _, e := range edits {
			pending = append(pending, directive{edit: e, subject: rule.ID})
		}
	}

	var accepted []directive
	for _, d := range pending {
		if prev := firstOverlap(d.edit, accepted); prev != nil {
			res.Diagnostics = append(res.Diagnostics, newDiagnostic(
				CodeOverlappingEdit, d.subject,
				fmt.Sprintf("edit for %s overlaps an earlier edit for %s",
					d.subject, prev.subject),
				index, d.edit.Start))
			continue
		}
		accepted = append(accepted, d)
	}

	res.Edits = make([]edit.TextEdit, 0, len(accepted))
	for _, d := range accepted {
		res.Edits = append(res.Edits, d.edit)
	}

	prepared, err := edit.Prepare(res.Edits, len(source))
	if err != nil {
		return Result{}, fmt.Errorf("prepare edits: %w", err)
	}
	res.Edits = prepared
	res.Output = edit.Apply(source, prepared)
	res.Changed = len(prepared) > 0
	return res, nil
}

// firstOverlap returns the first accepted directive overlapping e, or
// nil.
func firstOverlap(e edit.TextEdit, accepted []directive) *directive {
	for i := range accepted {
		if e.Overlaps(accepted[i].edit) {
			return &accepted[i]
		}
	}
	return nil
}

// expandMarker fills the {name} placeholder in a marker template.
func expandMarker(marker, name string) string {
	return strings.ReplaceAll(marker, "{name}", name)
}

// leadingIndent returns the run of spaces and tabs at lineStart.
func leadingIndent(source []byte, lineStart int) string {
	i := lineStart
	for i < len(source) && (source[i] == ' ' || source[i] == '\t') {
		i++
	}
	return string(source[lineStart:i])
}

// consumeTrailing extends a block span past trailing whitespace on the
// closing line, its newline, and any blank lines that follow, so
// removing the block does not leave an empty gap.
func consumeTrailing(source []byte, end int) int {
	i := end
	for i < len(source) && (source[i] == ' ' || source[i] == '\t') {
		i++
	}
	if i < len(source) && source[i] == '\r' {
		i++
	}
	if i < len(source) && source[i] == '\n' {
		i++
	} else {
		// No newline after the brace; keep the span at the brace so
		// trailing code on the same line survives.
		return end
	}

	for {
		j := i
		for j < len(source) && (source[j] == ' ' || source[j] == '\t') {
			j++
		}
		if j < len(source) && source[j] == '\r' {
			j++
		}
		if j < len(source) && source[j] == '\n' {
			i = j + 1
			continue
		}
		return i
	}
}
