package excise_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yaklabco/excise/pkg/config"
	"github.com/yaklabco/excise/pkg/excise"
)

func ecmaOptions(rules ...excise.CompiledRule) excise.Options {
	return excise.Options{
		Profile:   excise.ECMAScriptProfile(),
		Marker:    config.DefaultMarker,
		Modifiers: config.DefaultModifiers(),
		Rules:     rules,
	}
}

func mustCompile(t *testing.T, rules ...config.RuleConfig) []excise.CompiledRule {
	t.Helper()
	compiled, err := excise.CompileRules(rules)
	require.NoError(t, err)
	return compiled
}

func diagCodes(diags []excise.Diagnostic) []excise.DiagnosticCode {
	codes := make([]excise.DiagnosticCode, len(diags))
	for i, d := range diags {
		codes[i] = d.Code
	}
	return codes
}

func TestTransform_RemovesBlock(t *testing.T) {
	t.Parallel()

	source := "function keep() {\n" +
		"  return 1;\n" +
		"}\n" +
		"\n" +
		"function drop() {\n" +
		"  const s = \"}\";\n" +
		"  return 2;\n" +
		"}\n" +
		"\n" +
		"function after() {\n" +
		"  return 3;\n" +
		"}\n"

	res, err := excise.Transform([]byte(source), []string{"drop"}, ecmaOptions())
	require.NoError(t, err)

	want := "function keep() {\n" +
		"  return 1;\n" +
		"}\n" +
		"\n" +
		"// REMOVED: drop\n" +
		"function after() {\n" +
		"  return 3;\n" +
		"}\n"
	assert.Equal(t, want, string(res.Output))
	assert.True(t, res.Changed)
	assert.Empty(t, res.Diagnostics)
}

func TestTransform_PreservesIndentation(t *testing.T) {
	t.Parallel()

	source := "class Service {\n" +
		"  private async doWork(): Promise<void> {\n" +
		"    await this.run();\n" +
		"  }\n" +
		"\n" +
		"  other() {}\n" +
		"}\n"

	res, err := excise.Transform([]byte(source), []string{"doWork"}, ecmaOptions())
	require.NoError(t, err)

	want := "class Service {\n" +
		"  // REMOVED: doWork\n" +
		"  other() {}\n" +
		"}\n"
	assert.Equal(t, want, string(res.Output))
}

func TestTransform_LiteralBracesDoNotConfuseScanning(t *testing.T) {
	t.Parallel()

	source := "function render() {\n" +
		"  return `<div>${body}</div>}`;\n" +
		"}\n" +
		"function tail() {\n" +
		"  return '}';\n" +
		"}\n"

	res, err := excise.Transform([]byte(source), []string{"render"}, ecmaOptions())
	require.NoError(t, err)

	want := "// REMOVED: render\n" +
		"function tail() {\n" +
		"  return '}';\n" +
		"}\n"
	assert.Equal(t, want, string(res.Output))
}

func TestTransform_NoWorkIsIdentity(t *testing.T) {
	t.Parallel()

	source := []byte("function f() {\n  return 1;\n}\n")
	res, err := excise.Transform(source, nil, ecmaOptions())
	require.NoError(t, err)

	assert.Equal(t, string(source), string(res.Output))
	assert.False(t, res.Changed)
	assert.Empty(t, res.Diagnostics)
}

func TestTransform_BlockNotFound(t *testing.T) {
	t.Parallel()

	source := []byte("function logger() {\n  return 1;\n}\n")
	res, err := excise.Transform(source, []string{"log"}, ecmaOptions())
	require.NoError(t, err)

	assert.Equal(t, string(source), string(res.Output))
	assert.False(t, res.Changed)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, excise.CodeBlockNotFound, res.Diagnostics[0].Code)
	assert.Equal(t, config.SeverityWarning, res.Diagnostics[0].Severity)
	assert.Equal(t, "log", res.Diagnostics[0].Subject)
}

func TestTransform_UnbalancedBlock(t *testing.T) {
	t.Parallel()

	source := []byte("function keep() {\n  return 1;\n}\n" +
		"function broken() {\n  if (x) {\n    y();\n")
	res, err := excise.Transform(source, []string{"keep", "broken"}, ecmaOptions())
	require.NoError(t, err)

	require.Len(t, res.Diagnostics, 1)
	diag := res.Diagnostics[0]
	assert.Equal(t, excise.CodeUnbalancedBlock, diag.Code)
	assert.Equal(t, config.SeverityError, diag.Severity)
	assert.Equal(t, "broken", diag.Subject)
	assert.Equal(t, 4, diag.StartLine)
	assert.Equal(t, 1, diag.StartColumn)

	// The balanced block is still removed: partial success.
	assert.Contains(t, string(res.Output), "// REMOVED: keep")
	assert.Contains(t, string(res.Output), "function broken()")
}

func TestTransform_OverlappingBlockDropped(t *testing.T) {
	t.Parallel()

	source := []byte("function outer() {\n" +
		"  function inner() {\n" +
		"    return 1;\n" +
		"  }\n" +
		"}\n")
	res, err := excise.Transform(source, []string{"outer", "inner"}, ecmaOptions())
	require.NoError(t, err)

	assert.Equal(t, "// REMOVED: outer\n", string(res.Output))
	require.Len(t, res.Diagnostics, 1)
	diag := res.Diagnostics[0]
	assert.Equal(t, excise.CodeOverlappingEdit, diag.Code)
	assert.Equal(t, "inner", diag.Subject)
	assert.Contains(t, diag.Message, "outer")
}

func TestTransform_PatternRules(t *testing.T) {
	t.Parallel()

	source := "const kind = LegacyKind.Old;\n" +
		"switch (kind) {\n" +
		"  case LegacyKind.Old:\n" +
		"    handle();\n" +
		"    break;\n" +
		"}\n"
	rules := mustCompile(t,
		config.RuleConfig{ID: "modern-kind", Pattern: `LegacyKind\.Old`, Replace: "Kind.Current"},
		config.RuleConfig{ID: "never-hits", Pattern: `LegacyKind\.Ancient`, Replace: ""},
	)

	res, err := excise.Transform([]byte(source), nil, ecmaOptions(rules...))
	require.NoError(t, err)

	assert.Contains(t, string(res.Output), "const kind = Kind.Current;")
	assert.Contains(t, string(res.Output), "case Kind.Current:")
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, excise.CodePatternNoMatch, res.Diagnostics[0].Code)
	assert.Equal(t, config.SeverityInfo, res.Diagnostics[0].Severity)
	assert.Equal(t, "never-hits", res.Diagnostics[0].Subject)
}

func TestTransform_RuleCaptureExpansion(t *testing.T) {
	t.Parallel()

	rules := mustCompile(t, config.RuleConfig{
		ID:      "quote-kind",
		Pattern: `kind: (\w+),`,
		Replace: `kind: "$1",`,
	})

	res, err := excise.Transform([]byte("const a = { kind: alpha, n: 1 };\n"), nil, ecmaOptions(rules...))
	require.NoError(t, err)
	assert.Equal(t, "const a = { kind: \"alpha\", n: 1 };\n", string(res.Output))
}

func TestTransform_LiteralRule(t *testing.T) {
	t.Parallel()

	rules := mustCompile(t, config.RuleConfig{
		ID:      "drop-marker",
		Pattern: "value.(x)",
		Replace: "y",
		Literal: true,
	})

	res, err := excise.Transform([]byte("value.(x) and valueA(x)\n"), nil, ecmaOptions(rules...))
	require.NoError(t, err)
	assert.Equal(t, "y and valueA(x)\n", string(res.Output),
		"literal rules must not treat '.' or parens as regex syntax")
}

func TestTransform_RuleInsideRemovedBlockLoses(t *testing.T) {
	t.Parallel()

	source := "function drop() {\n" +
		"  legacyCall();\n" +
		"}\n" +
		"legacyCall();\n"
	rules := mustCompile(t, config.RuleConfig{
		ID:      "no-legacy-call",
		Pattern: `legacyCall\(\);`,
		Replace: "modernCall();",
	})

	res, err := excise.Transform([]byte(source), []string{"drop"}, ecmaOptions(rules...))
	require.NoError(t, err)

	assert.Equal(t, "// REMOVED: drop\nmodernCall();\n", string(res.Output))
	require.Len(t, res.Diagnostics, 1)
	diag := res.Diagnostics[0]
	assert.Equal(t, excise.CodeOverlappingEdit, diag.Code)
	assert.Equal(t, "no-legacy-call", diag.Subject)
}

func TestTransform_RulesMatchOriginalBuffer(t *testing.T) {
	t.Parallel()

	// The second rule's pattern appears only after the first rule's
	// replacement would run; matching against the original buffer means
	// it must report no match.
	rules := mustCompile(t,
		config.RuleConfig{ID: "a-to-b", Pattern: "alpha", Replace: "beta"},
		config.RuleConfig{ID: "b-to-c", Pattern: "beta", Replace: "gamma"},
	)

	res, err := excise.Transform([]byte("alpha\n"), nil, ecmaOptions(rules...))
	require.NoError(t, err)

	assert.Equal(t, "beta\n", string(res.Output))
	assert.Equal(t,
		[]excise.DiagnosticCode{excise.CodePatternNoMatch},
		diagCodes(res.Diagnostics))
}

func TestTransform_LengthArithmetic(t *testing.T) {
	t.Parallel()

	source := []byte("function drop() {\n  return 2;\n}\n\nkeep();\n")
	res, err := excise.Transform(source, []string{"drop"}, ecmaOptions())
	require.NoError(t, err)

	want := len(source)
	for _, e := range res.Edits {
		want += len(e.Text) - e.Len()
	}
	assert.Equal(t, want, len(res.Output))
}

func TestTransform_Idempotent(t *testing.T) {
	t.Parallel()

	source := []byte("function drop() {\n  return 2;\n}\nkeep();\n")
	first, err := excise.Transform(source, []string{"drop"}, ecmaOptions())
	require.NoError(t, err)
	require.True(t, first.Changed)

	second, err := excise.Transform(first.Output, []string{"drop"}, ecmaOptions())
	require.NoError(t, err)

	assert.Equal(t, string(first.Output), string(second.Output))
	assert.False(t, second.Changed)
	assert.Equal(t,
		[]excise.DiagnosticCode{excise.CodeBlockNotFound},
		diagCodes(second.Diagnostics))
}

func TestTransform_InputBufferUntouched(t *testing.T) {
	t.Parallel()

	source := []byte("function drop() {\n  return 2;\n}\n")
	saved := string(source)

	_, err := excise.Transform(source, []string{"drop"}, ecmaOptions())
	require.NoError(t, err)
	assert.Equal(t, saved, string(source))
}

func TestTransform_GoSource(t *testing.T) {
	t.Parallel()

	source := "package demo\n" +
		"\n" +
		"func drop() string {\n" +
		"\treturn `}`\n" +
		"}\n" +
		"\n" +
		"func keep() {}\n"
	opts := excise.Options{
		Profile:   excise.GoProfile(),
		Marker:    config.DefaultMarker,
		Modifiers: config.DefaultModifiers(),
	}

	res, err := excise.Transform([]byte(source), []string{"drop"}, opts)
	require.NoError(t, err)

	want := "package demo\n" +
		"\n" +
		"// REMOVED: drop\n" +
		"func keep() {}\n"
	assert.Equal(t, want, string(res.Output))
}

func TestTransform_CustomMarker(t *testing.T) {
	t.Parallel()

	opts := ecmaOptions()
	opts.Marker = "/* gone: {name} */\n"

	res, err := excise.Transform([]byte("function drop() {\n}\n"), []string{"drop"}, opts)
	require.NoError(t, err)
	assert.Equal(t, "/* gone: drop */\n", string(res.Output))
}
