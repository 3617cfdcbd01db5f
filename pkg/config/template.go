package config

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes commented documentation for every option.
	Full bool
}

// GenerateTemplate produces a starter .excise.yml.
func GenerateTemplate(opts TemplateOptions) []byte {
	if opts.Full {
		return []byte(fullTemplate)
	}
	return []byte(minimalTemplate)
}

const minimalTemplate = `# excise configuration
# See 'excise init --full' for a documented template.

language: auto
marker: "// REMOVED: {name}\n"

blocks: []
rules: []
`

const fullTemplate = `# excise configuration
#
# excise removes named brace-delimited blocks (functions, methods) from
# source files, replacing each with a marker, and applies a set of
# pattern rules for smaller textual cleanups.

# String-literal profile used when deciding which braces are real code.
# "auto" detects the language per file; explicit values: typescript,
# javascript, go.
language: auto

# Replacement left in place of each excised block.
# {name} expands to the block name.
marker: "// REMOVED: {name}\n"

# Keywords allowed before a block name in its declaration. Tokens are
# opaque; add project-specific qualifiers here if needed.
# modifiers: [function, func, async, static, export, public, private, protected]

# Names of blocks to excise. Each name matches the first declaration of
# the form: [modifiers] name(params) {
blocks: []
#  - deployLegacyArtifact
#  - validateLegacyDefinition

# Pattern rules: find/replace directives applied alongside excisions.
# Patterns are regular expressions unless literal is true, matched
# against the original file content. Replacements may use $1 group
# references.
rules: []
#  - id: prune-legacy-enum
#    pattern: "'widget',\\s*'workflow',\\s*'application'"
#    replace: "'widget', 'application'"
#  - id: drop-legacy-case
#    pattern: "case 'workflow':[\\s\\S]*?break;"
#    replace: "// workflow case removed"
#  - id: cleanup-description
#    pattern: "widgets, workflows, applications"
#    replace: "widgets, applications"
#    literal: true

# File extensions processed during discovery.
# extensions: [.ts, .tsx, .js, .jsx, .mjs, .cjs, .go]

# Glob patterns for files to skip.
# ignore:
#   - "node_modules/**"
#   - "**/*.min.js"

# Backups of rewritten files.
backups:
  enabled: true
  mode: sidecar
`
