// Package config defines core configuration types for excise.
// These types are pure data structures with no dependency on loaders.
package config

// Severity represents the severity level of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// RuleConfig describes one pattern rule: a textual find/replace directive
// applied alongside block excisions.
type RuleConfig struct {
	// ID identifies the rule in diagnostics and output.
	ID string `yaml:"id"`

	// Pattern is the text to find. Interpreted as a regular expression
	// unless Literal is true.
	Pattern string `yaml:"pattern"`

	// Replace is the replacement text. Regular-expression rules may use
	// $1-style group references.
	Replace string `yaml:"replace"`

	// Literal disables regular-expression interpretation of Pattern.
	Literal bool `yaml:"literal"`
}

// BackupsConfig controls backup behavior when rewriting files.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode"` // "sidecar" or "none"
}

// OutputFormat specifies the output format for results.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatDiff OutputFormat = "diff"
)

// DefaultMarker is the replacement text left in place of an excised block.
// The {name} placeholder expands to the block name.
const DefaultMarker = "// REMOVED: {name}\n"

// LanguageAuto selects the string-literal profile per file via detection.
const LanguageAuto = "auto"

// Config is the root configuration structure for excise.
type Config struct {
	// Language selects the string-literal profile ("auto", "typescript",
	// "javascript", "go", ...). "auto" detects per file.
	Language string `yaml:"language"`

	// Marker is the replacement template for excised blocks.
	// The {name} placeholder expands to the block name.
	Marker string `yaml:"marker"`

	// Modifiers are keywords allowed before a block name in a declaration
	// (visibility and async-like qualifiers, treated as opaque tokens).
	Modifiers []string `yaml:"modifiers"`

	// Blocks are the names of blocks to excise.
	Blocks []string `yaml:"blocks"`

	// Rules are pattern rules applied alongside block excisions.
	Rules []RuleConfig `yaml:"rules"`

	// Extensions are the file extensions processed during discovery
	// (lowercase, with leading dot).
	Extensions []string `yaml:"extensions"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore"`

	// Backups configures backup behavior when rewriting.
	Backups BackupsConfig `yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// DryRun shows what would change without writing files.
	DryRun bool `yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// Strict treats warnings as errors for the exit code.
	Strict bool `yaml:"-"`

	// NoBackups disables backup creation when rewriting.
	NoBackups bool `yaml:"-"`
}

// DefaultModifiers returns the default set of declaration qualifiers.
// The set covers the common TypeScript/JavaScript and Go spellings; the
// tokens are opaque and never interpreted.
func DefaultModifiers() []string {
	return []string{
		"function", "func",
		"async", "static", "export", "default",
		"public", "private", "protected", "readonly",
		"override", "abstract", "get", "set",
	}
}

// DefaultExtensions returns the default set of source file extensions.
func DefaultExtensions() []string {
	return []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs", ".go"}
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Language:   LanguageAuto,
		Marker:     DefaultMarker,
		Modifiers:  DefaultModifiers(),
		Blocks:     nil,
		Rules:      nil,
		Extensions: DefaultExtensions(),
		Ignore:     nil,
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Format: FormatText,
		Jobs:   0, // 0 means use GOMAXPROCS
	}
}
