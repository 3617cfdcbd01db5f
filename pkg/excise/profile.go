// Package excise locates named brace-delimited blocks in source text and
// replaces them, together with pattern-rule substitutions, in a single
// conflict-checked pass.
package excise

// Profile describes the string-literal delimiters of a language family.
// A zero delimiter byte disables that string kind.
type Profile struct {
	// Name identifies the profile in logs and diagnostics.
	Name string

	// Single is the single-quote string delimiter.
	Single byte

	// Double is the double-quote string delimiter.
	Double byte

	// Template is the template/raw string delimiter (backtick).
	Template byte

	// RawTemplate disables backslash escapes inside template strings.
	// Go raw strings take no escapes; ECMAScript template literals do.
	RawTemplate bool
}

// ECMAScriptProfile covers JavaScript and TypeScript: ', ", and template
// literals, all with backslash escapes.
func ECMAScriptProfile() Profile {
	return Profile{
		Name:     "ecmascript",
		Single:   '\'',
		Double:   '"',
		Template: '`',
	}
}

// GoProfile covers Go: rune and interpreted string literals with escapes,
// raw backtick strings without.
func GoProfile() Profile {
	return Profile{
		Name:        "go",
		Single:      '\'',
		Double:      '"',
		Template:    '`',
		RawTemplate: true,
	}
}

// DefaultProfile is used when no language-specific profile applies.
// It recognizes single- and double-quoted strings only.
func DefaultProfile() Profile {
	return Profile{
		Name:   "default",
		Single: '\'',
		Double: '"',
	}
}

// ProfileForLanguage returns the profile for a normalized language name.
// Unknown languages fall back to DefaultProfile.
func ProfileForLanguage(lang string) Profile {
	switch lang {
	case "typescript", "javascript", "tsx", "jsx", "ecmascript":
		return ECMAScriptProfile()
	case "go":
		return GoProfile()
	default:
		return DefaultProfile()
	}
}
