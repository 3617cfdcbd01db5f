// Package langdetect resolves the language of a source file so the
// right lexical profile can be applied. It uses go-enry, preferring the
// file extension and falling back to content classification.
package langdetect

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language constants for the languages the excision engine has
// dedicated lexical profiles for.
const (
	LangGo         = "go"
	LangJavaScript = "javascript"
	LangTypeScript = "typescript"
	LangText       = "text"
)

// Detect returns the normalized language name for a file. Returns
// "text" when detection fails.
func Detect(path string, content []byte) string {
	// Strategy 1: extension lookup, the common case for source trees.
	// Ambiguous extensions (".ts" is also Qt XML) resolve in favor of
	// the languages the engine has profiles for.
	if langs := enry.GetLanguagesByExtension(path, content, nil); len(langs) > 0 {
		return normalize(pick(langs))
	}

	if len(content) == 0 {
		return LangText
	}

	// Strategy 2: shebang line.
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	// Strategy 3: full enry detection on name plus content, then the
	// classifier restricted to languages we have profiles for, plus
	// common neighbors so noise does not win.
	if lang := enry.GetLanguage(filepath.Base(path), content); lang != "" {
		return normalize(lang)
	}

	candidates := []string{
		"Go", "JavaScript", "TypeScript", "Python", "Ruby",
		"Rust", "Java", "C", "C++", "Shell",
	}
	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return normalize(lang)
	}

	return LangText
}

// pick chooses among candidate languages for an ambiguous extension,
// preferring the ones with dedicated lexical profiles.
func pick(langs []string) string {
	for _, lang := range langs {
		switch lang {
		case "TypeScript", "TSX", "JavaScript", "JSX", "Go":
			return lang
		}
	}
	return langs[0]
}

// normalize converts go-enry language names to the lowercase identifiers
// used in configuration.
func normalize(lang string) string {
	switch lang {
	case "TSX":
		return LangTypeScript
	case "JSX":
		return LangJavaScript
	}
	return strings.ToLower(lang)
}
