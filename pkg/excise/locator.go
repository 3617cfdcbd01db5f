package excise

// DeclarationMatch describes a located block declaration.
type DeclarationMatch struct {
	// Name is the declared identifier.
	Name string

	// Start is the offset of the first character of the declaration's
	// line, so the leading indentation is part of the span.
	Start int

	// OpenBrace is the offset of the opening brace of the body.
	OpenBrace int
}

// Locator finds named, line-anchored declarations in source text. Only
// occurrences in code state count; a name inside a string literal is
// never a declaration.
type Locator struct {
	profile   Profile
	modifiers map[string]struct{}
}

// NewLocator creates a Locator. modifiers are the keywords permitted
// between the start of the line and the declared name, such as "async"
// or "private".
func NewLocator(profile Profile, modifiers []string) *Locator {
	set := make(map[string]struct{}, len(modifiers))
	for _, m := range modifiers {
		set[m] = struct{}{}
	}
	return &Locator{profile: profile, modifiers: set}
}

// Locate returns the first declaration of name. A declaration is an
// occurrence of name preceded only by whitespace and modifier keywords
// on its line, followed by an optional parenthesized parameter list, an
// optional ": type" annotation, and an opening brace. Call sites and
// partial-identifier matches are rejected.
func (l *Locator) Locate(source []byte, name string) (DeclarationMatch, bool) {
	if name == "" {
		return DeclarationMatch{}, false
	}

	tracker := NewTracker(l.profile)
	lineStart := 0
	for i := 0; i < len(source); i++ {
		inCode := tracker.InCode()
		ch := source[i]
		tracker.Advance(ch)
		if ch == '\n' {
			lineStart = i + 1
			continue
		}
		if !inCode || ch != name[0] {
			continue
		}
		if !matchesIdentifier(source, i, name) {
			continue
		}
		if !l.anchored(source[lineStart:i]) {
			continue
		}
		open, ok := l.findOpenBrace(source, i+len(name))
		if !ok {
			continue
		}
		return DeclarationMatch{Name: name, Start: lineStart, OpenBrace: open}, true
	}
	return DeclarationMatch{}, false
}

// matchesIdentifier reports whether source[at:] begins with name on
// identifier boundaries, so "log" does not match inside "logger".
func matchesIdentifier(source []byte, at int, name string) bool {
	if at+len(name) > len(source) {
		return false
	}
	if string(source[at:at+len(name)]) != name {
		return false
	}
	if at > 0 && isIdentByte(source[at-1]) {
		return false
	}
	if at+len(name) < len(source) && isIdentByte(source[at+len(name)]) {
		return false
	}
	return true
}

// anchored reports whether the text between the line start and the name
// consists only of whitespace and modifier keywords.
func (l *Locator) anchored(prefix []byte) bool {
	start := -1
	for i := 0; i <= len(prefix); i++ {
		if i < len(prefix) && !isSpaceByte(prefix[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			if _, ok := l.modifiers[string(prefix[start:i])]; !ok {
				return false
			}
			start = -1
		}
	}
	return true
}

// findOpenBrace scans forward from the end of the name to the opening
// brace of the body. The parameter list is walked with full lexical
// awareness so a ")" inside a default-value string does not end it. The
// trailer between the parameters and the brace (a ": Promise<void>" or
// "error" return type) is consumed up to the brace, giving up at a
// statement boundary or a blank line.
func (l *Locator) findOpenBrace(source []byte, from int) (int, bool) {
	i := skipSpace(source, from)
	if i < len(source) && source[i] == '(' {
		end, ok := l.skipParens(source, i)
		if !ok {
			return 0, false
		}
		i = end
	}

	tracker := NewTracker(l.profile)
	newlines := 0
	for ; i < len(source); i++ {
		ch := source[i]
		if tracker.Advance(ch) != StateCode {
			newlines = 0
			continue
		}
		switch ch {
		case '{':
			return i, true
		case ';', '=':
			return 0, false
		case '\n':
			newlines++
			if newlines == 2 {
				return 0, false
			}
		case ' ', '\t', '\r':
		default:
			newlines = 0
		}
	}
	return 0, false
}

// skipParens returns the offset one past the parenthesis matching the
// one at open.
func (l *Locator) skipParens(source []byte, open int) (int, bool) {
	tracker := NewTracker(l.profile)
	depth := 0
	for i := open; i < len(source); i++ {
		state := tracker.Advance(source[i])
		if state != StateCode {
			continue
		}
		switch source[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}

func isIdentByte(ch byte) bool {
	return ch == '_' || ch == '$' ||
		(ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9')
}

func isSpaceByte(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func skipSpace(source []byte, from int) int {
	i := from
	for i < len(source) && isSpaceByte(source[i]) {
		i++
	}
	return i
}
