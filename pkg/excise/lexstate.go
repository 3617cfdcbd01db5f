package excise

// LexState classifies a position in the source as code, inside one of the
// string kinds, or escaped.
type LexState int

const (
	// StateCode is ordinary code outside any string literal.
	StateCode LexState = iota

	// StateSingle is inside a single-quoted string.
	StateSingle

	// StateDouble is inside a double-quoted string.
	StateDouble

	// StateTemplate is inside a template/raw string.
	StateTemplate

	// StateEscaped is the transient state after a backslash inside a
	// string; it applies to exactly one character.
	StateEscaped
)

// String returns a human-readable state name.
func (s LexState) String() string {
	switch s {
	case StateCode:
		return "code"
	case StateSingle:
		return "single-quote string"
	case StateDouble:
		return "double-quote string"
	case StateTemplate:
		return "template string"
	case StateEscaped:
		return "escaped"
	default:
		return "unknown"
	}
}

// InString reports whether the state is inside any string kind.
func (s LexState) InString() bool {
	return s == StateSingle || s == StateDouble || s == StateTemplate || s == StateEscaped
}

// Tracker is the character-by-character lexical state machine. It is the
// sole source of truth for whether a brace is structurally significant.
type Tracker struct {
	profile Profile
	state   LexState
	resume  LexState // string state to restore after an escape
}

// NewTracker creates a Tracker starting in StateCode.
func NewTracker(profile Profile) *Tracker {
	return &Tracker{profile: profile, state: StateCode}
}

// State returns the state before the next character is consumed.
func (t *Tracker) State() LexState {
	return t.state
}

// InCode reports whether the tracker is currently in code state.
func (t *Tracker) InCode() bool {
	return t.state == StateCode
}

// Advance consumes one character and returns the resulting state.
// Braces are structurally significant only when the returned state is
// StateCode.
func (t *Tracker) Advance(ch byte) LexState {
	switch t.state {
	case StateEscaped:
		// One character is consumed, then the string state resumes.
		t.state = t.resume

	case StateCode:
		// A backslash has no escaping effect outside strings.
		switch {
		case delim(ch, t.profile.Single):
			t.state = StateSingle
		case delim(ch, t.profile.Double):
			t.state = StateDouble
		case delim(ch, t.profile.Template):
			t.state = StateTemplate
		}

	case StateSingle:
		t.advanceString(ch, t.profile.Single, true)

	case StateDouble:
		t.advanceString(ch, t.profile.Double, true)

	case StateTemplate:
		t.advanceString(ch, t.profile.Template, !t.profile.RawTemplate)
	}

	return t.state
}

// advanceString handles one character inside a string literal. A string
// state is exited only by its own delimiter, never by a brace.
func (t *Tracker) advanceString(ch, closing byte, escapes bool) {
	switch {
	case escapes && ch == '\\':
		t.resume = t.state
		t.state = StateEscaped
	case delim(ch, closing):
		t.state = StateCode
	}
}

// delim reports whether ch matches an enabled delimiter byte.
func delim(ch, want byte) bool {
	return want != 0 && ch == want
}
