package excise

// ScanBalanced finds the end of a brace-delimited block. open must be the
// offset of the opening brace. The returned offset is exclusive: one past
// the matching closing brace. Braces inside string literals do not affect
// the depth count.
//
// ok is false when the source ends before the block closes, which is the
// unbalanced-block condition.
func ScanBalanced(source []byte, open int, profile Profile) (end int, ok bool) {
	if open < 0 || open >= len(source) || source[open] != '{' {
		return 0, false
	}

	tracker := NewTracker(profile)
	depth := 0
	for i := open; i < len(source); i++ {
		state := tracker.Advance(source[i])
		if state != StateCode {
			continue
		}
		switch source[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}
