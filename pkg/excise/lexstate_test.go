package excise_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yaklabco/excise/pkg/excise"
)

func TestTracker_StateSequence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		profile excise.Profile
		input   string
		final   excise.LexState
	}{
		{
			name:    "plain code stays in code",
			profile: excise.ECMAScriptProfile(),
			input:   "const x = { a: 1 };",
			final:   excise.StateCode,
		},
		{
			name:    "closed double quote string returns to code",
			profile: excise.ECMAScriptProfile(),
			input:   `const s = "}";`,
			final:   excise.StateCode,
		},
		{
			name:    "unterminated single quote string",
			profile: excise.ECMAScriptProfile(),
			input:   `const s = 'hello`,
			final:   excise.StateSingle,
		},
		{
			name:    "unterminated template literal",
			profile: excise.ECMAScriptProfile(),
			input:   "const s = `multi\nline",
			final:   excise.StateTemplate,
		},
		{
			name:    "escaped quote does not close the string",
			profile: excise.ECMAScriptProfile(),
			input:   `"a\"b`,
			final:   excise.StateDouble,
		},
		{
			name:    "backslash at end leaves escaped state",
			profile: excise.ECMAScriptProfile(),
			input:   `"a\`,
			final:   excise.StateEscaped,
		},
		{
			name:    "backslash outside strings has no effect",
			profile: excise.ECMAScriptProfile(),
			input:   `a \ b`,
			final:   excise.StateCode,
		},
		{
			name:    "go raw string ignores backslash",
			profile: excise.GoProfile(),
			input:   "`a\\`",
			final:   excise.StateCode,
		},
		{
			name:    "default profile treats backtick as code",
			profile: excise.DefaultProfile(),
			input:   "`",
			final:   excise.StateCode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tracker := excise.NewTracker(tt.profile)
			for i := range len(tt.input) {
				tracker.Advance(tt.input[i])
			}
			assert.Equal(t, tt.final, tracker.State())
		})
	}
}

func TestTracker_EscapedConsumesOneCharacter(t *testing.T) {
	t.Parallel()

	tracker := excise.NewTracker(excise.ECMAScriptProfile())
	tracker.Advance('`')
	assert.Equal(t, excise.StateTemplate, tracker.State())
	tracker.Advance('\\')
	assert.Equal(t, excise.StateEscaped, tracker.State())
	tracker.Advance('`')
	assert.Equal(t, excise.StateTemplate, tracker.State(), "escaped backtick must not close the template")
	tracker.Advance('`')
	assert.Equal(t, excise.StateCode, tracker.State())
}

func TestLexState_InString(t *testing.T) {
	t.Parallel()

	assert.False(t, excise.StateCode.InString())
	assert.True(t, excise.StateSingle.InString())
	assert.True(t, excise.StateDouble.InString())
	assert.True(t, excise.StateTemplate.InString())
	assert.True(t, excise.StateEscaped.InString())
}
