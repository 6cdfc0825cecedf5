package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/gamerooms/internal/testutil"
)

func TestModerator_Censor(t *testing.T) {
	mod, err := NewModerator([]string{"badger", "snake"}, '*', testutil.NopLogger())
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "clean text", input: "hello there", expected: "hello there"},
		{name: "simple word", input: "The badger is here", expected: "The ****** is here"},
		{name: "repeated", input: "badger badger", expected: "****** ******"},
		{name: "leet and punctuation", input: "Look at B.4.d.g.3r !", expected: "Look at ********** !"},
		{name: "uppercase with dashes", input: "S-N-A-K-E!", expected: "*********!"},
		{name: "utf8 outside match", input: "Un été avec un badger", expected: "Un été avec un ******"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mod.Censor(tt.input))
		})
	}
}

func TestModerator_EmptyListPassesThrough(t *testing.T) {
	mod, err := NewModerator([]string{"", "  "}, '*', testutil.NopLogger())
	require.NoError(t, err)
	assert.Equal(t, "badger", mod.Censor("badger"))

	var nilMod *Moderator
	assert.Equal(t, "badger", nilMod.Censor("badger"))
}
