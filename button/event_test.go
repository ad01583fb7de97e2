package button

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagsString(t *testing.T) {
	assert.Equal(t, "none", None.String())
	assert.Equal(t, "Pressed", Pressed.String())
	assert.Equal(t, "Released|Clicked", (Clicked | Released).String())
	assert.Equal(t, []string{"RELEASED", "REPEAT_CLICKED"}, (Released | RepeatClicked).Names())
	assert.Nil(t, None.Names())
}

func TestEventPredicates(t *testing.T) {
	e := Event{State: false, Flags: Released | Clicked}
	assert.True(t, e.Active())
	assert.True(t, e.Released())
	assert.True(t, e.Clicked())
	assert.False(t, e.Pressed())
	assert.False(t, e.RepeatClicked())
	assert.False(t, e.LongPressed())
	assert.False(t, e.Toggled())
	assert.Equal(t, "Event(state=false, flags=Released|Clicked)", e.String())

	assert.False(t, Event{State: true}.Active())
}

func TestParseFlag(t *testing.T) {
	tests := map[string]Flags{
		"pressed":        Pressed,
		"RELEASED":       Released,
		"long_pressed":   LongPressed,
		"LongPressed":    LongPressed,
		"repeat-clicked": RepeatClicked,
		" toggled ":      Toggled,
	}
	for in, want := range tests {
		got, err := ParseFlag(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFlag("doubleclick")
	assert.Error(t, err)

	all, err := ParseFlags([]string{"clicked", "repeat_clicked"})
	require.NoError(t, err)
	assert.Equal(t, Clicked|RepeatClicked, all)

	_, err = ParseFlags([]string{"clicked", "bogus"})
	assert.Error(t, err)
}
