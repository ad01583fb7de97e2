package button

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweeney/switchd/ticks"
)

func newTestFilter(t *testing.T) (*Filter, func(k int) ticks.Tick) {
	t.Helper()
	h := newHarness(t, ticks.DefaultBits, 1000)
	f, err := NewFilter(h.pin, h.clk, DefaultConfig())
	require.NoError(t, err)
	t0 := h.clk.Now()
	at := func(k int) ticks.Tick {
		return h.clk.Advance(t0, ticks.Duration(k)*f.Interval())
	}
	return f, at
}

func TestFilterConfirmsOnSixthSample(t *testing.T) {
	f, at := newTestFilter(t)

	for k := 1; k <= 5; k++ {
		state, changed := f.Sample(true, at(k))
		assert.False(t, state, "sample %d", k)
		assert.False(t, changed, "sample %d", k)
	}
	state, changed := f.Sample(true, at(6))
	assert.True(t, state)
	assert.True(t, changed)

	state, changed = f.Sample(true, at(7))
	assert.True(t, state)
	assert.False(t, changed, "no second edge while steady")

	for k := 8; k <= 12; k++ {
		state, _ = f.Sample(false, at(k))
		assert.True(t, state, "sample %d", k)
	}
	state, changed = f.Sample(false, at(13))
	assert.False(t, state)
	assert.True(t, changed)
}

func TestFilterIgnoresChatter(t *testing.T) {
	f, at := newTestFilter(t)
	for k := 1; k <= 200; k++ {
		_, changed := f.Sample(k%2 == 0, at(k))
		require.False(t, changed, "sample %d", k)
	}
	assert.False(t, f.State())

	f.Reset(true)
	base := f.last
	for k := 1; k <= 200; k++ {
		// Never six lows in a row.
		_, changed := f.Sample(k%6 == 0, f.clock.Advance(base, ticks.Duration(k)*f.Interval()))
		require.False(t, changed, "sample %d", k)
	}
	assert.True(t, f.State())
}

func TestFilterNotDueHasNoSideEffects(t *testing.T) {
	f, at := newTestFilter(t)

	for k := 1; k <= 5; k++ {
		f.Sample(true, at(k))
		// Polls between samples must neither shift nor move the grid.
		state, changed := f.Sample(false, at(k)+1)
		assert.False(t, state)
		assert.False(t, changed)
	}
	_, changed := f.Sample(true, at(6))
	assert.True(t, changed)
}

func TestFilterKeepsSamplingGrid(t *testing.T) {
	f, at := newTestFilter(t)

	// First sample is taken 400 ticks late; the grid must not shift to it.
	f.Sample(true, at(1)+400)
	for k := 2; k <= 5; k++ {
		_, changed := f.Sample(true, at(k))
		assert.False(t, changed)
	}
	_, changed := f.Sample(true, at(6))
	assert.True(t, changed)
}

func TestFilterResetFillsRegister(t *testing.T) {
	f, _ := newTestFilter(t)
	f.Reset(true)
	assert.True(t, f.State())

	// A single low sample must not release a button reset to pressed.
	_, changed := f.Sample(false, f.clock.Advance(f.last, f.Interval()))
	assert.False(t, changed)
	assert.True(t, f.State())
}

func TestFilterSuppress(t *testing.T) {
	f, _ := newTestFilter(t)
	f.Suppress(Clicked | LongPressed)
	assert.Equal(t, Clicked|LongPressed, f.Suppressed())
	assert.Equal(t, Released, f.emit(false, Released|Clicked).Flags)
}
