package button

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sweeney/switchd/ticks"
)

// levelPin is a pin whose electrical level is set directly by the test.
type levelPin struct {
	high  bool
	reads int
}

func (p *levelPin) Read() bool {
	p.reads++
	return p.high
}

// stamped is an active event and the raw counter value it was seen at.
type stamped struct {
	at uint64
	ev Event
}

type harness struct {
	t   *testing.T
	src *ticks.FakeSource
	clk *ticks.Clock
	pin *levelPin
}

const pollStep = 1000

func newHarness(t *testing.T, bits uint, start uint64) *harness {
	t.Helper()
	src := &ticks.FakeSource{T: start}
	clk, err := ticks.NewClock(src, bits)
	require.NoError(t, err)
	// Pulled up: the line idles high and reads low while pressed.
	return &harness{t: t, src: src, clk: clk, pin: &levelPin{high: true}}
}

func (h *harness) press()   { h.pin.high = false }
func (h *harness) release() { h.pin.high = true }

// poll advances the fake counter in pollStep increments for d ticks,
// updating dev after each step, and returns the active events.
func (h *harness) poll(dev Device, d uint64) []stamped {
	var out []stamped
	for elapsed := uint64(0); elapsed < d; elapsed += pollStep {
		h.src.Add(pollStep)
		if ev := dev.Update(); ev.Active() {
			out = append(out, stamped{at: h.src.T, ev: ev})
		}
	}
	return out
}

func flagsOf(events []stamped) []Flags {
	out := make([]Flags, len(events))
	for i, s := range events {
		out[i] = s.ev.Flags
	}
	return out
}

func (h *harness) button(cfg Config) *Button {
	h.t.Helper()
	b, err := NewButton(h.pin, h.clk, cfg)
	require.NoError(h.t, err)
	return b
}

func (h *harness) toggle(cfg Config) *Toggle {
	h.t.Helper()
	tg, err := NewToggle(h.pin, h.clk, cfg)
	require.NoError(h.t, err)
	return tg
}
