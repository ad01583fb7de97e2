package button

import (
	"github.com/sweeney/switchd/ticks"
)

// Toggle keeps a logical on/off state that flips on every press, or on
// every release when configured with ToggleOnRelease.
type Toggle struct {
	Filter

	onRelease bool
	logical   bool
}

// NewToggle binds a Toggle to pin. The logical state starts off.
func NewToggle(pin Pin, clk *ticks.Clock, cfg Config) (*Toggle, error) {
	t := &Toggle{onRelease: cfg.ToggleOnRelease}
	if err := t.Filter.init(pin, clk, cfg); err != nil {
		return nil, err
	}
	return t, nil
}

// State returns the logical state, not the physical one.
func (t *Toggle) State() bool {
	return t.logical
}

// Physical returns the debounced state of the switch itself.
func (t *Toggle) Physical() bool {
	return t.Filter.State()
}

// OnRelease reports whether the state flips on release instead of press.
func (t *Toggle) OnRelease() bool {
	return t.onRelease
}

// Reset forces the logical state and resynchronises the filter to the
// current pin level, so the reset itself never produces an edge.
func (t *Toggle) Reset(state bool) {
	t.Filter.Reset(t.Level())
	t.logical = state
}

// Update samples the pin at the current clock time.
func (t *Toggle) Update() Event {
	return t.UpdateAt(t.clock.Now())
}

// UpdateAt runs one classification cycle at now.
func (t *Toggle) UpdateAt(now ticks.Tick) Event {
	pressed, changed := t.Sample(t.Level(), now)
	if !changed {
		return t.emit(t.logical, None)
	}

	var flags Flags
	if pressed {
		flags = Pressed
	} else {
		flags = Released
	}
	if pressed != t.onRelease {
		t.logical = !t.logical
		flags |= Toggled
	}
	return t.emit(t.logical, flags)
}
