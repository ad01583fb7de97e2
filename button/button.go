package button

import (
	"github.com/sweeney/switchd/ticks"
)

// Button is a momentary push button. On top of Pressed and Released it
// reports LongPressed once per press held past the long-press threshold, and
// classifies each release that was not a long press as Clicked or, within the
// repeat-click window of the previous click, RepeatClicked.
type Button struct {
	Filter

	longPress   ticks.Duration
	repeatClick ticks.Duration

	lastChange  ticks.Tick
	lastClick   ticks.Tick
	longPressed bool
	// clickArmed is set by a click and cleared once the repeat window has
	// been observed to expire, so an old click cannot alias a new one
	// after the counter wraps.
	clickArmed bool
}

// NewButton binds a Button to pin.
func NewButton(pin Pin, clk *ticks.Clock, cfg Config) (*Button, error) {
	b := &Button{
		longPress:   cfg.LongPress,
		repeatClick: cfg.RepeatClick,
	}
	if err := b.Filter.init(pin, clk, cfg); err != nil {
		return nil, err
	}
	b.resetTimers()
	return b, nil
}

// Reset resynchronises the button to the current pin level.
func (b *Button) Reset() {
	b.ResetTo(b.Level())
}

// ResetTo resynchronises the button and forces its state.
func (b *Button) ResetTo(state bool) {
	b.Filter.Reset(state)
	b.resetTimers()
}

func (b *Button) resetTimers() {
	now := b.clock.Now()
	b.lastChange = now
	b.lastClick = now
	b.longPressed = false
	b.clickArmed = false
}

// Update samples the pin at the current clock time.
func (b *Button) Update() Event {
	return b.UpdateAt(b.clock.Now())
}

// UpdateAt runs one classification cycle at t.
func (b *Button) UpdateAt(t ticks.Tick) Event {
	clk := b.clock
	var flags Flags

	if b.state && !b.longPressed && clk.ExpiredAt(b.lastChange, b.longPress, t) {
		flags |= LongPressed
		b.longPressed = true
	}
	if b.clickArmed && clk.ExpiredAt(b.lastClick, b.repeatClick, t) {
		b.clickArmed = false
	}

	state, changed := b.Sample(b.Level(), t)
	if !changed {
		return b.emit(state, flags)
	}

	b.lastChange = t
	if state {
		flags |= Pressed
		return b.emit(state, flags)
	}

	flags |= Released
	if !b.longPressed {
		if b.clickArmed {
			flags |= RepeatClicked
		} else {
			flags |= Clicked
		}
		b.lastClick = t
		b.clickArmed = true
	}
	b.longPressed = false
	return b.emit(state, flags)
}

// LongPressThreshold returns the hold time that triggers LongPressed.
func (b *Button) LongPressThreshold() ticks.Duration {
	return b.longPress
}

// RepeatClickWindow returns the window in which a click counts as a repeat.
func (b *Button) RepeatClickWindow() ticks.Duration {
	return b.repeatClick
}
