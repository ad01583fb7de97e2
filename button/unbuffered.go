package button

import (
	"github.com/sweeney/switchd/ticks"
)

// Unbuffered reports every edge of an already clean input immediately. It
// skips the shift register and the sample-rate gate.
type Unbuffered struct {
	Filter
}

// NewUnbuffered binds an Unbuffered switch to pin.
func NewUnbuffered(pin Pin, clk *ticks.Clock, cfg Config) (*Unbuffered, error) {
	u := &Unbuffered{}
	if err := u.Filter.init(pin, clk, cfg); err != nil {
		return nil, err
	}
	return u, nil
}

// Update reads the pin and reports a change from the stored state.
func (u *Unbuffered) Update() Event {
	level := u.Level()
	if level == u.state {
		return u.emit(level, None)
	}
	u.state = level
	if level {
		return u.emit(level, Pressed)
	}
	return u.emit(level, Released)
}

// UpdateAt is Update; the time is ignored.
func (u *Unbuffered) UpdateAt(ticks.Tick) Event {
	return u.Update()
}
