// Package button turns a bouncing digital input into press, release, toggle,
// long-press, click and repeat-click events.
//
// Devices are poll driven: the caller invokes Update far more often than the
// configured sample rate (at least twice, preferably several times). Every
// Update does bounded work, allocates nothing and returns a fresh Event.
// Devices are not safe for concurrent use; each is owned by one polling loop.
package button

import (
	log "github.com/sirupsen/logrus"

	"github.com/sweeney/switchd/ticks"
)

// Pin is the raw digital input a device is bound to. Read reports the
// electrical level; it is infallible by contract.
type Pin interface {
	Read() bool
}

const (
	// samples is the number of consecutive identical readings needed to
	// accept a transition.
	samples      = 6
	registerMask = 1<<samples - 1
)

// Filter is a periodic shift-register debouncer. It is embedded by value in
// every device type.
type Filter struct {
	pin      Pin
	clock    *ticks.Clock
	inverted bool

	state      bool
	register   uint8
	interval   ticks.Duration
	last       ticks.Tick
	suppressed Flags
}

// NewFilter binds a filter to pin. The binding cannot be changed later.
func NewFilter(pin Pin, clk *ticks.Clock, cfg Config) (*Filter, error) {
	f := &Filter{}
	if err := f.init(pin, clk, cfg); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Filter) init(pin Pin, clk *ticks.Clock, cfg Config) error {
	if pin == nil {
		return &ConfigurationError{Field: "pin", Value: nil, Reason: "must not be nil"}
	}
	if clk == nil {
		return &ConfigurationError{Field: "clock", Value: nil, Reason: "must not be nil"}
	}
	interval, err := cfg.sampleInterval(clk)
	if err != nil {
		return err
	}
	*f = Filter{
		pin:        pin,
		clock:      clk,
		inverted:   cfg.IsInverted(),
		interval:   interval,
		suppressed: cfg.Suppress,
	}
	f.Reset(false)

	log.WithFields(log.Fields{
		"interval_us": interval,
		"inverted":    f.inverted,
		"pull":        cfg.Pull,
	}).Debug("debounce filter configured")
	return nil
}

// Sample shifts level into the register if a sample interval has elapsed at
// t. It returns the debounced state and whether this call changed it. When
// no sample is due the call has no side effects.
func (f *Filter) Sample(level bool, t ticks.Tick) (state, changed bool) {
	due, next := f.clock.ExpiredAndAdvance(f.last, f.interval, t)
	if !due {
		return f.state, false
	}
	f.last = next

	f.register <<= 1
	if level {
		f.register |= 1
	}
	f.register &= registerMask

	prev := f.state
	switch {
	case f.register == registerMask && !f.state:
		f.state = true
	case f.register == 0 && f.state:
		f.state = false
	}
	return f.state, f.state != prev
}

// Reset resynchronises the sampling grid to now and forces the debounced
// state. The register is filled to agree with state so that the next
// transition still needs a full run of opposite samples.
func (f *Filter) Reset(state bool) {
	f.state = state
	f.register = 0
	if state {
		f.register = registerMask
	}
	f.last = f.clock.Now()
}

// Suppress sets the flags removed from emitted events. Suppressed
// transitions still drive the classifiers' timers.
func (f *Filter) Suppress(flags Flags) {
	f.suppressed = flags
}

// Suppressed returns the current suppression mask.
func (f *Filter) Suppressed() Flags {
	return f.suppressed
}

// State returns the debounced physical state.
func (f *Filter) State() bool {
	return f.state
}

// Level reads the pin with inversion applied.
func (f *Filter) Level() bool {
	return f.pin.Read() != f.inverted
}

// Interval is the sample period in ticks.
func (f *Filter) Interval() ticks.Duration {
	return f.interval
}

// Latency is the minimum time to confirm a transition.
func (f *Filter) Latency() ticks.Duration {
	return samples * f.interval
}

// MaxFrequency is the fastest switching rate, in Hz, that is still tracked.
func (f *Filter) MaxFrequency() float64 {
	return float64(ticks.PerSecond) / (2 * float64(f.Latency()))
}

// Clock returns the clock the filter samples against.
func (f *Filter) Clock() *ticks.Clock {
	return f.clock
}

func (f *Filter) emit(state bool, flags Flags) Event {
	return Event{State: state, Flags: flags &^ f.suppressed}
}
