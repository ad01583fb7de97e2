package gpio

import (
	"fmt"

	"github.com/sweeney/switchd/button"
)

// FakePin is a test double that returns scripted levels.
type FakePin struct {
	// Levels contains scripted levels to return.
	// Each call to Read() consumes the next one.
	Levels []bool

	// index tracks current position in Levels
	index int

	// Level is returned when Levels is empty.
	Level bool

	// Pull records the bias the pin was opened with.
	Pull button.Pull

	// Reads counts calls to Read.
	Reads int

	// Closed tracks if Close was called
	Closed bool
}

// NewFakePin creates a FakePin with the given levels.
func NewFakePin(levels ...bool) *FakePin {
	return &FakePin{Levels: levels}
}

// Read returns the next scripted level.
// If levels are exhausted, returns the last level repeatedly.
func (f *FakePin) Read() bool {
	f.Reads++
	if len(f.Levels) == 0 {
		return f.Level
	}

	level := f.Levels[f.index]
	if f.index < len(f.Levels)-1 {
		f.index++
	}
	return level
}

// Set drops any script and holds level.
func (f *FakePin) Set(level bool) {
	f.Levels = nil
	f.index = 0
	f.Level = level
}

// Close marks the pin as closed.
func (f *FakePin) Close() error {
	f.Closed = true
	return nil
}

// Reset rewinds the script.
func (f *FakePin) Reset() {
	f.index = 0
	f.Closed = false
}

// FakeOpener hands out FakePins. Unknown pins are created idling high, the
// resting level of a pulled-up switch.
type FakeOpener struct {
	Pins map[int]*FakePin

	// OpenError, if set, will be returned by Open.
	OpenError error

	Closed bool
}

// NewFakeOpener creates an empty FakeOpener.
func NewFakeOpener() *FakeOpener {
	return &FakeOpener{Pins: make(map[int]*FakePin)}
}

// Open returns the FakePin for pin, creating it if needed.
func (f *FakeOpener) Open(pin int, pull button.Pull) (Pin, error) {
	if f.OpenError != nil {
		return nil, fmt.Errorf("request pin %d: %w", pin, f.OpenError)
	}
	p, ok := f.Pins[pin]
	if !ok {
		p = &FakePin{Level: true}
		f.Pins[pin] = p
	}
	p.Pull = pull
	return p, nil
}

// Close marks the opener as closed.
func (f *FakeOpener) Close() error {
	f.Closed = true
	return nil
}
