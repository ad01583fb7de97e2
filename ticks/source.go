package ticks

import (
	"time"

	"github.com/benbjohnson/clock"
)

// WallSource counts microseconds elapsed on a wall clock since it was created.
type WallSource struct {
	clock clock.Clock
	start time.Time
}

// NewWallSource creates a source anchored at c.Now(). Pass clock.New() in
// production and a *clock.Mock in tests.
func NewWallSource(c clock.Clock) *WallSource {
	return &WallSource{clock: c, start: c.Now()}
}

// Ticks returns the microseconds elapsed since the source was created.
func (w *WallSource) Ticks() uint64 {
	return uint64(w.clock.Since(w.start) / time.Microsecond)
}

// FakeSource is a manually driven counter for tests.
type FakeSource struct {
	T uint64
}

// Ticks returns the current scripted value.
func (f *FakeSource) Ticks() uint64 {
	return f.T
}

// Set moves the counter to t.
func (f *FakeSource) Set(t uint64) {
	f.T = t
}

// Add advances the counter by d ticks.
func (f *FakeSource) Add(d uint64) {
	f.T += d
}
