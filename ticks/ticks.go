// Package ticks implements wraparound-safe arithmetic over a free-running,
// fixed-width tick counter.
//
// A Clock reads a Source and truncates it to its configured bit width. All
// comparisons between timestamps must go through Diff/ExpiredAt, never raw
// subtraction: the counter wraps during normal long-running operation. The
// arithmetic is correct as long as at most one wrap happens between two
// compared timestamps.
package ticks

import (
	"fmt"
	"math"
	"time"
)

// Tick is a timestamp on the wrapping counter, in the range [0, 2^W).
type Tick uint32

// Duration is an elapsed number of ticks.
type Duration uint32

// PerSecond is the tick frequency. Ticks are microseconds.
const PerSecond = 1_000_000

// DefaultBits is the counter width used when none is configured. It matches
// the 30-bit microsecond counter found on common microcontroller runtimes.
const DefaultBits = 30

// MaxBits is the widest supported counter.
const MaxBits = 32

// Source is a free-running counter. Only the low bits are used by a Clock.
type Source interface {
	Ticks() uint64
}

// Clock performs modular arithmetic over a Source truncated to a fixed width.
type Clock struct {
	src  Source
	bits uint
	mask uint32
}

// NewClock returns a Clock reading src truncated to bits.
func NewClock(src Source, bits uint) (*Clock, error) {
	if src == nil {
		return nil, fmt.Errorf("ticks: nil source")
	}
	if bits == 0 || bits > MaxBits {
		return nil, fmt.Errorf("ticks: width %d out of range 1..%d", bits, MaxBits)
	}
	return &Clock{
		src:  src,
		bits: bits,
		mask: uint32(uint64(1)<<bits - 1),
	}, nil
}

// Bits returns the counter width.
func (c *Clock) Bits() uint {
	return c.bits
}

// Max returns the largest representable Tick, 2^W - 1.
func (c *Clock) Max() Tick {
	return Tick(c.mask)
}

// Now reads the source and truncates it to the counter width.
func (c *Clock) Now() Tick {
	return Tick(uint32(c.src.Ticks()) & c.mask)
}

// Diff returns the ticks elapsed from t0 to t1, modulo 2^W.
func (c *Clock) Diff(t1, t0 Tick) Duration {
	return Duration((uint32(t1) - uint32(t0)) & c.mask)
}

// Advance returns t + d modulo 2^W.
func (c *Clock) Advance(t Tick, d Duration) Tick {
	return Tick((uint32(t) + uint32(d)) & c.mask)
}

// ExpiredAt reports whether at least d ticks separate base and t.
func (c *Clock) ExpiredAt(base Tick, d Duration, t Tick) bool {
	return c.Diff(t, base) >= d
}

// Expired is ExpiredAt evaluated at Now.
func (c *Clock) Expired(base Tick, d Duration) bool {
	return c.ExpiredAt(base, d, c.Now())
}

// ExpiredAndAdvance reports whether d has elapsed since base at t. On expiry
// the returned base is moved forward by exactly d, keeping a periodic grid
// stable under call jitter; otherwise base is returned unchanged.
func (c *Clock) ExpiredAndAdvance(base Tick, d Duration, t Tick) (bool, Tick) {
	if c.ExpiredAt(base, d, t) {
		return true, c.Advance(base, d)
	}
	return false, base
}

// Micros converts a time.Duration to ticks, clamping negatives to zero and
// values past the 32-bit range to math.MaxUint32.
func Micros(d time.Duration) Duration {
	if d <= 0 {
		return 0
	}
	us := d / time.Microsecond
	if us > math.MaxUint32 {
		return math.MaxUint32
	}
	return Duration(us)
}

// MaxSpan returns the longest duration that can be compared on a counter of
// the given width: half its range.
func MaxSpan(bits uint) time.Duration {
	return ToDuration(Duration((uint64(1)<<bits - 1) / 2))
}

// ToDuration converts ticks back to a time.Duration.
func ToDuration(d Duration) time.Duration {
	return time.Duration(d) * time.Microsecond
}
