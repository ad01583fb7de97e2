package button

import (
	"context"

	"github.com/sweeney/switchd/ticks"
)

// Device is the behaviour shared by Button, Toggle and Unbuffered.
type Device interface {
	Update() Event
	UpdateAt(t ticks.Tick) Event
	State() bool
	Suppress(flags Flags)
}

var (
	_ Device = (*Button)(nil)
	_ Device = (*Toggle)(nil)
	_ Device = (*Unbuffered)(nil)
)

// WaitFor busy-polls d until an update reports any flag in want, and returns
// that event. each, if not nil, runs after every non-matching update.
//
// With a context that is never cancelled WaitFor blocks for as long as the
// awaited event does not occur. Cancellation and deadlines are checked once
// per iteration and reported as ctx.Err().
func WaitFor(ctx context.Context, d Device, want Flags, each func()) (Event, error) {
	done := ctx.Done()
	for {
		ev := d.Update()
		if ev.Flags.Has(want) {
			return ev, nil
		}
		select {
		case <-done:
			return ev, ctx.Err()
		default:
		}
		if each != nil {
			each()
		}
	}
}

// WaitForPressed waits for an event carrying Pressed.
func WaitForPressed(ctx context.Context, d Device, each func()) (Event, error) {
	return WaitFor(ctx, d, Pressed, each)
}

// WaitForReleased waits for an event carrying Released.
func WaitForReleased(ctx context.Context, d Device, each func()) (Event, error) {
	return WaitFor(ctx, d, Released, each)
}

// WaitForToggled waits for an event carrying Toggled.
func WaitForToggled(ctx context.Context, d Device, each func()) (Event, error) {
	return WaitFor(ctx, d, Toggled, each)
}

// WaitForLongPressed waits for an event carrying LongPressed.
func WaitForLongPressed(ctx context.Context, d Device, each func()) (Event, error) {
	return WaitFor(ctx, d, LongPressed, each)
}

// WaitForClicked waits for an event carrying Clicked.
func WaitForClicked(ctx context.Context, d Device, each func()) (Event, error) {
	return WaitFor(ctx, d, Clicked, each)
}

// WaitForRepeatClicked waits for an event carrying RepeatClicked.
func WaitForRepeatClicked(ctx context.Context, d Device, each func()) (Event, error) {
	return WaitFor(ctx, d, RepeatClicked, each)
}
