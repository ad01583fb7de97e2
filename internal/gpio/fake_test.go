package gpio

import (
	"errors"
	"testing"

	"github.com/sweeney/switchd/button"
)

func TestFakePinRead(t *testing.T) {
	f := NewFakePin(true, false, true)

	want := []bool{true, false, true, true}
	for i, w := range want {
		if got := f.Read(); got != w {
			t.Errorf("read %d: expected %v, got %v", i, w, got)
		}
	}
	if f.Reads != 4 {
		t.Errorf("expected 4 reads, got %d", f.Reads)
	}
}

func TestFakePinNoLevels(t *testing.T) {
	f := NewFakePin()
	if f.Read() {
		t.Error("expected low with no script")
	}
	f.Set(true)
	if !f.Read() {
		t.Error("expected high after Set")
	}
}

func TestFakePinSetDropsScript(t *testing.T) {
	f := NewFakePin(true, true)
	f.Set(false)
	if f.Read() {
		t.Error("Set should override the script")
	}
}

func TestFakePinClose(t *testing.T) {
	f := NewFakePin(true)

	if f.Closed {
		t.Error("should not be closed initially")
	}
	if err := f.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !f.Closed {
		t.Error("should be closed after Close()")
	}
}

func TestFakePinReset(t *testing.T) {
	f := NewFakePin(false, true)

	f.Read()
	f.Reset()

	if f.Read() {
		t.Error("after reset: expected first level again")
	}
}

func TestFakeOpener(t *testing.T) {
	o := NewFakeOpener()

	p, err := o.Open(17, button.PullDown)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.Read() {
		t.Error("new fake pins should idle high")
	}
	if o.Pins[17].Pull != button.PullDown {
		t.Errorf("expected pull down, got %v", o.Pins[17].Pull)
	}

	again, _ := o.Open(17, button.PullUp)
	if again != p {
		t.Error("expected the same pin for the same number")
	}

	o.OpenError = errors.New("busy")
	if _, err := o.Open(4, button.PullUp); !errors.Is(err, o.OpenError) {
		t.Errorf("expected wrapped open error, got %v", err)
	}
}

func TestNewOpenerUnknownBackend(t *testing.T) {
	if _, err := NewOpener("sysfs", ""); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestLatchHoldsLastLevelOnError(t *testing.T) {
	l := latch{name: "test"}

	if !l.update(true, nil) {
		t.Fatal("expected high")
	}
	if !l.update(false, errors.New("EIO")) {
		t.Error("expected last good level on error")
	}
	if !l.failing {
		t.Error("expected failing streak")
	}
	if l.update(false, nil) {
		t.Error("expected fresh level after recovery")
	}
	if l.failing {
		t.Error("expected streak cleared")
	}
}
