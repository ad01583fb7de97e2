package button

import (
	"fmt"
	"strings"
)

// Flags is a combinable set of classification outcomes.
type Flags uint8

// None means nothing happened during an update.
const None Flags = 0

// Flag values, combinable with |.
const (
	Pressed Flags = 1 << iota
	Released
	Toggled
	LongPressed
	Clicked
	RepeatClicked
)

// All is every defined flag.
const All = Pressed | Released | Toggled | LongPressed | Clicked | RepeatClicked

var flagNames = [...]struct {
	flag Flags
	name string
	wire string
}{
	{Pressed, "Pressed", "PRESSED"},
	{Released, "Released", "RELEASED"},
	{Toggled, "Toggled", "TOGGLED"},
	{LongPressed, "LongPressed", "LONG_PRESSED"},
	{Clicked, "Clicked", "CLICKED"},
	{RepeatClicked, "RepeatClicked", "REPEAT_CLICKED"},
}

// Has reports whether any flag in mask is set.
func (f Flags) Has(mask Flags) bool {
	return f&mask != 0
}

// String renders the set as "none" or "Pressed|Clicked".
func (f Flags) String() string {
	if f == None {
		return "none"
	}
	var parts []string
	for _, n := range flagNames {
		if f&n.flag != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Names returns the upper snake case names of the set flags, in flag order.
func (f Flags) Names() []string {
	var names []string
	for _, n := range flagNames {
		if f&n.flag != 0 {
			names = append(names, n.wire)
		}
	}
	return names
}

// ParseFlag parses a single flag name. Matching ignores case, underscores
// and dashes, so "long_pressed", "LongPressed" and "long-pressed" are equal.
func ParseFlag(s string) (Flags, error) {
	key := strings.NewReplacer("_", "", "-", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	for _, n := range flagNames {
		if strings.ToLower(n.name) == key {
			return n.flag, nil
		}
	}
	return None, fmt.Errorf("unknown event flag %q", s)
}

// ParseFlags ORs together a list of flag names.
func ParseFlags(names []string) (Flags, error) {
	var f Flags
	for _, s := range names {
		flag, err := ParseFlag(s)
		if err != nil {
			return None, err
		}
		f |= flag
	}
	return f, nil
}

// Event is the outcome of one update. Only the most recent Event of a device
// is meaningful; devices keep no history.
type Event struct {
	// State is the device's logical state after the update.
	State bool
	Flags Flags
}

// Active reports whether any flag is set.
func (e Event) Active() bool { return e.Flags != None }

// Pressed reports whether the debounced input became active.
func (e Event) Pressed() bool {
	return e.Flags.Has(Pressed)
}

// Released reports whether the debounced input became inactive.
func (e Event) Released() bool {
	return e.Flags.Has(Released)
}

// Toggled reports whether a toggle flipped its logical state.
func (e Event) Toggled() bool {
	return e.Flags.Has(Toggled)
}

// LongPressed reports whether the input has been held past the long-press
// threshold.
func (e Event) LongPressed() bool {
	return e.Flags.Has(LongPressed)
}

// Clicked reports whether a short press ended.
func (e Event) Clicked() bool {
	return e.Flags.Has(Clicked)
}

// RepeatClicked reports whether a short press ended within the repeat-click
// window of the previous one.
func (e Event) RepeatClicked() bool {
	return e.Flags.Has(RepeatClicked)
}

// String renders the event as "Event(state=true, flags=Released|Clicked)".
func (e Event) String() string {
	return fmt.Sprintf("Event(state=%t, flags=%s)", e.State, e.Flags)
}
