//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"

	"github.com/sweeney/switchd/button"
)

// Chip opens lines on a Linux GPIO character device.
type Chip struct {
	chip *gpiocdev.Chip
}

// NewChip opens the named chip, e.g. "gpiochip0".
func NewChip(name string) (*Chip, error) {
	chip, err := gpiocdev.NewChip(name)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}
	return &Chip{chip: chip}, nil
}

// Open requests offset as an input with the given bias.
func (c *Chip) Open(offset int, pull button.Pull) (Pin, error) {
	line, err := c.chip.RequestLine(offset, gpiocdev.AsInput, bias(pull))
	if err != nil {
		return nil, fmt.Errorf("request pin %d: %w", offset, err)
	}
	return &linePin{
		line:  line,
		latch: latch{name: fmt.Sprintf("%s:%d", c.chip.Name, offset)},
	}, nil
}

// Close releases the chip. Lines must be closed first.
func (c *Chip) Close() error {
	if err := c.chip.Close(); err != nil {
		return fmt.Errorf("close chip: %w", err)
	}
	return nil
}

func bias(p button.Pull) gpiocdev.LineBias {
	switch p {
	case button.PullUp:
		return gpiocdev.WithPullUp
	case button.PullDown:
		return gpiocdev.WithPullDown
	}
	return gpiocdev.WithBiasDisabled
}

type linePin struct {
	line *gpiocdev.Line
	latch
}

func (p *linePin) Read() bool {
	v, err := p.line.Value()
	return p.update(v != 0, err)
}

// Close reconfigures the line to input with pull-down (matching Pi boot
// defaults) before releasing it.
func (p *linePin) Close() error {
	var errs []error
	if err := p.line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
		errs = append(errs, fmt.Errorf("reconfigure %s: %w", p.name, err))
	}
	if err := p.line.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close %s: %w", p.name, err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
