//go:build linux

package gpio

import (
	"testing"

	"github.com/warthog618/go-gpiocdev"

	"github.com/sweeney/switchd/button"
)

func TestBias(t *testing.T) {
	tests := []struct {
		pull button.Pull
		want gpiocdev.LineBias
	}{
		{button.PullUp, gpiocdev.WithPullUp},
		{button.PullDown, gpiocdev.WithPullDown},
		{button.PullNone, gpiocdev.WithBiasDisabled},
	}
	for _, tt := range tests {
		if got := bias(tt.pull); got != tt.want {
			t.Errorf("bias(%v): expected %v, got %v", tt.pull, tt.want, got)
		}
	}
}

func TestNewChipMissing(t *testing.T) {
	if _, err := NewChip("gpiochip-does-not-exist"); err == nil {
		t.Error("expected error opening a missing chip")
	}
}
