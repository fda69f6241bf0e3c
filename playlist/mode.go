package playlist

import (
	"fmt"
	"strings"
)

// Mode decides what happens at the end of a loop.
type Mode string

const (
	// Normal restarts from the start boundary.
	Normal Mode = "normal"
	// Bounce reverses direction at every boundary.
	Bounce Mode = "bounce"
)

// ParseMode accepts "normal" or "bounce" in any case.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case Normal, Bounce:
		return m, nil
	default:
		return "", fmt.Errorf("unknown play mode %q, expected normal or bounce", s)
	}
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == Bounce {
		return Normal
	}
	return Bounce
}
