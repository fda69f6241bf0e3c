// Package scroll maps page scrolling onto animation frames.
package scroll

import (
	"math"
	"time"

	"github.com/samber/lo"
)

// SettleDelay is how long scrolling must stop before the player counts as paused.
const SettleDelay = 400 * time.Millisecond

// Ratio is how many scroll units move the animation one frame step.
const Ratio = 3

// TargetFrame converts the distance scrolled since the player first became
// visible into a frame. The result is at least 1/Ratio and at most total.
func TargetFrame(delta, total float64) float64 {
	clamped := lo.Clamp(math.Abs(delta)/Ratio, 1, math.Max(total*Ratio, 1))
	return clamped / Ratio
}

// Within reports whether a target frame can still be shown.
func Within(target, total float64) bool {
	return target < total
}
