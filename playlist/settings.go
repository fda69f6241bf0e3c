package playlist

import "github.com/samber/mo"

// Settings are optional per-animation overrides. An absent field defers to
// the next source in line.
type Settings struct {
	Autoplay  mo.Option[bool]
	Loop      mo.Option[bool]
	Mode      mo.Option[Mode]
	Speed     mo.Option[float64]
	Direction mo.Option[int]
}

// Resolved is the effective configuration of one animation.
type Resolved struct {
	Autoplay  bool
	Loop      bool
	Mode      Mode
	Speed     float64
	Direction int
}

// Resolve merges overrides: embedder settings beat the manifest entry, which
// beats the session defaults.
func Resolve(entry, manifest Settings, defaults Resolved) Resolved {
	return Resolved{
		Autoplay:  pick(entry.Autoplay, manifest.Autoplay, defaults.Autoplay),
		Loop:      pick(entry.Loop, manifest.Loop, defaults.Loop),
		Mode:      pick(entry.Mode, manifest.Mode, defaults.Mode),
		Speed:     pick(entry.Speed, manifest.Speed, defaults.Speed),
		Direction: normalizeDirection(pick(entry.Direction, manifest.Direction, defaults.Direction)),
	}
}

func pick[T any](first, second mo.Option[T], fallback T) T {
	if v, ok := first.Get(); ok {
		return v
	}
	return second.OrElse(fallback)
}

func normalizeDirection(d int) int {
	if d < 0 {
		return -1
	}
	return 1
}
