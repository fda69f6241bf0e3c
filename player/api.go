package player

import (
	"context"

	"github.com/dotplay-cli/dotplay/engine"
	"github.com/dotplay-cli/dotplay/playlist"
)

// API is the imperative control surface embedders drive a player through.
// The terminal player and the remote control both depend on it rather than
// on *Player.
type API interface {
	Load(ctx context.Context, src string) error
	Reload(ctx context.Context) error

	Play()
	Pause()
	Stop()
	Next()
	Previous()
	Seek(value string)

	SetLoop(loop bool)
	SetSpeed(speed float64)
	SetDirection(direction int)
	SetSubframe(subframe bool)
	SetSegment(seg *engine.Segment)
	SetCount(count int)
	SetMultiAnimationSettings(settings []playlist.Settings)

	TogglePlay()
	ToggleLoop()
	ToggleBounce()

	Snapshot() Session
	Events() *Emitter
	Destroy()
}

var _ API = (*Player)(nil)
