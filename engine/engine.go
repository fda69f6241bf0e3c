// Package engine declares the contract between the player and a vector-animation rendering engine.
//
// The player never draws anything itself. It asks an Engine for a Handle,
// drives it with transport commands and listens to its event stream.
package engine

import "encoding/json"

// Event is the name of a notification emitted by a Handle.
type Event string

const (
	EnterFrame   Event = "enterFrame"
	Complete     Event = "complete"
	LoopComplete Event = "loopComplete"
	DOMLoaded    Event = "DOMLoaded"
	DataReady    Event = "data_ready"
	DataFailed   Event = "data_failed"
)

// Events lists every event a Handle may emit.
func Events() []Event {
	return []Event{EnterFrame, Complete, LoopComplete, DOMLoaded, DataReady, DataFailed}
}

// Segment is an [in, out] frame range.
type Segment [2]float64

// Options configures a new Handle.
type Options struct {
	Container        string
	AnimationData    json.RawMessage
	Loop             bool
	Autoplay         bool
	InitialSegment   *Segment
	Renderer         Renderer
	RendererSettings RendererSettings
}

// Handle is a live, loaded animation owned by the engine.
//
// Listeners run on the engine's own goroutine, never from inside a Handle
// method and never while the engine holds its locks: they may call back
// into the handle, and the caller of a method may hold its own locks.
type Handle interface {
	Play()
	Pause()
	Stop()
	Destroy()

	SetLoop(loop bool)
	SetSpeed(speed float64)
	SetDirection(direction int)
	SetSubframe(subframe bool)

	// GoToAndPlay moves to value and starts playing.
	// value is a frame when isFrame is true, milliseconds otherwise.
	GoToAndPlay(value float64, isFrame bool)
	// GoToAndStop moves to value and stops there.
	GoToAndStop(value float64, isFrame bool)

	// CurrentFrame is relative to the active segment.
	CurrentFrame() float64
	// TotalFrames is the length of the active segment.
	TotalFrames() float64
	PlayDirection() int

	// AddEventListener registers fn for ev and returns a function removing it.
	AddEventListener(ev Event, fn func()) (remove func())
}

// Engine creates animation handles.
type Engine interface {
	LoadAnimation(opts Options) (Handle, error)
}
