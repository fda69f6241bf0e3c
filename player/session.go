package player

import (
	"time"

	"github.com/dotplay-cli/dotplay/engine"
	"github.com/dotplay-cli/dotplay/playlist"
)

// Session is the observable state of a Player. Snapshot returns a copy.
type Session struct {
	State     State `json:"state"`
	PrevState State `json:"prevState"`

	Src          string  `json:"src"`
	Index        int     `json:"index"`
	Count        int     `json:"count"`
	Frame        float64 `json:"frame"`
	TotalFrames  float64 `json:"totalFrames"`
	Seeker       int     `json:"seeker"`
	ErrorMessage string  `json:"errorMessage,omitempty"`
	IsLoaded     bool    `json:"isLoaded"`
	Visible      bool    `json:"visible"`

	LoopCount       float64         `json:"loopCount"`
	TargetLoopCount int             `json:"targetLoopCount"`
	Mode            playlist.Mode   `json:"mode"`
	Segment         *engine.Segment `json:"segment,omitempty"`

	Autoplay        bool          `json:"autoplay"`
	Loop            bool          `json:"loop"`
	Speed           float64       `json:"speed"`
	Direction       int           `json:"direction"`
	Subframe        bool          `json:"subframe"`
	AnimateOnScroll bool          `json:"animateOnScroll"`
	Hover           bool          `json:"hover"`
	Intermission    time.Duration `json:"intermission"`

	Renderer  engine.Renderer  `json:"renderer"`
	ObjectFit engine.ObjectFit `json:"objectFit"`
}

func newSession(o Options) Session {
	return Session{
		State:           Loading,
		PrevState:       Loading,
		Src:             o.Src,
		TargetLoopCount: o.Count,
		Mode:            o.Mode,
		Segment:         o.Segment,
		Autoplay:        o.Autoplay,
		Loop:            o.Loop,
		Speed:           o.Speed,
		Direction:       o.Direction,
		Subframe:        o.Subframe,
		AnimateOnScroll: o.AnimateOnScroll,
		Hover:           o.Hover,
		Intermission:    o.Intermission,
		Renderer:        o.Renderer,
		ObjectFit:       o.ObjectFit,
	}
}

// Snapshot returns the current session with the engine's live frame.
func (p *Player) Snapshot() Session {
	p.lock()
	defer p.unlock()

	s := p.session
	if p.handle != nil {
		s.Frame = p.handle.CurrentFrame()
		s.TotalFrames = p.handle.TotalFrames()
	}
	if p.playlist != nil {
		s.Index = p.playlist.Index
		s.Count = p.playlist.Len()
	}
	return s
}
