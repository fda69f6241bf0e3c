package player

import (
	"errors"

	"github.com/dotplay-cli/dotplay/engine"
	"github.com/dotplay-cli/dotplay/playlist"
	"github.com/dotplay-cli/dotplay/util"
)

var errDataFailed = errors.New("animation data could not be rendered")

func (p *Player) onEnterFrame(h engine.Handle) {
	frame := h.CurrentFrame()
	p.session.Seeker = util.Percent(frame, h.TotalFrames())
	p.emit(EventFrame, Detail{Frame: frame, Seeker: p.session.Seeker})
}

func (p *Player) onDataReady(engine.Handle) {
	p.emit(EventLoad, Detail{})
}

func (p *Player) onDOMLoaded(engine.Handle) {
	p.session.IsLoaded = true
	p.emit(EventReady, Detail{})
}

func (p *Player) onDataFailed(engine.Handle) {
	p.fail(errDataFailed)
}

// onLoopComplete counts loops towards the target and restarts the next
// pass after the intermission.
func (p *Player) onLoopComplete(h engine.Handle) {
	bounce := p.session.Mode == playlist.Bounce

	if p.session.TargetLoopCount > 0 {
		if bounce {
			p.session.LoopCount += 0.5
		} else {
			p.session.LoopCount++
		}

		if p.session.LoopCount >= float64(p.session.TargetLoopCount) {
			p.session.Loop = false
			h.SetLoop(false)
			p.supersede()
			p.setState(Completed)
			p.emit(EventComplete, p.frameDetail())
			return
		}
	}

	p.emit(EventLoop, Detail{})

	// Frames are relative to the active segment, so its bounds are 0 and
	// the total. Stopping just short of the out-point keeps the engine from
	// reporting the same boundary twice.
	in, out := 0.0, h.TotalFrames()
	dir := h.PlayDirection()

	switch {
	case bounce && dir == -1:
		h.GoToAndStop(in, true)
	case bounce:
		h.GoToAndStop(out*0.99, true)
	case dir == -1:
		h.GoToAndStop(out*0.99, true)
	default:
		h.GoToAndStop(in, true)
	}

	if bounce {
		h.SetDirection(-dir)
		p.session.Direction = -dir
	}

	p.after(p.session.Intermission, func() {
		if !p.session.AnimateOnScroll && p.handle == h {
			h.Play()
		}
	})
}

// onComplete advances the playlist when the next entry autoplays, wraps it
// when looping, and completes otherwise.
func (p *Player) onComplete(h engine.Handle) {
	if pl := p.playlist; pl != nil && pl.Len() > 1 {
		if pl.RequestsAutoplay(pl.Index + 1) {
			p.switchTo(pl.Index+1, false)
			return
		}
		if p.defaults.Loop && pl.IsLast() {
			p.switchTo(0, false)
			return
		}
	}

	d := p.frameDetail()
	p.session.Seeker = d.Seeker
	p.supersede()
	p.setState(Completed)
	p.emit(EventComplete, d)
}
