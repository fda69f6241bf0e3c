package player

import (
	"github.com/dotplay-cli/dotplay/engine"
	"github.com/dotplay-cli/dotplay/playlist"
	"github.com/samber/mo"
)

// Play starts or resumes playback. Without a handle it does nothing.
func (p *Player) Play() {
	p.lock()
	defer p.unlock()
	p.play()
}

func (p *Player) play() {
	if p.handle == nil {
		return
	}
	p.supersede()
	p.handle.Play()

	if p.session.State != Playing {
		p.setState(Playing)
		p.emit(EventPlay, Detail{})
	}
}

// Pause pauses playback and remembers the state it paused from.
func (p *Player) Pause() {
	p.lock()
	defer p.unlock()
	p.pause()
}

func (p *Player) pause() {
	if p.handle == nil {
		return
	}
	p.supersede()
	p.handle.Pause()

	if p.session.State != Paused {
		p.session.PrevState = p.session.State
		p.setState(Paused)
		p.emit(EventPause, Detail{})
	}
}

// Stop rewinds and resets the loop counter.
func (p *Player) Stop() {
	p.lock()
	defer p.unlock()
	p.stop()
}

func (p *Player) stop() {
	if p.handle == nil {
		return
	}
	p.supersede()
	p.handle.Stop()
	p.session.LoopCount = 0

	if p.session.State != Stopped {
		p.session.PrevState = p.session.State
		p.setState(Stopped)
		p.emit(EventStop, Detail{})
	}
}

// freeze pauses on behalf of the host, not the user.
func (p *Player) freeze() {
	if p.handle == nil {
		return
	}
	p.supersede()
	p.handle.Pause()

	if p.session.State != Frozen {
		p.session.PrevState = p.session.State
		p.setState(Frozen)
		p.emit(EventFreeze, Detail{})
	}
}

// resume undoes a freeze: playback restarts only if it was playing before.
func (p *Player) resume() {
	if p.session.State != Frozen {
		return
	}
	if p.session.PrevState == Playing {
		p.play()
		return
	}
	p.setState(Paused)
}

// TogglePlay pauses while playing and plays otherwise. From Completed it
// replays: bounce turns around where it stopped, reverse playback restarts
// from the last frame and forward playback from the first.
func (p *Player) TogglePlay() {
	p.lock()
	defer p.unlock()

	if p.handle == nil {
		return
	}

	switch p.session.State {
	case Playing:
		p.pause()
	case Completed:
		p.replay()
	default:
		p.play()
	}
}

func (p *Player) replay() {
	p.supersede()
	h := p.handle
	dir := h.PlayDirection()

	switch {
	case p.session.Mode == playlist.Bounce:
		h.SetDirection(-dir)
		p.session.Direction = -dir
		h.GoToAndPlay(h.CurrentFrame(), true)
	case dir == -1:
		h.GoToAndPlay(h.TotalFrames(), true)
	default:
		h.GoToAndPlay(0, true)
	}

	p.setState(Playing)
	p.emit(EventPlay, Detail{})
}

// ToggleLoop flips the session-wide loop flag.
func (p *Player) ToggleLoop() {
	p.lock()
	defer p.unlock()
	p.setLoop(!p.session.Loop)
}

// ToggleBounce flips between normal and bounce mode. When the current
// playlist entry carries its own mode, that override is flipped instead of
// the session default.
func (p *Player) ToggleBounce() {
	p.lock()
	defer p.unlock()

	next := p.session.Mode.Toggle()
	p.session.Mode = next

	idx := 0
	if p.playlist != nil {
		idx = p.playlist.Index
	}
	if idx < len(p.settings) && p.settings[idx].Mode.IsPresent() {
		p.settings[idx].Mode = mo.Some(next)
		return
	}
	p.defaults.Mode = next
}

// SetLoop sets the session-wide loop flag, which also wraps playlists.
func (p *Player) SetLoop(loop bool) {
	p.lock()
	defer p.unlock()
	p.setLoop(loop)
}

func (p *Player) setLoop(loop bool) {
	p.defaults.Loop = loop
	p.session.Loop = loop
	if p.handle != nil {
		p.handle.SetLoop(loop)
	}
}

// SetSpeed sets the playback speed multiplier.
func (p *Player) SetSpeed(speed float64) {
	p.lock()
	defer p.unlock()

	p.defaults.Speed = speed
	p.session.Speed = speed
	if p.handle != nil {
		p.handle.SetSpeed(speed)
	}
}

// SetDirection sets forward (1) or reverse (-1) playback.
func (p *Player) SetDirection(direction int) {
	p.lock()
	defer p.unlock()

	if direction < 0 {
		direction = -1
	} else {
		direction = 1
	}
	p.defaults.Direction = direction
	p.session.Direction = direction
	if p.handle != nil {
		p.handle.SetDirection(direction)
	}
}

// SetSubframe toggles rendering of in-between frames.
func (p *Player) SetSubframe(subframe bool) {
	p.lock()
	defer p.unlock()

	p.session.Subframe = subframe
	if p.handle != nil {
		p.handle.SetSubframe(subframe)
	}
}

// SetSegment restricts playback to [in, out], counted from 1. It takes
// effect the next time a handle is created. Nil clears it.
func (p *Player) SetSegment(seg *engine.Segment) {
	p.lock()
	defer p.unlock()

	if seg != nil {
		s := *seg
		seg = &s
	}
	p.session.Segment = seg
}

// SetCount sets how many loops complete the animation. Zero loops forever.
func (p *Player) SetCount(count int) {
	p.lock()
	defer p.unlock()
	p.session.TargetLoopCount = max(count, 0)
}

// SetMultiAnimationSettings replaces the per-entry overrides.
func (p *Player) SetMultiAnimationSettings(settings []playlist.Settings) {
	p.lock()
	defer p.unlock()

	p.settings = append([]playlist.Settings(nil), settings...)
	if p.playlist != nil {
		p.playlist.Settings = p.settings
	}
}

// PointerEnter starts hover playback.
func (p *Player) PointerEnter() {
	p.lock()
	defer p.unlock()

	if p.session.Hover && p.session.State != Playing {
		p.play()
	}
}

// PointerLeave ends hover playback.
func (p *Player) PointerLeave() {
	p.lock()
	defer p.unlock()

	if p.session.Hover && p.session.State == Playing {
		p.stop()
	}
}
