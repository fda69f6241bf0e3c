package player

import (
	"fmt"

	"github.com/dotplay-cli/dotplay/playlist"
)

// Next moves to the following playlist entry. On the last entry it wraps to
// the first when the session loops and does nothing otherwise.
func (p *Player) Next() {
	p.lock()
	defer p.unlock()

	if p.playlist == nil || p.destroyed {
		return
	}
	if i, ok := p.playlist.NextIndex(p.defaults.Loop); ok {
		p.switchTo(i, false)
	}
}

// Previous moves to the preceding playlist entry. On the first entry it does nothing.
func (p *Player) Previous() {
	p.lock()
	defer p.unlock()

	if p.playlist == nil || p.destroyed {
		return
	}
	if i, ok := p.playlist.PreviousIndex(); ok {
		p.switchTo(i, true)
	}
}

// switchTo replaces the handle with one for entry index. A failure leaves
// the index advanced and the player in Error. Must be called with p.mu held.
func (p *Player) switchTo(index int, backward bool) {
	pl := p.playlist
	entry, ok := pl.Entry(index)
	if !ok {
		return
	}

	pl.Index = index
	p.supersede()

	r := pl.Resolve(index, p.defaults)
	autoplay := r.Autoplay && !p.session.AnimateOnScroll

	opts, err := p.engineOptions(playlist.Resolved{Autoplay: autoplay, Loop: r.Loop}, entry.Data)
	if err != nil {
		p.fail(err)
		return
	}
	h, err := p.engine.LoadAnimation(opts)
	if err != nil {
		p.fail(fmt.Errorf("%w: %w", ErrEngine, err))
		return
	}
	p.attach(h)
	p.apply(h, r)

	if backward {
		p.emit(EventPrevious, Detail{})
	} else {
		p.emit(EventNext, Detail{})
	}

	switch {
	case r.Autoplay && !p.session.AnimateOnScroll:
		h.GoToAndPlay(0, true)
		p.transition(Playing, EventPlay)
	case r.Autoplay:
		h.GoToAndStop(0, true)
		p.transition(Paused, EventPause)
	default:
		h.GoToAndStop(0, true)
		p.transition(Stopped, EventStop)
	}
}
