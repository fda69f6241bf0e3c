package player

import "github.com/dotplay-cli/dotplay/scroll"

// Scroll reports the host's vertical scroll offset. With scroll-driven
// playback the distance from where the player first became visible selects
// the frame, and the player settles to Paused once scrolling stops.
func (p *Player) Scroll(y float64) {
	p.lock()
	defer p.unlock()

	p.scrollY = y
	if !p.session.AnimateOnScroll || p.handle == nil || !p.session.Visible || p.destroyed {
		return
	}

	if p.settle != nil {
		p.settle()
	}
	p.settle = p.after(scroll.SettleDelay, func() {
		p.settle = nil
		p.setState(Paused)
	})

	total := p.handle.TotalFrames()
	target := scroll.TargetFrame(y-p.anchor, total)
	if !scroll.Within(target, total) {
		p.setState(Paused)
		return
	}

	p.setState(Playing)
	p.handle.GoToAndStop(target, true)
}
