package player

func (p *Player) onVisible() {
	p.lock()
	defer p.unlock()

	if p.destroyed {
		return
	}
	if !p.session.AnimateOnScroll {
		p.resume()
	}
	if !p.anchored {
		p.anchor, p.anchored = p.scrollY, true
	}
	p.session.Visible = true
}

func (p *Player) onHidden() {
	p.lock()
	defer p.unlock()

	if p.destroyed {
		return
	}
	if p.session.State == Playing {
		p.freeze()
	}
	p.session.Visible = false
}

func (p *Player) onBlur() {
	p.lock()
	defer p.unlock()

	if !p.destroyed && p.session.State == Playing {
		p.freeze()
	}
}

func (p *Player) onFocus() {
	p.lock()
	defer p.unlock()

	if !p.destroyed {
		p.resume()
	}
}
