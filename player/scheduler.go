package player

import "time"

// Scheduler runs deferred work. The player uses it for loop intermissions
// and the scroll settle delay.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

// Clock is the Scheduler backed by time.AfterFunc.
type Clock struct{}

func (Clock) AfterFunc(d time.Duration, fn func()) (cancel func()) {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// after schedules fn on the player's lock. The callback is dropped when the
// player was destroyed or moved to another transition in the meantime.
// Must be called with p.mu held.
func (p *Player) after(d time.Duration, fn func()) (cancel func()) {
	p.timerSeq++
	id, gen := p.timerSeq, p.gen

	stop := p.sched.AfterFunc(d, func() {
		p.lock()
		defer p.unlock()

		if _, pending := p.timers[id]; !pending {
			return
		}
		delete(p.timers, id)

		if p.destroyed || p.gen != gen {
			return
		}
		fn()
	})
	p.timers[id] = stop

	return func() {
		if stop, ok := p.timers[id]; ok {
			stop()
			delete(p.timers, id)
		}
	}
}

// supersede invalidates every pending timer. Must be called with p.mu held.
func (p *Player) supersede() {
	p.gen++
	for id, stop := range p.timers {
		stop()
		delete(p.timers, id)
	}
	p.settle = nil
}
