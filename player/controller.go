// Package player is the playback controller of an embeddable animation player.
//
// A Player owns one engine handle at a time and keeps a Session in sync with
// three asynchronous sources: engine events, viewport and focus signals, and
// transport commands. Every entry point takes the player lock, so the state
// machine advances one step at a time whatever goroutine calls in. Lifecycle
// events are queued while the lock is held and delivered after it is released,
// which lets listeners call back into the player.
package player

import (
	"sync"

	"github.com/dotplay-cli/dotplay/engine"
	"github.com/dotplay-cli/dotplay/log"
	"github.com/dotplay-cli/dotplay/playlist"
	"github.com/dotplay-cli/dotplay/util"
	"github.com/dotplay-cli/dotplay/viewport"
	"github.com/sirupsen/logrus"
)

type queued struct {
	event  Event
	detail Detail
}

// Player drives a rendering engine.
type Player struct {
	mu   sync.Mutex
	opts Options

	engine  engine.Engine
	loader  Loader
	sched   Scheduler
	emitter *Emitter
	view    *viewport.Adapter

	session  Session
	defaults playlist.Resolved
	settings []playlist.Settings
	playlist *playlist.Playlist

	handle engine.Handle
	detach []func()

	mounted   bool
	destroyed bool

	loadGen  uint64
	gen      uint64
	timerSeq uint64
	timers   map[uint64]func()
	settle   func()

	scrollY  float64
	anchor   float64
	anchored bool

	queue []queued
}

// New returns an unmounted player in the Loading state.
func New(opts Options) *Player {
	opts.fill()

	p := &Player{
		opts:     opts,
		engine:   opts.Engine,
		loader:   opts.Loader,
		sched:    opts.Scheduler,
		emitter:  opts.Emitter,
		session:  newSession(opts),
		settings: opts.Settings,
		timers:   make(map[uint64]func()),
		defaults: playlist.Resolved{
			Autoplay:  opts.Autoplay,
			Loop:      opts.Loop,
			Mode:      opts.Mode,
			Speed:     opts.Speed,
			Direction: opts.Direction,
		},
	}

	p.view = viewport.New(opts.Observer, opts.Focus, viewport.Callbacks{
		OnVisible: p.onVisible,
		OnHidden:  p.onHidden,
		OnFocus:   p.onFocus,
		OnBlur:    p.onBlur,
	})

	return p
}

// Events returns the emitter lifecycle events are delivered through.
func (p *Player) Events() *Emitter {
	return p.emitter
}

func (p *Player) lock() {
	p.mu.Lock()
}

// unlock releases the lock and delivers the events queued under it.
func (p *Player) unlock() {
	q := p.queue
	p.queue = nil
	p.mu.Unlock()

	for _, e := range q {
		p.emitter.Emit(e.event, e.detail)
	}
}

// emit queues ev for delivery after unlock. Must be called with p.mu held.
func (p *Player) emit(ev Event, d Detail) {
	d.State = p.session.State
	if p.playlist != nil {
		d.Index = p.playlist.Index
	}
	p.queue = append(p.queue, queued{event: ev, detail: d})
}

// setState moves the state machine. Must be called with p.mu held.
func (p *Player) setState(s State) {
	if p.session.State == s {
		return
	}
	log.WithFields(logrus.Fields{
		"src":  p.session.Src,
		"from": p.session.State,
		"to":   s,
	}).Debug("player: transition")
	p.session.State = s
}

// transition moves to s and announces it with ev when the state changes.
// Must be called with p.mu held.
func (p *Player) transition(s State, ev Event) {
	if p.session.State == s {
		return
	}
	if s != Playing {
		p.session.PrevState = p.session.State
	}
	p.setState(s)
	p.emit(ev, Detail{})
}

// frameDetail reads the engine position. Must be called with p.mu held.
func (p *Player) frameDetail() Detail {
	if p.handle == nil {
		return Detail{Seeker: p.session.Seeker}
	}
	frame, total := p.handle.CurrentFrame(), p.handle.TotalFrames()
	return Detail{Frame: frame, Seeker: util.Percent(frame, total)}
}

// attach makes h the live handle. The new listeners are registered before the
// old handle is released, and every listener ignores events from a handle
// that is no longer current. Must be called with p.mu held.
func (p *Player) attach(h engine.Handle) {
	old, oldDetach := p.handle, p.detach

	p.handle = h
	p.detach = []func(){
		h.AddEventListener(engine.EnterFrame, p.bind(h, p.onEnterFrame)),
		h.AddEventListener(engine.Complete, p.bind(h, p.onComplete)),
		h.AddEventListener(engine.LoopComplete, p.bind(h, p.onLoopComplete)),
		h.AddEventListener(engine.DOMLoaded, p.bind(h, p.onDOMLoaded)),
		h.AddEventListener(engine.DataReady, p.bind(h, p.onDataReady)),
		h.AddEventListener(engine.DataFailed, p.bind(h, p.onDataFailed)),
	}

	release(old, oldDetach)
}

func release(h engine.Handle, detach []func()) {
	for _, d := range detach {
		d()
	}
	if h != nil {
		h.Destroy()
	}
}

func (p *Player) bind(h engine.Handle, fn func(engine.Handle)) func() {
	return func() {
		p.lock()
		defer p.unlock()

		if p.destroyed || p.handle != h {
			return
		}
		fn(h)
	}
}

// fail records err, releases the current handle and moves to Error, so
// nothing keeps playing under the error message. Must be called with p.mu held.
func (p *Player) fail(err error) {
	p.supersede()
	release(p.handle, p.detach)
	p.handle, p.detach = nil, nil
	p.session.ErrorMessage = err.Error()
	p.setState(Error)

	log.WithFields(logrus.Fields{"src": p.session.Src}).Error(err)
	p.emit(EventError, Detail{Error: p.session.ErrorMessage})
}

// Destroy releases the engine handle, cancels timers and drops every
// subscription. It is safe to call more than once.
func (p *Player) Destroy() {
	p.lock()
	if p.destroyed {
		p.unlock()
		return
	}

	p.supersede()
	p.loadGen++
	release(p.handle, p.detach)
	p.handle, p.detach = nil, nil
	p.setState(Destroyed)
	p.emit(EventDestroyed, Detail{})
	p.destroyed = true
	p.unlock()

	p.view.Stop()
	p.emitter.Clear()
}
