package player

import "sync"

// Event is a lifecycle notification emitted to embedders.
type Event string

const (
	EventLoad      Event = "load"
	EventReady     Event = "ready"
	EventPlay      Event = "play"
	EventPause     Event = "pause"
	EventStop      Event = "stop"
	EventFreeze    Event = "freeze"
	EventLoop      Event = "loop"
	EventComplete  Event = "complete"
	EventNext      Event = "next"
	EventPrevious  Event = "previous"
	EventError     Event = "error"
	EventRendered  Event = "rendered"
	EventDestroyed Event = "destroyed"
	EventFrame     Event = "frame"
)

// Events lists every lifecycle event.
func Events() []Event {
	return []Event{
		EventLoad, EventReady, EventPlay, EventPause, EventStop, EventFreeze, EventLoop,
		EventComplete, EventNext, EventPrevious, EventError, EventRendered, EventDestroyed, EventFrame,
	}
}

// Detail is the payload of an event. Only Frame, Complete and Error carry
// meaningful Frame/Seeker or Error values; State and Index are always set.
type Detail struct {
	Frame  float64 `json:"frame"`
	Seeker int     `json:"seeker"`
	Index  int     `json:"index"`
	State  State   `json:"state"`
	Error  string  `json:"error,omitempty"`
}

// Listener receives every event it subscribed to.
type Listener func(ev Event, d Detail)

type subscription struct {
	event Event
	fn    Listener
}

// Emitter delivers events to subscribers in subscription order.
type Emitter struct {
	mu     sync.Mutex
	nextID int
	order  []int
	subs   map[int]subscription
}

// NewEmitter returns an emitter without subscribers.
func NewEmitter() *Emitter {
	return &Emitter{subs: make(map[int]subscription)}
}

// On subscribes fn to ev and returns a function cancelling the subscription.
func (e *Emitter) On(ev Event, fn func(d Detail)) (off func()) {
	return e.add(ev, func(_ Event, d Detail) { fn(d) })
}

// OnAny subscribes fn to every event.
func (e *Emitter) OnAny(fn Listener) (off func()) {
	return e.add("", fn)
}

func (e *Emitter) add(ev Event, fn Listener) func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	id := e.nextID
	e.subs[id] = subscription{event: ev, fn: fn}
	e.order = append(e.order, id)

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.subs, id)
	}
}

// Emit calls every matching subscriber. Subscribers may subscribe or
// unsubscribe from inside the callback.
func (e *Emitter) Emit(ev Event, d Detail) {
	e.mu.Lock()
	fns := make([]Listener, 0, len(e.subs))
	live := e.order[:0]
	for _, id := range e.order {
		sub, ok := e.subs[id]
		if !ok {
			continue
		}
		live = append(live, id)
		if sub.event == "" || sub.event == ev {
			fns = append(fns, sub.fn)
		}
	}
	e.order = live
	e.mu.Unlock()

	for _, fn := range fns {
		fn(ev, d)
	}
}

// Clear drops every subscription.
func (e *Emitter) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subs = make(map[int]subscription)
	e.order = nil
}
