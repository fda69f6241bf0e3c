package viewport

import "sync"

// Signal is a settable boolean source. It implements both Observer and
// FocusSource, so hosts without a native primitive (a terminal, a test)
// can push changes by hand.
type Signal struct {
	mu     sync.Mutex
	value  *bool
	nextID int
	subs   map[int]func(bool)
}

// NewSignal returns a signal with no value yet.
func NewSignal() *Signal {
	return &Signal{subs: make(map[int]func(bool))}
}

// Set records v and notifies subscribers.
func (s *Signal) Set(v bool) {
	s.mu.Lock()
	s.value = &v
	fns := make([]func(bool), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Observe subscribes fn and replays the current value, if any.
func (s *Signal) Observe(fn func(bool)) (stop func()) {
	return s.Subscribe(fn)
}

// Subscribe subscribes fn and replays the current value, if any.
func (s *Signal) Subscribe(fn func(bool)) (stop func()) {
	s.mu.Lock()
	if s.subs == nil {
		s.subs = make(map[int]func(bool))
	}
	s.nextID++
	id := s.nextID
	s.subs[id] = fn
	current := s.value
	s.mu.Unlock()

	if current != nil {
		fn(*current)
	}

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
