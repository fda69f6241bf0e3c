// Package viewport turns host visibility and focus signals into deduplicated player callbacks.
package viewport

import "sync"

// Observer reports whether the player's container intersects the viewport.
type Observer interface {
	Observe(fn func(visible bool)) (stop func())
}

// FocusSource reports window focus and blur.
type FocusSource interface {
	Subscribe(fn func(focused bool)) (stop func())
}

// Callbacks receive transitions. Nil callbacks are skipped.
type Callbacks struct {
	OnVisible func()
	OnHidden  func()
	OnFocus   func()
	OnBlur    func()
}

// Adapter fires each callback once per change of the underlying signal.
//
// Without an Observer the container counts as visible from Start on, and
// focus changes are the only signal.
type Adapter struct {
	observer Observer
	focus    FocusSource
	cb       Callbacks

	mu      sync.Mutex
	started bool
	visible *bool
	focused *bool
	stops   []func()
}

// New returns an adapter; either source may be nil.
func New(observer Observer, focus FocusSource, cb Callbacks) *Adapter {
	return &Adapter{observer: observer, focus: focus, cb: cb}
}

// Start subscribes to the sources. Calling it twice has no effect.
func (a *Adapter) Start() {
	a.mu.Lock()
	if a.started {
		a.mu.Unlock()
		return
	}
	a.started = true
	a.mu.Unlock()

	if a.observer == nil {
		a.setVisible(true)
	} else {
		stop := a.observer.Observe(a.setVisible)
		a.mu.Lock()
		a.stops = append(a.stops, stop)
		a.mu.Unlock()
	}

	if a.focus != nil {
		stop := a.focus.Subscribe(a.setFocused)
		a.mu.Lock()
		a.stops = append(a.stops, stop)
		a.mu.Unlock()
	}
}

// Stop unsubscribes from the sources. Later signals are ignored.
func (a *Adapter) Stop() {
	a.mu.Lock()
	stops := a.stops
	a.stops = nil
	a.started = false
	a.mu.Unlock()

	for _, stop := range stops {
		if stop != nil {
			stop()
		}
	}
}

// Visible reports the last known visibility.
func (a *Adapter) Visible() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.visible != nil && *a.visible
}

func (a *Adapter) setVisible(v bool) {
	a.mu.Lock()
	if !a.started || (a.visible != nil && *a.visible == v) {
		a.mu.Unlock()
		return
	}
	a.visible = &v
	a.mu.Unlock()

	if v {
		call(a.cb.OnVisible)
	} else {
		call(a.cb.OnHidden)
	}
}

func (a *Adapter) setFocused(f bool) {
	a.mu.Lock()
	if !a.started || (a.focused != nil && *a.focused == f) {
		a.mu.Unlock()
		return
	}
	a.focused = &f
	a.mu.Unlock()

	if f {
		call(a.cb.OnFocus)
	} else {
		call(a.cb.OnBlur)
	}
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}
