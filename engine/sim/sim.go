// Package sim is a clock-driven engine.Engine that advances frames without drawing them.
//
// It honours speed, direction, subframe, loop and segments, and emits the same
// event stream a browser rendering engine would. The terminal player and the
// remote control run on it, and tests drive it step by step in manual mode.
package sim

import (
	"encoding/json"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/dotplay-cli/dotplay/engine"
	"github.com/dotplay-cli/dotplay/log"
	"github.com/sirupsen/logrus"
)

const (
	// Name identifies this engine in version output and logs.
	Name = "sim"

	// DefaultFrameRate is used when the animation does not declare one.
	DefaultFrameRate = 30
)

// Engine creates simulated handles.
type Engine struct {
	// Manual disables the internal clock; callers advance handles with Step.
	Manual bool

	mu      sync.Mutex
	handles []*Handle
}

// New returns an engine running on its own clock.
func New() *Engine {
	return &Engine{}
}

// NewManual returns an engine whose handles only move when stepped.
func NewManual() *Engine {
	return &Engine{Manual: true}
}

type header struct {
	InPoint   *float64 `json:"ip"`
	OutPoint  *float64 `json:"op"`
	FrameRate float64  `json:"fr"`
}

// LoadAnimation creates a handle for opts.AnimationData.
//
// Malformed data does not fail the call: like a real engine, the handle is
// created and reports data_failed to its listeners instead.
func (e *Engine) LoadAnimation(opts engine.Options) (engine.Handle, error) {
	if len(opts.AnimationData) == 0 {
		return nil, errors.New("no animation data")
	}

	h := &Handle{
		loop:      opts.Loop,
		playing:   opts.Autoplay,
		speed:     1,
		direction: 1,
		subframe:  true,
		listeners: make(map[engine.Event][]listener),
		stop:      make(chan struct{}),
	}

	var hdr header
	if err := json.Unmarshal(opts.AnimationData, &hdr); err != nil || hdr.InPoint == nil || hdr.OutPoint == nil || *hdr.OutPoint <= *hdr.InPoint {
		h.failed = true
		h.playing = false
		h.pending = []engine.Event{engine.DataFailed}
	} else {
		h.inPoint, h.outPoint = *hdr.InPoint, *hdr.OutPoint
		h.frameRate = hdr.FrameRate
		if h.frameRate <= 0 {
			h.frameRate = DefaultFrameRate
		}
		h.setSegment(opts.InitialSegment)
		h.pending = []engine.Event{engine.DataReady, engine.DOMLoaded}
	}

	log.WithFields(logrus.Fields{
		"container": opts.Container,
		"renderer":  opts.Renderer,
		"failed":    h.failed,
	}).Debug("sim: animation loaded")

	e.mu.Lock()
	e.handles = append(e.handles, h)
	e.mu.Unlock()

	if !e.Manual {
		// failed handles still tick so data_failed reaches late listeners
		rate := h.frameRate
		if h.failed {
			rate = DefaultFrameRate
		}
		go h.run(time.Duration(float64(time.Second) / rate))
	}

	return h, nil
}

// Handles returns every handle created so far, oldest first.
func (e *Engine) Handles() []*Handle {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*Handle(nil), e.handles...)
}

// Last returns the most recently created handle, or nil.
func (e *Engine) Last() *Handle {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.handles) == 0 {
		return nil
	}
	return e.handles[len(e.handles)-1]
}

type listener struct {
	id int
	fn func()
}

// Handle is a simulated animation.
type Handle struct {
	mu sync.Mutex

	inPoint, outPoint float64
	frameRate         float64
	first, total      float64
	position          float64

	playing   bool
	loop      bool
	speed     float64
	direction int
	subframe  bool
	failed    bool
	destroyed bool
	moved     bool

	pending   []engine.Event
	listeners map[engine.Event][]listener
	nextID    int

	stop     chan struct{}
	stopOnce sync.Once
}

func (h *Handle) setSegment(seg *engine.Segment) {
	h.first, h.total = h.inPoint, h.outPoint-h.inPoint
	if seg == nil {
		return
	}

	lo, hi := math.Min(seg[0], seg[1]), math.Max(seg[0], seg[1])
	lo = math.Max(lo, h.inPoint)
	hi = math.Min(hi, h.outPoint)
	if hi > lo {
		h.first, h.total = lo, hi-lo
	}
}

func (h *Handle) run(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-h.stop:
			return
		case <-ticker.C:
			h.Step(interval)
		}
	}
}

// Step advances the clock by elapsed and delivers the resulting events.
// Events queued at creation are delivered once a listener for them exists.
func (h *Handle) Step(elapsed time.Duration) {
	h.mu.Lock()
	if h.destroyed {
		h.mu.Unlock()
		return
	}

	events := h.takePending()

	switch {
	case h.playing && !h.failed:
		delta := elapsed.Seconds() * h.frameRate * h.speed * float64(h.direction)
		events = append(events, h.advance(delta)...)
	case h.moved:
		events = append(events, engine.EnterFrame)
	}
	h.moved = false
	h.mu.Unlock()

	h.emit(events...)
}

func (h *Handle) takePending() []engine.Event {
	var ready, waiting []engine.Event
	for _, ev := range h.pending {
		if len(h.listeners[ev]) > 0 {
			ready = append(ready, ev)
		} else {
			waiting = append(waiting, ev)
		}
	}
	h.pending = waiting
	return ready
}

// advance must be called with h.mu held.
func (h *Handle) advance(delta float64) []engine.Event {
	next := h.position + delta
	events := []engine.Event{engine.EnterFrame}

	switch {
	case h.direction > 0 && next >= h.total:
		if h.loop {
			next = math.Mod(next, h.total)
			events = append(events, engine.LoopComplete)
		} else {
			next = h.total
			h.playing = false
			events = append(events, engine.Complete)
		}
	case h.direction < 0 && next <= 0:
		if h.loop {
			next = h.total + math.Mod(next, h.total)
			events = append(events, engine.LoopComplete)
		} else {
			next = 0
			h.playing = false
			events = append(events, engine.Complete)
		}
	}

	h.position = next
	return events
}

func (h *Handle) emit(events ...engine.Event) {
	for _, ev := range events {
		h.mu.Lock()
		fns := make([]func(), 0, len(h.listeners[ev]))
		for _, l := range h.listeners[ev] {
			fns = append(fns, l.fn)
		}
		h.mu.Unlock()

		for _, fn := range fns {
			fn()
		}
	}
}

func (h *Handle) Play() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.failed {
		h.playing = true
	}
}

func (h *Handle) Pause() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.playing = false
}

func (h *Handle) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.playing = false
	h.position = 0
	h.moved = true
}

// Destroy stops the clock and drops every listener.
func (h *Handle) Destroy() {
	h.mu.Lock()
	h.destroyed = true
	h.playing = false
	h.listeners = make(map[engine.Event][]listener)
	h.pending = nil
	h.mu.Unlock()

	h.stopOnce.Do(func() { close(h.stop) })
}

// Destroyed reports whether Destroy was called.
func (h *Handle) Destroyed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.destroyed
}

func (h *Handle) SetLoop(loop bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.loop = loop
}

// Loop reports the current loop flag.
func (h *Handle) Loop() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loop
}

func (h *Handle) SetSpeed(speed float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.speed = speed
}

// Speed reports the current speed multiplier.
func (h *Handle) Speed() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.speed
}

func (h *Handle) SetDirection(direction int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if direction < 0 {
		h.direction = -1
	} else {
		h.direction = 1
	}
}

func (h *Handle) SetSubframe(subframe bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subframe = subframe
}

func (h *Handle) GoToAndPlay(value float64, isFrame bool) {
	h.goTo(value, isFrame, true)
}

func (h *Handle) GoToAndStop(value float64, isFrame bool) {
	h.goTo(value, isFrame, false)
}

func (h *Handle) goTo(value float64, isFrame, play bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.failed || h.destroyed {
		return
	}
	if !isFrame {
		value = value / 1000 * h.frameRate
	}
	h.position = math.Max(0, math.Min(value, h.total))
	h.playing = play
	h.moved = true
}

// IsPlaying reports whether the clock moves the handle.
func (h *Handle) IsPlaying() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.playing
}

func (h *Handle) CurrentFrame() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subframe {
		return h.position
	}
	return math.Floor(h.position)
}

func (h *Handle) TotalFrames() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.total
}

// FirstFrame is the absolute frame the active segment starts at.
func (h *Handle) FirstFrame() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.first
}

// FrameRate is the animation's frames per second.
func (h *Handle) FrameRate() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frameRate
}

func (h *Handle) PlayDirection() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.direction
}

func (h *Handle) AddEventListener(ev engine.Event, fn func()) (remove func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.destroyed {
		return func() {}
	}

	h.nextID++
	id := h.nextID
	h.listeners[ev] = append(h.listeners[ev], listener{id: id, fn: fn})

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		ls := h.listeners[ev]
		for i, l := range ls {
			if l.id == id {
				h.listeners[ev] = append(ls[:i:i], ls[i+1:]...)
				return
			}
		}
	}
}
