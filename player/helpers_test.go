package player

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dotplay-cli/dotplay/animation"
	"github.com/dotplay-cli/dotplay/engine/sim"
	"github.com/dotplay-cli/dotplay/viewport"
	. "github.com/smartystreets/goconvey/convey"
)

// lottieDoc is a 30 fps animation of the given length.
func lottieDoc(frames int) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{"v":"5.7.4","fr":30,"ip":0,"op":%d,"w":100,"h":100,"layers":[]}`, frames))
}

func single(frames int) *animation.Bundle {
	return &animation.Bundle{Animations: []animation.Animation{{ID: "single", Data: lottieDoc(frames)}}}
}

// pack is a dotLottie bundle of 60-frame animations, one per manifest entry.
func pack(entries ...animation.ManifestAnimation) *animation.Bundle {
	b := &animation.Bundle{IsDotLottie: true, Manifest: &animation.Manifest{Animations: entries}}
	for _, e := range entries {
		b.Animations = append(b.Animations, animation.Animation{ID: e.ID, Data: lottieDoc(60)})
	}
	return b
}

type clockTask struct {
	d         time.Duration
	fn        func()
	cancelled bool
}

// manualClock runs scheduled work only when fired.
type manualClock struct {
	mu    sync.Mutex
	tasks []*clockTask
}

func (c *manualClock) AfterFunc(d time.Duration, fn func()) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &clockTask{d: d, fn: fn}
	c.tasks = append(c.tasks, t)
	return func() {
		c.mu.Lock()
		t.cancelled = true
		c.mu.Unlock()
	}
}

// Pending counts tasks that were neither fired nor cancelled.
func (c *manualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, t := range c.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Fire runs every task scheduled so far, cancelled ones included; the player
// must ignore those on its own.
func (c *manualClock) Fire() {
	c.mu.Lock()
	tasks := c.tasks
	c.tasks = nil
	c.mu.Unlock()

	for _, t := range tasks {
		t.fn()
	}
}

type stubLoader struct {
	mu      sync.Mutex
	bundles map[string]*animation.Bundle
	errs    map[string]error
	gates   map[string]chan struct{}
	entered chan string
}

func newStubLoader() *stubLoader {
	return &stubLoader{
		bundles: make(map[string]*animation.Bundle),
		errs:    make(map[string]error),
		gates:   make(map[string]chan struct{}),
		entered: make(chan string, 8),
	}
}

func (l *stubLoader) Load(ctx context.Context, src string) (*animation.Bundle, error) {
	l.mu.Lock()
	b, err, gate := l.bundles[src], l.errs[src], l.gates[src]
	l.mu.Unlock()

	select {
	case l.entered <- src:
	default:
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("no such source %s", src)
	}
	return b, nil
}

type received struct {
	event  Event
	detail Detail
}

type recorder struct {
	mu     sync.Mutex
	events []received
}

func record(p *Player) *recorder {
	r := &recorder{}
	p.Events().OnAny(func(ev Event, d Detail) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.events = append(r.events, received{event: ev, detail: d})
	})
	return r
}

func (r *recorder) count(ev Event) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, e := range r.events {
		if e.event == ev {
			n++
		}
	}
	return n
}

func (r *recorder) last(ev Event) (Detail, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].event == ev {
			return r.events[i].detail, true
		}
	}
	return Detail{}, false
}

// names lists the received events, frame updates left out.
func (r *recorder) names() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Event
	for _, e := range r.events {
		if e.event != EventFrame {
			out = append(out, e.event)
		}
	}
	return out
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

type fixture struct {
	p       *Player
	engine  *sim.Engine
	clock   *manualClock
	loader  *stubLoader
	visible *viewport.Signal
	focus   *viewport.Signal
	events  *recorder
}

func newFixture(configure func(o *Options)) *fixture {
	f := &fixture{
		engine:  sim.NewManual(),
		clock:   &manualClock{},
		loader:  newStubLoader(),
		visible: viewport.NewSignal(),
		focus:   viewport.NewSignal(),
	}
	f.loader.bundles["single.json"] = single(60)

	opts := DefaultOptions()
	opts.Container = "stage"
	opts.Engine = f.engine
	opts.Loader = f.loader
	opts.Scheduler = f.clock
	opts.Observer = f.visible
	opts.Focus = f.focus
	if configure != nil {
		configure(&opts)
	}

	f.p = New(opts)
	f.events = record(f.p)
	return f
}

func (f *fixture) mount() {
	So(f.p.Mount(context.Background()), ShouldBeNil)
}

func (f *fixture) load(src string) {
	So(f.p.Load(context.Background(), src), ShouldBeNil)
}

// handle is the live engine handle.
func (f *fixture) handle() *sim.Handle {
	return f.engine.Last()
}

// frames advances the live handle by n frames of a 30 fps animation.
func (f *fixture) frames(n int) {
	f.handle().Step(time.Duration(n) * time.Second / 30)
}

func (f *fixture) state() State {
	return f.p.Snapshot().State
}
