package player

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dotplay-cli/dotplay/animation"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMount(t *testing.T) {
	Convey("Given a player with a source", t, func() {
		f := newFixture(func(o *Options) { o.Src = "single.json" })

		Convey("It starts in Loading", func() {
			So(f.state(), ShouldEqual, Loading)
		})

		Convey("Mounting renders and loads the source", func() {
			f.mount()
			So(f.events.names(), ShouldResemble, []Event{EventRendered, EventPlay})
			So(f.state(), ShouldEqual, Playing)
		})

		Convey("Mounting twice does nothing more", func() {
			f.mount()
			f.mount()
			So(f.events.count(EventRendered), ShouldEqual, 1)
			So(f.engine.Handles(), ShouldHaveLength, 1)
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Given a mounted player", t, func() {
		f := newFixture(nil)
		f.mount()

		Convey("An autoplaying load ends up playing with no loops counted", func() {
			f.load("single.json")

			s := f.p.Snapshot()
			So(s.State, ShouldEqual, Playing)
			So(s.LoopCount, ShouldEqual, 0)
			So(s.Src, ShouldEqual, "single.json")
			So(s.TotalFrames, ShouldEqual, 60)
			So(f.handle().IsPlaying(), ShouldBeTrue)

			Convey("Engine readiness is reported on the next tick", func() {
				f.frames(0)
				So(f.events.names(), ShouldResemble, []Event{EventRendered, EventPlay, EventLoad, EventReady})
				So(f.p.Snapshot().IsLoaded, ShouldBeTrue)
			})
		})

		Convey("Without autoplay the animation waits, stopped", func() {
			f := newFixture(func(o *Options) { o.Autoplay = false })
			f.mount()
			f.load("single.json")

			So(f.state(), ShouldEqual, Stopped)
			So(f.handle().IsPlaying(), ShouldBeFalse)
			So(f.events.count(EventPlay), ShouldEqual, 0)
		})

		Convey("A failing source moves to Error", func() {
			f.loader.errs["down.json"] = errors.New("connection refused")

			err := f.p.Load(context.Background(), "down.json")
			So(errors.Is(err, ErrLoad), ShouldBeTrue)

			s := f.p.Snapshot()
			So(s.State, ShouldEqual, Error)
			So(s.ErrorMessage, ShouldContainSubstring, "connection refused")

			d, ok := f.events.last(EventError)
			So(ok, ShouldBeTrue)
			So(d.Error, ShouldEqual, s.ErrorMessage)
			So(d.State, ShouldEqual, Error)
		})

		Convey("A failed load stops the animation that was playing", func() {
			f.load("single.json")
			before := f.handle()
			f.loader.errs["down.json"] = errors.New("connection refused")

			So(f.p.Load(context.Background(), "down.json"), ShouldNotBeNil)
			So(before.Destroyed(), ShouldBeTrue)
			So(before.IsPlaying(), ShouldBeFalse)

			before.Step(3 * time.Second)
			So(f.state(), ShouldEqual, Error)
			So(f.events.count(EventComplete), ShouldEqual, 0)
			So(f.p.Snapshot().ErrorMessage, ShouldContainSubstring, "connection refused")
		})

		Convey("Invalid data is reported as a broken file", func() {
			f.loader.errs["bad.json"] = fmt.Errorf("%w: missing layers", animation.ErrInvalid)

			err := f.p.Load(context.Background(), "bad.json")
			So(errors.Is(err, ErrValidation), ShouldBeTrue)
			So(f.p.Snapshot().ErrorMessage, ShouldStartWith, "broken or corrupted file")
		})

		Convey("Data the engine cannot render fails once the engine says so", func() {
			f.loader.bundles["corrupt.json"] = &animation.Bundle{
				Animations: []animation.Animation{{ID: "corrupt", Data: json.RawMessage(`{"v":"5"}`)}},
			}
			f.load("corrupt.json")

			f.frames(0)
			So(f.state(), ShouldEqual, Error)
			So(f.events.count(EventError), ShouldEqual, 1)
		})

		Convey("An engine refusing the data is an engine error", func() {
			f.loader.bundles["empty.json"] = &animation.Bundle{Animations: []animation.Animation{{ID: "empty"}}}

			err := f.p.Load(context.Background(), "empty.json")
			So(errors.Is(err, ErrEngine), ShouldBeTrue)
			So(f.state(), ShouldEqual, Error)
		})

		Convey("A later load replaces the handle", func() {
			f.loader.bundles["other.json"] = single(90)
			f.load("single.json")
			first := f.handle()

			f.load("other.json")
			So(first.Destroyed(), ShouldBeTrue)
			So(f.p.Snapshot().TotalFrames, ShouldEqual, 90)
		})

		Convey("A load started earlier but finishing later is discarded", func() {
			gate := make(chan struct{})
			f.loader.bundles["slow.json"] = single(90)
			f.loader.gates["slow.json"] = gate

			done := make(chan error, 1)
			go func() { done <- f.p.Load(context.Background(), "slow.json") }()
			So(<-f.loader.entered, ShouldEqual, "slow.json")

			f.load("single.json")
			close(gate)

			So(errors.Is(<-done, ErrLoadSuperseded), ShouldBeTrue)
			s := f.p.Snapshot()
			So(s.Src, ShouldEqual, "single.json")
			So(s.TotalFrames, ShouldEqual, 60)
			So(f.engine.Handles(), ShouldHaveLength, 1)
		})

		Convey("Reload fetches the same source again", func() {
			f.load("single.json")
			So(f.p.Reload(context.Background()), ShouldBeNil)
			So(f.engine.Handles(), ShouldHaveLength, 2)
			So(f.p.Snapshot().Src, ShouldEqual, "single.json")
		})
	})

	Convey("Loading before the container is rendered fails", t, func() {
		f := newFixture(nil)

		err := f.p.Load(context.Background(), "single.json")
		So(errors.Is(err, ErrContainerNotReady), ShouldBeTrue)
		So(f.state(), ShouldEqual, Error)
		So(f.engine.Handles(), ShouldBeEmpty)
	})
}

func TestDestroy(t *testing.T) {
	Convey("Given a playing player", t, func() {
		f := newFixture(nil)
		f.mount()
		f.load("single.json")
		h := f.handle()

		f.p.Destroy()

		Convey("The handle is released", func() {
			So(h.Destroyed(), ShouldBeTrue)
			So(f.state(), ShouldEqual, Destroyed)
			So(f.events.count(EventDestroyed), ShouldEqual, 1)
		})

		Convey("Destroying again is harmless", func() {
			So(func() { f.p.Destroy() }, ShouldNotPanic)
			So(f.state(), ShouldEqual, Destroyed)
		})

		Convey("Commands are ignored", func() {
			f.p.Play()
			f.p.Seek("50%")
			f.p.Next()
			So(f.state(), ShouldEqual, Destroyed)
			So(f.p.Load(context.Background(), "single.json"), ShouldEqual, ErrDestroyed)
			So(f.p.Mount(context.Background()), ShouldEqual, ErrDestroyed)
		})

		Convey("Signals no longer reach it", func() {
			f.visible.Set(false)
			f.focus.Set(false)
			So(f.state(), ShouldEqual, Destroyed)
		})
	})
}

func TestStaleHandle(t *testing.T) {
	Convey("Given a player that moved on to a second animation", t, func() {
		f := newFixture(nil)
		f.loader.bundles["pack.lottie"] = pack(
			animation.ManifestAnimation{ID: "first"},
			animation.ManifestAnimation{ID: "second"},
		)
		f.mount()
		f.load("pack.lottie")
		old := f.handle()

		f.p.Next()
		f.events.reset()

		Convey("The old handle was released", func() {
			So(old.Destroyed(), ShouldBeTrue)
			So(f.handle(), ShouldNotEqual, old)
		})

		Convey("Events bound to the old handle are ignored", func() {
			f.p.bind(old, f.p.onEnterFrame)()
			f.p.bind(old, f.p.onComplete)()

			So(f.events.count(EventFrame), ShouldEqual, 0)
			So(f.events.count(EventComplete), ShouldEqual, 0)
			So(f.p.Snapshot().Index, ShouldEqual, 1)
		})
	})
}
