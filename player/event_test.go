package player

import (
	"testing"

	"github.com/dotplay-cli/dotplay/engine"
	"github.com/dotplay-cli/dotplay/filesystem"
	"github.com/dotplay-cli/dotplay/key"
	"github.com/dotplay-cli/dotplay/playlist"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestEmitter(t *testing.T) {
	Convey("Given an emitter", t, func() {
		e := NewEmitter()
		var got []Event

		Convey("Subscribers only hear their event", func() {
			e.On(EventPlay, func(Detail) { got = append(got, EventPlay) })
			e.Emit(EventPause, Detail{})
			e.Emit(EventPlay, Detail{})
			So(got, ShouldResemble, []Event{EventPlay})
		})

		Convey("OnAny hears everything in order", func() {
			e.OnAny(func(ev Event, _ Detail) { got = append(got, ev) })
			e.Emit(EventLoad, Detail{})
			e.Emit(EventReady, Detail{})
			So(got, ShouldResemble, []Event{EventLoad, EventReady})
		})

		Convey("Unsubscribing stops delivery", func() {
			off := e.On(EventPlay, func(Detail) { got = append(got, EventPlay) })
			off()
			e.Emit(EventPlay, Detail{})
			So(got, ShouldBeEmpty)
		})

		Convey("A subscriber may unsubscribe itself while being called", func() {
			var off func()
			off = e.On(EventLoop, func(Detail) {
				got = append(got, EventLoop)
				off()
			})
			e.Emit(EventLoop, Detail{})
			e.Emit(EventLoop, Detail{})
			So(got, ShouldHaveLength, 1)
		})

		Convey("Clear drops everyone", func() {
			e.OnAny(func(ev Event, _ Detail) { got = append(got, ev) })
			e.Clear()
			e.Emit(EventLoad, Detail{})
			So(got, ShouldBeEmpty)
		})
	})
}

func TestEventDetail(t *testing.T) {
	Convey("Frame events carry the position", t, func() {
		f := newFixture(nil)
		f.mount()
		f.load("single.json")

		f.frames(30)
		d, ok := f.events.last(EventFrame)
		So(ok, ShouldBeTrue)
		So(d.Frame, ShouldEqual, 30)
		So(d.Seeker, ShouldEqual, 50)
		So(d.State, ShouldEqual, Playing)
		So(f.p.Snapshot().Seeker, ShouldEqual, 50)
	})

	Convey("Listeners may call back into the player", t, func() {
		f := newFixture(nil)
		f.p.Events().On(EventPlay, func(Detail) { f.p.Pause() })
		f.mount()
		f.load("single.json")

		So(f.state(), ShouldEqual, Paused)
	})
}

func TestOptionsFromConfig(t *testing.T) {
	Convey("Options follow the configuration", t, func() {
		viper.Set(key.PlayerMode, "bounce")
		viper.Set(key.PlayerSpeed, 1.5)
		viper.Set(key.PlayerCount, 3)
		viper.Set(key.PlayerIntermission, 250)
		viper.Set(key.RendererType, "canvas")
		viper.Set(key.RendererFit, "sideways")
		defer viper.Reset()

		o := OptionsFromConfig()
		So(o.Mode, ShouldEqual, playlist.Bounce)
		So(o.Speed, ShouldEqual, 1.5)
		So(o.Count, ShouldEqual, 3)
		So(o.Intermission.Milliseconds(), ShouldEqual, 250)
		So(o.Renderer, ShouldEqual, engine.Canvas)
		So(o.ObjectFit, ShouldEqual, engine.Contain)
	})

	Convey("Missing collaborators get defaults", t, func() {
		filesystem.SetMemMapFs()
		o := Options{Direction: -7}
		o.fill()
		So(o.Loader, ShouldNotBeNil)
		So(o.Scheduler, ShouldHaveSameTypeAs, Clock{})
		So(o.Container, ShouldStartWith, "dotplay-")
		So(o.Direction, ShouldEqual, -1)
		So(o.Speed, ShouldEqual, 1)
	})
}
