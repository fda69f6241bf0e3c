package player

import (
	"testing"
	"time"

	"github.com/dotplay-cli/dotplay/animation"
	"github.com/dotplay-cli/dotplay/playlist"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoopCount(t *testing.T) {
	Convey("Given a normal animation looping twice", t, func() {
		f := newFixture(func(o *Options) {
			o.Loop = true
			o.Count = 2
		})
		f.mount()
		f.load("single.json")

		Convey("The first pass counts one loop and restarts", func() {
			f.frames(60)

			s := f.p.Snapshot()
			So(s.LoopCount, ShouldEqual, 1)
			So(s.State, ShouldEqual, Playing)
			So(f.events.count(EventLoop), ShouldEqual, 1)
			So(f.handle().CurrentFrame(), ShouldEqual, 0)

			f.clock.Fire()
			So(f.handle().IsPlaying(), ShouldBeTrue)

			Convey("The second pass completes and turns looping off", func() {
				f.frames(60)

				s := f.p.Snapshot()
				So(s.State, ShouldEqual, Completed)
				So(s.LoopCount, ShouldEqual, 2)
				So(s.Loop, ShouldBeFalse)
				So(f.handle().Loop(), ShouldBeFalse)
				So(f.events.count(EventComplete), ShouldEqual, 1)
				So(f.events.count(EventLoop), ShouldEqual, 1)
			})
		})
	})

	Convey("Given a bounce animation", t, func() {
		f := newFixture(func(o *Options) {
			o.Loop = true
			o.Mode = playlist.Bounce
			o.Count = 3
		})
		f.mount()
		f.load("single.json")

		Convey("Each half pass counts half a loop and turns around", func() {
			f.frames(60)
			s := f.p.Snapshot()
			So(s.LoopCount, ShouldEqual, 0.5)
			So(s.Direction, ShouldEqual, -1)
			So(f.handle().PlayDirection(), ShouldEqual, -1)
			So(f.handle().CurrentFrame(), ShouldEqual, 59)

			f.clock.Fire()
			f.frames(60)
			s = f.p.Snapshot()
			So(s.LoopCount, ShouldEqual, 1)
			So(s.Direction, ShouldEqual, 1)
			So(f.handle().PlayDirection(), ShouldEqual, 1)
			So(f.handle().CurrentFrame(), ShouldEqual, 0)
			So(s.State, ShouldEqual, Playing)
		})
	})

	Convey("Without a target loops are not counted", t, func() {
		f := newFixture(func(o *Options) { o.Loop = true })
		f.mount()
		f.load("single.json")

		f.frames(60)
		So(f.p.Snapshot().LoopCount, ShouldEqual, 0)
		So(f.events.count(EventLoop), ShouldEqual, 1)
	})
}

func TestIntermission(t *testing.T) {
	Convey("Given a looping animation with an intermission", t, func() {
		f := newFixture(func(o *Options) {
			o.Loop = true
			o.Intermission = 500 * time.Millisecond
		})
		f.mount()
		f.load("single.json")
		f.frames(60)

		Convey("The next pass waits for the intermission", func() {
			So(f.clock.Pending(), ShouldEqual, 1)
			So(f.clock.tasks[0].d, ShouldEqual, 500*time.Millisecond)
			So(f.handle().IsPlaying(), ShouldBeFalse)

			f.clock.Fire()
			So(f.handle().IsPlaying(), ShouldBeTrue)
		})

		Convey("Pausing cancels it", func() {
			f.p.Pause()
			So(f.clock.Pending(), ShouldEqual, 0)

			f.clock.Fire()
			So(f.handle().IsPlaying(), ShouldBeFalse)
			So(f.state(), ShouldEqual, Paused)
		})

		Convey("Destroying cancels it", func() {
			h := f.handle()
			f.p.Destroy()

			So(f.clock.Pending(), ShouldEqual, 0)
			f.clock.Fire()
			So(h.IsPlaying(), ShouldBeFalse)
			So(f.state(), ShouldEqual, Destroyed)
		})
	})
}

func TestCompleteAdvances(t *testing.T) {
	Convey("Given a playlist whose second entry autoplays", t, func() {
		f := newFixture(nil)
		f.loader.bundles["pack.lottie"] = pack(
			animation.ManifestAnimation{ID: "intro", Autoplay: lo.ToPtr(true)},
			animation.ManifestAnimation{ID: "main", Autoplay: lo.ToPtr(true)},
			animation.ManifestAnimation{ID: "outro", Autoplay: lo.ToPtr(false)},
		)
		f.mount()
		f.load("pack.lottie")

		Convey("Completing the first plays the second", func() {
			f.frames(60)

			s := f.p.Snapshot()
			So(s.Index, ShouldEqual, 1)
			So(s.State, ShouldEqual, Playing)
			So(f.events.count(EventNext), ShouldEqual, 1)
			So(f.events.count(EventComplete), ShouldEqual, 0)

			Convey("Completing the second stops, since the third does not autoplay", func() {
				f.frames(60)

				s := f.p.Snapshot()
				So(s.Index, ShouldEqual, 1)
				So(s.State, ShouldEqual, Completed)
				So(f.events.count(EventComplete), ShouldEqual, 1)
			})
		})
	})

	Convey("Given a looping session over entries that do not loop themselves", t, func() {
		f := newFixture(func(o *Options) { o.Loop = true })
		f.loader.bundles["pack.lottie"] = pack(
			animation.ManifestAnimation{ID: "a", Loop: lo.ToPtr(false)},
			animation.ManifestAnimation{ID: "b", Loop: lo.ToPtr(false), Autoplay: lo.ToPtr(true)},
		)
		f.mount()
		f.load("pack.lottie")

		Convey("The last entry wraps to the first on completion", func() {
			f.frames(60)
			So(f.p.Snapshot().Index, ShouldEqual, 1)

			f.frames(60)
			s := f.p.Snapshot()
			So(s.Index, ShouldEqual, 0)
			So(s.State, ShouldEqual, Playing)
			So(f.events.count(EventNext), ShouldEqual, 2)
		})
	})
}
