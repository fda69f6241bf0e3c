package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/dotplay-cli/dotplay/animation"
	"github.com/dotplay-cli/dotplay/config"
	"github.com/dotplay-cli/dotplay/engine/sim"
	"github.com/dotplay-cli/dotplay/filesystem"
	"github.com/dotplay-cli/dotplay/history"
	"github.com/dotplay-cli/dotplay/player"
	"github.com/dotplay-cli/dotplay/where"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
	"golang.org/x/exp/slices"
)

func init() {
	filesystem.SetMemMapFs()
	if err := os.Setenv(where.EnvConfigPath, "/config"); err != nil {
		panic(err)
	}
}

func TestDescribeSettings(t *testing.T) {
	Convey("Manifest settings are listed in a fixed order", t, func() {
		So(describeSettings(animation.ManifestAnimation{}), ShouldBeEmpty)
		So(describeSettings(animation.ManifestAnimation{
			Loop:      lo.ToPtr(true),
			Mode:      lo.ToPtr("bounce"),
			Speed:     lo.ToPtr(1.5),
			Direction: lo.ToPtr(-1),
		}), ShouldEqual, "loop=true mode=bounce speed=1.5 direction=-1")
	})
}

func TestResume(t *testing.T) {
	Convey("Given the play options", t, func() {
		Convey("An empty history has nothing to continue", func() {
			var o playOptions
			So(o.resume(), ShouldNotBeNil)
		})

		Convey("The most recent entry is resumed at its seeker", func() {
			So(history.Save(&history.Entry{Src: "old.json", Seeker: 10, PlayedAt: time.Now().Add(-time.Hour)}), ShouldBeNil)
			So(history.Save(&history.Entry{Src: "new.json", Seeker: 42, PlayedAt: time.Now()}), ShouldBeNil)

			var o playOptions
			So(o.resume(), ShouldBeNil)
			So(o.src, ShouldEqual, "new.json")
			So(o.seek, ShouldEqual, "42%")

			Convey("An explicit seek wins", func() {
				o := playOptions{seek: "0"}
				So(o.resume(), ShouldBeNil)
				So(o.seek, ShouldEqual, "0")
			})
		})
	})
}

func TestHookNames(t *testing.T) {
	Convey("Only lua files in the hooks directory are listed", t, func() {
		fs := filesystem.API()
		So(fs.WriteFile(where.Hooks()+"/notify.lua", []byte("function on_event() end"), 0o644), ShouldBeNil)
		So(fs.WriteFile(where.Hooks()+"/README.md", []byte("#"), 0o644), ShouldBeNil)

		names, err := hookNames()
		So(err, ShouldBeNil)
		So(names, ShouldResemble, []string{"notify"})
	})
}

func TestEnvVars(t *testing.T) {
	Convey("Every registered setting has an environment variable", t, func() {
		vars := envVars()
		So(vars, ShouldHaveLength, len(config.EnvExposed)+1)

		names := lo.Map(vars, func(v envVar, _ int) string { return v.name })
		So(names, ShouldContain, "DOTPLAY_PLAYER_SPEED")
		So(names, ShouldContain, where.EnvConfigPath)
		So(slices.IsSorted(names), ShouldBeTrue)
	})
}

func TestExplainConfigErr(t *testing.T) {
	Convey("Unknown keys suggest the closest registered one", t, func() {
		err := explainConfigErr("player.sped", config.ErrUnknownKey)
		So(err.Error(), ShouldContainSubstring, "player.speed")

		Convey("Other errors pass through", func() {
			So(explainConfigErr("player.speed", nil), ShouldBeNil)
			other := errors.New("player.speed: must be greater than 0")
			So(explainConfigErr("player.speed", other), ShouldEqual, other)
		})
	})
}

func TestPlayHeadless(t *testing.T) {
	Convey("Given a player on its own clock", t, func() {
		opts := player.DefaultOptions()
		opts.Engine = sim.New()
		opts.Container = "headless"
		p := player.New(opts)
		defer p.Destroy()
		So(p.Mount(context.Background()), ShouldBeNil)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var out bytes.Buffer

		Convey("An animation the engine cannot render ends the command with its error", func() {
			src := "/anim/broken.json"
			So(afero.WriteFile(filesystem.API(), src, []byte(`{"v":"5.7.4","fr":30,"ip":0,"op":0,"w":1,"h":1,"layers":[]}`), 0o644), ShouldBeNil)

			err := playHeadless(ctx, p, playOptions{src: src}, &out)
			So(err, ShouldNotBeNil)
			So(ctx.Err(), ShouldBeNil)
			So(out.String(), ShouldContainSubstring, `"event":"error"`)
		})

		Convey("A finished animation ends the command cleanly", func() {
			src := "/anim/short.json"
			So(afero.WriteFile(filesystem.API(), src, []byte(`{"v":"5.7.4","fr":30,"ip":0,"op":3,"w":1,"h":1,"layers":[]}`), 0o644), ShouldBeNil)

			So(playHeadless(ctx, p, playOptions{src: src}, &out), ShouldBeNil)
			So(ctx.Err(), ShouldBeNil)
			So(out.String(), ShouldContainSubstring, `"event":"complete"`)
		})
	})
}
