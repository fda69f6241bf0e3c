package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dotplay-cli/dotplay/animation"
	"github.com/dotplay-cli/dotplay/engine/sim"
	"github.com/dotplay-cli/dotplay/filesystem"
	"github.com/dotplay-cli/dotplay/history"
	"github.com/dotplay-cli/dotplay/key"
	"github.com/dotplay-cli/dotplay/player"
	"github.com/dotplay-cli/dotplay/playlist"
	"github.com/dotplay-cli/dotplay/viewport"
	"github.com/dotplay-cli/dotplay/where"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	if err := os.Setenv(where.EnvConfigPath, "/config"); err != nil {
		panic(err)
	}
}

type memLoader map[string]*animation.Bundle

func (m memLoader) Load(_ context.Context, src string) (*animation.Bundle, error) {
	if b, ok := m[src]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("%w: no such source %s", animation.ErrInvalid, src)
}

func bundle(id string) *animation.Bundle {
	return &animation.Bundle{Animations: []animation.Animation{{
		ID:   id,
		Data: json.RawMessage(`{"v":"5.7.4","fr":30,"ip":0,"op":60,"w":10,"h":10,"layers":[]}`),
	}}}
}

type harness struct {
	b       *statefulBubble
	p       *player.Player
	engine  *sim.Engine
	focus   *viewport.Signal
	visible *viewport.Signal
}

func newHarness(src string) *harness {
	h := &harness{
		engine:  sim.NewManual(),
		focus:   viewport.NewSignal(),
		visible: viewport.NewSignal(),
	}
	h.visible.Set(true)

	opts := player.DefaultOptions()
	opts.Container = "tui"
	opts.Engine = h.engine
	opts.Loader = memLoader{"spin.json": bundle("spin"), "wave.json": bundle("wave")}
	opts.Observer = h.visible
	opts.Focus = h.focus
	h.p = player.New(opts)
	So(h.p.Mount(context.Background()), ShouldBeNil)

	h.b = newBubble(h.p, &Options{Src: src, Focus: h.focus, Visible: h.visible})
	return h
}

// send runs msg through Update and returns the resulting command.
func (h *harness) send(msg tea.Msg) tea.Cmd {
	_, cmd := h.b.Update(msg)
	return cmd
}

func (h *harness) press(k string) tea.Cmd {
	switch k {
	case "space":
		return h.send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	case "right":
		return h.send(tea.KeyMsg{Type: tea.KeyRight})
	case "left":
		return h.send(tea.KeyMsg{Type: tea.KeyLeft})
	case "esc":
		return h.send(tea.KeyMsg{Type: tea.KeyEsc})
	case "enter":
		return h.send(tea.KeyMsg{Type: tea.KeyEnter})
	default:
		return h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	}
}

// loaded performs the load the bubble would run in the background.
func (h *harness) loaded(src, seek string) {
	h.send(h.b.load(src, seek)())
}

func TestPlayer(t *testing.T) {
	Convey("Given the terminal player on a source", t, func() {
		h := newHarness("spin.json")
		defer h.b.close()

		Convey("It starts in the loading view", func() {
			So(h.b.state, ShouldEqual, loadingState)
			So(h.b.View(), ShouldContainSubstring, "Loading")
			So(h.b.Init(), ShouldNotBeNil)
		})

		Convey("When the source has loaded", func() {
			h.loaded("spin.json", "")

			Convey("The player view shows the state", func() {
				So(h.b.state, ShouldEqual, playerState)
				So(h.b.session.State, ShouldEqual, player.Playing)
				So(h.b.View(), ShouldContainSubstring, "playing")
				So(h.b.View(), ShouldContainSubstring, "frame 0 / 60")
			})

			Convey("Space toggles playback", func() {
				h.press("space")
				So(h.p.Snapshot().State, ShouldEqual, player.Paused)
				h.press("space")
				So(h.p.Snapshot().State, ShouldEqual, player.Playing)
			})

			Convey("s stops", func() {
				h.press("s")
				So(h.b.session.State, ShouldEqual, player.Stopped)
			})

			Convey("The arrows seek by five percent", func() {
				h.press("space")
				h.press("right")
				So(h.b.session.Seeker, ShouldEqual, 5)
				h.press("right")
				h.press("left")
				So(h.b.session.Seeker, ShouldEqual, 5)
				h.press("left")
				h.press("left")
				So(h.b.session.Seeker, ShouldEqual, 0)
			})

			Convey("+ and - step through the preset speeds", func() {
				h.press("+")
				So(h.b.session.Speed, ShouldEqual, 1.25)
				h.press("-")
				h.press("-")
				So(h.b.session.Speed, ShouldEqual, 0.75)
			})

			Convey("r reverses the direction", func() {
				h.press("r")
				So(h.b.session.Direction, ShouldEqual, -1)
				So(h.b.View(), ShouldContainSubstring, "reverse")
			})

			Convey("o toggles the loop and says so", func() {
				cmd := h.press("o")
				So(h.b.session.Loop, ShouldBeTrue)
				So(cmd, ShouldNotBeNil)
				So(cmd(), ShouldEqual, "Loop on")
			})

			Convey("b toggles bounce", func() {
				cmd := h.press("b")
				So(h.b.session.Mode, ShouldEqual, playlist.Bounce)
				So(cmd(), ShouldEqual, "Bounce on")
			})

			Convey("v hides the player, which freezes it", func() {
				h.press("v")
				So(h.b.session.State, ShouldEqual, player.Frozen)
				So(h.b.View(), ShouldContainSubstring, "hidden")
				h.press("v")
				So(h.b.session.State, ShouldEqual, player.Playing)
			})

			Convey("Losing terminal focus freezes and regaining it resumes", func() {
				h.send(tea.BlurMsg{})
				So(h.p.Snapshot().State, ShouldEqual, player.Frozen)
				h.send(tea.FocusMsg{})
				So(h.p.Snapshot().State, ShouldEqual, player.Playing)
			})

			Convey("Player events refresh the session", func() {
				h.engine.Last().Step(time.Second / 2)
				cmd := h.send(eventMsg{event: player.EventFrame})
				So(cmd, ShouldNotBeNil)
				So(h.b.session.Frame, ShouldEqual, 15)
			})

			Convey("q quits", func() {
				So(h.press("q"), ShouldNotBeNil)
			})
		})

		Convey("A load with a seek position resumes there", func() {
			h.loaded("spin.json", "50%")
			So(h.b.session.Seeker, ShouldEqual, 50)
		})

		Convey("A failed load shows the player's error message", func() {
			h.loaded("missing.json", "")
			So(h.b.state, ShouldEqual, playerState)
			So(h.b.session.State, ShouldEqual, player.Error)
			So(h.b.View(), ShouldContainSubstring, "no such source")
		})

		Convey("A superseded load changes nothing", func() {
			h.send(loadedMsg{src: "spin.json", err: player.ErrLoadSuperseded})
			So(h.b.state, ShouldEqual, loadingState)
		})

		Convey("An error message switches to the error view", func() {
			h.send(errors.New("boom"))
			So(h.b.state, ShouldEqual, errorState)
			So(h.b.View(), ShouldContainSubstring, "boom")
			So(h.press("esc"), ShouldNotBeNil)
		})
	})
}

func TestEvents(t *testing.T) {
	Convey("Given a bubble subscribed to a player", t, func() {
		h := newHarness("spin.json")

		Convey("Events are queued for the UI loop", func() {
			h.p.Events().Emit(player.EventNext, player.Detail{Index: 1})
			msg := h.b.waitForEvent()()
			So(msg, ShouldResemble, eventMsg{event: player.EventNext, detail: player.Detail{Index: 1}})
		})

		Convey("A burst of frames collapses while lifecycle events are all kept", func() {
			for i := 0; i < 200; i++ {
				h.p.Events().Emit(player.EventFrame, player.Detail{Frame: float64(i)})
			}
			h.p.Events().Emit(player.EventError, player.Detail{Error: "broken"})
			h.p.Events().Emit(player.EventComplete, player.Detail{})

			So(h.b.waitForEvent()(), ShouldResemble, eventMsg{event: player.EventError, detail: player.Detail{Error: "broken"}})
			So(h.b.waitForEvent()(), ShouldResemble, eventMsg{event: player.EventComplete})
			So(h.b.waitForEvent()(), ShouldResemble, eventMsg{event: player.EventFrame, detail: player.Detail{Frame: 199}})

			_, ok := h.b.events.pop()
			So(ok, ShouldBeFalse)
		})

		Convey("After close the bubble stops listening", func() {
			h.b.close()
			h.b.close()
			So(h.b.waitForEvent()(), ShouldBeNil)
		})
	})
}

func TestStepSpeed(t *testing.T) {
	Convey("stepSpeed moves between presets", t, func() {
		So(stepSpeed(1, 1), ShouldEqual, 1.25)
		So(stepSpeed(1, -1), ShouldEqual, 0.75)
		So(stepSpeed(4, 1), ShouldEqual, 4)
		So(stepSpeed(0.25, -1), ShouldEqual, 0.25)
		So(stepSpeed(1.1, 1), ShouldEqual, 1.25)
	})
}

func TestResize(t *testing.T) {
	Convey("Given the terminal player", t, func() {
		h := newHarness("spin.json")
		defer h.b.close()

		viper.Set(key.TUIProgressWidth, 48)

		Convey("A wide terminal caps the seeker bar", func() {
			h.send(tea.WindowSizeMsg{Width: 300, Height: 40})
			So(h.b.progressC.Width, ShouldEqual, 48)
		})

		Convey("A narrow terminal shrinks it to fit", func() {
			h.send(tea.WindowSizeMsg{Width: 30, Height: 10})
			So(h.b.progressC.Width, ShouldBeLessThan, 30)
			So(h.b.width, ShouldBeLessThan, 30)
		})

		Convey("A tiny terminal never gives a negative size", func() {
			h.send(tea.WindowSizeMsg{Width: 1, Height: 1})
			So(h.b.width, ShouldBeGreaterThanOrEqualTo, 0)
			So(h.b.height, ShouldBeGreaterThanOrEqualTo, 0)
		})
	})
}

func TestHistory(t *testing.T) {
	Convey("Given a remembered source", t, func() {
		viper.Set(key.HistorySave, true)
		defer viper.Set(key.HistorySave, false)

		h := newHarness("spin.json")
		defer h.b.close()
		h.loaded("spin.json", "")
		h.press("space")
		h.press("right")
		remember(h.p.Snapshot())

		entries, err := history.Get()
		So(err, ShouldBeNil)
		So(entries, ShouldContainKey, "spin.json")
		So(entries["spin.json"].Seeker, ShouldEqual, 5)

		Convey("Without a source the history list is shown", func() {
			empty := newHarness("")
			defer empty.b.close()

			So(empty.b.Init(), ShouldNotBeNil)
			So(empty.b.state, ShouldEqual, historyState)
			So(len(empty.b.historyC.Items()), ShouldBeGreaterThan, 0)
			So(empty.b.View(), ShouldContainSubstring, "History")

			Convey("Enter resumes the selected entry", func() {
				cmd := empty.press("enter")
				So(cmd, ShouldNotBeNil)
				So(empty.b.state, ShouldEqual, loadingState)
				So(empty.b.options.Src, ShouldEqual, "spin.json")
			})

			Convey("d forgets the selected entry", func() {
				So(empty.press("d"), ShouldNotBeNil)
				entries, err := history.Get()
				So(err, ShouldBeNil)
				So(entries, ShouldNotContainKey, "spin.json")
			})
		})

		Convey("The history key opens the list from the player", func() {
			h.press("H")
			So(h.b.state, ShouldEqual, historyState)
			h.press("esc")
			So(h.b.state, ShouldEqual, playerState)
		})

		Convey("Sessions that never loaded are not remembered", func() {
			So(history.Remove(entries["spin.json"]), ShouldBeNil)
			remember(player.Session{Src: "never.json"})
			entries, err := history.Get()
			So(err, ShouldBeNil)
			So(entries, ShouldNotContainKey, "never.json")
		})
	})
}

func TestView(t *testing.T) {
	Convey("Badges reflect the session", t, func() {
		h := newHarness("spin.json")
		defer h.b.close()

		h.b.session = player.Session{State: player.Paused, Speed: 2, Direction: 1, Loop: true, TargetLoopCount: 3, LoopCount: 1}
		badges := h.b.viewBadges()
		So(badges, ShouldContainSubstring, "2x")
		So(badges, ShouldContainSubstring, "1 / 3")
		So(strings.Contains(badges, "reverse"), ShouldBeFalse)
	})
}
