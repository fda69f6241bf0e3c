package engine

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSettingsFor(t *testing.T) {
	Convey("Given the svg renderer", t, func() {
		s := SettingsFor(SVG, Cover)

		Convey("It hides transparent layers and loads progressively", func() {
			So(s.HideOnTransparent, ShouldBeTrue)
			So(s.ProgressiveLoad, ShouldBeTrue)
			So(s.ClearCanvas, ShouldBeFalse)
			So(s.PreserveAspectRatio, ShouldEqual, "xMidYMid slice")
			So(s.ImagePreserveAspectRatio, ShouldEqual, "xMidYMid slice")
		})
	})

	Convey("Given the canvas renderer", t, func() {
		s := SettingsFor(Canvas, Contain)
		So(s.ClearCanvas, ShouldBeTrue)
		So(s.HideOnTransparent, ShouldBeFalse)
		So(s.PreserveAspectRatio, ShouldEqual, "xMidYMid meet")
	})

	Convey("Given the html renderer", t, func() {
		s := SettingsFor(HTML, Fill)
		So(s.HideOnTransparent, ShouldBeTrue)
		So(s.PreserveAspectRatio, ShouldBeEmpty)
		So(s.ImagePreserveAspectRatio, ShouldEqual, "none")
	})
}

func TestParse(t *testing.T) {
	Convey("Renderer and fit names are validated", t, func() {
		r, err := ParseRenderer("canvas")
		So(err, ShouldBeNil)
		So(r, ShouldEqual, Canvas)

		_, err = ParseRenderer("webgl")
		So(err, ShouldNotBeNil)

		f, err := ParseObjectFit("scale-down")
		So(err, ShouldBeNil)
		So(AspectRatio(f), ShouldEqual, "xMidYMid meet")

		_, err = ParseObjectFit("stretch")
		So(err, ShouldNotBeNil)
	})
}
