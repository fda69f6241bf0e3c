package color

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestForState(t *testing.T) {
	Convey("Player states map to badge colors", t, func() {
		So(ForState("playing"), ShouldEqual, Green)
		So(ForState("error"), ShouldEqual, Red)

		Convey("Unknown states are gray", func() {
			So(ForState("buffering"), ShouldEqual, Gray)
		})
	})
}
