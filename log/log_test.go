package log

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dotplay-cli/dotplay/filesystem"
	"github.com/dotplay-cli/dotplay/key"
	"github.com/dotplay-cli/dotplay/where"
	logrus "github.com/sirupsen/logrus"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestSetup(t *testing.T) {
	Convey("Given an in-memory filesystem", t, func() {
		filesystem.SetMemMapFs()
		t.Setenv(where.EnvConfigPath, "/config")

		Convey("When logging is disabled", func() {
			viper.Set(key.LogsWrite, false)
			So(Setup(), ShouldBeNil)

			Convey("Nothing is written", func() {
				Info("discarded")
				files, _ := filesystem.API().ReadDir(where.Logs())
				So(files, ShouldBeEmpty)
			})
		})

		Convey("When logging is enabled", func() {
			viper.Set(key.LogsWrite, true)
			viper.Set(key.LogsLevel, "debug")
			viper.Set(key.LogsJson, true)
			So(Setup(), ShouldBeNil)

			WithFields(logrus.Fields{"src": "a.json"}).Debug("loaded")

			Convey("Entries land in today's file", func() {
				path := filepath.Join(where.Logs(), time.Now().Format("2006-01-02")+".log")
				data, err := filesystem.API().ReadFile(path)
				So(err, ShouldBeNil)
				So(strings.Contains(string(data), `"src":"a.json"`), ShouldBeTrue)
			})

			Reset(func() {
				viper.Set(key.LogsWrite, false)
				_ = Setup()
			})
		})
	})
}
