package werss

import (
	"errors"
	"os"
	"testing"

	"github.com/agiledragon/gomonkey/v2"
	"github.com/sirupsen/logrus"
	"github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	convey.Convey("test logger", t, func() {
		log := GetLogger("test")
		convey.So(log.Data["logName"], convey.ShouldEqual, "test")
		log.Infof("testtest")
	})
	convey.Convey("test log level from settings", t, func() {
		old := Config.GetString("log.level")
		defer func() {
			Config.Set("log.level", old)
			initLog()
		}()
		Config.Set("log.level", " debug ")
		initLog()
		expected := "debug"
		if _, ok := os.LookupEnv("UNITTEST"); ok {
			expected = "error"
		}
		convey.So(logger.Level.String(), convey.ShouldEqual, expected)
		convey.So(logger.Hooks[logrus.InfoLevel], convey.ShouldHaveLength, 1)
	})
	convey.Convey("test default fields hook", t, func() {
		hook := NewDefaultFieldHook("pid-1")
		entry := logrus.NewEntry(logrus.New())
		convey.So(hook.Fire(entry), convey.ShouldBeNil)
		name, _ := os.Hostname()
		convey.So(entry.Data["hostname"], convey.ShouldEqual, name)
		convey.So(entry.Data["pid"], convey.ShouldEqual, "pid-1")
		convey.So(hook.Levels(), convey.ShouldResemble, logrus.AllLevels)
	})
	convey.Convey("test log level parser error", t, func() {
		patch := gomonkey.ApplyFunc(logrus.ParseLevel, func(_ string) (logrus.Level, error) {
			return logrus.ErrorLevel, errors.New("parse level error")
		})
		defer patch.Reset()
		f := func() {
			initLog()
		}
		convey.So(f, convey.ShouldPanic)
	})
}
