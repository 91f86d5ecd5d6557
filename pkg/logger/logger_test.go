package logger

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given an uninitialized logger package", t, func() {
		Convey("When Init is called", func() {
			err := Init()

			Convey("Then it should succeed and Get should return a logger", func() {
				So(err, ShouldBeNil)
				So(Get(), ShouldNotBeNil)
			})

			Convey("And logging at every level should not panic", func() {
				ctx := context.Background()
				l := Get()
				So(func() {
					l.Debug(ctx, "debug message", String("k", "v"))
					l.Info(ctx, "info message", Int("n", 1))
					l.Warn(ctx, "warn message", Int64("n64", 2))
					l.Error(ctx, "error message", Any("v", []string{"a"}))
				}, ShouldNotPanic)
			})

			Convey("And Named should return a distinct logger", func() {
				named := Named("store")
				So(named, ShouldNotBeNil)
				So(func() { named.Info(context.Background(), "named message") }, ShouldNotPanic)
			})

			Convey("And Sync should be a no-op", func() {
				So(Sync(), ShouldBeNil)
			})
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given an initialized logger", t, func() {
		So(Init(), ShouldBeNil)

		Convey("When setting known levels", func() {
			for _, lvl := range []string{"debug", "info", "warn", "warning", "error", "", "  INFO  "} {
				So(SetLevelString(lvl), ShouldBeNil)
			}
		})

		Convey("When setting an unknown level", func() {
			err := SetLevelString("chatty")

			Convey("Then it should return an error", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "unknown log level")
			})
		})
	})
}

func TestFieldConstructors(t *testing.T) {
	Convey("Given the field constructors", t, func() {
		Convey("Then each should carry key and value", func() {
			So(String("a", "b").Key, ShouldEqual, "a")
			So(String("a", "b").Value, ShouldEqual, "b")
			So(Int("n", 3).Value, ShouldEqual, 3)
			So(Int64("n", 4).Value, ShouldEqual, int64(4))
			So(Error(nil).Key, ShouldEqual, "error")
		})
	})
}
