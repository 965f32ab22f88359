package logger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/vaep/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	convey.Convey("Given the global logger", t, func() {
		convey.So(logger.Init(), convey.ShouldBeNil)

		convey.Convey("When fetching and deriving loggers", func() {
			l := logger.Get()

			convey.Convey("Then the logger and named children are usable", func() {
				convey.So(l, convey.ShouldNotBeNil)
				convey.So(logger.Named("pipeline"), convey.ShouldNotBeNil)

				ctx := context.Background()
				l.Info(ctx, "message",
					logger.String("k", "v"),
					logger.Int("n", 1),
					logger.Float64("f", 0.5),
					logger.Any("any", []int{1, 2}),
					logger.Error(errors.New("boom")),
				)
				l.Named("child").Debug(ctx, "child message")
			})
		})

		convey.Convey("When setting levels from strings", func() {
			convey.So(logger.SetLevelString("debug"), convey.ShouldBeNil)
			convey.So(logger.SetLevelString("WARN"), convey.ShouldBeNil)
			convey.So(logger.SetLevelString(" error "), convey.ShouldBeNil)
			convey.So(logger.SetLevelString(""), convey.ShouldBeNil)
			convey.So(logger.SetLevelString("loud"), convey.ShouldNotBeNil)

			// Restore for the rest of the suite.
			convey.So(logger.SetLevelString("info"), convey.ShouldBeNil)
		})
	})
}

func TestFieldConstructors(t *testing.T) {
	convey.Convey("Given the field constructors", t, func() {
		convey.So(logger.String("k", "v"), convey.ShouldResemble, logger.Field{Key: "k", Value: "v"})
		convey.So(logger.Int("n", 2), convey.ShouldResemble, logger.Field{Key: "n", Value: 2})
		convey.So(logger.Float64("f", 1.5), convey.ShouldResemble, logger.Field{Key: "f", Value: 1.5})

		err := errors.New("boom")
		convey.So(logger.Error(err), convey.ShouldResemble, logger.Field{Key: "error", Value: err})
	})
}
