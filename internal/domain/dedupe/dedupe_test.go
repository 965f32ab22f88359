package dedupe_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/okian/vaep/internal/domain/dedupe"
	"github.com/smartystreets/goconvey/convey"
)

func TestDeduper(t *testing.T) {
	convey.Convey("Given an in-memory deduper", t, func() {
		ctx := context.Background()

		convey.Convey("When recording a fresh game id", func() {
			d := dedupe.NewInMemoryDeduper()

			convey.So(d.SeenAndRecord(ctx, "g1"), convey.ShouldBeFalse)

			convey.Convey("Then the same id is reported as seen", func() {
				convey.So(d.SeenAndRecord(ctx, "g1"), convey.ShouldBeTrue)
				convey.So(d.Size(), convey.ShouldEqual, 1)
			})

			convey.Convey("Then a different id is still fresh", func() {
				convey.So(d.SeenAndRecord(ctx, "g2"), convey.ShouldBeFalse)
				convey.So(d.Size(), convey.ShouldEqual, 2)
			})
		})

		convey.Convey("When unrecording an id", func() {
			d := dedupe.NewInMemoryDeduper()
			convey.So(d.SeenAndRecord(ctx, "g1"), convey.ShouldBeFalse)

			d.Unrecord(ctx, "g1")

			convey.Convey("Then the id can be recorded again", func() {
				convey.So(d.Size(), convey.ShouldEqual, 0)
				convey.So(d.SeenAndRecord(ctx, "g1"), convey.ShouldBeFalse)
			})

			convey.Convey("And unrecording an unknown id is a no-op", func() {
				d.Unrecord(ctx, "never-seen")
				convey.So(d.Size(), convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When the bound is reached", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))
			for i := 0; i < 3; i++ {
				convey.So(d.SeenAndRecord(ctx, fmt.Sprintf("g%d", i)), convey.ShouldBeFalse)
			}

			convey.So(d.SeenAndRecord(ctx, "g3"), convey.ShouldBeFalse)

			convey.Convey("Then the oldest id is evicted first", func() {
				convey.So(d.Size(), convey.ShouldEqual, 3)
				convey.So(d.SeenAndRecord(ctx, "g0"), convey.ShouldBeFalse) // evicted, fresh again
				convey.So(d.SeenAndRecord(ctx, "g3"), convey.ShouldBeTrue)  // still present
			})
		})
	})
}
