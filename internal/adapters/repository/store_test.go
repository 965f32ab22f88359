package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/okian/vaep/internal/adapters/repository"
	"github.com/okian/vaep/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func stream(gameID string, n int) []model.ValueRecord {
	records := make([]model.ValueRecord, n)
	for i := range records {
		records[i] = model.ValueRecord{
			Index:          i + 1,
			GameID:         gameID,
			TeamID:         "home",
			PlayerID:       "p1",
			OffensiveValue: float64(i) * 0.01,
		}
	}
	return records
}

func TestShardStore(t *testing.T) {
	convey.Convey("Given a sharded result store", t, func() {
		ctx := context.Background()
		store := repository.NewShardStore(repository.WithShardCount(4))

		convey.Convey("When storing and fetching a stream", func() {
			convey.So(store.Put(ctx, "g1", stream("g1", 3)), convey.ShouldBeNil)

			got, err := store.Get(ctx, "g1")

			convey.Convey("Then the stream comes back intact and in order", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(got, convey.ShouldHaveLength, 3)
				convey.So(got[0].Index, convey.ShouldEqual, 1)
				convey.So(got[2].Index, convey.ShouldEqual, 3)
			})

			convey.Convey("Then mutating the returned slice does not alter the store", func() {
				got[0].OffensiveValue = 99

				again, err := store.Get(ctx, "g1")
				convey.So(err, convey.ShouldBeNil)
				convey.So(again[0].OffensiveValue, convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When fetching an unknown game", func() {
			_, err := store.Get(ctx, "missing")

			convey.So(err, convey.ShouldWrap, repository.ErrNotFound)
		})

		convey.Convey("When a match is stored twice", func() {
			convey.So(store.Put(ctx, "g1", stream("g1", 2)), convey.ShouldBeNil)
			convey.So(store.Put(ctx, "g1", stream("g1", 5)), convey.ShouldBeNil)

			got, err := store.Get(ctx, "g1")

			convey.Convey("Then the later stream replaces the earlier one", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(got, convey.ShouldHaveLength, 5)
			})
		})

		convey.Convey("When several matches span the shards", func() {
			var want []string
			for i := 0; i < 10; i++ {
				id := fmt.Sprintf("game-%02d", i)
				want = append(want, id)
				convey.So(store.Put(ctx, id, stream(id, i+1)), convey.ShouldBeNil)
			}

			convey.Convey("Then Games lists every id sorted", func() {
				convey.So(store.Games(ctx), convey.ShouldResemble, want)
			})

			convey.Convey("Then Count totals matches and records", func() {
				matches, records := store.Count(ctx)
				convey.So(matches, convey.ShouldEqual, 10)
				convey.So(records, convey.ShouldEqual, 55) // 1+2+...+10
			})
		})
	})
}
