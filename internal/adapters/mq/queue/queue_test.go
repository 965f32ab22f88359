package queue_test

import (
	"context"
	"testing"
	"time"

	"github.com/okian/vaep/internal/adapters/mq/queue"
	"github.com/okian/vaep/internal/domain/model"
	"github.com/okian/vaep/internal/domain/spadl"
	"github.com/smartystreets/goconvey/convey"
)

func job(id string) queue.Job {
	log, err := model.NewActionLog("game-"+id, []model.Action{{
		Index:    1,
		GameID:   "game-" + id,
		PeriodID: 1,
		TeamID:   "home",
		PlayerID: "p1",
		Type:     spadl.Pass,
		Result:   spadl.Success,
		BodyPart: spadl.Foot,
	}})
	if err != nil {
		panic(err)
	}
	return queue.Job{ID: id, Log: log}
}

func TestInMemoryQueue(t *testing.T) {
	convey.Convey("Given an in-memory match queue", t, func() {
		ctx := context.Background()

		convey.Convey("When enqueuing and dequeuing a job", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(4))

			convey.So(q.Enqueue(ctx, job("j1")), convey.ShouldBeTrue)
			convey.So(q.Len(ctx), convey.ShouldEqual, 1)

			convey.Convey("Then the job comes back through the channel", func() {
				select {
				case got := <-q.Dequeue(ctx):
					convey.So(got.ID, convey.ShouldEqual, "j1")
					convey.So(got.Log.GameID(), convey.ShouldEqual, "game-j1")
				case <-time.After(time.Second):
					convey.So("timeout", convey.ShouldBeEmpty)
				}
			})
		})

		convey.Convey("When the queue is full", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(1))

			convey.So(q.Enqueue(ctx, job("j1")), convey.ShouldBeTrue)

			convey.Convey("Then further enqueues are rejected without blocking", func() {
				convey.So(q.Enqueue(ctx, job("j2")), convey.ShouldBeFalse)
				convey.So(q.Len(ctx), convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When the queue is closed", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(4))
			convey.So(q.Enqueue(ctx, job("j1")), convey.ShouldBeTrue)
			convey.So(q.Close(), convey.ShouldBeNil)

			convey.Convey("Then enqueues are rejected", func() {
				convey.So(q.IsClosed(), convey.ShouldBeTrue)
				convey.So(q.Enqueue(ctx, job("j2")), convey.ShouldBeFalse)
			})

			convey.Convey("Then queued jobs still drain before the channel closes", func() {
				ch := q.Dequeue(ctx)

				got, ok := <-ch
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(got.ID, convey.ShouldEqual, "j1")

				_, ok = <-ch
				convey.So(ok, convey.ShouldBeFalse)
			})

			convey.Convey("Then closing again reports the closed state", func() {
				convey.So(q.Close(), convey.ShouldWrap, queue.ErrClosed)
			})
		})
	})
}
