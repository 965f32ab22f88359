package state_test

import (
	"testing"

	"github.com/okian/vaep/internal/domain/model"
	"github.com/okian/vaep/internal/domain/spadl"
	"github.com/okian/vaep/internal/domain/state"
	"github.com/smartystreets/goconvey/convey"
)

func action(index int, team string, typ spadl.ActionType, res spadl.Result, t float64) model.Action {
	return model.Action{
		Index:       index,
		GameID:      "g1",
		PeriodID:    1,
		TimeSeconds: t,
		TeamID:      team,
		PlayerID:    "p-" + team,
		Type:        typ,
		Result:      res,
		BodyPart:    spadl.Foot,
	}
}

func fixtureLog() model.ActionLog {
	log, err := model.NewActionLog("g1", []model.Action{
		action(1, "home", spadl.Pass, spadl.Success, 1),
		action(2, "home", spadl.Dribble, spadl.Success, 4),
		action(3, "home", spadl.Shot, spadl.Success, 7), // goal
		action(4, "away", spadl.Pass, spadl.Success, 20),
		action(5, "away", spadl.Pass, spadl.Fail, 24),
		action(6, "home", spadl.Interception, spadl.Success, 25),
	})
	if err != nil {
		panic(err)
	}
	return log
}

func TestStateAt(t *testing.T) {
	convey.Convey("Given an extractor over a fixture log", t, func() {
		log := fixtureLog()
		ex := state.NewExtractor(state.WithWindowK(3))

		convey.Convey("When asking for the start state", func() {
			s, err := ex.StateAt(log, 0)

			convey.Convey("Then it has no window, team, or score", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(s.Start(), convey.ShouldBeTrue)
				convey.So(s.Window, convey.ShouldBeEmpty)
				convey.So(s.TeamID, convey.ShouldBeEmpty)
				convey.So(s.ScoreDiff, convey.ShouldEqual, 0)

				_, ok := s.Latest()
				convey.So(ok, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the window is shorter than k", func() {
			s, err := ex.StateAt(log, 2)

			convey.Convey("Then it holds only the played actions", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(s.Window, convey.ShouldHaveLength, 2)
				convey.So(s.Anchor, convey.ShouldEqual, 2)
				convey.So(s.TeamID, convey.ShouldEqual, "home")
				convey.So(s.TimeSeconds, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When the match has more actions than k", func() {
			s, err := ex.StateAt(log, 5)

			convey.Convey("Then the window holds the k most recent, in order", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(s.Window, convey.ShouldHaveLength, 3)
				convey.So(s.Window[0].Index, convey.ShouldEqual, 3)
				convey.So(s.Window[2].Index, convey.ShouldEqual, 5)

				latest, ok := s.Latest()
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(latest.Index, convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When a goal has been scored", func() {
			convey.Convey("Then the scorer's perspective counts it as +1", func() {
				s, err := ex.StateAt(log, 3)
				convey.So(err, convey.ShouldBeNil)
				convey.So(s.TeamID, convey.ShouldEqual, "home")
				convey.So(s.ScoreDiff, convey.ShouldEqual, 1)
			})

			convey.Convey("And the conceding side's perspective counts it as -1", func() {
				s, err := ex.StateAt(log, 4)
				convey.So(err, convey.ShouldBeNil)
				convey.So(s.TeamID, convey.ShouldEqual, "away")
				convey.So(s.ScoreDiff, convey.ShouldEqual, -1)
			})
		})

		convey.Convey("When an own goal appears in the log", func() {
			og := action(7, "home", spadl.Clearance, spadl.OwnGoal, 30)
			extended, err := model.NewActionLog("g1", append(log.Slice(0, log.Len()), og))
			convey.So(err, convey.ShouldBeNil)

			s, err := ex.StateAt(extended, 7)

			convey.Convey("Then it counts against the team that put it in", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(s.TeamID, convey.ShouldEqual, "home")
				convey.So(s.ScoreDiff, convey.ShouldEqual, 0) // 1 goal, 1 own goal
			})
		})

		convey.Convey("When the index is out of range", func() {
			_, errLow := ex.StateAt(log, -1)
			_, errHigh := ex.StateAt(log, log.Len()+1)

			convey.So(errLow, convey.ShouldWrap, state.ErrOutOfRange)
			convey.So(errHigh, convey.ShouldWrap, state.ErrOutOfRange)
		})

		convey.Convey("When asking for the state after the final action", func() {
			s, err := ex.StateAt(log, log.Len())

			convey.So(err, convey.ShouldBeNil)
			convey.So(s.Anchor, convey.ShouldEqual, log.Len())
		})
	})
}

func TestExtractorOptions(t *testing.T) {
	convey.Convey("Given extractor construction", t, func() {
		convey.Convey("The default window size applies without options", func() {
			convey.So(state.NewExtractor().WindowK(), convey.ShouldEqual, state.DefaultWindowK)
		})

		convey.Convey("An invalid window size falls back to the default", func() {
			convey.So(state.NewExtractor(state.WithWindowK(0)).WindowK(), convey.ShouldEqual, state.DefaultWindowK)
		})

		convey.Convey("A window of one holds only the most recent action", func() {
			ex := state.NewExtractor(state.WithWindowK(1))
			s, err := ex.StateAt(fixtureLog(), 4)

			convey.So(err, convey.ShouldBeNil)
			convey.So(s.Window, convey.ShouldHaveLength, 1)
			convey.So(s.Window[0].Index, convey.ShouldEqual, 4)
		})
	})
}
