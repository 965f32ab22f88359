package feature_test

import (
	"fmt"
	"testing"

	"github.com/okian/vaep/internal/domain/feature"
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
		StartX:      50 + float64(index),
		StartY:      30,
		EndX:        55 + float64(index),
		EndY:        34,
		Type:        typ,
		Result:      res,
		BodyPart:    spadl.Foot,
	}
}

func stateAt(log model.ActionLog, k, i int) state.GameState {
	s, err := state.NewExtractor(state.WithWindowK(k)).StateAt(log, i)
	if err != nil {
		panic(err)
	}
	return s
}

func fixtureLog() model.ActionLog {
	log, err := model.NewActionLog("g1", []model.Action{
		action(1, "home", spadl.Pass, spadl.Success, 1),
		action(2, "home", spadl.Dribble, spadl.Success, 4),
		action(3, "home", spadl.Pass, spadl.Fail, 7),
		action(4, "away", spadl.Interception, spadl.Success, 8),
	})
	if err != nil {
		panic(err)
	}
	return log
}

func TestSchema(t *testing.T) {
	convey.Convey("Given the feature schema for a window size", t, func() {
		const k = 3
		full := feature.NewFullEncoder(k)
		rf := feature.NewResultFreeEncoder(k)

		convey.Convey("Both encoders declare the identical schema", func() {
			convey.So(rf.Schema(), convey.ShouldResemble, full.Schema())
		})

		convey.Convey("The schema names are unique", func() {
			seen := map[string]bool{}
			for _, name := range full.Schema() {
				convey.So(seen[name], convey.ShouldBeFalse)
				seen[name] = true
			}
		})

		convey.Convey("The schema carries the expected landmark names", func() {
			names := full.Schema()
			convey.So(names, convey.ShouldContain, "type_pass_a0")
			convey.So(names, convey.ShouldContain, "result_success_a0")
			convey.So(names, convey.ShouldContain, "bodypart_foot_a2")
			convey.So(names, convey.ShouldContain, "time_delta_a1")
			convey.So(names, convey.ShouldContain, "space_delta_dist_a2")
			convey.So(names[len(names)-1], convey.ShouldEqual, "goalscore_diff")
		})

		convey.Convey("The masked positions are exactly a0's result columns", func() {
			names := full.Schema()
			masked := rf.MaskedIndices()

			convey.So(masked, convey.ShouldHaveLength, spadl.NumResults)
			for _, i := range masked {
				convey.So(names[i], convey.ShouldStartWith, "result_")
				convey.So(names[i], convey.ShouldEndWith, "_a0")
			}
		})

		convey.Convey("Encoded vectors match the schema length", func() {
			log := fixtureLog()
			for i := 0; i <= log.Len(); i++ {
				s := stateAt(log, k, i)
				convey.So(full.Encode(s), convey.ShouldHaveLength, len(full.Schema()))
				convey.So(rf.Encode(s), convey.ShouldHaveLength, len(rf.Schema()))
			}
		})
	})
}

func TestMaskingInvariant(t *testing.T) {
	convey.Convey("Given both renderings of the same state", t, func() {
		const k = 3
		full := feature.NewFullEncoder(k)
		rf := feature.NewResultFreeEncoder(k)
		log := fixtureLog()

		convey.Convey("They differ only at masked positions", func() {
			for i := 0; i <= log.Len(); i++ {
				s := stateAt(log, k, i)
				fv, rv := full.Encode(s), rf.Encode(s)

				masked := map[int]bool{}
				for _, m := range rf.MaskedIndices() {
					masked[m] = true
				}
				for j := range fv {
					if masked[j] {
						convey.So(rv[j], convey.ShouldEqual, 0)
					} else {
						convey.So(rv[j], convey.ShouldEqual, fv[j])
					}
				}
			}
		})

		convey.Convey("The result-free rendering ignores a0's outcome entirely", func() {
			base := fixtureLog()
			s := stateAt(base, k, base.Len())

			flipped := base.Slice(0, base.Len())
			cp := make([]model.Action, len(flipped))
			copy(cp, flipped)
			cp[len(cp)-1].Result = spadl.Fail
			altLog, err := model.NewActionLog("g1", cp)
			convey.So(err, convey.ShouldBeNil)
			alt := stateAt(altLog, k, altLog.Len())

			convey.So(rf.Encode(alt), convey.ShouldResemble, rf.Encode(s))
		})

		convey.Convey("Earlier actions' outcomes stay visible in both renderings", func() {
			s := stateAt(log, k, log.Len())
			names := full.Schema()
			rv := rf.Encode(s)

			idx := -1
			for j, name := range names {
				if name == fmt.Sprintf("result_%s_a1", spadl.Fail) {
					idx = j
					break
				}
			}
			convey.So(idx, convey.ShouldBeGreaterThan, -1)
			convey.So(rv[idx], convey.ShouldEqual, 1) // a1 is the failed pass
		})
	})
}

func TestEncodeStates(t *testing.T) {
	convey.Convey("Given state encodings", t, func() {
		const k = 3
		full := feature.NewFullEncoder(k)
		log := fixtureLog()

		convey.Convey("The start state encodes as a fixed, near-zero vector", func() {
			start := stateAt(log, k, 0)
			v := full.Encode(start)

			for _, x := range v {
				convey.So(x, convey.ShouldEqual, 0)
			}
		})

		convey.Convey("A short window leaves the older slots zero", func() {
			s := stateAt(log, k, 1)
			v := full.Encode(s)
			names := full.Schema()

			for j, name := range names {
				switch name {
				case "type_pass_a1", "type_pass_a2":
					convey.So(v[j], convey.ShouldEqual, 0)
				case "time_delta_a1", "time_delta_a2":
					convey.So(v[j], convey.ShouldEqual, 0)
				}
			}
		})

		convey.Convey("Spatial features derive from the action coordinates", func() {
			s := stateAt(log, k, 1)
			v := full.Encode(s)
			byName := map[string]float64{}
			for j, name := range full.Schema() {
				byName[name] = v[j]
			}

			a := log.At(0)
			convey.So(byName["start_x_a0"], convey.ShouldEqual, a.StartX)
			convey.So(byName["end_y_a0"], convey.ShouldEqual, a.EndY)
			convey.So(byName["dx_a0"], convey.ShouldEqual, a.EndX-a.StartX)
			convey.So(byName["move_dist_a0"], convey.ShouldBeGreaterThan, 0)
			convey.So(byName["end_dist_goal_a0"], convey.ShouldBeLessThan, byName["start_dist_goal_a0"])
		})

		convey.Convey("Time and space deltas relate consecutive actions", func() {
			s := stateAt(log, k, 3)
			v := full.Encode(s)
			byName := map[string]float64{}
			for j, name := range full.Schema() {
				byName[name] = v[j]
			}

			a2, a1, a0 := log.At(0), log.At(1), log.At(2)
			convey.So(byName["time_delta_a1"], convey.ShouldEqual, a0.TimeSeconds-a1.TimeSeconds)
			convey.So(byName["time_delta_a2"], convey.ShouldEqual, a0.TimeSeconds-a2.TimeSeconds)
			convey.So(byName["space_delta_x_a1"], convey.ShouldEqual, a0.StartX-a1.EndX)
		})

		convey.Convey("The goal difference excludes a goal scored by a0 itself", func() {
			goal := action(5, "away", spadl.Shot, spadl.Success, 12)
			withGoal, err := model.NewActionLog("g1",
				append(append([]model.Action{}, log.Slice(0, log.Len())...), goal))
			convey.So(err, convey.ShouldBeNil)

			s := stateAt(withGoal, k, withGoal.Len())
			v := full.Encode(s)
			names := full.Schema()

			convey.So(v[len(names)-1], convey.ShouldEqual, 0) // diff before the goal
		})
	})
}
