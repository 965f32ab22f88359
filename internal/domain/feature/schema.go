package feature

import (
	"fmt"

	"github.com/okian/vaep/internal/domain/spadl"
)

// buildSchema generates the feature names for a window of k actions, in the
// fixed order both encoders emit them. Slot a0 is the most recent action.
// The schema only depends on k, so a model trained against it stays usable
// across matches.
func buildSchema(k int) []string {
	var names []string

	for j := 0; j < k; j++ {
		for t := 0; t < spadl.NumActionTypes; t++ {
			names = append(names, fmt.Sprintf("type_%s_a%d", spadl.ActionType(t), j))
		}
		for r := 0; r < spadl.NumResults; r++ {
			names = append(names, fmt.Sprintf("result_%s_a%d", spadl.Result(r), j))
		}
		for b := 0; b < spadl.NumBodyParts; b++ {
			names = append(names, fmt.Sprintf("bodypart_%s_a%d", spadl.BodyPart(b), j))
		}
		names = append(names,
			fmt.Sprintf("start_x_a%d", j),
			fmt.Sprintf("start_y_a%d", j),
			fmt.Sprintf("end_x_a%d", j),
			fmt.Sprintf("end_y_a%d", j),
			fmt.Sprintf("start_dist_goal_a%d", j),
			fmt.Sprintf("start_angle_goal_a%d", j),
			fmt.Sprintf("end_dist_goal_a%d", j),
			fmt.Sprintf("end_angle_goal_a%d", j),
			fmt.Sprintf("dx_a%d", j),
			fmt.Sprintf("dy_a%d", j),
			fmt.Sprintf("move_dist_a%d", j),
			fmt.Sprintf("same_team_a%d", j),
		)
	}

	names = append(names, "period_id", "time_seconds")
	for j := 1; j < k; j++ {
		names = append(names, fmt.Sprintf("time_delta_a%d", j))
	}
	for j := 1; j < k; j++ {
		names = append(names,
			fmt.Sprintf("space_delta_x_a%d", j),
			fmt.Sprintf("space_delta_y_a%d", j),
			fmt.Sprintf("space_delta_dist_a%d", j),
		)
	}
	// Goal difference before the most recent action; excluding a0 keeps the
	// feature independent of a0's outcome.
	names = append(names, "goalscore_diff")

	return names
}

// maskedIndices returns the schema positions that are a function of the most
// recent action's outcome: the result one-hot columns of slot a0. These are
// the only columns the two renderings of a state may differ in. The block
// sits at a fixed offset regardless of window size.
func maskedIndices() []int {
	idx := make([]int, 0, spadl.NumResults)
	base := spadl.NumActionTypes // result block follows the type block of a0
	for r := 0; r < spadl.NumResults; r++ {
		idx = append(idx, base+r)
	}
	return idx
}
