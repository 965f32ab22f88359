// Package spadl defines the closed action vocabulary shared by match logs,
// feature encoders, and the valuation engine.
package spadl

// Pitch dimensions in meters.
const (
	FieldLength = 105.0
	FieldWidth  = 68.0
)

// ActionType identifies the kind of on-ball event.
type ActionType int

// Action types. The order is fixed; one-hot feature columns depend on it.
const (
	Pass ActionType = iota
	Cross
	ThrowIn
	FreekickCrossed
	FreekickShort
	CornerCrossed
	CornerShort
	TakeOn
	Foul
	Tackle
	Interception
	Shot
	ShotPenalty
	ShotFreekick
	KeeperSave
	Clearance
	BadTouch
	NonAction
	Dribble
	Goalkick
	Reception
)

// NumActionTypes is the size of the action-type vocabulary.
const NumActionTypes = int(Reception) + 1

var actionTypeNames = [NumActionTypes]string{
	"pass",
	"cross",
	"throw_in",
	"freekick_crossed",
	"freekick_short",
	"corner_crossed",
	"corner_short",
	"take_on",
	"foul",
	"tackle",
	"interception",
	"shot",
	"shot_penalty",
	"shot_freekick",
	"keeper_save",
	"clearance",
	"bad_touch",
	"non_action",
	"dribble",
	"goalkick",
	"reception",
}

// String returns the canonical action-type name.
func (t ActionType) String() string {
	if t < 0 || int(t) >= NumActionTypes {
		return "unknown"
	}
	return actionTypeNames[t]
}

// ActionTypeFromName resolves a canonical name to its ActionType.
// Returns NonAction and false for unknown names.
func ActionTypeFromName(name string) (ActionType, bool) {
	for i, n := range actionTypeNames {
		if n == name {
			return ActionType(i), true
		}
	}
	return NonAction, false
}

// Result identifies the outcome of an action.
type Result int

// Action results. The order is fixed; one-hot feature columns depend on it.
const (
	Fail Result = iota
	Success
	Offside
	OwnGoal
	YellowCard
	RedCard
	// InProgress marks the terminal action of an unfinished sequence; it has
	// no recorded outcome yet.
	InProgress
)

// NumResults is the size of the result vocabulary used for one-hot encoding.
// InProgress is deliberately excluded: an unrecorded outcome encodes as all
// zeros, the same neutral placeholder the result-free rendering uses.
const NumResults = int(RedCard) + 1

var resultNames = [...]string{
	"fail",
	"success",
	"offside",
	"owngoal",
	"yellow_card",
	"red_card",
	"in_progress",
}

// String returns the canonical result name.
func (r Result) String() string {
	if r < 0 || int(r) >= len(resultNames) {
		return "unknown"
	}
	return resultNames[r]
}

// ResultFromName resolves a canonical name to its Result.
func ResultFromName(name string) (Result, bool) {
	for i, n := range resultNames {
		if n == name {
			return Result(i), true
		}
	}
	return Fail, false
}

// BodyPart identifies the body part used for an action.
type BodyPart int

// Body parts.
const (
	Foot BodyPart = iota
	Head
	Other
	NoBodyPart
)

// NumBodyParts is the size of the body-part vocabulary.
const NumBodyParts = int(NoBodyPart) + 1

var bodyPartNames = [NumBodyParts]string{
	"foot",
	"head",
	"other",
	"none",
}

// String returns the canonical body-part name.
func (b BodyPart) String() string {
	if b < 0 || int(b) >= NumBodyParts {
		return "unknown"
	}
	return bodyPartNames[b]
}

// BodyPartFromName resolves a canonical name to its BodyPart.
func BodyPartFromName(name string) (BodyPart, bool) {
	for i, n := range bodyPartNames {
		if n == name {
			return BodyPart(i), true
		}
	}
	return NoBodyPart, false
}

// IsShot reports whether the action type belongs to the shot family.
func IsShot(t ActionType) bool {
	return t == Shot || t == ShotPenalty || t == ShotFreekick
}

// IsCorner reports whether the action type is a corner kick.
func IsCorner(t ActionType) bool {
	return t == CornerCrossed || t == CornerShort
}
