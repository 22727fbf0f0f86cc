package board

import "tactics-board/engine/internal/geom"

// ActionType identifies what a player does during the transition out of a
// frame.
type ActionType string

const (
	ActionMove    ActionType = "move"
	ActionDribble ActionType = "dribble"
	ActionPass    ActionType = "pass"
	ActionShoot   ActionType = "shoot"
	ActionScreen  ActionType = "screen"
	ActionSteal   ActionType = "steal"
	ActionBlock   ActionType = "block"
)

// ParseActionType validates an action-type string from the editing surface.
func ParseActionType(value string) (ActionType, bool) {
	switch ActionType(value) {
	case ActionMove, ActionDribble, ActionPass, ActionShoot, ActionScreen, ActionSteal, ActionBlock:
		return ActionType(value), true
	default:
		return "", false
	}
}

// SpeedTag is the qualitative rate at which an action's path is traversed
// within a frame's time budget.
type SpeedTag string

const (
	SpeedWalk   SpeedTag = "walk"
	SpeedJog    SpeedTag = "jog"
	SpeedSprint SpeedTag = "sprint"
)

// Multiplier converts a speed tag into a progress multiplier. Jog is the
// default for an empty or unknown tag. Multipliers above 1 finish the path
// before the frame boundary and hold at the endpoint.
func (s SpeedTag) Multiplier() float64 {
	switch s {
	case SpeedWalk:
		return 1.0
	case SpeedSprint:
		return 2.5
	default:
		return 1.5
	}
}

// Action is a drawn movement with an ordered control-point path. Paths with
// fewer than two points carry no motion and are ignored by the interpolator.
type Action struct {
	ID       string      `json:"id"`
	Type     ActionType  `json:"type"`
	PlayerID string      `json:"playerId"`
	Path     []geom.Vec2 `json:"path"`
	Color    string      `json:"color,omitempty"`
	Speed    SpeedTag    `json:"speed,omitempty"`
}

// movementTypes are the action types that govern a player's own motion.
var movementTypes = map[ActionType]bool{
	ActionMove:    true,
	ActionDribble: true,
	ActionScreen:  true,
	ActionSteal:   true,
	ActionBlock:   true,
}

// IsMovement reports whether the action moves its owning player, as opposed
// to sending the ball somewhere (pass, shoot).
func (a Action) IsMovement() bool {
	return movementTypes[a.Type]
}
