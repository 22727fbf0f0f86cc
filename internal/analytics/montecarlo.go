package analytics

import (
	"math"
	"math/rand"

	"tactics-board/engine/internal/board"
	"tactics-board/engine/internal/court"
	"tactics-board/engine/internal/geom"
)

// Role drives a rollout player's intention model.
type Role string

const (
	RoleHandler Role = "handler"
	RoleOffense Role = "offense"
	RoleDefense Role = "defense"
)

// RolloutPlayer is the lightweight state a rollout advances. Positions and
// velocities are in meters.
type RolloutPlayer struct {
	ID   string
	Team board.Team
	Role Role
	Pos  geom.Vec2
	Vel  geom.Vec2
}

// Rollout physics, in meters and seconds.
const (
	rolloutDt       = 0.04
	rolloutMaxSpeed = 8.0
	rolloutAccel    = 4.0
	rolloutFriction = 0.95

	// handlerNoiseRad is the half-width of the random steering applied to
	// the handler's drive each step.
	handlerNoiseRad = 0.5
	// defenseErrorProb is the per-step chance a defender bites the wrong way.
	defenseErrorProb = 0.1
)

// rolloutPlayers converts a snapshot into rollout state with roles assigned
// relative to the handler.
func rolloutPlayers(snap Snapshot, handlerID string) []RolloutPlayer {
	var handlerTeam board.Team
	for _, p := range snap.Players {
		if p.ID == handlerID {
			handlerTeam = p.Team
		}
	}
	out := make([]RolloutPlayer, 0, len(snap.Players))
	for _, p := range snap.Players {
		role := RoleOffense
		switch {
		case p.ID == handlerID:
			role = RoleHandler
		case p.Team != handlerTeam:
			role = RoleDefense
		}
		out = append(out, RolloutPlayer{
			ID:   p.ID,
			Team: p.Team,
			Role: role,
			Pos:  metersVec(p.Pos),
			Vel:  metersVec(p.Vel),
		})
	}
	return out
}

// Rollout runs Monte Carlo look-ahead rollouts from the given state and
// averages the expected score of the terminal states. Randomness comes only
// from rng, so a fixed seed reproduces the result exactly.
func Rollout(players []RolloutPlayer, handlerID string, view court.ViewMode, steps, rollouts int, rng *rand.Rand) float64 {
	if len(players) == 0 || rollouts <= 0 {
		return 0
	}
	hoop := metersVec(court.Basket(view))
	boundsX, boundsY := courtBoundsM(view)

	total := 0.0
	for i := 0; i < rollouts; i++ {
		sim := make([]RolloutPlayer, len(players))
		copy(sim, players)
		if !hasHandler(sim, handlerID) {
			continue
		}
		for step := 0; step < steps; step++ {
			advance(sim, handlerID, hoop, boundsX, boundsY, rng)
		}
		total += evaluateRollout(sim, handlerID, hoop)
	}
	return total / float64(rollouts)
}

// advance integrates one physics step for every rollout player.
func advance(sim []RolloutPlayer, handlerID string, hoop geom.Vec2, boundsX, boundsY float64, rng *rand.Rand) {
	handlerPos, _ := rolloutHandler(sim, handlerID)
	for i := range sim {
		p := &sim[i]
		var force geom.Vec2

		switch p.Role {
		case RoleHandler:
			// Drive to the hoop with steering noise: attackers zig-zag.
			dir := geom.Unit(hoop.Sub(p.Pos))
			if dir != (geom.Vec2{}) {
				force = rotate(dir, (rng.Float64()*2-1)*handlerNoiseRad).Scale(rolloutAccel)
			}
		case RoleDefense:
			// Chase the handler, occasionally biting on a fake.
			dir := geom.Unit(handlerPos.Sub(p.Pos))
			if dir != (geom.Vec2{}) {
				if rng.Float64() < defenseErrorProb {
					dir = dir.Scale(-1)
				}
				force = dir.Scale(rolloutAccel)
			}
		}

		p.Vel = p.Vel.Add(force.Scale(rolloutDt)).Scale(rolloutFriction)
		if speed := p.Vel.Len(); speed > rolloutMaxSpeed {
			p.Vel = p.Vel.Scale(rolloutMaxSpeed / speed)
		}
		p.Pos = p.Pos.Add(p.Vel.Scale(rolloutDt))
		p.Pos.X = geom.Clamp(p.Pos.X, 0, boundsX)
		p.Pos.Y = geom.Clamp(p.Pos.Y, 0, boundsY)
	}
}

// evaluateRollout scores a terminal rollout state with the same rule the
// live curve uses, minus the teammate effects.
func evaluateRollout(sim []RolloutPlayer, handlerID string, hoop geom.Vec2) float64 {
	handlerPos, ok := rolloutHandler(sim, handlerID)
	if !ok {
		return 0
	}
	value, pct := baseShot(geom.Dist(handlerPos, hoop))

	minDefDist := pressureNoneM + 1
	var handlerTeam board.Team
	for _, p := range sim {
		if p.ID == handlerID {
			handlerTeam = p.Team
		}
	}
	for _, p := range sim {
		if p.Team == handlerTeam {
			continue
		}
		if d := geom.Dist(p.Pos, handlerPos); d < minDefDist {
			minDefDist = d
		}
	}

	impact := openMultiplier - pressureFactor(minDefDist)*pressureSwing
	return value * pct * impact
}

func rolloutHandler(sim []RolloutPlayer, handlerID string) (geom.Vec2, bool) {
	for _, p := range sim {
		if p.ID == handlerID {
			return p.Pos, true
		}
	}
	return geom.Vec2{}, false
}

func hasHandler(sim []RolloutPlayer, handlerID string) bool {
	_, ok := rolloutHandler(sim, handlerID)
	return ok
}

func rotate(v geom.Vec2, rad float64) geom.Vec2 {
	cos, sin := math.Cos(rad), math.Sin(rad)
	return geom.Vec2{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}

func courtBoundsM(view court.ViewMode) (float64, float64) {
	if view == court.ViewHalf {
		return court.MetersTo(court.HalfWidth), court.MetersTo(court.HalfHeight)
	}
	return court.MetersTo(court.FullWidth), court.MetersTo(court.FullHeight)
}
