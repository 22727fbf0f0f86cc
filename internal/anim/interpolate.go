// Package anim turns sparse keyframes plus per-action path metadata into a
// continuously interpolated, collision-resolved set of render poses.
package anim

import (
	"github.com/tanema/gween/ease"

	"tactics-board/engine/internal/board"
	"tactics-board/engine/internal/collision"
	"tactics-board/engine/internal/court"
	"tactics-board/engine/internal/defense"
	"tactics-board/engine/internal/geom"
)

// EntityKind distinguishes pose subjects for the rendering layer.
type EntityKind string

const (
	EntityPlayer EntityKind = "player"
	EntityBall   EntityKind = "ball"
)

// Pose is one entity's rendered state for a single tick. Poses are derived,
// handed to the rendering layer, and discarded; they are never written back
// into frames.
type Pose struct {
	ID           string     `json:"id"`
	Kind         EntityKind `json:"kind"`
	Position     geom.Vec2  `json:"position"`
	Rotation     float64    `json:"rotation"`
	Scale        float64    `json:"scale"`
	ArmExtension float64    `json:"armExtension,omitempty"`
}

// Auxiliary animation shaping.
const (
	blockScaleBump = 0.3
	stealArmDelay  = 0.3
	stealScaleBump = 0.1

	// resolvePasses is the number of sequential collision passes per tick.
	// Two passes bound the residual overlap well enough for rendering;
	// upgrading to a converged solve would visibly change playback.
	resolvePasses = 2
)

// governingAction picks the action that drives a player between two frames:
// the first movement-type action the player owns. Degenerate paths do not
// govern.
func governingAction(frame board.Frame, playerID string) (board.Action, bool) {
	for _, a := range frame.Actions {
		if a.PlayerID == playerID && a.IsMovement() && len(a.Path) >= 2 {
			return a, true
		}
	}
	return board.Action{}, false
}

// ballAction picks the action that drives the ball: a pass or shot by the
// current owner sends the ball on its own path; otherwise the ball inherits
// the owner's movement action.
func ballAction(frame board.Frame, ownerID string) (board.Action, bool) {
	if ownerID == "" {
		return board.Action{}, false
	}
	for _, a := range frame.Actions {
		if a.PlayerID == ownerID && (a.Type == board.ActionPass || a.Type == board.ActionShoot) && len(a.Path) >= 2 {
			return a, true
		}
	}
	return governingAction(frame, ownerID)
}

// actionProgress shapes raw frame progress for one action: the speed tag
// stretches progress so faster actions finish early and hold, and a steal
// adds a quadratic ease-in burst.
func actionProgress(a board.Action, raw float64) float64 {
	p := raw * a.Speed.Multiplier()
	if p > 1 {
		p = 1
	}
	if a.Type == board.ActionSteal {
		p = float64(ease.InQuad(float32(p), 0, 1, 1))
	}
	return p
}

// playerPose interpolates one player between cur and next at raw progress.
// A player with no counterpart in the next frame holds its pose.
func playerPose(cur, next board.Frame, p board.Player, raw float64) Pose {
	pose := Pose{
		ID:       p.ID,
		Kind:     EntityPlayer,
		Position: p.Pos,
		Rotation: p.Rotation,
		Scale:    1,
	}

	target, ok := next.PlayerByID(p.ID)
	if !ok {
		return pose
	}

	if action, ok := governingAction(cur, p.ID); ok {
		t := actionProgress(action, raw)
		pose.Position = PathPoint(action.Path, t)
		pose.Rotation = geom.LerpAngle(p.Rotation, target.Rotation, t)
		applyAux(&pose, action, t)
		return pose
	}

	pose.Position = geom.Lerp(p.Pos, target.Pos, raw)
	pose.Rotation = geom.LerpAngle(p.Rotation, target.Rotation, raw)
	return pose
}

// ballPose interpolates the ball. Passes and shots follow their own drawn
// path; an owned ball otherwise rides the carrier's movement action.
func ballPose(cur, next board.Frame, raw float64) Pose {
	pose := Pose{
		ID:       cur.Ball.ID,
		Kind:     EntityBall,
		Position: cur.Ball.Pos,
		Scale:    1,
	}

	if action, ok := ballAction(cur, cur.Ball.OwnerID); ok {
		pose.Position = PathPoint(action.Path, actionProgress(action, raw))
		return pose
	}

	pose.Position = geom.Lerp(cur.Ball.Pos, next.Ball.Pos, raw)
	return pose
}

// applyAux derives action-specific auxiliary parameters from the local
// progress t.
func applyAux(pose *Pose, action board.Action, t float64) {
	switch action.Type {
	case board.ActionBlock:
		// Parabolic jump: peaks mid-action, lands by the end.
		pose.Scale = 1 + blockScaleBump*4*t*(1-t)
	case board.ActionSteal:
		// Arm stays in until the burst is underway, then ramps out.
		if t > stealArmDelay {
			pose.ArmExtension = (t - stealArmDelay) / (1 - stealArmDelay)
		}
		pose.Scale = 1 + stealScaleBump*pose.ArmExtension
	}
}

// TickResult is everything one tick hands to the rendering layer.
type TickResult struct {
	Poses  []Pose
	Ghosts []defense.Result
}

// ComputeTick interpolates every entity between cur and next at the given
// raw progress, then, while actively playing, resolves collisions against
// the other players and freshly computed ghost defenders. Both stages read
// the same interpolated snapshot; neither observes partial updates from the
// other.
func ComputeTick(cur, next board.Frame, view court.ViewMode, raw float64, playing bool) TickResult {
	poses := make([]Pose, 0, len(cur.Players)+1)
	for _, p := range cur.Players {
		poses = append(poses, playerPose(cur, next, p, raw))
	}
	poses = append(poses, ballPose(cur, next, raw))

	// Roster snapshot at interpolated positions, used by both the
	// estimator and the resolver.
	roster := make([]board.Player, len(cur.Players))
	for i, p := range cur.Players {
		roster[i] = p
		roster[i].Pos = poses[i].Position
	}
	ball := cur.Ball
	ball.Pos = poses[len(poses)-1].Position

	ghosts := make([]defense.Result, len(roster))
	for i, attacker := range roster {
		ghosts[i] = defense.Estimate(attacker, &ball, view, roster)
	}

	if playing {
		for i := range roster {
			obstacles := make([]collision.Circle, 0, len(roster)-1+len(ghosts)-1)
			for j, other := range roster {
				if j == i {
					continue
				}
				obstacles = append(obstacles, collision.Circle{Pos: other.Pos, Radius: other.Radius()})
			}
			for j, ghost := range ghosts {
				if j == i {
					// A player's own ghost sits inside its closeout gap;
					// colliding with it would shove the attacker every tick.
					continue
				}
				obstacles = append(obstacles, collision.Circle{Pos: ghost.Position, Radius: ghost.Radius})
			}
			poses[i].Position = collision.ResolvePasses(poses[i].Position, roster[i].Radius(), obstacles, resolvePasses)
		}
	}

	return TickResult{Poses: poses, Ghosts: ghosts}
}
