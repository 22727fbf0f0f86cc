// Package analytics derives expected-score (EPV) curves and Monte Carlo
// possession rollouts from the pose snapshots the animation engine emits.
// All math here runs in meters; positions arrive in court units and are
// converted at the boundary.
package analytics

import (
	"math/rand"

	"tactics-board/engine/internal/board"
	"tactics-board/engine/internal/court"
	"tactics-board/engine/internal/geom"
)

// PlayerSample is one player's kinematic state for a single sample, in court
// units (velocity in units per second).
type PlayerSample struct {
	ID   string
	Team board.Team
	Pos  geom.Vec2
	Vel  geom.Vec2
}

// Snapshot is one tick's worth of poses.
type Snapshot struct {
	Players []PlayerSample
	Ball    geom.Vec2
}

// Point is one sample of the expected-score curve.
type Point struct {
	Frame int     `json:"frame"`
	EPV   float64 `json:"epv"`
}

// Expected-score model constants, in meters unless noted.
const (
	handlerBallRangeM = 2.0

	rimRangeM    = 1.5
	rimPct       = 0.70
	arcPct       = 0.38
	midBasePct   = 0.45
	midDecayPerM = 0.01
	threeLineM   = 6.75

	pressureFullM = 0.5
	pressureNoneM = 3.0

	screenRangeM   = 2.0
	crowdRangeM    = 3.5
	screenRelief   = 0.6
	crowdPenalty   = 0.1
	tacticalBonus  = 0.1
	openMultiplier = 1.1
	pressureSwing  = 0.8

	lookaheadSteps    = 15
	lookaheadRollouts = 20
	blendCurrent      = 0.6
	blendFuture       = 0.4
)

// ExpectedScoreCurve computes one expected-score sample per snapshot. When
// no player is close enough to the ball (pass or shot in flight) the curve
// holds its last value, producing the plateaus the chart is expected to
// show. A nil rng disables the Monte Carlo look-ahead blend.
func ExpectedScoreCurve(snapshots []Snapshot, view court.ViewMode, rng *rand.Rand) []Point {
	curve := make([]Point, 0, len(snapshots))
	hoop := metersVec(court.Basket(view))
	last := 0.0

	for i, snap := range snapshots {
		es, ok := expectedScore(snap, hoop, view, rng)
		if !ok {
			es = last
		}
		last = es
		curve = append(curve, Point{Frame: i, EPV: es})
	}
	return curve
}

// SmoothCurve applies a centered moving average over the curve so frame-scale
// noise does not read as tactical swings. A window below 2 returns the input
// unchanged. Edges shrink the window instead of padding.
func SmoothCurve(curve []Point, window int) []Point {
	if window < 2 || len(curve) == 0 {
		return curve
	}
	half := window / 2
	out := make([]Point, len(curve))
	for i, point := range curve {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half
		if hi > len(curve)-1 {
			hi = len(curve) - 1
		}
		sum := 0.0
		for j := lo; j <= hi; j++ {
			sum += curve[j].EPV
		}
		out[i] = Point{Frame: point.Frame, EPV: sum / float64(hi-lo+1)}
	}
	return out
}

// expectedScore evaluates one snapshot. The second result is false when no
// ball handler can be identified.
func expectedScore(snap Snapshot, hoop geom.Vec2, view court.ViewMode, rng *rand.Rand) (float64, bool) {
	handler, ok := findHandler(snap)
	if !ok {
		return 0, false
	}
	handlerPos := metersVec(handler.Pos)

	value, pct := baseShot(geom.Dist(handlerPos, hoop))

	pressure := pressureFactor(minOpponentDist(snap, handler))
	relief, crowding, screenActive := teammateEffects(snap, handler)
	finalPressure := geom.Clamp(pressure*(1-relief)+crowding, 0, 1)

	bonus := 0.0
	if screenActive {
		bonus = tacticalBonus
	}
	impact := openMultiplier - finalPressure*pressureSwing + bonus
	es := value * pct * impact

	if rng != nil {
		future := Rollout(rolloutPlayers(snap, handler.ID), handler.ID, view, lookaheadSteps, lookaheadRollouts, rng)
		es = blendCurrent*es + blendFuture*future
	}
	return es, true
}

// findHandler picks the player nearest the ball within handling range.
func findHandler(snap Snapshot) (PlayerSample, bool) {
	ballM := metersVec(snap.Ball)
	best := PlayerSample{}
	bestDist := handlerBallRangeM
	found := false
	for _, p := range snap.Players {
		d := geom.Dist(metersVec(p.Pos), ballM)
		if d < bestDist {
			best = p
			bestDist = d
			found = true
		}
	}
	return best, found
}

// baseShot returns the shot value (2 or 3) and the open-look percentage for
// a hoop distance: 70% at the rim, 38% behind the arc, a gentle linear decay
// through the mid-range.
func baseShot(distM float64) (float64, float64) {
	if distM > threeLineM {
		return 3, arcPct
	}
	if distM < rimRangeM {
		return 2, rimPct
	}
	pct := midBasePct - (distM-rimRangeM)*midDecayPerM
	if pct < 0 {
		pct = 0
	}
	return 2, pct
}

// pressureFactor maps the nearest-defender distance onto [0, 1]: full
// contest inside 0.5m, open beyond 3m, linear in between.
func pressureFactor(minDefDistM float64) float64 {
	switch {
	case minDefDistM < pressureFullM:
		return 1
	case minDefDistM > pressureNoneM:
		return 0
	default:
		return 1 - (minDefDistM-pressureFullM)/(pressureNoneM-pressureFullM)
	}
}

func minOpponentDist(snap Snapshot, handler PlayerSample) float64 {
	handlerM := metersVec(handler.Pos)
	minDist := pressureNoneM + 1
	for _, p := range snap.Players {
		if p.Team == handler.Team {
			continue
		}
		if d := geom.Dist(metersVec(p.Pos), handlerM); d < minDist {
			minDist = d
		}
	}
	return minDist
}

// teammateEffects models the nearest teammate: very close reads as a screen
// and relieves pressure, moderately close reads as crowding and adds some.
func teammateEffects(snap Snapshot, handler PlayerSample) (relief, crowding float64, screenActive bool) {
	handlerM := metersVec(handler.Pos)
	minDist := crowdRangeM + 1
	for _, p := range snap.Players {
		if p.Team != handler.Team || p.ID == handler.ID {
			continue
		}
		if d := geom.Dist(metersVec(p.Pos), handlerM); d < minDist {
			minDist = d
		}
	}
	switch {
	case minDist < screenRangeM:
		return screenRelief, 0, true
	case minDist < crowdRangeM:
		return 0, crowdPenalty, false
	default:
		return 0, 0, false
	}
}

func metersVec(px geom.Vec2) geom.Vec2 {
	return geom.Vec2{X: court.MetersTo(px.X), Y: court.MetersTo(px.Y)}
}
