// Package defense predicts where a defender should stand for an attacker who
// has no real tracked defender. The estimate models closeout distance as a
// function of shot threat and ball possession, then perturbs it for screens.
package defense

import (
	"tactics-board/engine/internal/board"
	"tactics-board/engine/internal/court"
	"tactics-board/engine/internal/geom"
)

// Tunable closeout parameters, in court units unless noted.
const (
	// DefenderRadius is the fixed circle assigned to every ghost defender.
	DefenderRadius = 16.0

	// rimBuffer keeps the defender in front of the rim: the gap never
	// exceeds distance-to-basket minus this buffer.
	rimBuffer = 40.0

	onBallBaseGap   = 45.0
	onBallGapSlope  = 300.0
	onBallGapMin    = 30.0
	onBallGapMax    = 150.0

	// Off-ball sag distances by distance-to-ball band.
	sagNear     = 60.0
	sagMid      = 80.0
	sagFar      = 120.0
	sagNearBand = 150.0
	sagMidBand  = 300.0

	// Credible shooters (above this percentage) get tighter off-ball
	// coverage.
	shooterPctThreshold = 0.40
	shooterSagFactor    = 0.7
)

// zoneBaselinePct is the league-wide expected percentage for a zone, used to
// measure how much better or worse than average an attacker shoots from
// where they stand.
func zoneBaselinePct(zone court.Zone) float64 {
	switch zone {
	case court.ZoneRestrictedArea:
		return 0.60
	case court.ZonePaint:
		return 0.50
	case court.ZoneMidRange:
		return 0.40
	default:
		return 0.35
	}
}

// Result is the derived defender estimate for one attacker. It is recomputed
// every tick and never persisted.
type Result struct {
	AttackerID         string     `json:"attackerId"`
	Position           geom.Vec2  `json:"position"`
	Radius             float64    `json:"radius"`
	Gap                float64    `json:"gap"`
	Zone               court.Zone `json:"zone"`
	ShootingPct        float64    `json:"shootingPct"`
	IsRealData         bool       `json:"isRealData"`
	IsScreened         bool       `json:"isScreened"`
	ScreenDisplacement float64    `json:"screenDisplacement"`
}

// Estimate computes the ghost defender for one attacker. The roster is the
// full entity list for the current view; the attacker itself is skipped
// during screen detection. Inputs are never mutated.
func Estimate(attacker board.Player, ball *board.Ball, view court.ViewMode, roster []board.Player) Result {
	basket := court.Basket(view)
	toBasket := basket.Sub(attacker.Pos)
	distToBasket := toBasket.Len()
	dir := toBasket.Scale(1 / geom.SafeLen(toBasket))

	zone := court.Classify(attacker.Pos, basket, view)
	pct, real := attacker.Profile.ZonePct(zone)

	onBall := ball != nil && ball.OwnerID != "" && ball.OwnerID == attacker.ID

	var gap float64
	if onBall {
		gap = onBallGap(pct, zone)
	} else {
		gap = offBallSag(attacker, ball, pct)
	}
	if limit := distToBasket - rimBuffer; gap > limit {
		gap = limit
	}

	candidate := attacker.Pos.Add(dir.Scale(gap))
	candidate, screened, displacement := applyScreens(candidate, attacker, roster)

	return Result{
		AttackerID:         attacker.ID,
		Position:           candidate,
		Radius:             DefenderRadius,
		Gap:                gap,
		Zone:               zone,
		ShootingPct:        pct,
		IsRealData:         real,
		IsScreened:         screened,
		ScreenDisplacement: displacement,
	}
}

// onBallGap tightens coverage on above-average shooters: each point of
// percentage over the zone baseline pulls the defender in, clamped to the
// playable band.
func onBallGap(pct float64, zone court.Zone) float64 {
	gap := onBallBaseGap - (pct-zoneBaselinePct(zone))*onBallGapSlope
	return geom.Clamp(gap, onBallGapMin, onBallGapMax)
}

// offBallSag lets the defender sink toward the basket when the ball is far
// from the attacker, with a tighter closeout on credible shooters.
func offBallSag(attacker board.Player, ball *board.Ball, pct float64) float64 {
	sag := sagFar
	if ball != nil {
		switch distToBall := geom.Dist(attacker.Pos, ball.Pos); {
		case distToBall <= sagNearBand:
			sag = sagNear
		case distToBall <= sagMidBand:
			sag = sagMid
		}
	}
	if pct > shooterPctThreshold {
		sag *= shooterSagFactor
	}
	return sag
}

// applyScreens folds the candidate position over every other roster entity.
// Two independent checks per entity:
//
//   - direct overlap with the candidate pushes it straight away from the
//     screener by the overlap amount;
//   - otherwise, a screener near the candidate-to-attacker segment counts
//     as an obstruction and accumulates a virtual overlap without moving
//     the candidate.
//
// Checks are not short-circuited across entities, so stacked screens
// accumulate displacement.
func applyScreens(candidate geom.Vec2, attacker board.Player, roster []board.Player) (geom.Vec2, bool, float64) {
	screened := false
	displacement := 0.0

	for _, other := range roster {
		if other.ID == attacker.ID {
			continue
		}
		combined := DefenderRadius + other.Radius()

		away := candidate.Sub(other.Pos)
		dist := away.Len()
		if dist < combined {
			overlap := combined - dist
			candidate = candidate.Add(away.Scale(overlap / geom.SafeLen(away)))
			screened = true
			displacement += overlap
			continue
		}

		segDist := geom.SegmentDist(other.Pos, candidate, attacker.Pos)
		if segDist < combined {
			screened = true
			displacement += combined - segDist
		}
	}

	return candidate, screened, displacement
}
