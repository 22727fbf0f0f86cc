package defense

import (
	"math"
	"testing"

	"tactics-board/engine/internal/board"
	"tactics-board/engine/internal/court"
	"tactics-board/engine/internal/geom"
)

func attackerAt(distM float64) board.Player {
	basket := court.Basket(court.ViewFull)
	return board.Player{
		ID:   "a1",
		Team: board.TeamOffense,
		Pos:  geom.Vec2{X: basket.X + distM*court.Scale, Y: basket.Y},
	}
}

func ownedBall(attacker board.Player) *board.Ball {
	return &board.Ball{ID: "ball", Pos: attacker.Pos, OwnerID: attacker.ID}
}

func TestGapNeverExceedsRimBufferLimit(t *testing.T) {
	basket := court.Basket(court.ViewFull)
	for _, distM := range []float64{1.0, 2.0, 3.5, 5.5, 7.5, 10.0} {
		attacker := attackerAt(distM)
		res := Estimate(attacker, ownedBall(attacker), court.ViewFull, nil)
		limit := geom.Dist(attacker.Pos, basket) - rimBuffer
		if res.Gap > limit+1e-9 {
			t.Fatalf("at %.1fm: gap %f exceeds limit %f", distM, res.Gap, limit)
		}
	}
}

func TestOnBallGapDecreasesWithShootingEdge(t *testing.T) {
	// Mid-range attacker (baseline 0.40); percentages chosen inside the
	// clamp band so the relationship stays strict.
	prev := math.Inf(1)
	for _, pct := range []float64{0.30, 0.34, 0.38, 0.42} {
		attacker := attackerAt(5.5)
		attacker.Profile = &board.ShootingProfile{HotZones: map[string]board.ZoneStats{
			"Mid-Range (Center(C))": {Pct: pct},
		}}
		res := Estimate(attacker, ownedBall(attacker), court.ViewFull, nil)
		if res.Zone != court.ZoneMidRange {
			t.Fatalf("expected Mid-Range zone, got %s", res.Zone)
		}
		if res.Gap >= prev {
			t.Fatalf("gap %f did not decrease (previous %f) at pct %f", res.Gap, prev, pct)
		}
		prev = res.Gap
	}
}

func TestOnBallGapValues(t *testing.T) {
	// Default profile shoots league average 0.35 from mid range:
	// gap = 45 - (0.35-0.40)*300 = 60.
	attacker := attackerAt(5.5)
	res := Estimate(attacker, ownedBall(attacker), court.ViewFull, nil)
	if math.Abs(res.Gap-60) > 1e-9 {
		t.Fatalf("expected gap 60, got %f", res.Gap)
	}
	if res.IsRealData {
		t.Fatalf("expected league-average fallback to be flagged")
	}
	if res.ShootingPct != board.LeagueAveragePct {
		t.Fatalf("expected league average pct, got %f", res.ShootingPct)
	}
}

func TestOffBallSagBands(t *testing.T) {
	cases := []struct {
		name       string
		ballDist   float64
		wantGap    float64
	}{
		{"ball near", 100, 60},
		{"ball mid", 200, 80},
		{"ball far", 400, 120},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			attacker := attackerAt(5.5)
			ball := &board.Ball{
				ID:      "ball",
				Pos:     geom.Vec2{X: attacker.Pos.X, Y: attacker.Pos.Y + tc.ballDist},
				OwnerID: "someone-else",
			}
			res := Estimate(attacker, ball, court.ViewFull, nil)
			if math.Abs(res.Gap-tc.wantGap) > 1e-9 {
				t.Fatalf("expected gap %f, got %f", tc.wantGap, res.Gap)
			}
		})
	}
}

func TestOffBallShooterGetsTighterCoverage(t *testing.T) {
	attacker := attackerAt(5.5)
	attacker.Profile = &board.ShootingProfile{HotZones: map[string]board.ZoneStats{
		"Mid-Range (Center(C))": {Pct: 0.50},
	}}
	ball := &board.Ball{
		ID:      "ball",
		Pos:     geom.Vec2{X: attacker.Pos.X, Y: attacker.Pos.Y + 100},
		OwnerID: "someone-else",
	}
	res := Estimate(attacker, ball, court.ViewFull, nil)
	if math.Abs(res.Gap-60*0.7) > 1e-9 {
		t.Fatalf("expected shooter sag 42, got %f", res.Gap)
	}
}

func TestDefenderSitsOnAttackerBasketLine(t *testing.T) {
	basket := court.Basket(court.ViewFull)
	attacker := board.Player{ID: "a1", Pos: geom.Vec2{X: 400, Y: 200}}
	res := Estimate(attacker, ownedBall(attacker), court.ViewFull, nil)

	// Cross product of attacker->defender and attacker->basket is zero
	// when the defender is on the line.
	ad := res.Position.Sub(attacker.Pos)
	ab := basket.Sub(attacker.Pos)
	cross := ad.X*ab.Y - ad.Y*ab.X
	if math.Abs(cross) > 1e-6*ab.Len() {
		t.Fatalf("defender off the attacker-basket line, cross=%f", cross)
	}
}

func TestScreenDirectOverlapDisplacesDefender(t *testing.T) {
	attacker := board.Player{ID: "a1", Pos: geom.Vec2{X: 100, Y: 100}}
	ball := ownedBall(attacker)

	// Reproduce the unscreened estimate to place the screener just short
	// of the candidate spot on the attacker-basket line.
	clean := Estimate(attacker, ball, court.ViewFull, nil)
	basket := court.Basket(court.ViewFull)
	dir := geom.Unit(basket.Sub(attacker.Pos))
	screener := board.Player{ID: "s1", Pos: attacker.Pos.Add(dir.Scale(clean.Gap + 20))}

	res := Estimate(attacker, ball, court.ViewFull, []board.Player{attacker, screener})
	if !res.IsScreened {
		t.Fatalf("expected screen to be detected")
	}
	if res.ScreenDisplacement <= 0 {
		t.Fatalf("expected positive screen displacement, got %f", res.ScreenDisplacement)
	}
	if geom.Dist(res.Position, clean.Position) < 1e-9 {
		t.Fatalf("expected direct overlap to move the defender")
	}
}

func TestScreenPathObstructionAccumulatesWithoutMoving(t *testing.T) {
	attacker := board.Player{ID: "a1", Pos: geom.Vec2{X: 100, Y: 100}}
	ball := ownedBall(attacker)

	clean := Estimate(attacker, ball, court.ViewFull, nil)
	basket := court.Basket(court.ViewFull)
	dir := geom.Unit(basket.Sub(attacker.Pos))
	// Sits beside the candidate-to-attacker segment, clear of the
	// candidate itself.
	perp := geom.Vec2{X: -dir.Y, Y: dir.X}
	screener := board.Player{ID: "s1", Pos: attacker.Pos.Add(dir.Scale(clean.Gap / 3)).Add(perp.Scale(5))}

	res := Estimate(attacker, ball, court.ViewFull, []board.Player{attacker, screener})
	if !res.IsScreened {
		t.Fatalf("expected path obstruction to be detected")
	}
	if res.ScreenDisplacement <= 0 {
		t.Fatalf("expected virtual overlap to accumulate, got %f", res.ScreenDisplacement)
	}
	if geom.Dist(res.Position, clean.Position) > 1e-9 {
		t.Fatalf("expected obstruction not to move the defender")
	}
}

func TestMultipleScreensAccumulate(t *testing.T) {
	attacker := board.Player{ID: "a1", Pos: geom.Vec2{X: 100, Y: 100}}
	ball := ownedBall(attacker)

	clean := Estimate(attacker, ball, court.ViewFull, nil)
	basket := court.Basket(court.ViewFull)
	dir := geom.Unit(basket.Sub(attacker.Pos))
	perp := geom.Vec2{X: -dir.Y, Y: dir.X}

	one := board.Player{ID: "s1", Pos: attacker.Pos.Add(dir.Scale(clean.Gap + 20))}
	two := board.Player{ID: "s2", Pos: attacker.Pos.Add(dir.Scale(clean.Gap / 3)).Add(perp.Scale(5))}

	single := Estimate(attacker, ball, court.ViewFull, []board.Player{attacker, one})
	double := Estimate(attacker, ball, court.ViewFull, []board.Player{attacker, one, two})
	if double.ScreenDisplacement <= single.ScreenDisplacement {
		t.Fatalf("expected stacked screens to accumulate: %f vs %f",
			double.ScreenDisplacement, single.ScreenDisplacement)
	}
}

func TestEstimateAtBasketDoesNotPanic(t *testing.T) {
	basket := court.Basket(court.ViewFull)
	attacker := board.Player{ID: "a1", Pos: basket}
	res := Estimate(attacker, ownedBall(attacker), court.ViewFull, nil)
	if math.IsNaN(res.Position.X) || math.IsNaN(res.Position.Y) {
		t.Fatalf("expected coincident attacker and basket to stay finite, got %+v", res.Position)
	}
}
