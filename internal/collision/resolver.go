// Package collision separates circular board entities from each other and
// from fixed obstacles such as ghost defenders.
package collision

import "tactics-board/engine/internal/geom"

// Circle is anything the resolver can collide with.
type Circle struct {
	Pos    geom.Vec2
	Radius float64
}

// Resolve pushes pos out of overlap with each obstacle in order, moving it
// straight away from the obstacle center by exactly the overlap amount.
//
// Corrections accumulate sequentially within one pass, so a later push can
// reintroduce a smaller overlap with an earlier obstacle. The animation
// driver compensates by running two passes per tick; the residual overlap on
// 3+-body pile-ups is bounded rather than zero, which is an accepted trade
// of rigor for per-tick cost. Exact center overlap (distance zero) is left
// unresolved: any push direction would be arbitrary and jitter between
// ticks.
func Resolve(pos geom.Vec2, radius float64, obstacles []Circle) geom.Vec2 {
	for _, obs := range obstacles {
		away := pos.Sub(obs.Pos)
		dist := away.Len()
		combined := radius + obs.Radius
		if dist < combined && dist > 0 {
			overlap := combined - dist
			pos = pos.Add(away.Scale(overlap / dist))
		}
	}
	return pos
}

// ResolvePasses runs Resolve the given number of times over the same
// obstacle list.
func ResolvePasses(pos geom.Vec2, radius float64, obstacles []Circle, passes int) geom.Vec2 {
	for i := 0; i < passes; i++ {
		pos = Resolve(pos, radius, obstacles)
	}
	return pos
}

// MaxOverlap reports the deepest remaining penetration of pos against the
// obstacle list. Zero means the configuration is overlap-free.
func MaxOverlap(pos geom.Vec2, radius float64, obstacles []Circle) float64 {
	worst := 0.0
	for _, obs := range obstacles {
		if overlap := radius + obs.Radius - geom.Dist(pos, obs.Pos); overlap > worst {
			worst = overlap
		}
	}
	return worst
}
