package anim

import "tactics-board/engine/internal/geom"

// PathPoint evaluates a drawn control-point path at normalized time
// t in [0, 1].
//
// Two-point paths interpolate linearly. Longer paths use a Catmull-Rom
// spline over the segment containing t, with the neighbor points clamped to
// the nearest endpoint at the path boundaries. t >= 1 snaps exactly to the
// final control point so the endpoint law holds without floating drift.
func PathPoint(path []geom.Vec2, t float64) geom.Vec2 {
	n := len(path)
	if n == 0 {
		return geom.Vec2{}
	}
	if n == 1 || t <= 0 {
		return path[0]
	}
	if t >= 1 {
		return path[n-1]
	}
	if n == 2 {
		return geom.Lerp(path[0], path[1], t)
	}

	scaled := t * float64(n-1)
	seg := int(scaled)
	if seg > n-2 {
		seg = n - 2
	}
	local := scaled - float64(seg)

	p1 := path[seg]
	p2 := path[seg+1]
	p0 := path[maxInt(seg-1, 0)]
	p3 := path[minInt(seg+2, n-1)]
	return catmullRom(p0, p1, p2, p3, local)
}

// catmullRom evaluates the standard Catmull-Rom basis between p1 and p2.
func catmullRom(p0, p1, p2, p3 geom.Vec2, t float64) geom.Vec2 {
	t2 := t * t
	t3 := t2 * t
	return geom.Vec2{
		X: 0.5 * (2*p1.X +
			(p2.X-p0.X)*t +
			(2*p0.X-5*p1.X+4*p2.X-p3.X)*t2 +
			(3*p1.X-p0.X-3*p2.X+p3.X)*t3),
		Y: 0.5 * (2*p1.Y +
			(p2.Y-p0.Y)*t +
			(2*p0.Y-5*p1.Y+4*p2.Y-p3.Y)*t2 +
			(3*p1.Y-p0.Y-3*p2.Y+p3.Y)*t3),
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
