package geom

import "math"

// Vec2 is a point or displacement on the court plane, in court units
// (pixels at the board's fixed pixels-per-meter scale).
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// SafeLen returns the vector length, substituting 1 for a zero length so
// callers can divide without a branch. Coincident points therefore produce
// a zero direction instead of NaN.
func SafeLen(v Vec2) float64 {
	length := v.Len()
	if length == 0 {
		return 1
	}
	return length
}

// Unit returns the direction of v, or the zero vector when v has no length.
func Unit(v Vec2) Vec2 {
	return v.Scale(1 / SafeLen(v))
}

func Dist(a, b Vec2) float64 {
	return b.Sub(a).Len()
}

// Lerp interpolates between a and b; t is not clamped.
func Lerp(a, b Vec2, t float64) Vec2 {
	return Vec2{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// SegmentDist returns the minimum distance from p to the segment ab.
// A degenerate segment collapses to point distance.
func SegmentDist(p, a, b Vec2) float64 {
	ab := b.Sub(a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	if lenSq == 0 {
		return Dist(p, a)
	}
	t := ((p.X-a.X)*ab.X + (p.Y-a.Y)*ab.Y) / lenSq
	t = Clamp(t, 0, 1)
	return Dist(p, a.Add(ab.Scale(t)))
}

// NormalizeAngle wraps a degree value into [-180, 180).
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg+180, 360)
	if deg < 0 {
		deg += 360
	}
	return deg - 180
}

// LerpAngle interpolates between two headings in degrees along the shortest
// arc, so 170 -> -170 passes through 180 rather than 0.
func LerpAngle(from, to, t float64) float64 {
	delta := NormalizeAngle(to - from)
	return from + delta*t
}
