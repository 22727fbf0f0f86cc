package court

import (
	"math"

	"tactics-board/engine/internal/geom"
)

// Zone is a named scoring region. Labels match the NBA shot-zone strings the
// profile service emits, so profile keys can be matched by substring.
type Zone string

const (
	ZoneRestrictedArea Zone = "Restricted Area"
	ZonePaint          Zone = "In The Paint (Non-RA)"
	ZoneMidRange       Zone = "Mid-Range"
	ZoneLeftCorner3    Zone = "Left Corner 3"
	ZoneRightCorner3   Zone = "Right Corner 3"
	ZoneAboveBreak3    Zone = "Above the Break 3"
)

// Distance thresholds in meters.
const (
	restrictedAreaM = 1.25
	paintM          = 4.75
	cornerMinM      = 6.7
	cornerMaxM      = 8.5
	threePointM     = 7.24

	// Corner threes require the shot to sit near the sideline: the
	// cross-court offset from the basket must exceed this share of the
	// half-court span.
	cornerLateralShare = 0.8
)

// Classify maps a court position to its scoring zone relative to the basket.
//
// The corner band is checked before the generic three-point distance, so a
// shot at corner depth that is not wide enough falls through to Mid-Range,
// never to a three. Callers depend on that ordering.
func Classify(pos, basket geom.Vec2, view ViewMode) Zone {
	distM := MetersTo(geom.Dist(pos, basket))

	if distM < restrictedAreaM {
		return ZoneRestrictedArea
	}
	if distM < paintM {
		return ZonePaint
	}

	lateral, halfSpan := lateralOffset(pos, basket, view)
	if distM > cornerMinM && distM < cornerMaxM && math.Abs(lateral) > cornerLateralShare*halfSpan {
		if lateral < 0 {
			return ZoneLeftCorner3
		}
		return ZoneRightCorner3
	}

	if distM < threePointM {
		return ZoneMidRange
	}
	return ZoneAboveBreak3
}

// lateralOffset returns the signed cross-court offset from the basket and the
// half-court span on that axis. The full view runs lengthwise, so its
// cross-court axis is Y; the half view is rotated, so its axis is X.
func lateralOffset(pos, basket geom.Vec2, view ViewMode) (float64, float64) {
	if view == ViewHalf {
		return pos.X - basket.X, HalfWidth / 2
	}
	return pos.Y - basket.Y, FullHeight / 2
}
