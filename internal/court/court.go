package court

import "tactics-board/engine/internal/geom"

// ViewMode selects which court layout the board is showing.
type ViewMode string

const (
	ViewFull ViewMode = "full"
	ViewHalf ViewMode = "half"
)

// ParseViewMode validates a view-mode string received from the editing surface.
func ParseViewMode(value string) (ViewMode, bool) {
	switch ViewMode(value) {
	case ViewFull, ViewHalf:
		return ViewMode(value), true
	default:
		return "", false
	}
}

// The board uses a fixed scale of 45 pixels per meter. All positions and
// radii are in pixels; zone thresholds are defined in meters and converted
// at the boundary.
const (
	Scale = 45.0

	courtLengthM = 28.65
	courtWidthM  = 15.24
	rimInsetM    = 1.575

	FullWidth  = courtLengthM * Scale
	FullHeight = courtWidthM * Scale

	HalfWidth  = courtWidthM * Scale
	HalfHeight = courtLengthM / 2 * Scale
)

// Basket returns the basket position for a view mode. The full view attacks
// the left basket; the half view attacks the bottom one.
func Basket(view ViewMode) geom.Vec2 {
	if view == ViewHalf {
		return geom.Vec2{X: HalfWidth / 2, Y: HalfHeight - rimInsetM*Scale}
	}
	return geom.Vec2{X: rimInsetM * Scale, Y: FullHeight / 2}
}

// MetersTo converts a pixel distance to meters.
func MetersTo(px float64) float64 {
	return px / Scale
}
