package board

import "tactics-board/engine/internal/geom"

// Team tags the two sides of the board.
type Team string

const (
	TeamOffense Team = "offense"
	TeamDefense Team = "defense"
)

// Player is one positioned entity on the board. Positions and radii are in
// court units; Rotation is a facing heading in degrees.
type Player struct {
	ID       string  `json:"id"`
	Team     Team    `json:"team"`
	Number   int     `json:"number"`
	Pos      geom.Vec2 `json:"pos"`
	Rotation float64 `json:"rotation"`

	// Physical build, used only to derive the collision radius.
	HeightIn float64 `json:"heightIn,omitempty"`
	WeightLb float64 `json:"weightLb,omitempty"`

	Profile *ShootingProfile `json:"profile,omitempty"`
}

// Radius bounds for player circles, in court units. Every player occupies at
// least the base radius; height above 72in and weight above 180lb add to it,
// capped at a combined bonus of 8.
const (
	baseRadius       = 14.0
	maxRadiusBonus   = 8.0
	radiusPerInch    = 0.3
	radiusPerPound   = 0.05
	radiusHeightZero = 72.0
	radiusWeightZero = 180.0
)

// Radius derives the player's collision circle from their build. The result
// is always within [14, 22].
func (p Player) Radius() float64 {
	bonus := 0.0
	if p.HeightIn > radiusHeightZero {
		bonus += (p.HeightIn - radiusHeightZero) * radiusPerInch
	}
	if p.WeightLb > radiusWeightZero {
		bonus += (p.WeightLb - radiusWeightZero) * radiusPerPound
	}
	if bonus > maxRadiusBonus {
		bonus = maxRadiusBonus
	}
	return baseRadius + bonus
}

// Ball is the single ball on the board. OwnerID is empty when the ball is
// loose; at most one player owns it at a time.
type Ball struct {
	ID      string    `json:"id"`
	Pos     geom.Vec2 `json:"pos"`
	OwnerID string    `json:"ownerId,omitempty"`
}
