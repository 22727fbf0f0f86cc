// Package contract models the wire documents the frame store exchanges with
// the engine. The documents mirror internal/board but carry json/jsonschema
// tags so a machine-readable schema can be published for the editing surface
// and external tooling.
package contract

import (
	"fmt"

	"tactics-board/engine/internal/board"
	"tactics-board/engine/internal/geom"
)

// PointDocument is a single control point or position.
type PointDocument struct {
	X float64 `json:"x" jsonschema:"title=X,description=Horizontal court coordinate in court units"`
	Y float64 `json:"y" jsonschema:"title=Y,description=Vertical court coordinate in court units"`
}

// ZoneStatsDocument is one hot-zone entry from the profile service.
type ZoneStatsDocument struct {
	Pct      float64 `json:"pct" jsonschema:"description=Made percentage in [0,1]"`
	Attempts int     `json:"fga" jsonschema:"description=Field goal attempts"`
	Makes    int     `json:"fgm" jsonschema:"description=Field goals made"`
}

// PlayerDocument is one player entry in a stored frame.
type PlayerDocument struct {
	ID       string                       `json:"id" jsonschema:"title=Player id"`
	Team     string                       `json:"team" jsonschema:"enum=offense,enum=defense"`
	Number   int                          `json:"number,omitempty" jsonschema:"description=Jersey number"`
	Pos      PointDocument                `json:"pos"`
	Rotation float64                      `json:"rotation,omitempty" jsonschema:"description=Facing in degrees"`
	HeightIn float64                      `json:"heightIn,omitempty" jsonschema:"description=Height in inches"`
	WeightLb float64                      `json:"weightLb,omitempty" jsonschema:"description=Weight in pounds"`
	HotZones map[string]ZoneStatsDocument `json:"hotZones,omitempty" jsonschema:"description=Zone-keyed shooting percentages from the profile service"`
}

// BallDocument is the single ball entry in a stored frame.
type BallDocument struct {
	ID      string        `json:"id" jsonschema:"title=Ball id"`
	Pos     PointDocument `json:"pos"`
	OwnerID string        `json:"ownerId,omitempty" jsonschema:"description=Id of the owning player when the ball is held"`
}

// ActionDocument is one drawn action in a stored frame.
type ActionDocument struct {
	ID       string          `json:"id" jsonschema:"title=Action id"`
	Type     string          `json:"type" jsonschema:"enum=move,enum=dribble,enum=pass,enum=shoot,enum=screen,enum=steal,enum=block"`
	PlayerID string          `json:"playerId" jsonschema:"description=Owning player id"`
	Path     []PointDocument `json:"path" jsonschema:"description=Ordered control points; at least two"`
	Color    string          `json:"color,omitempty"`
	Speed    string          `json:"speed,omitempty" jsonschema:"enum=walk,enum=jog,enum=sprint"`
}

// FrameDocument is one complete keyframe for a single view mode.
type FrameDocument struct {
	Players []PlayerDocument `json:"players"`
	Ball    BallDocument     `json:"ball"`
	Actions []ActionDocument `json:"actions,omitempty"`
}

// FrameSetDocument pairs the per-view frames of one logical keyframe.
type FrameSetDocument struct {
	Full FrameDocument `json:"full"`
	Half FrameDocument `json:"half"`
}

// SequenceDocument is the stored play: an ordered list of keyframes.
type SequenceDocument struct {
	Name   string             `json:"name,omitempty"`
	Frames []FrameSetDocument `json:"frames"`
}

// Decode validates a sequence document and converts it into board frames.
func (d SequenceDocument) Decode() ([]board.FrameSet, error) {
	frames := make([]board.FrameSet, 0, len(d.Frames))
	for i, fs := range d.Frames {
		full, err := fs.Full.decode()
		if err != nil {
			return nil, fmt.Errorf("frame %d (full): %w", i, err)
		}
		half, err := fs.Half.decode()
		if err != nil {
			return nil, fmt.Errorf("frame %d (half): %w", i, err)
		}
		frames = append(frames, board.FrameSet{Full: full, Half: half})
	}
	return frames, nil
}

func (d FrameDocument) decode() (board.Frame, error) {
	frame := board.Frame{
		Players: make([]board.Player, 0, len(d.Players)),
		Actions: make([]board.Action, 0, len(d.Actions)),
	}
	for _, p := range d.Players {
		player := board.Player{
			ID:       p.ID,
			Team:     board.Team(p.Team),
			Number:   p.Number,
			Pos:      p.Pos.vec(),
			Rotation: p.Rotation,
			HeightIn: p.HeightIn,
			WeightLb: p.WeightLb,
		}
		if len(p.HotZones) > 0 {
			zones := make(map[string]board.ZoneStats, len(p.HotZones))
			for key, stats := range p.HotZones {
				zones[key] = board.ZoneStats{Pct: stats.Pct, Attempts: stats.Attempts, Makes: stats.Makes}
			}
			player.Profile = &board.ShootingProfile{HotZones: zones}
		}
		frame.Players = append(frame.Players, player)
	}
	frame.Ball = board.Ball{ID: d.Ball.ID, Pos: d.Ball.Pos.vec(), OwnerID: d.Ball.OwnerID}

	for _, a := range d.Actions {
		actionType, ok := board.ParseActionType(a.Type)
		if !ok {
			return board.Frame{}, fmt.Errorf("action %q: unknown type %q", a.ID, a.Type)
		}
		if len(a.Path) < 2 {
			return board.Frame{}, fmt.Errorf("action %q: path needs at least 2 points, got %d", a.ID, len(a.Path))
		}
		path := make([]geom.Vec2, len(a.Path))
		for i, pt := range a.Path {
			path[i] = pt.vec()
		}
		frame.Actions = append(frame.Actions, board.Action{
			ID:       a.ID,
			Type:     actionType,
			PlayerID: a.PlayerID,
			Path:     path,
			Color:    a.Color,
			Speed:    board.SpeedTag(a.Speed),
		})
	}

	if err := frame.Validate(); err != nil {
		return board.Frame{}, err
	}
	return frame, nil
}

func (p PointDocument) vec() geom.Vec2 {
	return geom.Vec2{X: p.X, Y: p.Y}
}
