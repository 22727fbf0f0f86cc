package board

import (
	"fmt"

	"tactics-board/engine/internal/court"
)

// Frame is one complete keyframe for a single view mode: every player, the
// ball, and the actions active during the transition out of this frame. The
// simulation core never mutates a Frame; it reads two adjacent ones.
type Frame struct {
	Players []Player `json:"players"`
	Ball    Ball     `json:"ball"`
	Actions []Action `json:"actions"`
}

// FrameSet pairs the two per-view frames that make up one logical keyframe.
type FrameSet struct {
	Full Frame `json:"full"`
	Half Frame `json:"half"`
}

// View selects the frame for a view mode.
func (fs FrameSet) View(view court.ViewMode) Frame {
	if view == court.ViewHalf {
		return fs.Half
	}
	return fs.Full
}

// PlayerByID returns the player with the given id, if present.
func (f Frame) PlayerByID(id string) (Player, bool) {
	for _, p := range f.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// Validate checks the frame invariants the editing surface must uphold: the
// ball's owner, when set, exists in the frame, and every action belongs to a
// player present in the same frame. Degenerate action paths are legal here
// and simply ignored at interpolation time.
func (f Frame) Validate() error {
	if f.Ball.OwnerID != "" {
		if _, ok := f.PlayerByID(f.Ball.OwnerID); !ok {
			return fmt.Errorf("ball owner %q not present in frame", f.Ball.OwnerID)
		}
	}
	seen := make(map[string]bool, len(f.Players))
	for _, p := range f.Players {
		if p.ID == "" {
			return fmt.Errorf("player with empty id")
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate player id %q", p.ID)
		}
		seen[p.ID] = true
	}
	for _, a := range f.Actions {
		if !seen[a.PlayerID] {
			return fmt.Errorf("action %q references absent player %q", a.ID, a.PlayerID)
		}
	}
	return nil
}
