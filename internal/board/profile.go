package board

import (
	"sort"
	"strings"

	"tactics-board/engine/internal/court"
)

// LeagueAveragePct is the fallback shooting percentage when a player has no
// usable profile data for a zone.
const LeagueAveragePct = 0.35

// ZoneStats is a single hot-zone entry from the profile service.
type ZoneStats struct {
	Pct      float64 `json:"pct"`
	Attempts int     `json:"fga"`
	Makes    int     `json:"fgm"`
}

// ShootingProfile holds zone-keyed shooting percentages for one player. Keys
// come from the profile service and may be coarser than the classifier's
// labels, e.g. "Restricted Area (Center(C))" for ZoneRestrictedArea.
type ShootingProfile struct {
	HotZones map[string]ZoneStats `json:"hotZones"`
}

// ZonePct looks up the shooting percentage for a zone. The match is by
// substring so a detailed profile key still answers for its basic zone. The
// second result is false when the lookup fell back to the league average.
func (p *ShootingProfile) ZonePct(zone court.Zone) (float64, bool) {
	if p == nil || len(p.HotZones) == 0 {
		return LeagueAveragePct, false
	}
	// Sorted keys keep the lookup deterministic when several keys match.
	keys := make([]string, 0, len(p.HotZones))
	for key := range p.HotZones {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if !strings.Contains(key, string(zone)) {
			continue
		}
		stats := p.HotZones[key]
		if stats.Pct < 0 || stats.Pct > 1 {
			continue
		}
		return stats.Pct, true
	}
	return LeagueAveragePct, false
}
