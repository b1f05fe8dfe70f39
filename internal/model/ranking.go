package model

// RankedEntry is one row of a ranking table. OverallRank 0 means the source
// had no rank and the entry sorts after every ranked entry.
type RankedEntry struct {
	Name            string   `json:"name"`
	Position        Position `json:"position"`
	Team            string   `json:"team,omitempty"`
	OverallRank     int      `json:"overall_rank,omitempty"`
	PositionRank    int      `json:"position_rank,omitempty"`
	Tier            int      `json:"tier,omitempty"`
	ByeWeek         int      `json:"bye_week,omitempty"`
	ProjectedPoints float64  `json:"projected_points,omitempty"`
}

// HasRank reports whether the source supplied an overall rank.
func (e RankedEntry) HasRank() bool {
	return e.OverallRank > 0
}

// RankingTable is an immutable ranked list for one format key.
type RankingTable struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Key     FormatKey     `json:"format"`
	Source  string        `json:"source"`
	Entries []RankedEntry `json:"-"`
}
