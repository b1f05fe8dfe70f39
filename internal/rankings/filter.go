package rankings

import (
	"strings"

	"github.com/sam-maryland/sleeper-draft-assistant/internal/model"
)

// Query selects a table and the players to leave out of it.
type Query struct {
	// Exclude holds canonical ids of unavailable players.
	Exclude map[string]struct{}
	Format  model.FormatKey
	TableID string
	// Position is matched case-insensitively; "DST" and "D/ST" mean DEF.
	Position string
	// Limit caps the result; 0 or less returns everything.
	Limit int
}

// Filter adds attribute filters to a Query. Zero values are ignored.
type Filter struct {
	Query
	NameContains string
	Team         string
	Tier         int
	ByeWeek      int
	MinRank      int
	MaxRank      int
}

// Matches reports whether e passes the position and attribute filters.
// Exclusion, table selection and Limit are not applied here.
func (f Filter) Matches(e model.RankedEntry) bool {
	if f.Position != "" {
		pos, ok := model.ParsePosition(f.Position)
		if !ok || e.Position != pos {
			return false
		}
	}
	if f.NameContains != "" && !strings.Contains(strings.ToLower(e.Name), strings.ToLower(strings.TrimSpace(f.NameContains))) {
		return false
	}
	if f.Team != "" && !strings.EqualFold(e.Team, strings.TrimSpace(f.Team)) {
		return false
	}
	if f.Tier > 0 && e.Tier != f.Tier {
		return false
	}
	if f.ByeWeek > 0 && e.ByeWeek != f.ByeWeek {
		return false
	}
	if f.MinRank > 0 && (!e.HasRank() || e.OverallRank < f.MinRank) {
		return false
	}
	if f.MaxRank > 0 && (!e.HasRank() || e.OverallRank > f.MaxRank) {
		return false
	}
	return true
}
