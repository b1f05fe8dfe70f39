package model

import "fmt"

// ScoringFormat is the reception scoring rule of a league.
type ScoringFormat string

const (
	Standard ScoringFormat = "standard"
	HalfPPR  ScoringFormat = "half_ppr"
	PPR      ScoringFormat = "ppr"
)

// LineupFormat is the starting lineup shape of a league.
type LineupFormat string

const (
	LineupStandard  LineupFormat = "standard"
	LineupSuperflex LineupFormat = "superflex"
)

// ParseScoringFormat accepts the spellings used in file names and requests.
func ParseScoringFormat(raw string) (ScoringFormat, bool) {
	switch raw {
	case "standard", "std", "STD", "Standard":
		return Standard, true
	case "half_ppr", "half-ppr", "half", "HALF_PPR", "Half_PPR", "0.5ppr":
		return HalfPPR, true
	case "ppr", "PPR", "full_ppr":
		return PPR, true
	}
	return "", false
}

// ParseLineupFormat accepts the spellings used in file names and requests.
func ParseLineupFormat(raw string) (LineupFormat, bool) {
	switch raw {
	case "standard", "std", "1qb", "1QB", "Standard":
		return LineupStandard, true
	case "superflex", "sf", "SF", "2qb", "Superflex", "SUPERFLEX":
		return LineupSuperflex, true
	}
	return "", false
}

// FormatKey identifies one ranking table.
type FormatKey struct {
	Scoring ScoringFormat `json:"scoring"`
	Lineup  LineupFormat  `json:"lineup"`
}

func (k FormatKey) String() string {
	return fmt.Sprintf("%s_%s", k.Scoring, k.Lineup)
}

// IsZero reports whether neither half of the key is set.
func (k FormatKey) IsZero() bool {
	return k.Scoring == "" && k.Lineup == ""
}

// LeagueProfile is derived from league settings on every fetch.
type LeagueProfile struct {
	Scoring           ScoringFormat `json:"scoring_format"`
	Lineup            LineupFormat  `json:"lineup_format"`
	IsDynastyOrKeeper bool          `json:"is_dynasty_or_keeper"`
	// Signals records which rules fired, and any anomalies in the input.
	Signals []string `json:"signals"`
}

// Key returns the ranking table key matching the profile.
func (p LeagueProfile) Key() FormatKey {
	return FormatKey{Scoring: p.Scoring, Lineup: p.Lineup}
}
