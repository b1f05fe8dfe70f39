package vbd

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/sam-maryland/sleeper-draft-assistant/internal/model"
)

// Need priorities attached to a recommendation.
const (
	NeedCritical  = "Critical"
	NeedImportant = "Important"
	NeedDepth     = "Depth"
)

// DefaultRecommendSize is used when no limit is given.
const DefaultRecommendSize = 5

const (
	criticalBoost       = 1.5
	importantBoost      = 1.2
	highScarcityBoost   = 1.1
	mediumScarcityBoost = 1.05
)

// Recommendation is a valued player reweighted by a team's needs.
type Recommendation struct {
	Rank         int     `json:"rank"`
	Player       Result  `json:"player"`
	Score        float64 `json:"recommendation_score"`
	NeedPriority string  `json:"need_priority"`
	Reasoning    string  `json:"reasoning"`
}

// Recommend ranks results for a team with the given needs. Players with
// zero value are left out. A non-positive limit falls back to
// DefaultRecommendSize.
func Recommend(results []Result, needs model.Needs, limit int) []Recommendation {
	if limit <= 0 {
		limit = DefaultRecommendSize
	}

	recs := make([]Recommendation, 0, len(results))
	for _, r := range results {
		if r.ScarcityAdjustedVBD == 0 {
			continue
		}
		score := r.ScarcityAdjustedVBD
		priority := NeedDepth
		switch {
		case containsPosition(needs.Critical, r.Position):
			score *= criticalBoost
			priority = NeedCritical
		case containsPosition(needs.Important, r.Position):
			score *= importantBoost
			priority = NeedImportant
		}
		switch r.PositionScarcity {
		case ScarcityHigh:
			score *= highScarcityBoost
		case ScarcityMedium:
			score *= mediumScarcityBoost
		}
		recs = append(recs, Recommendation{
			Player:       r,
			Score:        score,
			NeedPriority: priority,
			Reasoning:    reasoning(r, priority),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})
	if len(recs) > limit {
		recs = recs[:limit]
	}
	for i := range recs {
		recs[i].Rank = i + 1
		recs[i].Score = math.Round(recs[i].Score*100) / 100
	}
	return recs
}

func reasoning(r Result, priority string) string {
	var parts []string

	v := r.ScarcityAdjustedVBD
	switch {
	case v > 20:
		parts = append(parts, fmt.Sprintf("Excellent value (%.1f VBD)", v))
	case v > 10:
		parts = append(parts, fmt.Sprintf("Good value (%.1f VBD)", v))
	case v > 0:
		parts = append(parts, fmt.Sprintf("Positive value (%.1f VBD)", v))
	default:
		parts = append(parts, fmt.Sprintf("Below replacement level (%.1f VBD)", v))
	}

	switch priority {
	case NeedCritical:
		parts = append(parts, fmt.Sprintf("Fills critical %s need", r.Position))
	case NeedImportant:
		parts = append(parts, fmt.Sprintf("Addresses important %s need", r.Position))
	default:
		parts = append(parts, fmt.Sprintf("Provides %s depth", r.Position))
	}

	switch r.PositionScarcity {
	case ScarcityHigh:
		parts = append(parts, "High positional scarcity")
	case ScarcityMedium:
		parts = append(parts, "Moderate positional scarcity")
	}
	return strings.Join(parts, "; ")
}

func containsPosition(list []model.Position, pos model.Position) bool {
	for _, p := range list {
		if p == pos {
			return true
		}
	}
	return false
}
