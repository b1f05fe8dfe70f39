package draftboard

import (
	"math"

	"github.com/sam-maryland/sleeper-draft-assistant/internal/model"
)

// Summary aggregates team views across the whole draft.
type Summary struct {
	AverageStrength      float64                `json:"average_strength"`
	StrongestTeam        int                    `json:"strongest_team"`
	StrongestScore       int                    `json:"strongest_score"`
	WeakestTeam          int                    `json:"weakest_team"`
	WeakestScore         int                    `json:"weakest_score"`
	PositionPopularity   map[model.Position]int `json:"position_popularity"`
	StrategyDistribution map[string]int         `json:"strategy_distribution"`
	TotalPicks           int                    `json:"total_picks"`
}

// Summarize reports averages and extremes across views. Ties go to the lower team index.
func Summarize(views map[int]TeamRosterView) Summary {
	summary := Summary{
		StrongestTeam:        -1,
		WeakestTeam:          -1,
		PositionPopularity:   map[model.Position]int{},
		StrategyDistribution: map[string]int{},
	}
	if len(views) == 0 {
		return summary
	}

	total := 0
	for i := 0; i < len(views); i++ {
		view, ok := views[i]
		if !ok {
			continue
		}
		total += view.StrengthScore
		if summary.StrongestTeam < 0 || view.StrengthScore > summary.StrongestScore {
			summary.StrongestTeam, summary.StrongestScore = i, view.StrengthScore
		}
		if summary.WeakestTeam < 0 || view.StrengthScore < summary.WeakestScore {
			summary.WeakestTeam, summary.WeakestScore = i, view.StrengthScore
		}
		for pos, n := range view.PositionCounts {
			summary.PositionPopularity[pos] += n
		}
		summary.StrategyDistribution[view.Strategy]++
		summary.TotalPicks += len(view.Picks)
	}

	avg := float64(total) / float64(len(views))
	summary.AverageStrength = math.Round(avg*10) / 10
	return summary
}
