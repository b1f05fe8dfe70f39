package draftboard

import (
	"math"

	"github.com/sam-maryland/sleeper-draft-assistant/internal/model"
)

const maxStrength = 100

// StrengthScore rates a roster from 0 to 100: up to 60 points for starting
// lineup coverage and up to 40 for depth. Adding a player never lowers it.
func StrengthScore(counts map[model.Position]int) int {
	score := 0

	if counts[model.QB] >= 1 {
		score += 10
	}
	switch {
	case counts[model.RB] >= 2:
		score += 15
	case counts[model.RB] >= 1:
		score += 8
	}
	switch {
	case counts[model.WR] >= 2:
		score += 15
	case counts[model.WR] >= 1:
		score += 8
	}
	if counts[model.TE] >= 1 {
		score += 10
	}
	if counts[model.K] >= 1 {
		score += 5
	}
	if counts[model.DEF] >= 1 {
		score += 5
	}

	score += depth(counts[model.RB], 2, 2) * 5
	score += depth(counts[model.WR], 2, 3) * 5
	score += depth(counts[model.QB], 1, 1) * 5
	score += depth(counts[model.TE], 1, 1) * 5

	if score > maxStrength {
		return maxStrength
	}
	return score
}

// depth counts players beyond the starters, clamped to [0, limit].
func depth(count, starters, limit int) int {
	extra := count - starters
	if extra < 0 {
		return 0
	}
	if extra > limit {
		return limit
	}
	return extra
}

var idealDistribution = map[model.Position]float64{
	model.QB: 0.15,
	model.RB: 0.35,
	model.WR: 0.40,
	model.TE: 0.10,
}

// Balance compares the skill-position mix to an ideal split.
type Balance struct {
	Score        float64                    `json:"balance_score"`
	Distribution map[model.Position]float64 `json:"distribution"`
}

// RosterBalance scores 100 for the ideal QB/RB/WR/TE split, minus the total
// percentage-point deviation, floored at 0.
func RosterBalance(counts map[model.Position]int) Balance {
	total := counts[model.QB] + counts[model.RB] + counts[model.WR] + counts[model.TE]
	if total == 0 {
		return Balance{Score: 0, Distribution: map[model.Position]float64{}}
	}

	dist := make(map[model.Position]float64, len(idealDistribution))
	deviation := 0.0
	for pos, ideal := range idealDistribution {
		share := float64(counts[pos]) / float64(total)
		dist[pos] = share
		deviation += math.Abs(share-ideal) * 100
	}
	return Balance{Score: math.Max(0, 100-deviation), Distribution: dist}
}

func positionStrength(counts map[model.Position]int) map[model.Position]string {
	out := make(map[model.Position]string)
	for _, pos := range []model.Position{model.QB, model.RB, model.WR, model.TE} {
		if counts[pos] == 0 {
			continue
		}
		out[pos] = PositionStrength(pos, counts[pos])
	}
	return out
}

// PositionStrength rates a position group as Strong, Adequate, Minimal or Weak.
func PositionStrength(pos model.Position, count int) string {
	switch pos {
	case model.QB, model.TE:
		switch {
		case count >= 2:
			return "Strong"
		case count >= 1:
			return "Adequate"
		}
		return "Weak"
	case model.RB, model.WR:
		switch {
		case count >= 4:
			return "Strong"
		case count >= 3:
			return "Adequate"
		case count >= 2:
			return "Minimal"
		}
		return "Weak"
	}
	return "Unknown"
}
