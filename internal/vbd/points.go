package vbd

import "github.com/sam-maryland/sleeper-draft-assistant/internal/model"

// tierPoints holds season point estimates for tiers 1 through 8.
var tierPoints = map[model.Position][8]float64{
	model.QB:  {320, 300, 280, 260, 240, 220, 200, 180},
	model.RB:  {280, 250, 220, 200, 180, 160, 140, 120},
	model.WR:  {260, 230, 200, 180, 160, 140, 120, 100},
	model.TE:  {180, 150, 130, 110, 95, 85, 75, 65},
	model.K:   {140, 130, 125, 120, 115, 110, 105, 100},
	model.DEF: {150, 140, 130, 125, 120, 115, 110, 105},
}

const (
	pointsPerTierBelow8 = 10
	minEstimatedPoints  = 50
)

// EstimatePoints projects season points from a tier. Tiers past 8 lose 10
// points each down to a floor of 50. It reports false for unknown
// positions and non-positive tiers.
func EstimatePoints(pos model.Position, tier int) (float64, bool) {
	table, ok := tierPoints[pos]
	if !ok || tier < 1 {
		return 0, false
	}
	if tier <= len(table) {
		return table[tier-1], true
	}
	points := table[len(table)-1] - float64((tier-len(table))*pointsPerTierBelow8)
	if points < minEstimatedPoints {
		points = minEstimatedPoints
	}
	return points, true
}

// scarcityMultiplier weights raw VBD by how thin each position is.
var scarcityMultiplier = map[model.Position]float64{
	model.QB:  1.0,
	model.RB:  1.3,
	model.WR:  1.1,
	model.TE:  1.5,
	model.K:   0.8,
	model.DEF: 0.8,
}

// scarcityThresholds are the position ranks at or under which a player is
// labelled High and Medium scarcity.
var scarcityThresholds = map[model.Position][2]int{
	model.QB:  {12, 20},
	model.RB:  {24, 36},
	model.WR:  {30, 48},
	model.TE:  {12, 20},
	model.K:   {15, 25},
	model.DEF: {15, 25},
}

// Scarcity labels.
const (
	ScarcityHigh   = "High"
	ScarcityMedium = "Medium"
	ScarcityLow    = "Low"
)

// PositionScarcity labels a player by position rank.
func PositionScarcity(pos model.Position, positionRank int) string {
	t, ok := scarcityThresholds[pos]
	if !ok {
		t = [2]int{20, 35}
	}
	switch {
	case positionRank <= t[0]:
		return ScarcityHigh
	case positionRank <= t[1]:
		return ScarcityMedium
	}
	return ScarcityLow
}
