// Package vbd scores available players by value over a replacement-level baseline.
package vbd

import (
	"math"
	"sort"

	"github.com/sam-maryland/sleeper-draft-assistant/internal/model"
)

// Lineup slot names beyond the fixed positions.
const (
	slotFlex      = "FLEX"
	slotSuperflex = "SUPERFLEX"
)

var lineupRequirements = map[model.LineupFormat]map[string]int{
	model.LineupStandard: {
		"QB": 1, "RB": 2, "WR": 2, "TE": 1, slotFlex: 1, "K": 1, "DEF": 1,
	},
	model.LineupSuperflex: {
		"QB": 1, "RB": 2, "WR": 2, "TE": 1, slotFlex: 1, slotSuperflex: 1, "K": 1, "DEF": 1,
	},
}

// benchMultiplier scales starters into rostered depth per position.
var benchMultiplier = map[model.Position]float64{
	model.QB:  0.5,
	model.RB:  1.5,
	model.WR:  1.2,
	model.TE:  0.8,
	model.K:   0.1,
	model.DEF: 0.2,
}

const (
	flexShare      = 0.3
	superflexShare = 0.2
)

// Candidate is an available player going into the engine.
type Candidate struct {
	Entry    model.RankedEntry
	PlayerID string
}

// Result is one player's value line. Values are rounded to two decimals.
type Result struct {
	Name                string         `json:"name"`
	PlayerID            string         `json:"player_id,omitempty"`
	Position            model.Position `json:"position"`
	Team                string         `json:"team,omitempty"`
	OverallRank         int            `json:"overall_rank,omitempty"`
	PositionRank        int            `json:"position_rank"`
	Tier                int            `json:"tier,omitempty"`
	ByeWeek             int            `json:"bye_week,omitempty"`
	ProjectedPoints     float64        `json:"projected_points"`
	BaselinePoints      float64        `json:"baseline_points"`
	RawVBD              float64        `json:"raw_vbd"`
	ScarcityAdjustedVBD float64        `json:"vbd_value"`
	ScarcityMultiplier  float64        `json:"scarcity_multiplier"`
	PositionScarcity    string         `json:"position_scarcity"`
	VBDRank             int            `json:"vbd_rank"`
}

// Output is the full engine answer for one call.
type Output struct {
	Players          []Result                   `json:"players"`
	Baselines        map[model.Position]float64 `json:"baselines"`
	ReplacementIndex map[model.Position]int     `json:"replacement_index"`
	// Skipped counts candidates with no usable projection.
	Skipped int `json:"skipped"`
}

// ReplacementIndex returns how many players at pos the league rosters
// before replacement level: starters, a share of flex and superflex slots,
// and bench depth, floored.
func ReplacementIndex(pos model.Position, lineup model.LineupFormat, leagueSize int) int {
	req, ok := lineupRequirements[lineup]
	if !ok {
		req = lineupRequirements[model.LineupStandard]
	}
	n := float64(leagueSize)
	starters := float64(req[string(pos)]) * n

	demand := starters
	switch pos {
	case model.RB, model.WR, model.TE:
		demand += float64(req[slotFlex]) * n * flexShare
	}
	if lineup == model.LineupSuperflex {
		switch pos {
		case model.QB, model.RB, model.WR, model.TE:
			demand += float64(req[slotSuperflex]) * n * superflexShare
		}
	}
	demand += starters * benchMultiplier[pos]
	return int(math.Floor(demand + 1e-9))
}

type scored struct {
	candidate Candidate
	points    float64
	posRank   int
}

// Compute values every candidate against its position baseline. The
// call is pure: identical inputs produce identical output.
func Compute(candidates []Candidate, lineup model.LineupFormat, leagueSize int) (Output, error) {
	if leagueSize < 1 {
		return Output{}, &model.ValidationError{Field: "league_size", Reason: "must be at least 1"}
	}

	out := Output{
		Players:          []Result{},
		Baselines:        map[model.Position]float64{},
		ReplacementIndex: map[model.Position]int{},
	}

	byPos := make(map[model.Position][]scored)
	for _, c := range candidates {
		if _, known := benchMultiplier[c.Entry.Position]; !known {
			out.Skipped++
			continue
		}
		points := c.Entry.ProjectedPoints
		if points <= 0 {
			est, ok := EstimatePoints(c.Entry.Position, c.Entry.Tier)
			if !ok {
				out.Skipped++
				continue
			}
			points = est
		}
		byPos[c.Entry.Position] = append(byPos[c.Entry.Position], scored{candidate: c, points: points})
	}

	for _, pos := range model.Positions {
		players := byPos[pos]
		if len(players) == 0 {
			continue
		}
		sort.SliceStable(players, func(i, j int) bool {
			if players[i].points != players[j].points {
				return players[i].points > players[j].points
			}
			return rankLess(players[i].candidate.Entry, players[j].candidate.Entry)
		})
		for i := range players {
			players[i].posRank = players[i].candidate.Entry.PositionRank
			if players[i].posRank <= 0 {
				players[i].posRank = i + 1
			}
		}

		k := ReplacementIndex(pos, lineup, leagueSize)
		baselineIdx := k
		if baselineIdx >= len(players) {
			baselineIdx = len(players) - 1
		}
		baseline := players[baselineIdx].points
		out.Baselines[pos] = round2(baseline)
		out.ReplacementIndex[pos] = k

		multiplier := scarcityMultiplier[pos]
		for _, p := range players {
			raw := p.points - baseline
			e := p.candidate.Entry
			out.Players = append(out.Players, Result{
				Name:                e.Name,
				PlayerID:            p.candidate.PlayerID,
				Position:            pos,
				Team:                e.Team,
				OverallRank:         e.OverallRank,
				PositionRank:        p.posRank,
				Tier:                e.Tier,
				ByeWeek:             e.ByeWeek,
				ProjectedPoints:     round2(p.points),
				BaselinePoints:      round2(baseline),
				RawVBD:              round2(raw),
				ScarcityAdjustedVBD: round2(raw * multiplier),
				ScarcityMultiplier:  multiplier,
				PositionScarcity:    PositionScarcity(pos, p.posRank),
			})
		}
	}

	sort.SliceStable(out.Players, func(i, j int) bool {
		a, b := out.Players[i], out.Players[j]
		if a.ScarcityAdjustedVBD != b.ScarcityAdjustedVBD {
			return a.ScarcityAdjustedVBD > b.ScarcityAdjustedVBD
		}
		if a.OverallRank != b.OverallRank {
			return rankLess(model.RankedEntry{OverallRank: a.OverallRank}, model.RankedEntry{OverallRank: b.OverallRank})
		}
		return a.Name < b.Name
	})
	for i := range out.Players {
		out.Players[i].VBDRank = i + 1
	}
	return out, nil
}

// rankLess orders by overall rank with unranked entries last.
func rankLess(a, b model.RankedEntry) bool {
	switch {
	case a.HasRank() && b.HasRank():
		return a.OverallRank < b.OverallRank
	case a.HasRank():
		return true
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
