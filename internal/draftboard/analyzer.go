package draftboard

import (
	"sort"

	"github.com/sam-maryland/sleeper-draft-assistant/internal/model"
)

// Late-round thresholds after which a missing K or DEF becomes an important need.
const (
	kickerNeedAfterRound  = 12
	defenseNeedAfterRound = 13
)

// TeamRosterView is one team's roster rebuilt from the pick list.
type TeamRosterView struct {
	TeamIndex        int                       `json:"team_index"`
	Picks            []model.Pick              `json:"picks"`
	PositionCounts   map[model.Position]int    `json:"position_counts"`
	Needs            model.Needs               `json:"needs"`
	StrengthScore    int                       `json:"strength_score"`
	Balance          Balance                   `json:"roster_balance"`
	PositionStrength map[model.Position]string `json:"position_strength"`
	Strategy         string                    `json:"draft_strategy"`
	RoundsCompleted  int                       `json:"rounds_completed"`
}

// Analyze replays picks onto the board and derives every team's view. Picks
// without a player or with a non-positive pick number are skipped. The
// result holds an entry for every team index, drafted or not.
func Analyze(picks []model.Pick, topology model.DraftTopology) (map[int]TeamRosterView, error) {
	if err := topology.Validate(); err != nil {
		return nil, err
	}

	views := make(map[int]TeamRosterView, topology.TeamCount)
	for i := 0; i < topology.TeamCount; i++ {
		views[i] = TeamRosterView{
			TeamIndex:      i,
			Picks:          []model.Pick{},
			PositionCounts: map[model.Position]int{},
		}
	}

	ordered := make([]model.Pick, 0, len(picks))
	for _, p := range picks {
		if p.PlayerID == "" || p.PickNumber < 1 {
			continue
		}
		ordered = append(ordered, p)
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].PickNumber < ordered[j].PickNumber })

	for _, p := range ordered {
		seat := seatOf(p.PickNumber, topology)
		view := views[seat.TeamIndex]
		p.Round = seat.Round
		view.Picks = append(view.Picks, p)
		if p.Position != "" {
			view.PositionCounts[p.Position]++
		}
		if seat.Round > view.RoundsCompleted {
			view.RoundsCompleted = seat.Round
		}
		views[seat.TeamIndex] = view
	}

	for i, view := range views {
		view.Needs = needsFor(view.PositionCounts, view.RoundsCompleted)
		view.StrengthScore = StrengthScore(view.PositionCounts)
		view.Balance = RosterBalance(view.PositionCounts)
		view.PositionStrength = positionStrength(view.PositionCounts)
		view.Strategy = Strategy(view.Picks)
		views[i] = view
	}
	return views, nil
}

// needsFor applies the fixed lineup thresholds. Order within each tier is stable.
func needsFor(counts map[model.Position]int, roundsCompleted int) model.Needs {
	needs := model.Needs{
		Critical:  []model.Position{},
		Important: []model.Position{},
		Depth:     []model.Position{},
	}

	if counts[model.QB] == 0 {
		needs.Critical = append(needs.Critical, model.QB)
	}
	if counts[model.RB] < 2 {
		needs.Critical = append(needs.Critical, model.RB)
	}
	if counts[model.WR] < 2 {
		needs.Critical = append(needs.Critical, model.WR)
	}
	if counts[model.TE] == 0 {
		needs.Critical = append(needs.Critical, model.TE)
	}

	if counts[model.RB] < 3 {
		needs.Important = append(needs.Important, model.RB)
	}
	if counts[model.WR] < 3 {
		needs.Important = append(needs.Important, model.WR)
	}
	if counts[model.QB] < 2 {
		needs.Important = append(needs.Important, model.QB)
	}
	if counts[model.TE] < 2 {
		needs.Important = append(needs.Important, model.TE)
	}
	if counts[model.K] == 0 && roundsCompleted > kickerNeedAfterRound {
		needs.Important = append(needs.Important, model.K)
	}
	if counts[model.DEF] == 0 && roundsCompleted > defenseNeedAfterRound {
		needs.Important = append(needs.Important, model.DEF)
	}

	if counts[model.RB] < 4 {
		needs.Depth = append(needs.Depth, model.RB)
	}
	if counts[model.WR] < 5 {
		needs.Depth = append(needs.Depth, model.WR)
	}
	return needs
}

// Strategy labels a team by the positions of its first three picks.
func Strategy(picks []model.Pick) string {
	if len(picks) < 3 {
		return "Unknown"
	}
	early := picks[:3]
	count := func(pos model.Position) int {
		n := 0
		for _, p := range early {
			if p.Position == pos {
				n++
			}
		}
		return n
	}

	switch {
	case count(model.RB) >= 2:
		return "RB Heavy"
	case count(model.WR) >= 2:
		return "WR Heavy"
	case early[0].Position == model.QB || early[1].Position == model.QB:
		return "Early QB"
	case count(model.TE) >= 1 && early[0].Position != model.TE:
		return "Premium TE"
	}
	return "Balanced"
}
