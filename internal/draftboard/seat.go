// Package draftboard places picks on the draft board and rebuilds each
// team's roster from the pick sequence.
package draftboard

import "github.com/sam-maryland/sleeper-draft-assistant/internal/model"

// SeatOf maps a 1-based pick number to the team index and round that made it.
// Snake drafts reverse direction on even rounds.
func SeatOf(pickNumber int, topology model.DraftTopology) (model.Seat, error) {
	if err := topology.Validate(); err != nil {
		return model.Seat{}, err
	}
	if pickNumber < 1 {
		return model.Seat{}, &model.ValidationError{Field: "pick_number", Reason: "must be at least 1"}
	}
	return seatOf(pickNumber, topology), nil
}

func seatOf(pickNumber int, topology model.DraftTopology) model.Seat {
	teams := topology.TeamCount
	offset := (pickNumber - 1) % teams
	round := (pickNumber-1)/teams + 1

	team := offset
	if topology.Type == model.Snake && round%2 == 0 {
		team = teams - 1 - offset
	}
	return model.Seat{TeamIndex: team, Round: round}
}

// PickNumberOf is the inverse of SeatOf.
func PickNumberOf(seat model.Seat, topology model.DraftTopology) (int, error) {
	if err := topology.Validate(); err != nil {
		return 0, err
	}
	if seat.Round < 1 {
		return 0, &model.ValidationError{Field: "round", Reason: "must be at least 1"}
	}
	if seat.TeamIndex < 0 || seat.TeamIndex >= topology.TeamCount {
		return 0, &model.ValidationError{Field: "team_index", Reason: "outside the draft order"}
	}

	offset := seat.TeamIndex
	if topology.Type == model.Snake && seat.Round%2 == 0 {
		offset = topology.TeamCount - 1 - seat.TeamIndex
	}
	return (seat.Round-1)*topology.TeamCount + offset + 1, nil
}

// PicksForTeam lists every pick number a team owns across the full board.
func PicksForTeam(teamIndex int, topology model.DraftTopology) ([]int, error) {
	picks := make([]int, 0, topology.RoundCount)
	for round := 1; round <= topology.RoundCount; round++ {
		n, err := PickNumberOf(model.Seat{TeamIndex: teamIndex, Round: round}, topology)
		if err != nil {
			return nil, err
		}
		picks = append(picks, n)
	}
	return picks, nil
}
