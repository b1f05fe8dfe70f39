package model

import "time"

// DraftType controls whether the pick order reverses every round.
type DraftType string

const (
	Snake  DraftType = "snake"
	Linear DraftType = "linear"
)

// DraftTopology describes the shape of a draft board.
type DraftTopology struct {
	TeamCount  int       `json:"team_count"`
	RoundCount int       `json:"round_count"`
	Type       DraftType `json:"draft_type"`
}

// Validate rejects topologies the seat mapper cannot place picks on.
func (t DraftTopology) Validate() error {
	if t.TeamCount < 1 {
		return &ValidationError{Field: "team_count", Reason: "must be at least 1"}
	}
	if t.RoundCount < 1 {
		return &ValidationError{Field: "round_count", Reason: "must be at least 1"}
	}
	if t.Type != Snake && t.Type != Linear {
		return &ValidationError{Field: "draft_type", Reason: "must be snake or linear"}
	}
	return nil
}

// Pick is one selection in a draft. Picks are never mutated once appended.
type Pick struct {
	PickNumber int       `json:"pick_no"`
	Round      int       `json:"round"`
	PlayerID   string    `json:"player_id"`
	PickedBy   string    `json:"picked_by,omitempty"`
	PickedAt   time.Time `json:"picked_at,omitempty"`
	Position   Position  `json:"position,omitempty"`
	PlayerName string    `json:"player_name,omitempty"`
	IsKeeper   bool      `json:"is_keeper,omitempty"`
}

// Needs groups missing positions by urgency.
type Needs struct {
	Critical  []Position `json:"critical"`
	Important []Position `json:"important"`
	Depth     []Position `json:"depth"`
}

// Seat is a position on the draft board.
type Seat struct {
	TeamIndex int `json:"team_index"`
	Round     int `json:"round"`
}
