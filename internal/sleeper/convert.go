package sleeper

import (
	"sort"
	"strings"
	"time"

	"github.com/sam-maryland/sleeper-draft-assistant/internal/model"
)

// ToPlayers converts the player directory into canonical players. Records
// without an id or a fantasy position are dropped and counted.
func ToPlayers(players map[string]Player) ([]model.Player, int) {
	out := make([]model.Player, 0, len(players))
	rejected := 0
	for key, p := range players {
		id := p.PlayerID
		if id == "" {
			id = key
		}
		pos, ok := playerPosition(p)
		if id == "" || !ok {
			rejected++
			continue
		}
		name := strings.TrimSpace(p.FullName)
		if name == "" {
			name = strings.TrimSpace(p.FirstName + " " + p.LastName)
		}
		if name == "" {
			rejected++
			continue
		}
		out = append(out, model.Player{
			ID:          id,
			DisplayName: name,
			FirstName:   p.FirstName,
			LastName:    p.LastName,
			Position:    pos,
			Team:        p.Team,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, rejected
}

func playerPosition(p Player) (model.Position, bool) {
	if pos, ok := model.ParsePosition(p.Position); ok {
		return pos, true
	}
	for _, fp := range p.FantasyPositions {
		if pos, ok := model.ParsePosition(fp); ok {
			return pos, true
		}
	}
	return "", false
}

// ToPicks converts draft picks into typed picks. Picks without a pick number
// or player are dropped and counted.
func ToPicks(picks []DraftPick) ([]model.Pick, int) {
	out := make([]model.Pick, 0, len(picks))
	rejected := 0
	for _, p := range picks {
		playerID := p.PlayerID
		if playerID == "" {
			playerID = p.Metadata.PlayerID
		}
		if p.PickNo <= 0 || playerID == "" {
			rejected++
			continue
		}
		pick := model.Pick{
			PickNumber: p.PickNo,
			Round:      p.Round,
			PlayerID:   playerID,
			PickedBy:   p.PickedBy,
			PlayerName: strings.TrimSpace(p.Metadata.FirstName + " " + p.Metadata.LastName),
			IsKeeper:   p.IsKeeper != nil && *p.IsKeeper,
		}
		if pos, ok := model.ParsePosition(p.Metadata.Position); ok {
			pick.Position = pos
		}
		if p.PickedAt > 0 {
			pick.PickedAt = time.UnixMilli(p.PickedAt)
		}
		out = append(out, pick)
	}
	return out, rejected
}

// ToTopology reads board dimensions from draft settings.
func ToTopology(d *Draft) (model.DraftTopology, error) {
	if d == nil {
		return model.DraftTopology{}, &model.ValidationError{Field: "draft", Reason: "missing"}
	}
	topology := model.DraftTopology{
		TeamCount:  d.Settings.Teams,
		RoundCount: d.Settings.Rounds,
		Type:       DraftType(d.Type),
	}
	if err := topology.Validate(); err != nil {
		return model.DraftTopology{}, err
	}
	return topology, nil
}

// DraftType maps Sleeper draft types onto the two pick orders the seat
// mapper knows. Auctions have no seat order and are treated as linear.
func DraftType(raw string) model.DraftType {
	switch strings.ToLower(raw) {
	case "linear", "auction":
		return model.Linear
	}
	return model.Snake
}
