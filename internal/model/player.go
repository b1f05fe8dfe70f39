// Package model holds the typed records shared by the draft engine packages.
package model

import "strings"

// Position is a fantasy-relevant roster position.
type Position string

const (
	QB  Position = "QB"
	RB  Position = "RB"
	WR  Position = "WR"
	TE  Position = "TE"
	K   Position = "K"
	DEF Position = "DEF"
)

// Positions lists every draftable position in display order.
var Positions = []Position{QB, RB, WR, TE, K, DEF}

// ParsePosition standardises a raw position label. Defense and kicker
// spellings used by ranking sites are folded into DEF and K.
func ParsePosition(raw string) (Position, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "QB":
		return QB, true
	case "RB":
		return RB, true
	case "WR":
		return WR, true
	case "TE":
		return TE, true
	case "K", "PK", "KICKER":
		return K, true
	case "DEF", "DST", "D/ST", "DEFENSE", "D":
		return DEF, true
	}
	return "", false
}

// Player is a canonical player from the roster/draft source. The engine only reads it.
type Player struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"display_name"`
	FirstName   string   `json:"first_name,omitempty"`
	LastName    string   `json:"last_name,omitempty"`
	Position    Position `json:"position"`
	Team        string   `json:"team,omitempty"`
	ByeWeek     int      `json:"bye_week,omitempty"`
}

// NameParts returns first and last name, splitting the display name when
// the source did not provide them separately.
func (p Player) NameParts() (first, last string) {
	if p.FirstName != "" || p.LastName != "" {
		return p.FirstName, p.LastName
	}
	fields := strings.Fields(p.DisplayName)
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return "", fields[0]
	}
	return fields[0], strings.Join(fields[1:], " ")
}
