// Package identity reconciles free-text ranking names with canonical Sleeper player ids.
package identity

import (
	"strings"

	"github.com/sam-maryland/sleeper-draft-assistant/internal/model"
)

type indexedPlayer struct {
	player   model.Player
	fullName string // lower-cased display name
	first    string // normalized first token
	last     string // normalized last name, suffixes removed
}

// Directory is an immutable index over the canonical player list.
type Directory struct {
	players  []indexedPlayer
	byID     map[string]int
	byName   map[string][]int
	byLetter map[byte][]int
}

// NewDirectory indexes players for exact and fallback lookups.
func NewDirectory(players []model.Player) *Directory {
	d := &Directory{
		players:  make([]indexedPlayer, 0, len(players)),
		byID:     make(map[string]int, len(players)),
		byName:   make(map[string][]int, len(players)),
		byLetter: make(map[byte][]int),
	}
	for _, p := range players {
		if p.ID == "" {
			continue
		}
		if _, dup := d.byID[p.ID]; dup {
			continue
		}
		first, last := p.NameParts()
		ip := indexedPlayer{
			player:   p,
			fullName: strings.ToLower(strings.TrimSpace(p.DisplayName)),
			first:    firstToken(first),
			last:     strings.Join(tokens(last), " "),
		}
		idx := len(d.players)
		d.players = append(d.players, ip)
		d.byID[p.ID] = idx
		d.byName[ip.fullName] = append(d.byName[ip.fullName], idx)
		for _, letter := range initials(ip.first) {
			d.byLetter[letter] = append(d.byLetter[letter], idx)
		}
	}
	return d
}

func firstToken(first string) string {
	t := tokens(first)
	if len(t) == 0 {
		return ""
	}
	return t[0]
}

// Len returns the number of indexed players.
func (d *Directory) Len() int {
	return len(d.players)
}

// Player looks up a canonical player by id.
func (d *Directory) Player(id string) (model.Player, bool) {
	idx, ok := d.byID[id]
	if !ok {
		return model.Player{}, false
	}
	return d.players[idx].player, true
}

// Players returns the canonical players for ids, skipping unknown ones.
func (d *Directory) Players(ids map[string]struct{}) []model.Player {
	out := make([]model.Player, 0, len(ids))
	for id := range ids {
		if p, ok := d.Player(id); ok {
			out = append(out, p)
		}
	}
	return out
}
