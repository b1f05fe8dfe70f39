package identity

import (
	"strings"

	"github.com/sam-maryland/sleeper-draft-assistant/internal/model"
)

// Method records how a ranking name was tied to a player id.
type Method string

const (
	MethodExact    Method = "exact"
	MethodFallback Method = "fallback"
	MethodNone     Method = "none"
)

// minContainment is the shortest last name allowed to match by containment.
const minContainment = 3

// Resolution is the outcome of matching one ranking entry.
type Resolution struct {
	PlayerID string `json:"player_id,omitempty"`
	Method   Method `json:"method"`
}

// Resolved reports whether a player id was found.
func (r Resolution) Resolved() bool {
	return r.Method != MethodNone && r.PlayerID != ""
}

// Matcher resolves ranking entries against a Directory.
type Matcher struct {
	dir *Directory
}

// NewMatcher creates a matcher over dir.
func NewMatcher(dir *Directory) *Matcher {
	return &Matcher{dir: dir}
}

// Directory returns the index the matcher reads.
func (m *Matcher) Directory() *Directory {
	return m.dir
}

// Resolve matches by exact full name first, then by last-name containment
// plus first-initial equality. Several candidates are narrowed by exact last
// name, position and team in turn; anything still ambiguous is unresolved.
func (m *Matcher) Resolve(e model.RankedEntry) Resolution {
	name := strings.ToLower(strings.TrimSpace(e.Name))
	if name == "" {
		return Resolution{Method: MethodNone}
	}

	if exact := m.dir.byName[name]; len(exact) > 0 {
		if idx, ok := m.narrow(exact, e, ""); ok {
			return Resolution{PlayerID: m.dir.players[idx].player.ID, Method: MethodExact}
		}
		return Resolution{Method: MethodNone}
	}

	first, last := splitName(e.Name)
	if first == "" || last == "" {
		return Resolution{Method: MethodNone}
	}

	var candidates []int
	seen := make(map[int]bool)
	for _, letter := range initials(first) {
		for _, idx := range m.dir.byLetter[letter] {
			if seen[idx] {
				continue
			}
			seen[idx] = true
			if lastNameContains(last, m.dir.players[idx].last) {
				candidates = append(candidates, idx)
			}
		}
	}
	if len(candidates) == 0 {
		return Resolution{Method: MethodNone}
	}

	if idx, ok := m.narrow(candidates, e, last); ok {
		return Resolution{PlayerID: m.dir.players[idx].player.ID, Method: MethodFallback}
	}
	return Resolution{Method: MethodNone}
}

// ResolveName matches a bare name with no position or team hints.
func (m *Matcher) ResolveName(name string) Resolution {
	return m.Resolve(model.RankedEntry{Name: name})
}

func lastNameContains(rankingLast, canonicalLast string) bool {
	if rankingLast == "" || canonicalLast == "" {
		return false
	}
	if rankingLast == canonicalLast {
		return true
	}
	shorter, longer := rankingLast, canonicalLast
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	return len(shorter) >= minContainment && strings.Contains(longer, shorter)
}

// narrow reduces candidates to one. Each filter only applies when it keeps
// at least one candidate.
func (m *Matcher) narrow(candidates []int, e model.RankedEntry, last string) (int, bool) {
	filters := []func(indexedPlayer) bool{
		func(p indexedPlayer) bool { return last != "" && p.last == last },
		func(p indexedPlayer) bool { return e.Position != "" && p.player.Position == e.Position },
		func(p indexedPlayer) bool { return e.Team != "" && strings.EqualFold(p.player.Team, e.Team) },
	}
	for _, keep := range filters {
		if len(candidates) == 1 {
			break
		}
		var next []int
		for _, idx := range candidates {
			if keep(m.dir.players[idx]) {
				next = append(next, idx)
			}
		}
		if len(next) > 0 {
			candidates = next
		}
	}
	if len(candidates) != 1 {
		return 0, false
	}
	return candidates[0], true
}

// FindEntry is the reverse lookup: the first entry in entries that resolves
// to playerID, and its index.
func (m *Matcher) FindEntry(entries []model.RankedEntry, playerID string) (model.RankedEntry, int, bool) {
	for i, e := range entries {
		if r := m.Resolve(e); r.Resolved() && r.PlayerID == playerID {
			return e, i, true
		}
	}
	return model.RankedEntry{}, -1, false
}
