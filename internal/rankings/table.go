package rankings

import (
	"time"

	"github.com/sam-maryland/sleeper-draft-assistant/internal/model"
)

// Snapshot is one immutable generation of loaded ranking tables.
type Snapshot struct {
	tables   []model.RankingTable
	byID     map[string]int
	byKey    map[model.FormatKey]int
	LoadedAt time.Time
}

// NewSnapshot indexes tables in load order. The first table for a format
// key wins; later duplicates stay reachable by id.
func NewSnapshot(tables []model.RankingTable, loadedAt time.Time) *Snapshot {
	s := &Snapshot{
		tables:   make([]model.RankingTable, 0, len(tables)),
		byID:     make(map[string]int, len(tables)),
		byKey:    make(map[model.FormatKey]int, len(tables)),
		LoadedAt: loadedAt,
	}
	for _, t := range tables {
		if _, dup := s.byID[t.ID]; dup {
			continue
		}
		t.Entries = finalize(t.Entries)
		idx := len(s.tables)
		s.tables = append(s.tables, t)
		s.byID[t.ID] = idx
		if _, ok := s.byKey[t.Key]; !ok && !t.Key.IsZero() {
			s.byKey[t.Key] = idx
		}
	}
	return s
}

// Tables returns table metadata in load order, without entries.
func (s *Snapshot) Tables() []TableInfo {
	out := make([]TableInfo, 0, len(s.tables))
	for _, t := range s.tables {
		out = append(out, TableInfo{RankingTable: t, Players: len(t.Entries)})
	}
	return out
}

// TableInfo describes a loaded table.
type TableInfo struct {
	model.RankingTable
	Players int `json:"players"`
}

// Table returns a table by id.
func (s *Snapshot) Table(id string) (model.RankingTable, bool) {
	idx, ok := s.byID[id]
	if !ok {
		return model.RankingTable{}, false
	}
	return s.tables[idx], true
}

// Select picks the table for a query: the named table if loaded, else the
// table for key, else the first loaded table. exact is false when the
// last fallback was used.
func (s *Snapshot) Select(tableID string, key model.FormatKey) (table model.RankingTable, exact bool, ok bool) {
	if tableID != "" {
		if t, found := s.Table(tableID); found {
			return t, true, true
		}
	}
	if idx, found := s.byKey[key]; found {
		return s.tables[idx], true, true
	}
	if len(s.tables) == 0 {
		return model.RankingTable{}, false, false
	}
	return s.tables[0], false, true
}

// Len returns the number of loaded tables.
func (s *Snapshot) Len() int {
	return len(s.tables)
}
