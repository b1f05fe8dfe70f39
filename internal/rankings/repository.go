// Package rankings holds the loaded ranking tables and answers best-available
// queries against them.
package rankings

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sam-maryland/sleeper-draft-assistant/internal/identity"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/model"
	"github.com/sirupsen/logrus"
)

// Available is a ranked entry that survived exclusion, with its identity
// resolution attached.
type Available struct {
	model.RankedEntry
	PlayerID    string          `json:"player_id,omitempty"`
	MatchMethod identity.Method `json:"match_method"`
}

// Result is the answer to a best-available query.
type Result struct {
	Table model.RankingTable `json:"table"`
	// FormatMatched is false when no table fit the query and the first
	// loaded table was used instead.
	FormatMatched bool        `json:"format_matched"`
	Players       []Available `json:"players"`
	Excluded      int         `json:"excluded"`
}

// Repository owns the current rankings snapshot. Readers always see a
// whole snapshot; Refresh swaps in a new one.
type Repository struct {
	loaders []Loader
	logger  *logrus.Logger
	now     func() time.Time

	mu      sync.Mutex // serializes refreshes
	current atomic.Pointer[Snapshot]
}

// NewRepository creates an empty repository. Tables are read from loaders
// in order on each Refresh.
func NewRepository(logger *logrus.Logger, loaders ...Loader) *Repository {
	r := &Repository{loaders: loaders, logger: logger, now: time.Now}
	r.current.Store(NewSnapshot(nil, time.Time{}))
	return r
}

// Snapshot returns the current generation. It is never nil.
func (r *Repository) Snapshot() *Snapshot {
	return r.current.Load()
}

// Refresh reloads every loader and swaps the result in. On error the
// previous snapshot stays in place.
func (r *Repository) Refresh(ctx context.Context) (*Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var tables []model.RankingTable
	for _, l := range r.loaders {
		loaded, err := l.LoadTables(ctx)
		if err != nil {
			r.logger.WithError(err).Error("Rankings refresh failed, keeping previous tables")
			return r.current.Load(), fmt.Errorf("failed to load rankings: %w", err)
		}
		tables = append(tables, loaded...)
	}

	snap := NewSnapshot(tables, r.now())
	r.current.Store(snap)
	r.logger.WithField("tables", snap.Len()).Info("Rankings refreshed")
	return snap, nil
}

// BestAvailable lists the entries of the selected table that are not
// excluded, in ascending overall rank.
func (r *Repository) BestAvailable(m *identity.Matcher, q Query) Result {
	return r.Search(m, Filter{Query: q})
}

// Search is BestAvailable with additional attribute filters. All filters
// must pass.
func (r *Repository) Search(m *identity.Matcher, f Filter) Result {
	return search(r.Snapshot(), m, f)
}

func search(snap *Snapshot, m *identity.Matcher, f Filter) Result {
	res := Result{Players: []Available{}}
	table, exact, ok := snap.Select(f.TableID, f.Format)
	if !ok {
		return res
	}
	res.Table = table
	res.FormatMatched = exact

	var variants *identity.VariantSet
	if m != nil && len(f.Exclude) > 0 {
		variants = identity.NewVariantSet(m.Directory().Players(f.Exclude))
	}

	for _, e := range table.Entries {
		if !f.Matches(e) {
			continue
		}

		resolution := identity.Resolution{Method: identity.MethodNone}
		if m != nil {
			resolution = m.Resolve(e)
		}
		if resolution.Resolved() {
			if _, gone := f.Exclude[resolution.PlayerID]; gone {
				res.Excluded++
				continue
			}
		} else if variants.Excludes(e.Name) {
			res.Excluded++
			continue
		}

		res.Players = append(res.Players, Available{
			RankedEntry: e,
			PlayerID:    resolution.PlayerID,
			MatchMethod: resolution.Method,
		})
		if f.Limit > 0 && len(res.Players) >= f.Limit {
			break
		}
	}
	return res
}
