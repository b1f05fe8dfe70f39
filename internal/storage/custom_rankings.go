package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sam-maryland/sleeper-draft-assistant/internal/model"
	"github.com/sirupsen/logrus"
)

const (
	// CustomTablePrefix starts the table id of every uploaded ranking.
	CustomTablePrefix = "custom-"
	// SourceCustom marks tables loaded from uploads.
	SourceCustom = "custom"
)

// ErrNotFound is returned when a custom ranking id does not exist.
var ErrNotFound = errors.New("custom ranking not found")

// CustomRanking describes one stored upload.
type CustomRanking struct {
	ID        int64           `json:"id"`
	TableID   string          `json:"table_id"`
	Name      string          `json:"name"`
	Key       model.FormatKey `json:"format"`
	CreatedAt time.Time       `json:"created_at"`
	Players   int             `json:"players"`
}

// CustomRankingStore keeps uploaded ranking tables.
type CustomRankingStore struct {
	db     *DB
	logger *logrus.Logger
	now    func() time.Time
}

// NewCustomRankingStore creates a store on db.
func NewCustomRankingStore(db *DB, logger *logrus.Logger) *CustomRankingStore {
	return &CustomRankingStore{db: db, logger: logger, now: time.Now}
}

// TableID returns the ranking table id for a stored upload.
func TableID(id int64) string {
	return CustomTablePrefix + strconv.FormatInt(id, 10)
}

// ParseTableID reverses TableID.
func ParseTableID(tableID string) (int64, bool) {
	rest, ok := strings.CutPrefix(tableID, CustomTablePrefix)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Save stores a new upload. Names are unique.
func (s *CustomRankingStore) Save(ctx context.Context, name string, key model.FormatKey, entries []model.RankedEntry) (CustomRanking, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return CustomRanking{}, &model.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if len(entries) == 0 {
		return CustomRanking{}, &model.ValidationError{Field: "entries", Reason: "ranking has no usable rows"}
	}

	tx, err := s.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return CustomRanking{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM custom_rankings WHERE name = ?`, name).Scan(&exists)
	if err != nil {
		return CustomRanking{}, fmt.Errorf("failed to check ranking name: %w", err)
	}
	if exists > 0 {
		return CustomRanking{}, &model.ValidationError{Field: "name", Reason: fmt.Sprintf("a ranking named %q already exists", name)}
	}

	created := s.now().UTC()
	res, err := tx.ExecContext(ctx,
		`INSERT INTO custom_rankings (name, scoring, lineup, created_at) VALUES (?, ?, ?, ?)`,
		name, string(key.Scoring), string(key.Lineup), created.UnixMilli())
	if err != nil {
		return CustomRanking{}, fmt.Errorf("failed to insert ranking: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return CustomRanking{}, fmt.Errorf("failed to read ranking id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO custom_ranking_entries
		(ranking_id, seq, name, position, team, overall_rank, position_rank, tier, bye_week, projected_points)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return CustomRanking{}, fmt.Errorf("failed to prepare entry insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.ExecContext(ctx, id, i, e.Name, string(e.Position), e.Team,
			e.OverallRank, e.PositionRank, e.Tier, e.ByeWeek, e.ProjectedPoints); err != nil {
			return CustomRanking{}, fmt.Errorf("failed to insert entry %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return CustomRanking{}, fmt.Errorf("failed to commit ranking: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"id":      id,
		"name":    name,
		"format":  key.String(),
		"players": len(entries),
	}).Info("Saved custom ranking")

	return CustomRanking{
		ID:        id,
		TableID:   TableID(id),
		Name:      name,
		Key:       key,
		CreatedAt: time.UnixMilli(created.UnixMilli()).UTC(),
		Players:   len(entries),
	}, nil
}

// List returns every upload, oldest first.
func (s *CustomRankingStore) List(ctx context.Context) ([]CustomRanking, error) {
	rows, err := s.db.conn.QueryContext(ctx, `
		SELECT r.id, r.name, r.scoring, r.lineup, r.created_at,
		       (SELECT COUNT(*) FROM custom_ranking_entries e WHERE e.ranking_id = r.id)
		FROM custom_rankings r
		ORDER BY r.created_at, r.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list custom rankings: %w", err)
	}
	defer rows.Close()

	out := []CustomRanking{}
	for rows.Next() {
		var (
			c               CustomRanking
			scoring, lineup string
			created         int64
		)
		if err := rows.Scan(&c.ID, &c.Name, &scoring, &lineup, &created, &c.Players); err != nil {
			return nil, fmt.Errorf("failed to scan custom ranking: %w", err)
		}
		c.TableID = TableID(c.ID)
		c.Key = model.FormatKey{Scoring: model.ScoringFormat(scoring), Lineup: model.LineupFormat(lineup)}
		c.CreatedAt = time.UnixMilli(created).UTC()
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate custom rankings: %w", err)
	}
	return out, nil
}

// Get returns one upload as a ranking table.
func (s *CustomRankingStore) Get(ctx context.Context, id int64) (model.RankingTable, error) {
	var (
		name, scoring, lineup string
		created               int64
	)
	err := s.db.conn.QueryRowContext(ctx,
		`SELECT name, scoring, lineup, created_at FROM custom_rankings WHERE id = ?`, id).
		Scan(&name, &scoring, &lineup, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return model.RankingTable{}, ErrNotFound
	}
	if err != nil {
		return model.RankingTable{}, fmt.Errorf("failed to get custom ranking: %w", err)
	}

	entries, err := s.entries(ctx, id)
	if err != nil {
		return model.RankingTable{}, err
	}
	return model.RankingTable{
		ID:      TableID(id),
		Name:    name,
		Key:     model.FormatKey{Scoring: model.ScoringFormat(scoring), Lineup: model.LineupFormat(lineup)},
		Source:  SourceCustom,
		Entries: entries,
	}, nil
}

func (s *CustomRankingStore) entries(ctx context.Context, id int64) ([]model.RankedEntry, error) {
	rows, err := s.db.conn.QueryContext(ctx, `
		SELECT name, position, team, overall_rank, position_rank, tier, bye_week, projected_points
		FROM custom_ranking_entries WHERE ranking_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query ranking entries: %w", err)
	}
	defer rows.Close()

	var out []model.RankedEntry
	for rows.Next() {
		var (
			e   model.RankedEntry
			pos string
		)
		if err := rows.Scan(&e.Name, &pos, &e.Team, &e.OverallRank, &e.PositionRank, &e.Tier, &e.ByeWeek, &e.ProjectedPoints); err != nil {
			return nil, fmt.Errorf("failed to scan ranking entry: %w", err)
		}
		e.Position = model.Position(pos)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ranking entries: %w", err)
	}
	return out, nil
}

// Delete removes an upload and its entries.
func (s *CustomRankingStore) Delete(ctx context.Context, id int64) error {
	tx, err := s.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM custom_ranking_entries WHERE ranking_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete ranking entries: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM custom_rankings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete ranking: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}

	s.logger.WithField("id", id).Info("Deleted custom ranking")
	return nil
}

// LoadTables returns every upload as a ranking table, oldest first, so the
// rankings repository can load them after the built-in files.
func (s *CustomRankingStore) LoadTables(ctx context.Context) ([]model.RankingTable, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	tables := make([]model.RankingTable, 0, len(list))
	for _, c := range list {
		t, err := s.Get(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}
