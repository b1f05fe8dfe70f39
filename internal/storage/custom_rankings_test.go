package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/sam-maryland/sleeper-draft-assistant/internal/model"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(DefaultConfig(filepath.Join(t.TempDir(), "nested", "assistant.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestStore(t *testing.T) *CustomRankingStore {
	t.Helper()
	logger, _ := test.NewNullLogger()
	return NewCustomRankingStore(openTestDB(t), logger)
}

var sheet = []model.RankedEntry{
	{Name: "Bijan Robinson", Position: model.RB, Team: "ATL", OverallRank: 1, Tier: 1, ByeWeek: 5},
	{Name: "Puka Nacua", Position: model.WR, Team: "LAR", OverallRank: 2, Tier: 1, ProjectedPoints: 250.5},
	{Name: "Late Sleeper", Position: model.TE},
}

func TestCustomRankingStore_SaveGetList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	key := model.FormatKey{Scoring: model.PPR, Lineup: model.LineupSuperflex}

	saved, err := store.Save(ctx, " My Board ", key, sheet)
	require.NoError(t, err)
	assert.Equal(t, "My Board", saved.Name)
	assert.Equal(t, TableID(saved.ID), saved.TableID)
	assert.Equal(t, 3, saved.Players)

	table, err := store.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.TableID, table.ID)
	assert.Equal(t, key, table.Key)
	assert.Equal(t, SourceCustom, table.Source)
	assert.Equal(t, sheet, table.Entries)

	second, err := store.Save(ctx, "Second", model.FormatKey{}, sheet[:1])
	require.NoError(t, err)

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, saved.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
	assert.Equal(t, 1, list[1].Players)

	tables, err := store.LoadTables(ctx)
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, "My Board", tables[0].Name)
}

func TestCustomRankingStore_Validation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	var verr *model.ValidationError

	_, err := store.Save(ctx, "", model.FormatKey{}, sheet)
	assert.True(t, errors.As(err, &verr))

	_, err = store.Save(ctx, "Empty", model.FormatKey{}, nil)
	assert.True(t, errors.As(err, &verr))

	_, err = store.Save(ctx, "Dup", model.FormatKey{}, sheet)
	require.NoError(t, err)
	_, err = store.Save(ctx, "Dup", model.FormatKey{}, sheet)
	assert.True(t, errors.As(err, &verr))
}

func TestCustomRankingStore_Delete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	saved, err := store.Save(ctx, "Gone Soon", model.FormatKey{}, sheet)
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, saved.ID))
	_, err = store.Get(ctx, saved.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, saved.ID), ErrNotFound)

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)
}

func TestParseTableID(t *testing.T) {
	id, ok := ParseTableID(TableID(42))
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "custom-", "custom-x", "custom-0", "ppr_standard"} {
		_, ok := ParseTableID(bad)
		assert.False(t, ok, bad)
	}
}

func TestMigrator_Version(t *testing.T) {
	db := openTestDB(t)

	m, err := NewMigrator(db.Path())
	require.NoError(t, err)
	defer func() { _ = m.Close() }()

	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)
}
