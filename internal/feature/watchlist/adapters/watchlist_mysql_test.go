package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	instrumententity "stocksync/internal/feature/instruments/domain/entity"
	"stocksync/internal/feature/watchlist/usecase"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&instrumententity.Instrument{}, &EntryModel{}))
	return db
}

func seedInstrument(t *testing.T, db *gorm.DB, symbol, name string) instrumententity.Instrument {
	t.Helper()
	inst := instrumententity.Instrument{Symbol: symbol, Name: name}
	require.NoError(t, db.Create(&inst).Error)
	return inst
}

func TestWatchlistMySQL_Add(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewWatchlistRepository(db)

	inst := seedInstrument(t, db, "sh.600000", "浦发银行")

	t.Run("creates the entry with the instrument summary attached", func(t *testing.T) {
		entry, err := repo.Add(ctx, 42, inst.ID)
		require.NoError(t, err)
		require.NotZero(t, entry.ID)
		assert.EqualValues(t, 42, entry.UserID)
		assert.Equal(t, inst.ID, entry.InstrumentID)
		assert.Equal(t, "sh.600000", entry.Instrument.Symbol)
		assert.False(t, entry.AddedAt.IsZero())
	})

	t.Run("duplicate pairing maps to the conflict sentinel", func(t *testing.T) {
		entry, err := repo.Add(ctx, 42, inst.ID)
		assert.Nil(t, entry)
		assert.ErrorIs(t, err, usecase.ErrAlreadyInWatchlist)

		var count int64
		require.NoError(t, db.Model(&EntryModel{}).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("the same instrument is independent per user", func(t *testing.T) {
		entry, err := repo.Add(ctx, 43, inst.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 43, entry.UserID)
	})
}

func TestWatchlistMySQL_Remove(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewWatchlistRepository(db)

	inst := seedInstrument(t, db, "sz.000001", "平安银行")
	_, err := repo.Add(ctx, 42, inst.ID)
	require.NoError(t, err)

	t.Run("removes an existing pairing", func(t *testing.T) {
		removed, err := repo.Remove(ctx, 42, inst.ID)
		require.NoError(t, err)
		assert.True(t, removed)
	})

	t.Run("removing a missing pairing reports false", func(t *testing.T) {
		removed, err := repo.Remove(ctx, 42, inst.ID)
		require.NoError(t, err)
		assert.False(t, removed)
	})
}

func TestWatchlistMySQL_ListByUser(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewWatchlistRepository(db)

	t.Run("no entries returns an empty slice", func(t *testing.T) {
		entries, err := repo.ListByUser(ctx, 42)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("entries come back oldest-first with summaries", func(t *testing.T) {
		first := seedInstrument(t, db, "sh.600000", "浦发银行")
		second := seedInstrument(t, db, "sh.600519", "贵州茅台")

		base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
		require.NoError(t, db.Create(&EntryModel{
			UserID: 42, InstrumentID: second.ID, AddedAt: base.Add(time.Hour),
		}).Error)
		require.NoError(t, db.Create(&EntryModel{
			UserID: 42, InstrumentID: first.ID, AddedAt: base,
		}).Error)
		// another user's entry must not leak in
		require.NoError(t, db.Create(&EntryModel{
			UserID: 7, InstrumentID: first.ID, AddedAt: base,
		}).Error)

		entries, err := repo.ListByUser(ctx, 42)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "sh.600000", entries[0].Instrument.Symbol)
		assert.Equal(t, "sh.600519", entries[1].Instrument.Symbol)
		assert.Equal(t, "贵州茅台", entries[1].Instrument.Name)
	})
}
