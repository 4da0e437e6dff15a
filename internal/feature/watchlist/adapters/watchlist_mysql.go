// Package adapters provides the repository implementations for the watchlist feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	instrumententity "stocksync/internal/feature/instruments/domain/entity"
	"stocksync/internal/feature/watchlist/domain/entity"
	"stocksync/internal/feature/watchlist/usecase"
)

// watchlistMySQL is the MySQL implementation of the WatchlistRepository interface.
type watchlistMySQL struct {
	db *gorm.DB
}

var _ usecase.WatchlistRepository = (*watchlistMySQL)(nil)

// NewWatchlistRepository creates a watchlistMySQL repository with the given DB connection.
func NewWatchlistRepository(db *gorm.DB) *watchlistMySQL {
	return &watchlistMySQL{db: db}
}

// EntryModel is the persistence model for watchlist entries.
// (user_id, instrument_id) is the natural key.
type EntryModel struct {
	ID           uint      `gorm:"primaryKey"`
	UserID       int64     `gorm:"not null;uniqueIndex:watchlist_user_inst,priority:1"`
	InstrumentID uint      `gorm:"not null;uniqueIndex:watchlist_user_inst,priority:2"`
	AddedAt      time.Time `gorm:"autoCreateTime"`
}

// TableName overrides the table name used by gorm.
func (EntryModel) TableName() string {
	return "user_watchlist"
}

// Add inserts a (user, instrument) pairing. A duplicate pairing returns
// usecase.ErrAlreadyInWatchlist; the unique index backs the pre-check so a
// racing insert still cannot produce a second row.
func (r *watchlistMySQL) Add(ctx context.Context, userID int64, instrumentID uint) (*entity.Entry, error) {
	var existing EntryModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND instrument_id = ?", userID, instrumentID).
		First(&existing).Error
	if err == nil {
		return nil, usecase.ErrAlreadyInWatchlist
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	m := EntryModel{UserID: userID, InstrumentID: instrumentID}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		// MySQL error 1062: duplicate entry for a unique key
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return nil, usecase.ErrAlreadyInWatchlist
		}
		return nil, err
	}

	var inst instrumententity.Instrument
	if err := r.db.WithContext(ctx).First(&inst, m.InstrumentID).Error; err != nil {
		return nil, err
	}

	return &entity.Entry{
		ID:           m.ID,
		UserID:       m.UserID,
		InstrumentID: m.InstrumentID,
		AddedAt:      m.AddedAt,
		Instrument:   inst,
	}, nil
}

// Remove deletes a pairing and reports whether a row was removed.
func (r *watchlistMySQL) Remove(ctx context.Context, userID int64, instrumentID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND instrument_id = ?", userID, instrumentID).
		Delete(&EntryModel{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListByUser returns all entries for a user ordered by added time, with
// instrument summaries attached through an explicit second query rather
// than lazy object-graph navigation.
func (r *watchlistMySQL) ListByUser(ctx context.Context, userID int64) ([]entity.Entry, error) {
	var rows []EntryModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []entity.Entry{}, nil
	}

	ids := make([]uint, 0, len(rows))
	for _, m := range rows {
		ids = append(ids, m.InstrumentID)
	}
	var insts []instrumententity.Instrument
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&insts).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]instrumententity.Instrument, len(insts))
	for _, inst := range insts {
		byID[inst.ID] = inst
	}

	out := make([]entity.Entry, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.Entry{
			ID:           m.ID,
			UserID:       m.UserID,
			InstrumentID: m.InstrumentID,
			AddedAt:      m.AddedAt,
			Instrument:   byID[m.InstrumentID],
		})
	}
	return out, nil
}
