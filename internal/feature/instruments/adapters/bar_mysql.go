package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stocksync/internal/feature/instruments/domain/entity"
	"stocksync/internal/feature/instruments/usecase"
)

type barMySQL struct {
	db *gorm.DB
}

var _ usecase.BarRepository = (*barMySQL)(nil)

// NewBarRepository creates a barMySQL repository with the given DB connection.
func NewBarRepository(db *gorm.DB) *barMySQL {
	return &barMySQL{db: db}
}

// DailyBarModel is the persistence model for daily bars.
// (instrument_id, trade_date) is the natural key.
type DailyBarModel struct {
	ID           uint            `gorm:"primaryKey"`
	InstrumentID uint            `gorm:"not null;uniqueIndex:bar_inst_date,priority:1"`
	TradeDate    time.Time       `gorm:"type:date;not null;uniqueIndex:bar_inst_date,priority:2"`
	Open         decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	High         decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	Low          decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	Close        decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	Volume       int64           `gorm:"not null;default:0"`
	Amount       *int64
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// TableName overrides the table name used by gorm.
func (DailyBarModel) TableName() string {
	return "daily_bars"
}

func toModel(e entity.DailyBar) DailyBarModel {
	return DailyBarModel{
		InstrumentID: e.InstrumentID,
		TradeDate:    e.TradeDate,
		Open:         e.Open,
		High:         e.High,
		Low:          e.Low,
		Close:        e.Close,
		Volume:       e.Volume,
		Amount:       e.Amount,
	}
}

func toEntity(m DailyBarModel) entity.DailyBar {
	return entity.DailyBar{
		InstrumentID: m.InstrumentID,
		TradeDate:    m.TradeDate,
		Open:         m.Open,
		High:         m.High,
		Low:          m.Low,
		Close:        m.Close,
		Volume:       m.Volume,
		Amount:       m.Amount,
	}
}

// UpsertBatch writes a batch of bars as a single statement. Rows whose
// (instrument_id, trade_date) already exists are overwritten in place;
// the rest are inserted. No-op on an empty batch.
func (r *barMySQL) UpsertBatch(ctx context.Context, bars []entity.DailyBar) error {
	if len(bars) == 0 {
		return nil
	}
	ms := make([]DailyBarModel, 0, len(bars))
	for _, e := range bars {
		ms = append(ms, toModel(e))
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "instrument_id"}, {Name: "trade_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"open", "high", "low", "close", "volume", "amount", "updated_at"}),
	}).Create(&ms).Error
}

// LatestTradeDate returns the most recent trade date stored for an
// instrument. The second return value is false when no bars exist yet.
func (r *barMySQL) LatestTradeDate(ctx context.Context, instrumentID uint) (time.Time, bool, error) {
	var m DailyBarModel
	err := r.db.WithContext(ctx).
		Where("instrument_id = ?", instrumentID).
		Order("trade_date DESC").
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return m.TradeDate, true, nil
}

// FindRange returns bars within [start, end] ordered ascending by trade date.
func (r *barMySQL) FindRange(ctx context.Context, instrumentID uint, start, end time.Time) ([]entity.DailyBar, error) {
	var rows []DailyBarModel
	if err := r.db.WithContext(ctx).
		Where("instrument_id = ? AND trade_date >= ? AND trade_date <= ?", instrumentID, start, end).
		Order("trade_date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.DailyBar, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}
