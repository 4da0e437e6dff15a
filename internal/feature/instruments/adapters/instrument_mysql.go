// Package adapters provides the repository implementations for the instruments feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"stocksync/internal/feature/instruments/domain/entity"
	"stocksync/internal/feature/instruments/usecase"
)

// instrumentMySQL is the MySQL implementation of the instrument repositories.
type instrumentMySQL struct {
	db *gorm.DB
}

// Compile-time check that instrumentMySQL satisfies the usecase interface.
var _ usecase.InstrumentRepository = (*instrumentMySQL)(nil)

// NewInstrumentRepository creates an instrumentMySQL repository with the given DB connection.
func NewInstrumentRepository(db *gorm.DB) *instrumentMySQL {
	return &instrumentMySQL{db: db}
}

// GetBySymbol looks up an instrument by its unique symbol.
// Returns usecase.ErrInstrumentNotFound when no record exists.
func (r *instrumentMySQL) GetBySymbol(ctx context.Context, symbol string) (*entity.Instrument, error) {
	var inst entity.Instrument
	if err := r.db.WithContext(ctx).Where("symbol = ?", symbol).First(&inst).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrInstrumentNotFound
		}
		return nil, err
	}
	return &inst, nil
}

// GetOrCreate returns the instrument for a symbol, inserting a bare record
// with only the symbol populated when none exists. The unique index on
// symbol guarantees repeated calls never create duplicates.
func (r *instrumentMySQL) GetOrCreate(ctx context.Context, symbol string) (*entity.Instrument, error) {
	var inst entity.Instrument
	if err := r.db.WithContext(ctx).
		Where(entity.Instrument{Symbol: symbol}).
		FirstOrCreate(&inst).Error; err != nil {
		return nil, err
	}
	return &inst, nil
}

// ListAll returns every known instrument ordered by symbol.
func (r *instrumentMySQL) ListAll(ctx context.Context) ([]entity.Instrument, error) {
	var insts []entity.Instrument
	if err := r.db.WithContext(ctx).Order("symbol ASC").Find(&insts).Error; err != nil {
		return nil, err
	}
	return insts, nil
}
