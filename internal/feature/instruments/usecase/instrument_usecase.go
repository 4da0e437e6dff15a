package usecase

import (
	"context"
	"time"

	"stocksync/internal/feature/instruments/domain/entity"
)

// InstrumentRepository abstracts the persistence layer for instrument records.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type InstrumentRepository interface {
	// GetBySymbol looks up an instrument by its unique symbol.
	// Returns ErrInstrumentNotFound when no record exists.
	GetBySymbol(ctx context.Context, symbol string) (*entity.Instrument, error)
}

// BarRepository abstracts the read path for stored daily bars.
type BarRepository interface {
	// FindRange returns bars for an instrument within [start, end],
	// ordered ascending by trade date.
	FindRange(ctx context.Context, instrumentID uint, start, end time.Time) ([]entity.DailyBar, error)
}

// InstrumentUsecase provides read operations over instruments and their bars.
type InstrumentUsecase struct {
	instruments InstrumentRepository
	bars        BarRepository
}

// NewInstrumentUsecase creates a new InstrumentUsecase.
func NewInstrumentUsecase(instruments InstrumentRepository, bars BarRepository) *InstrumentUsecase {
	return &InstrumentUsecase{instruments: instruments, bars: bars}
}

// GetInstrument returns the instrument for a symbol, or ErrInstrumentNotFound.
func (u *InstrumentUsecase) GetInstrument(ctx context.Context, symbol string) (*entity.Instrument, error) {
	return u.instruments.GetBySymbol(ctx, symbol)
}

// GetDailyBars returns the stored bars for a symbol within [start, end].
// An unknown symbol is an error regardless of whether bars exist;
// a known symbol with no bars in range yields an empty slice.
func (u *InstrumentUsecase) GetDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]entity.DailyBar, error) {
	inst, err := u.instruments.GetBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return u.bars.FindRange(ctx, inst.ID, start, end)
}
