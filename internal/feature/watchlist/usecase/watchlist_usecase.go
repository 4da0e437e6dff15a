package usecase

import (
	"context"
	"errors"

	instrumententity "stocksync/internal/feature/instruments/domain/entity"
	instrumentusecase "stocksync/internal/feature/instruments/usecase"
	"stocksync/internal/feature/watchlist/domain/entity"
)

// InstrumentRepository resolves symbols to instruments.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type InstrumentRepository interface {
	GetBySymbol(ctx context.Context, symbol string) (*instrumententity.Instrument, error)
}

// WatchlistRepository abstracts the persistence layer for watchlist entries.
type WatchlistRepository interface {
	// Add inserts a (user, instrument) pairing and returns the stored entry
	// with its instrument summary attached. Returns ErrAlreadyInWatchlist
	// when the pairing already exists.
	Add(ctx context.Context, userID int64, instrumentID uint) (*entity.Entry, error)
	// Remove deletes a pairing and reports whether a row was removed.
	Remove(ctx context.Context, userID int64, instrumentID uint) (bool, error)
	// ListByUser returns all entries for a user with instrument summaries.
	ListByUser(ctx context.Context, userID int64) ([]entity.Entry, error)
}

// WatchlistUsecase provides watchlist membership operations.
type WatchlistUsecase struct {
	instruments InstrumentRepository
	entries     WatchlistRepository
}

// NewWatchlistUsecase creates a new WatchlistUsecase.
func NewWatchlistUsecase(instruments InstrumentRepository, entries WatchlistRepository) *WatchlistUsecase {
	return &WatchlistUsecase{instruments: instruments, entries: entries}
}

// List returns all watchlist entries for a user.
func (u *WatchlistUsecase) List(ctx context.Context, userID int64) ([]entity.Entry, error) {
	return u.entries.ListByUser(ctx, userID)
}

// Add resolves the symbol to an instrument and attaches it to the user's
// watchlist. An unknown symbol yields ErrInstrumentNotFound without any
// write; a duplicate pairing yields ErrAlreadyInWatchlist.
func (u *WatchlistUsecase) Add(ctx context.Context, userID int64, symbol string) (*entity.Entry, error) {
	inst, err := u.instruments.GetBySymbol(ctx, symbol)
	if err != nil {
		if errors.Is(err, instrumentusecase.ErrInstrumentNotFound) {
			return nil, ErrInstrumentNotFound
		}
		return nil, err
	}
	return u.entries.Add(ctx, userID, inst.ID)
}

// Remove resolves the symbol and deletes the pairing. Returns
// ErrInstrumentNotFound for an unknown symbol and ErrNotInWatchlist when
// the user was not watching the instrument.
func (u *WatchlistUsecase) Remove(ctx context.Context, userID int64, symbol string) error {
	inst, err := u.instruments.GetBySymbol(ctx, symbol)
	if err != nil {
		if errors.Is(err, instrumentusecase.ErrInstrumentNotFound) {
			return ErrInstrumentNotFound
		}
		return err
	}
	removed, err := u.entries.Remove(ctx, userID, inst.ID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotInWatchlist
	}
	return nil
}
