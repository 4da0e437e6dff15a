// Package usecase implements the business logic for the watchlist feature.
package usecase

import "errors"

var (
	// ErrInstrumentNotFound is returned when the referenced symbol is unknown.
	ErrInstrumentNotFound = errors.New("instrument not found")

	// ErrAlreadyInWatchlist is returned when the (user, instrument) pair already exists.
	ErrAlreadyInWatchlist = errors.New("instrument already in watchlist")

	// ErrNotInWatchlist is returned when removing a pairing that does not exist.
	ErrNotInWatchlist = errors.New("instrument not in watchlist")
)
