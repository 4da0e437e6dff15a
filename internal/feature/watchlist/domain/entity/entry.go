// Package entity defines the domain models for the watchlist feature.
package entity

import (
	"time"

	instrumententity "stocksync/internal/feature/instruments/domain/entity"
)

// Entry associates a user with a tracked instrument.
// At most one entry exists per (user, instrument) pair.
type Entry struct {
	ID           uint
	UserID       int64
	InstrumentID uint
	AddedAt      time.Time
	// Instrument carries the summary attached when listing entries.
	Instrument instrumententity.Instrument
}
