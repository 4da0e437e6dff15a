// Package usecase implements the business logic for instrument operations.
package usecase

import "errors"

var (
	// ErrInstrumentNotFound is returned when no instrument exists for a symbol.
	ErrInstrumentNotFound = errors.New("instrument not found")
)
