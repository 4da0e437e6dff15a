// Package api defines the shared HTTP request/response DTOs.
package api

import (
	instrumententity "stocksync/internal/feature/instruments/domain/entity"
	watchlistentity "stocksync/internal/feature/watchlist/domain/entity"
)

const dateLayout = "2006-01-02"

// ErrorResponse is the structured error payload returned by every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is a simple confirmation payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// InstrumentResponse is the JSON representation of an instrument.
type InstrumentResponse struct {
	ID          uint   `json:"id"`
	Symbol      string `json:"symbol"`
	Name        string `json:"name,omitempty"`
	Exchange    string `json:"exchange,omitempty"`
	Sector      string `json:"sector,omitempty"`
	Industry    string `json:"industry,omitempty"`
	Description string `json:"description,omitempty"`
	IPODate     string `json:"ipo_date,omitempty"`
	LastUpdated string `json:"last_updated"`
}

// DailyBarResponse is the JSON representation of one daily bar.
// Prices are fixed-point decimal strings to preserve exactness.
type DailyBarResponse struct {
	TradeDate string `json:"trade_date"`
	Open      string `json:"open"`
	High      string `json:"high"`
	Low       string `json:"low"`
	Close     string `json:"close"`
	Volume    int64  `json:"volume"`
	Amount    *int64 `json:"amount"`
}

// WatchlistEntryResponse is the JSON representation of a watchlist entry
// with its instrument summary attached.
type WatchlistEntryResponse struct {
	ID           uint               `json:"id"`
	UserID       int64              `json:"user_id"`
	InstrumentID uint               `json:"instrument_id"`
	AddedAt      string             `json:"added_at"`
	Instrument   InstrumentResponse `json:"instrument"`
}

// WatchlistAddRequest is the body of a watchlist POST.
type WatchlistAddRequest struct {
	Symbol string `json:"symbol" binding:"required"`
}

// NewInstrumentResponse maps an instrument entity to its response DTO.
func NewInstrumentResponse(e *instrumententity.Instrument) InstrumentResponse {
	out := InstrumentResponse{
		ID:          e.ID,
		Symbol:      e.Symbol,
		Name:        e.Name,
		Exchange:    e.Exchange,
		Sector:      e.Sector,
		Industry:    e.Industry,
		Description: e.Description,
		LastUpdated: e.LastUpdated.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if e.IPODate != nil {
		out.IPODate = e.IPODate.UTC().Format(dateLayout)
	}
	return out
}

// NewDailyBarResponse maps a daily bar entity to its response DTO.
func NewDailyBarResponse(e instrumententity.DailyBar) DailyBarResponse {
	return DailyBarResponse{
		TradeDate: e.TradeDate.UTC().Format(dateLayout),
		Open:      e.Open.StringFixed(4),
		High:      e.High.StringFixed(4),
		Low:       e.Low.StringFixed(4),
		Close:     e.Close.StringFixed(4),
		Volume:    e.Volume,
		Amount:    e.Amount,
	}
}

// NewWatchlistEntryResponse maps a watchlist entry to its response DTO.
func NewWatchlistEntryResponse(e *watchlistentity.Entry) WatchlistEntryResponse {
	return WatchlistEntryResponse{
		ID:           e.ID,
		UserID:       e.UserID,
		InstrumentID: e.InstrumentID,
		AddedAt:      e.AddedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		Instrument:   NewInstrumentResponse(&e.Instrument),
	}
}
