package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyBar is one trading-day OHLCV observation for an instrument.
// Prices are post-adjustment, fixed-point with 4 fractional digits.
// Amount (traded turnover) may be absent from the provider and stays nil.
type DailyBar struct {
	InstrumentID uint
	TradeDate    time.Time // calendar date, UTC midnight
	Open         decimal.Decimal
	High         decimal.Decimal
	Low          decimal.Decimal
	Close        decimal.Decimal
	Volume       int64
	Amount       *int64
}
