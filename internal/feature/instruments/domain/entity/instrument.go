// Package entity defines the domain models for the instruments feature.
package entity

import "time"

// Instrument represents a tracked security identified by its
// exchange-prefixed symbol (e.g. "sh.600000", "sz.000001").
// Descriptive metadata is optional and populated from an external source;
// a record created lazily by sync or a watchlist add carries only the symbol.
type Instrument struct {
	ID          uint       `gorm:"primaryKey"`
	Symbol      string     `gorm:"size:10;not null;uniqueIndex"`
	Name        string     `gorm:"size:255"`
	Exchange    string     `gorm:"size:50"`
	Sector      string     `gorm:"size:100"`
	Industry    string     `gorm:"size:100"`
	Description string     `gorm:"type:text"`
	IPODate     *time.Time `gorm:"type:date"`
	LastUpdated time.Time  `gorm:"autoUpdateTime"`
}

// TableName overrides the table name used by gorm.
func (Instrument) TableName() string {
	return "instruments"
}
