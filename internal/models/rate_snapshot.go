package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSnapshot is the persistence shape of one rate history row.
// Rows are insert-only; there is no update path.
type RateSnapshot struct {
	SnapshotID    string          `json:"snapshotID"` // Primary Key (UUID)
	PivotCurrency string          `json:"pivotCurrency"`
	QuoteCurrency string          `json:"quoteCurrency"`
	Rate          decimal.Decimal `json:"rate"` // NUMERIC(24,12)
	FetchedAt     time.Time       `json:"fetchedAt"`
	SourceTag     string          `json:"sourceTag"`
	CreatedAt     time.Time       `json:"createdAt"`
}
