package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConversionRecord is the persistence shape of one audit row. Rows are
// insert-only. The snapshot reference columns are nullable: an identity
// conversion uses neither leg, a pivot-sided conversion uses one.
type ConversionRecord struct {
	ConversionID    string          `json:"conversionID"` // Primary Key (UUID)
	BaseCurrency    string          `json:"baseCurrency"`
	TargetCurrency  string          `json:"targetCurrency"`
	InputAmount     decimal.Decimal `json:"inputAmount"`  // NUMERIC(15,3)
	OutputAmount    decimal.Decimal `json:"outputAmount"` // NUMERIC(15,3)
	RawRate         decimal.Decimal `json:"rawRate"`       // NUMERIC(24,12)
	EffectiveRate   decimal.Decimal `json:"effectiveRate"` // NUMERIC(24,12)
	MarginApplied   decimal.Decimal `json:"marginApplied"` // NUMERIC(5,4)
	BaseSnapshotID  *string         `json:"baseSnapshotID"`
	QuoteSnapshotID *string         `json:"quoteSnapshotID"`
	CreatedAt       time.Time       `json:"createdAt"`
}
