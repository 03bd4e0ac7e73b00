package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConversionRecord is the immutable audit entry for one conversion.
// Exactly one record is written per successful conversion; it is never
// updated or deleted, and it must always be traceable to the exact
// snapshots its rate came from.
type ConversionRecord struct {
	ConversionID    string          `json:"conversionID"` // Primary Key (UUID)
	BaseCurrency    CurrencyCode    `json:"baseCurrency"`
	TargetCurrency  CurrencyCode    `json:"targetCurrency"`
	InputAmount     decimal.Decimal `json:"inputAmount"`
	OutputAmount    decimal.Decimal `json:"outputAmount"`
	RawRate         decimal.Decimal `json:"rawRate"`        // resolved rate before margin
	EffectiveRate   decimal.Decimal `json:"effectiveRate"`  // rawRate * (1 - margin)
	MarginApplied   decimal.Decimal `json:"marginApplied"`  // e.g., 0.005
	BaseSnapshotID  string          `json:"baseSnapshotID,omitempty"`  // pivot->base leg, empty if unused
	QuoteSnapshotID string          `json:"quoteSnapshotID,omitempty"` // pivot->target leg, empty if unused
	CreatedAt       time.Time       `json:"createdAt"`
}

// SnapshotRefs returns the non-empty snapshot ids this record references.
func (c ConversionRecord) SnapshotRefs() []string {
	refs := make([]string, 0, 2)
	if c.BaseSnapshotID != "" {
		refs = append(refs, c.BaseSnapshotID)
	}
	if c.QuoteSnapshotID != "" {
		refs = append(refs, c.QuoteSnapshotID)
	}
	return refs
}
