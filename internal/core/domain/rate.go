package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSnapshot is one immutable rate observation for a pivot/quote pair.
// Snapshots are only ever inserted; a newer fetch supersedes an older one
// without touching it, so the history for a pair is totally ordered by
// FetchedAt.
type RateSnapshot struct {
	SnapshotID    string          `json:"snapshotID"`    // Primary Key (UUID)
	PivotCurrency CurrencyCode    `json:"pivotCurrency"` // e.g., "EUR"
	QuoteCurrency CurrencyCode    `json:"quoteCurrency"` // e.g., "NGN"
	Rate          decimal.Decimal `json:"rate"`          // pivot -> quote, always > 0
	FetchedAt     time.Time       `json:"fetchedAt"`     // provider observation time (UTC)
	SourceTag     string          `json:"sourceTag"`     // provider identifier
	CreatedAt     time.Time       `json:"createdAt"`
}

// CachedRate is the cache projection of the latest RateSnapshot for a pair.
// It is a copy, never an independent source of truth: its values always
// equal a snapshot that exists durably in the store.
type CachedRate struct {
	RateSnapshot
	CachedAt time.Time `json:"cachedAt"`
}

// ResolvedRate is the transient result of a cross-currency resolution.
// It is never persisted; conversions copy its fields into the audit record.
type ResolvedRate struct {
	BaseCurrency   CurrencyCode    `json:"baseCurrency"`
	TargetCurrency CurrencyCode    `json:"targetCurrency"`
	Rate           decimal.Decimal `json:"rate"`
	BaseSnapshotID string          `json:"baseSnapshotID,omitempty"`  // pivot->base leg, empty if unused
	QuoteSnapshotID string         `json:"quoteSnapshotID,omitempty"` // pivot->target leg, empty if unused
	FetchedAt      time.Time       `json:"fetchedAt"` // oldest fetch time among the legs used
	SourceTag      string          `json:"sourceTag"`
	ResolvedAt     time.Time       `json:"resolvedAt"`
}

// SnapshotRefs returns the ids of the snapshots that produced this rate:
// empty for an identity resolution, one id for a pivot-sided pair, two for
// a cross rate.
func (r ResolvedRate) SnapshotRefs() []string {
	refs := make([]string, 0, 2)
	if r.BaseSnapshotID != "" {
		refs = append(refs, r.BaseSnapshotID)
	}
	if r.QuoteSnapshotID != "" {
		refs = append(refs, r.QuoteSnapshotID)
	}
	return refs
}
