package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/temidayo/currency-exchange-service/internal/core/domain"
)

// LatestRateQuery defines the query parameters for the latest rate lookup.
// Codes are normalized to uppercase by the service.
type LatestRateQuery struct {
	Base   string `form:"base" binding:"required,len=3"`
	Target string `form:"target" binding:"required,len=3"`
}

// LatestRateResponse defines the data returned for a resolved rate.
type LatestRateResponse struct {
	BaseCurrency    string          `json:"baseCurrency"`
	TargetCurrency  string          `json:"targetCurrency"`
	Rate            decimal.Decimal `json:"rate"`
	Margin          decimal.Decimal `json:"margin"`
	FetchedAt       time.Time       `json:"fetchedAt"`
	BaseSnapshotID  string          `json:"baseSnapshotID,omitempty"`
	QuoteSnapshotID string          `json:"quoteSnapshotID,omitempty"`
	SourceTag       string          `json:"sourceTag,omitempty"`
}

// ToLatestRateResponse converts a domain.ResolvedRate to LatestRateResponse DTO.
// The margin is reported alongside the raw rate so callers can price ahead of
// a conversion.
func ToLatestRateResponse(resolved *domain.ResolvedRate, margin decimal.Decimal) LatestRateResponse {
	return LatestRateResponse{
		BaseCurrency:    string(resolved.BaseCurrency),
		TargetCurrency:  string(resolved.TargetCurrency),
		Rate:            resolved.Rate,
		Margin:          margin,
		FetchedAt:       resolved.FetchedAt,
		BaseSnapshotID:  resolved.BaseSnapshotID,
		QuoteSnapshotID: resolved.QuoteSnapshotID,
		SourceTag:       resolved.SourceTag,
	}
}

// RateHistoryQuery defines the query parameters for the rate history listing.
type RateHistoryQuery struct {
	Quote string `form:"quote" binding:"required,len=3"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=500"`
}

// RateSnapshotResponse defines the data returned for one stored snapshot.
type RateSnapshotResponse struct {
	SnapshotID    string          `json:"snapshotID"`
	PivotCurrency string          `json:"pivotCurrency"`
	QuoteCurrency string          `json:"quoteCurrency"`
	Rate          decimal.Decimal `json:"rate"`
	FetchedAt     time.Time       `json:"fetchedAt"`
	SourceTag     string          `json:"sourceTag"`
}

// ToRateSnapshotResponse converts a domain.RateSnapshot to RateSnapshotResponse DTO
func ToRateSnapshotResponse(snapshot *domain.RateSnapshot) RateSnapshotResponse {
	return RateSnapshotResponse{
		SnapshotID:    snapshot.SnapshotID,
		PivotCurrency: string(snapshot.PivotCurrency),
		QuoteCurrency: string(snapshot.QuoteCurrency),
		Rate:          snapshot.Rate,
		FetchedAt:     snapshot.FetchedAt,
		SourceTag:     snapshot.SourceTag,
	}
}

// ToListRateSnapshotResponse converts a slice of domain.RateSnapshot to a slice of RateSnapshotResponse DTOs
func ToListRateSnapshotResponse(snapshots []domain.RateSnapshot) []RateSnapshotResponse {
	res := make([]RateSnapshotResponse, len(snapshots))
	for i, snapshot := range snapshots {
		res[i] = ToRateSnapshotResponse(&snapshot)
	}
	return res
}
