package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/temidayo/currency-exchange-service/internal/core/domain"
)

// CreateConversionRequest defines the payload for performing a conversion.
// Amount positivity and precision are validated in the service.
type CreateConversionRequest struct {
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	BaseCurrency   string          `json:"base" binding:"required,len=3"`
	TargetCurrency string          `json:"target" binding:"required,len=3"`
}

// ConversionResponse defines the data returned for a conversion audit record.
type ConversionResponse struct {
	ConversionID    string          `json:"conversionID"`
	BaseCurrency    string          `json:"baseCurrency"`
	TargetCurrency  string          `json:"targetCurrency"`
	InputAmount     decimal.Decimal `json:"inputAmount"`
	OutputAmount    decimal.Decimal `json:"outputAmount"`
	RawRate         decimal.Decimal `json:"rawRate"`
	EffectiveRate   decimal.Decimal `json:"effectiveRate"`
	MarginApplied   decimal.Decimal `json:"marginApplied"`
	BaseSnapshotID  string          `json:"baseSnapshotID,omitempty"`
	QuoteSnapshotID string          `json:"quoteSnapshotID,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ToConversionResponse converts a domain.ConversionRecord to ConversionResponse DTO
func ToConversionResponse(record *domain.ConversionRecord) ConversionResponse {
	return ConversionResponse{
		ConversionID:    record.ConversionID,
		BaseCurrency:    string(record.BaseCurrency),
		TargetCurrency:  string(record.TargetCurrency),
		InputAmount:     record.InputAmount,
		OutputAmount:    record.OutputAmount,
		RawRate:         record.RawRate,
		EffectiveRate:   record.EffectiveRate,
		MarginApplied:   record.MarginApplied,
		BaseSnapshotID:  record.BaseSnapshotID,
		QuoteSnapshotID: record.QuoteSnapshotID,
		CreatedAt:       record.CreatedAt,
	}
}

// ToListConversionResponse converts a slice of domain.ConversionRecord to a slice of ConversionResponse DTOs
func ToListConversionResponse(records []domain.ConversionRecord) []ConversionResponse {
	res := make([]ConversionResponse, len(records))
	for i, record := range records {
		res[i] = ToConversionResponse(&record)
	}
	return res
}

// ConversionDetailResponse is a ConversionResponse enriched with the stored
// snapshots the conversion's rate was derived from.
type ConversionDetailResponse struct {
	ConversionResponse
	RateSnapshots []RateSnapshotResponse `json:"rateSnapshots"`
}

// ToConversionDetailResponse converts a domain.ConversionRecord and its referenced snapshots to ConversionDetailResponse DTO
func ToConversionDetailResponse(record *domain.ConversionRecord, snapshots []domain.RateSnapshot) ConversionDetailResponse {
	return ConversionDetailResponse{
		ConversionResponse: ToConversionResponse(record),
		RateSnapshots:      ToListRateSnapshotResponse(snapshots),
	}
}

// ListConversionsQuery defines the pagination query parameters for the
// conversion listing.
type ListConversionsQuery struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"pageSize" binding:"omitempty,min=1,max=100"`
}

// ListConversionsResponse wraps a page of conversions with pagination metadata.
type ListConversionsResponse struct {
	Conversions []ConversionResponse `json:"conversions"`
	Page        int                  `json:"page"`
	PageSize    int                  `json:"pageSize"`
	Total       int                  `json:"total"`
}
