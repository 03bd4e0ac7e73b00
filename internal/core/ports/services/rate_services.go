package services

import (
	"context"

	"github.com/temidayo/currency-exchange-service/internal/core/domain"
)

// RateReaderSvc defines read operations over resolved rates
type RateReaderSvc interface {
	// ResolveRate computes the rate for any supported pair from
	// pivot-relative data, cache-first with store fallback.
	ResolveRate(ctx context.Context, base, target domain.CurrencyCode) (*domain.ResolvedRate, error)

	// ListRateHistory retrieves up to limit stored snapshots for
	// pivot -> quote, newest first.
	ListRateHistory(ctx context.Context, quote domain.CurrencyCode, limit int) ([]domain.RateSnapshot, error)
}

// RateSvcFacade combines all rate resolution service interfaces
type RateSvcFacade interface {
	RateReaderSvc
}
