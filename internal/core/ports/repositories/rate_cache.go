package repositories

import (
	"context"

	"github.com/temidayo/currency-exchange-service/internal/core/domain"
)

// RateCache is the fast-read projection of the latest snapshot per pair.
// It is populated only after a successful durable append, so a cached value
// always has a corresponding store row. Implementations return
// apperrors.ErrNotFound on a miss; callers treat any other error as a miss
// too (the cache is best-effort, never load-bearing).
type RateCache interface {
	// Get retrieves the cached latest rate for a pair.
	Get(ctx context.Context, pivot, quote domain.CurrencyCode) (*domain.CachedRate, error)

	// Put replaces the cached latest rate for the snapshot's pair.
	Put(ctx context.Context, snapshot domain.RateSnapshot) error
}
