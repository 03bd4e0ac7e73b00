package providers

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/temidayo/currency-exchange-service/internal/core/domain"
)

// RateSource is the external rate provider boundary. Responses are
// untrusted: the ingestor validates every quote before anything is stored.
type RateSource interface {
	// FetchLatest returns the provider's current pivot-relative rates as a
	// quote currency -> rate map. Implementations fail with
	// apperrors.ErrProvider on transport errors, non-2xx statuses, or
	// malformed payloads.
	FetchLatest(ctx context.Context, pivot domain.CurrencyCode) (map[domain.CurrencyCode]decimal.Decimal, error)

	// Name identifies the provider; stored on every snapshot as the source tag.
	Name() string

	// CheckHealth probes provider reachability for the health endpoint.
	CheckHealth(ctx context.Context) error
}
