package mapping

import (
	"github.com/temidayo/currency-exchange-service/internal/core/domain"
	"github.com/temidayo/currency-exchange-service/internal/models"
)

// ToModelRateSnapshot converts a domain RateSnapshot to a model RateSnapshot
func ToModelRateSnapshot(d domain.RateSnapshot) models.RateSnapshot {
	return models.RateSnapshot{
		SnapshotID:    d.SnapshotID,
		PivotCurrency: string(d.PivotCurrency),
		QuoteCurrency: string(d.QuoteCurrency),
		Rate:          d.Rate,
		FetchedAt:     d.FetchedAt,
		SourceTag:     d.SourceTag,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainRateSnapshot converts a model RateSnapshot to a domain RateSnapshot
func ToDomainRateSnapshot(m models.RateSnapshot) domain.RateSnapshot {
	return domain.RateSnapshot{
		SnapshotID:    m.SnapshotID,
		PivotCurrency: domain.CurrencyCode(m.PivotCurrency),
		QuoteCurrency: domain.CurrencyCode(m.QuoteCurrency),
		Rate:          m.Rate,
		FetchedAt:     m.FetchedAt,
		SourceTag:     m.SourceTag,
		CreatedAt:     m.CreatedAt,
	}
}

// ToDomainRateSnapshotSlice converts a slice of model snapshots.
func ToDomainRateSnapshotSlice(ms []models.RateSnapshot) []domain.RateSnapshot {
	out := make([]domain.RateSnapshot, len(ms))
	for i, m := range ms {
		out[i] = ToDomainRateSnapshot(m)
	}
	return out
}
