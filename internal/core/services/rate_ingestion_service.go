package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/temidayo/currency-exchange-service/internal/core/domain"
	portsproviders "github.com/temidayo/currency-exchange-service/internal/core/ports/providers"
	portsrepo "github.com/temidayo/currency-exchange-service/internal/core/ports/repositories"
	portssvc "github.com/temidayo/currency-exchange-service/internal/core/ports/services"
	"github.com/temidayo/currency-exchange-service/internal/middleware"
	"github.com/temidayo/currency-exchange-service/internal/platform/metrics"
)

// RateIngestionService pulls provider quotes for the pivot currency and
// appends one snapshot per supported quote to the history store, then
// refreshes the cache. Appends come before cache writes so readers never see
// a cached rate that is missing from history.
type RateIngestionService struct {
	registry     *domain.CurrencyRegistry
	source       portsproviders.RateSource
	snapshotRepo portsrepo.RateSnapshotRepositoryFacade
	cache        portsrepo.RateCache
	metrics      *metrics.ExchangeMetrics
}

// NewRateIngestionService creates a new RateIngestionService.
func NewRateIngestionService(registry *domain.CurrencyRegistry, source portsproviders.RateSource, snapshotRepo portsrepo.RateSnapshotRepositoryFacade, cache portsrepo.RateCache, m *metrics.ExchangeMetrics) portssvc.IngestionSvcFacade {
	return &RateIngestionService{
		registry:     registry,
		source:       source,
		snapshotRepo: snapshotRepo,
		cache:        cache,
		metrics:      m,
	}
}

// Ensure RateIngestionService implements the portssvc.IngestionSvcFacade interface
var _ portssvc.IngestionSvcFacade = (*RateIngestionService)(nil)

// FetchAndStore runs one ingestion cycle and returns how many snapshots it
// stored. Quotes missing from the payload or non-positive are skipped with a
// warning; a store failure aborts the cycle. Cache refresh failures are not
// fatal, the next read falls back to the store.
func (s *RateIngestionService) FetchAndStore(ctx context.Context) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	pivot := s.registry.Pivot()

	fetchStart := time.Now()
	quotes, err := s.source.FetchLatest(ctx, pivot)
	s.metrics.RecordFetchDuration(time.Since(fetchStart).Seconds())
	if err != nil {
		return 0, fmt.Errorf("failed to fetch rates from %s: %w", s.source.Name(), err)
	}

	// One timestamp per cycle so all of its snapshots share a fetched_at.
	fetchedAt := time.Now().UTC()
	stored := 0

	for _, quote := range s.registry.QuoteCurrencies() {
		rate, ok := quotes[quote]
		if !ok {
			logger.Warn("Provider payload missing supported quote", slog.String("pivot", string(pivot)), slog.String("quote", string(quote)), slog.String("source", s.source.Name()))
			continue
		}
		if !rate.IsPositive() {
			logger.Warn("Skipping non-positive quote", slog.String("pivot", string(pivot)), slog.String("quote", string(quote)), slog.String("rate", rate.String()))
			continue
		}

		snapshot := domain.RateSnapshot{
			SnapshotID:    uuid.NewString(),
			PivotCurrency: pivot,
			QuoteCurrency: quote,
			Rate:          rate,
			FetchedAt:     fetchedAt,
			SourceTag:     s.source.Name(),
			CreatedAt:     fetchedAt,
		}

		if err := s.snapshotRepo.AppendSnapshot(ctx, snapshot); err != nil {
			s.metrics.RecordSnapshotsStored(stored)
			return stored, fmt.Errorf("failed to store snapshot for %s/%s: %w", pivot, quote, err)
		}
		stored++

		if err := s.cache.Put(ctx, snapshot); err != nil {
			logger.Warn("Failed to refresh rate cache", slog.String("error", err.Error()), slog.String("pivot", string(pivot)), slog.String("quote", string(quote)))
		}
	}

	s.metrics.RecordSnapshotsStored(stored)
	logger.Info("Ingestion cycle stored snapshots", slog.Int("stored", stored), slog.Int("quotes_received", len(quotes)), slog.String("source", s.source.Name()))
	return stored, nil
}
