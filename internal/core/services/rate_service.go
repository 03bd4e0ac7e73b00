package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/temidayo/currency-exchange-service/internal/apperrors"
	"github.com/temidayo/currency-exchange-service/internal/core/domain"
	portsrepo "github.com/temidayo/currency-exchange-service/internal/core/ports/repositories"
	portssvc "github.com/temidayo/currency-exchange-service/internal/core/ports/services"
	"github.com/temidayo/currency-exchange-service/internal/middleware"
	"github.com/temidayo/currency-exchange-service/internal/platform/metrics"
)

// rateQuotientScale is the fractional precision kept when deriving cross and
// inverse rates. Snapshots are stored at the same scale, so a derived rate
// never carries more digits than a stored one.
const rateQuotientScale int32 = 12

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// RateService resolves effective rates between supported currencies by
// pivoting through the configured pivot currency, and serves rate history.
type RateService struct {
	registry     *domain.CurrencyRegistry
	snapshotRepo portsrepo.RateSnapshotRepositoryFacade
	cache        portsrepo.RateCache
	metrics      *metrics.ExchangeMetrics
}

// NewRateService creates a new RateService.
func NewRateService(registry *domain.CurrencyRegistry, snapshotRepo portsrepo.RateSnapshotRepositoryFacade, cache portsrepo.RateCache, m *metrics.ExchangeMetrics) portssvc.RateSvcFacade {
	return &RateService{
		registry:     registry,
		snapshotRepo: snapshotRepo,
		cache:        cache,
		metrics:      m,
	}
}

// Ensure RateService implements the portssvc.RateSvcFacade interface
var _ portssvc.RateSvcFacade = (*RateService)(nil)

// ResolveRate derives the current base->target rate. Both currencies must be
// supported; cross pairs divide the two pivot legs, inverse pairs invert the
// single leg. The returned rate carries the snapshot ids it was derived from.
func (s *RateService) ResolveRate(ctx context.Context, base, target domain.CurrencyCode) (*domain.ResolvedRate, error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordResolutionDuration(time.Since(start).Seconds())
	}()

	if !s.registry.Supports(base) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedCurrency, base)
	}
	if !s.registry.Supports(target) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedCurrency, target)
	}

	now := time.Now().UTC()

	// Identity pairs resolve to exactly 1 without touching storage.
	if base == target {
		return &domain.ResolvedRate{
			BaseCurrency:   base,
			TargetCurrency: target,
			Rate:           decimal.NewFromInt(1),
			FetchedAt:      now,
			ResolvedAt:     now,
		}, nil
	}

	pivot := s.registry.Pivot()

	switch {
	case base == pivot:
		leg, err := s.latestSnapshot(ctx, target)
		if err != nil {
			return nil, err
		}
		return &domain.ResolvedRate{
			BaseCurrency:    base,
			TargetCurrency:  target,
			Rate:            leg.Rate,
			QuoteSnapshotID: leg.SnapshotID,
			FetchedAt:       leg.FetchedAt,
			SourceTag:       leg.SourceTag,
			ResolvedAt:      now,
		}, nil

	case target == pivot:
		leg, err := s.latestSnapshot(ctx, base)
		if err != nil {
			return nil, err
		}
		return &domain.ResolvedRate{
			BaseCurrency:   base,
			TargetCurrency: target,
			Rate:           decimal.NewFromInt(1).DivRound(leg.Rate, rateQuotientScale),
			BaseSnapshotID: leg.SnapshotID,
			FetchedAt:      leg.FetchedAt,
			SourceTag:      leg.SourceTag,
			ResolvedAt:     now,
		}, nil

	default:
		baseLeg, err := s.latestSnapshot(ctx, base)
		if err != nil {
			return nil, err
		}
		quoteLeg, err := s.latestSnapshot(ctx, target)
		if err != nil {
			return nil, err
		}

		// Freshness of a derived rate is that of its older leg.
		fetchedAt := baseLeg.FetchedAt
		if quoteLeg.FetchedAt.Before(fetchedAt) {
			fetchedAt = quoteLeg.FetchedAt
		}

		return &domain.ResolvedRate{
			BaseCurrency:    base,
			TargetCurrency:  target,
			Rate:            quoteLeg.Rate.DivRound(baseLeg.Rate, rateQuotientScale),
			BaseSnapshotID:  baseLeg.SnapshotID,
			QuoteSnapshotID: quoteLeg.SnapshotID,
			FetchedAt:       fetchedAt,
			SourceTag:       quoteLeg.SourceTag,
			ResolvedAt:      now,
		}, nil
	}
}

// ListRateHistory returns stored snapshots for pivot/quote, newest first.
func (s *RateService) ListRateHistory(ctx context.Context, quote domain.CurrencyCode, limit int) ([]domain.RateSnapshot, error) {
	if !s.registry.Supports(quote) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedCurrency, quote)
	}
	pivot := s.registry.Pivot()
	if quote == pivot {
		return nil, fmt.Errorf("%w: history is stored against the pivot currency %s", apperrors.ErrValidation, pivot)
	}

	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	snapshots, err := s.snapshotRepo.ListSnapshots(ctx, pivot, quote, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list rate history for %s/%s: %w", pivot, quote, err)
	}
	if snapshots == nil {
		return []domain.RateSnapshot{}, nil
	}
	return snapshots, nil
}

// latestSnapshot returns the freshest pivot/quote snapshot, trying the cache
// first and falling back to the store. Store hits are written back to the
// cache best effort. Cache failures other than a plain miss degrade to a
// miss rather than failing the resolution.
func (s *RateService) latestSnapshot(ctx context.Context, quote domain.CurrencyCode) (*domain.RateSnapshot, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	pivot := s.registry.Pivot()

	cached, err := s.cache.Get(ctx, pivot, quote)
	if err == nil {
		s.metrics.RecordCacheLookup(true)
		return checkSnapshotRate(logger, &cached.RateSnapshot)
	}
	s.metrics.RecordCacheLookup(false)
	if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Warn("Rate cache read failed, falling back to store", slog.String("error", err.Error()), slog.String("pivot", string(pivot)), slog.String("quote", string(quote)))
	}

	snapshot, err := s.snapshotRepo.LatestSnapshot(ctx, pivot, quote)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no stored rate for %s/%s", apperrors.ErrRateUnavailable, pivot, quote)
		}
		return nil, fmt.Errorf("failed to load latest rate for %s/%s: %w", pivot, quote, err)
	}

	if err := s.cache.Put(ctx, *snapshot); err != nil {
		logger.Warn("Rate cache write-back failed", slog.String("error", err.Error()), slog.String("pivot", string(pivot)), slog.String("quote", string(quote)))
	}

	return checkSnapshotRate(logger, snapshot)
}

func checkSnapshotRate(logger *slog.Logger, snapshot *domain.RateSnapshot) (*domain.RateSnapshot, error) {
	if !snapshot.Rate.IsPositive() {
		logger.Error("Stored rate is not positive", slog.String("pivot", string(snapshot.PivotCurrency)), slog.String("quote", string(snapshot.QuoteCurrency)), slog.String("rate", snapshot.Rate.String()))
		return nil, fmt.Errorf("%w: stored rate for %s/%s is not positive", apperrors.ErrDataIntegrity, snapshot.PivotCurrency, snapshot.QuoteCurrency)
	}
	return snapshot, nil
}
