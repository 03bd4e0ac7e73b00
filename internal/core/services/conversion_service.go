package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/temidayo/currency-exchange-service/internal/apperrors"
	"github.com/temidayo/currency-exchange-service/internal/core/domain"
	portsrepo "github.com/temidayo/currency-exchange-service/internal/core/ports/repositories"
	portssvc "github.com/temidayo/currency-exchange-service/internal/core/ports/services"
	"github.com/temidayo/currency-exchange-service/internal/dto"
	"github.com/temidayo/currency-exchange-service/internal/middleware"
	"github.com/temidayo/currency-exchange-service/internal/platform/metrics"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ConversionService converts amounts between supported currencies at the
// margin-adjusted rate and records every successful conversion in the audit
// ledger. A conversion without an audit record never succeeds.
type ConversionService struct {
	margin         decimal.Decimal
	rateSvc        portssvc.RateReaderSvc
	conversionRepo portsrepo.ConversionRecordRepositoryFacade
	snapshotRepo   portsrepo.RateSnapshotRepositoryFacade
	metrics        *metrics.ExchangeMetrics
}

// NewConversionService creates a new ConversionService. The margin comes from
// config and is validated into [0, 1) at startup.
func NewConversionService(margin decimal.Decimal, rateSvc portssvc.RateReaderSvc, conversionRepo portsrepo.ConversionRecordRepositoryFacade, snapshotRepo portsrepo.RateSnapshotRepositoryFacade, m *metrics.ExchangeMetrics) portssvc.ConversionSvcFacade {
	return &ConversionService{
		margin:         margin,
		rateSvc:        rateSvc,
		conversionRepo: conversionRepo,
		snapshotRepo:   snapshotRepo,
		metrics:        m,
	}
}

// Ensure ConversionService implements the portssvc.ConversionSvcFacade interface
var _ portssvc.ConversionSvcFacade = (*ConversionService)(nil)

// Convert resolves the current rate, applies the margin, rounds the output to
// the target currency's minor units and persists the audit record.
func (s *ConversionService) Convert(ctx context.Context, req dto.CreateConversionRequest) (*domain.ConversionRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	base, err := domain.ParseCurrencyCode(req.BaseCurrency)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	target, err := domain.ParseCurrencyCode(req.TargetCurrency)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrInvalidAmount, req.Amount)
	}
	// Input precision is capped at the base currency's minor units, matching
	// what the audit table can store exactly.
	if !req.Amount.Round(domain.MinorUnits(base)).Equal(req.Amount) {
		return nil, fmt.Errorf("%w: amount precision exceeds the minor units of %s", apperrors.ErrInvalidAmount, base)
	}

	resolved, err := s.rateSvc.ResolveRate(ctx, base, target)
	if err != nil {
		s.metrics.RecordConversion(false)
		return nil, err
	}

	// Margin is taken once off the raw rate; the output is rounded exactly
	// once, to the target currency's minor units.
	one := decimal.NewFromInt(1)
	effectiveRate := resolved.Rate.Mul(one.Sub(s.margin))
	outputAmount := req.Amount.Mul(effectiveRate).Round(domain.MinorUnits(target))

	record := domain.ConversionRecord{
		ConversionID:    uuid.NewString(),
		BaseCurrency:    base,
		TargetCurrency:  target,
		InputAmount:     req.Amount,
		OutputAmount:    outputAmount,
		RawRate:         resolved.Rate,
		EffectiveRate:   effectiveRate,
		MarginApplied:   s.margin,
		BaseSnapshotID:  resolved.BaseSnapshotID,
		QuoteSnapshotID: resolved.QuoteSnapshotID,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.conversionRepo.SaveConversionRecord(ctx, record); err != nil {
		s.metrics.RecordConversion(false)
		logger.Error("Failed to persist conversion audit record", slog.String("error", err.Error()), slog.String("conversion_id", record.ConversionID))
		return nil, fmt.Errorf("%w: %w", apperrors.ErrAuditWriteFailed, err)
	}

	s.metrics.RecordConversion(true)
	logger.Info("Conversion completed", slog.String("conversion_id", record.ConversionID), slog.String("base", string(base)), slog.String("target", string(target)), slog.String("output_amount", outputAmount.String()))
	return &record, nil
}

// GetConversionByID retrieves a single conversion audit record and resolves
// its snapshot references back to the stored rate rows, so a caller can see
// exactly which rates priced the conversion.
func (s *ConversionService) GetConversionByID(ctx context.Context, conversionID string) (*domain.ConversionRecord, []domain.RateSnapshot, error) {
	record, err := s.conversionRepo.FindConversionRecordByID(ctx, conversionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get conversion %s: %w", conversionID, err)
	}

	refs := record.SnapshotRefs()
	if len(refs) == 0 {
		// Identity conversions reference no snapshots.
		return record, []domain.RateSnapshot{}, nil
	}

	snapshots, err := s.snapshotRepo.FindSnapshotsByIDs(ctx, refs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load snapshots for conversion %s: %w", conversionID, err)
	}
	if len(snapshots) != len(refs) {
		logger := middleware.GetLoggerFromCtx(ctx)
		logger.Error("Conversion references missing snapshots", slog.String("conversion_id", conversionID), slog.Int("expected", len(refs)), slog.Int("found", len(snapshots)))
		return nil, nil, fmt.Errorf("%w: conversion %s references %d snapshots, found %d", apperrors.ErrDataIntegrity, conversionID, len(refs), len(snapshots))
	}
	return record, snapshots, nil
}

// ListConversions returns a page of audit records, newest first, with the
// total count for pagination.
func (s *ConversionService) ListConversions(ctx context.Context, page, pageSize int) ([]domain.ConversionRecord, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	records, total, err := s.conversionRepo.ListConversionRecords(ctx, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list conversions: %w", err)
	}
	if records == nil {
		records = []domain.ConversionRecord{}
	}
	return records, total, nil
}
