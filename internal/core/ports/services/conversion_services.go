package services

import (
	"context"

	"github.com/temidayo/currency-exchange-service/internal/core/domain"
	"github.com/temidayo/currency-exchange-service/internal/dto"
)

// ConversionReaderSvc defines read operations for conversion audit data
type ConversionReaderSvc interface {
	// GetConversionByID retrieves a single audit record together with the
	// stored snapshots its rate was derived from.
	GetConversionByID(ctx context.Context, conversionID string) (*domain.ConversionRecord, []domain.RateSnapshot, error)

	// ListConversions retrieves audit records newest first with the total
	// count for pagination.
	ListConversions(ctx context.Context, page, pageSize int) ([]domain.ConversionRecord, int, error)
}

// ConversionWriterSvc defines the conversion operation itself
type ConversionWriterSvc interface {
	// Convert prices an amount at the resolved rate with the configured
	// margin applied and persists the audit record. A record exists if and
	// only if the returned error is nil.
	Convert(ctx context.Context, req dto.CreateConversionRequest) (*domain.ConversionRecord, error)
}

// ConversionSvcFacade combines all conversion-related service interfaces
type ConversionSvcFacade interface {
	ConversionReaderSvc
	ConversionWriterSvc
}
