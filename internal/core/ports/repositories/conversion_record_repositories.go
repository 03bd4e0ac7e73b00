package repositories

import (
	"context"

	"github.com/temidayo/currency-exchange-service/internal/core/domain"
)

// ConversionRecordReader defines read operations for conversion audit data
type ConversionRecordReader interface {
	// FindConversionRecordByID retrieves a single audit record.
	FindConversionRecordByID(ctx context.Context, conversionID string) (*domain.ConversionRecord, error)

	// ListConversionRecords retrieves audit records newest first with the
	// total count for pagination.
	ListConversionRecords(ctx context.Context, page, pageSize int) ([]domain.ConversionRecord, int, error)
}

// ConversionRecordWriter defines write operations for conversion audit data
type ConversionRecordWriter interface {
	// SaveConversionRecord durably inserts a new audit record, verifying that
	// every referenced snapshot id exists. Records are insert-only.
	SaveConversionRecord(ctx context.Context, record domain.ConversionRecord) error
}

// ConversionRecordRepositoryFacade combines all conversion audit repository interfaces
// This is a facade for clients that need access to all operations
type ConversionRecordRepositoryFacade interface {
	ConversionRecordReader
	ConversionRecordWriter
}

// ConversionRecordRepositoryWithTx extends ConversionRecordRepositoryFacade with transaction capabilities
type ConversionRecordRepositoryWithTx interface {
	ConversionRecordRepositoryFacade
	TransactionManager
}
