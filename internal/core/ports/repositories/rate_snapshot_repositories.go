package repositories

import (
	"context"

	"github.com/temidayo/currency-exchange-service/internal/core/domain"
)

// RateSnapshotReader defines read operations for rate history data
type RateSnapshotReader interface {
	// LatestSnapshot retrieves the most recent snapshot for a pivot/quote pair.
	LatestSnapshot(ctx context.Context, pivot, quote domain.CurrencyCode) (*domain.RateSnapshot, error)

	// FindSnapshotsByIDs retrieves snapshots by their ids.
	FindSnapshotsByIDs(ctx context.Context, snapshotIDs []string) ([]domain.RateSnapshot, error)

	// ListSnapshots retrieves up to limit snapshots for a pair, newest first.
	ListSnapshots(ctx context.Context, pivot, quote domain.CurrencyCode, limit int) ([]domain.RateSnapshot, error)
}

// RateSnapshotWriter defines write operations for rate history data
type RateSnapshotWriter interface {
	// AppendSnapshot durably inserts a new snapshot. History is append-only:
	// there is no update or delete counterpart.
	AppendSnapshot(ctx context.Context, snapshot domain.RateSnapshot) error
}

// RateSnapshotRepositoryFacade combines all rate snapshot repository interfaces
// This is a facade for clients that need access to all operations
type RateSnapshotRepositoryFacade interface {
	RateSnapshotReader
	RateSnapshotWriter
}

// RateSnapshotRepositoryWithTx extends RateSnapshotRepositoryFacade with transaction capabilities
type RateSnapshotRepositoryWithTx interface {
	RateSnapshotRepositoryFacade
	TransactionManager
}
