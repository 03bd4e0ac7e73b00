package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/temidayo/currency-exchange-service/internal/core/domain"
	portsrepo "github.com/temidayo/currency-exchange-service/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the pgsql-backed repositories. The rate cache is
// attached separately by the composition root once the redis client is up.
func NewRepositoryProvider(dbPool *pgxpool.Pool, registry *domain.CurrencyRegistry) portsrepo.RepositoryProvider {
	snapshotRepo := newPgxRateSnapshotRepository(dbPool, registry)
	conversionRepo := newPgxConversionRecordRepository(dbPool)

	return portsrepo.RepositoryProvider{
		SnapshotRepo:   snapshotRepo,
		ConversionRepo: conversionRepo,
	}
}
