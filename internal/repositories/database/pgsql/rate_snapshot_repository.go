package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/temidayo/currency-exchange-service/internal/apperrors"
	"github.com/temidayo/currency-exchange-service/internal/core/domain"
	portsrepo "github.com/temidayo/currency-exchange-service/internal/core/ports/repositories"
	"github.com/temidayo/currency-exchange-service/internal/models"
	"github.com/temidayo/currency-exchange-service/internal/utils/mapping"
)

// PgxRateSnapshotRepository implements the append-only rate history store using pgxpool.
type PgxRateSnapshotRepository struct {
	BaseRepository
	registry *domain.CurrencyRegistry
}

// newPgxRateSnapshotRepository creates a new repository for rate history data.
func newPgxRateSnapshotRepository(pool *pgxpool.Pool, registry *domain.CurrencyRegistry) portsrepo.RateSnapshotRepositoryWithTx {
	return &PgxRateSnapshotRepository{
		BaseRepository: BaseRepository{Pool: pool},
		registry:       registry,
	}
}

// Ensure implementation matches interface
var _ portsrepo.RateSnapshotRepositoryWithTx = (*PgxRateSnapshotRepository)(nil)

// AppendSnapshot durably inserts a new snapshot. The history is insert-only,
// so there is deliberately no update or upsert path here.
func (r *PgxRateSnapshotRepository) AppendSnapshot(ctx context.Context, snapshot domain.RateSnapshot) error {
	if !snapshot.Rate.IsPositive() {
		return fmt.Errorf("%w: snapshot rate must be positive, got %s", apperrors.ErrValidation, snapshot.Rate.String())
	}
	if !r.registry.Supports(snapshot.PivotCurrency) {
		return fmt.Errorf("%w: %s", apperrors.ErrUnsupportedCurrency, snapshot.PivotCurrency)
	}
	if !r.registry.Supports(snapshot.QuoteCurrency) {
		return fmt.Errorf("%w: %s", apperrors.ErrUnsupportedCurrency, snapshot.QuoteCurrency)
	}

	modelSnap := mapping.ToModelRateSnapshot(snapshot)

	query := `
		INSERT INTO rate_snapshots (snapshot_id, pivot_currency, quote_currency, rate, fetched_at, source_tag, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`

	_, err := r.Pool.Exec(ctx, query,
		modelSnap.SnapshotID,
		modelSnap.PivotCurrency,
		modelSnap.QuoteCurrency,
		modelSnap.Rate,
		modelSnap.FetchedAt,
		modelSnap.SourceTag,
		modelSnap.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation on (pivot, quote, fetched_at)
				return fmt.Errorf("%w: snapshot for %s/%s at %s already exists",
					apperrors.ErrDuplicate, modelSnap.PivotCurrency, modelSnap.QuoteCurrency, modelSnap.FetchedAt)
			}
		}
		return fmt.Errorf("failed to append snapshot for %s/%s: %w", modelSnap.PivotCurrency, modelSnap.QuoteCurrency, err)
	}
	return nil
}

// LatestSnapshot retrieves the most recent snapshot for a pivot/quote pair.
func (r *PgxRateSnapshotRepository) LatestSnapshot(ctx context.Context, pivot, quote domain.CurrencyCode) (*domain.RateSnapshot, error) {
	query := `
		SELECT snapshot_id, pivot_currency, quote_currency, rate, fetched_at, source_tag, created_at
		FROM rate_snapshots
		WHERE pivot_currency = $1 AND quote_currency = $2
		ORDER BY fetched_at DESC
		LIMIT 1;
	`

	var modelSnap models.RateSnapshot
	err := r.Pool.QueryRow(ctx, query, string(pivot), string(quote)).Scan(
		&modelSnap.SnapshotID,
		&modelSnap.PivotCurrency,
		&modelSnap.QuoteCurrency,
		&modelSnap.Rate,
		&modelSnap.FetchedAt,
		&modelSnap.SourceTag,
		&modelSnap.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("no snapshot found for pair %s/%s", pivot, quote))
		}
		return nil, fmt.Errorf("failed to find latest snapshot for %s/%s: %w", pivot, quote, err)
	}

	domainSnap := mapping.ToDomainRateSnapshot(modelSnap)
	return &domainSnap, nil
}

// FindSnapshotsByIDs retrieves snapshots by their ids.
func (r *PgxRateSnapshotRepository) FindSnapshotsByIDs(ctx context.Context, snapshotIDs []string) ([]domain.RateSnapshot, error) {
	if len(snapshotIDs) == 0 {
		return []domain.RateSnapshot{}, nil
	}

	query := `
		SELECT snapshot_id, pivot_currency, quote_currency, rate, fetched_at, source_tag, created_at
		FROM rate_snapshots
		WHERE snapshot_id = ANY($1);
	`

	rows, err := r.Pool.Query(ctx, query, snapshotIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots by ids: %w", err)
	}
	defer rows.Close()

	modelSnaps, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.RateSnapshot, error) {
		var snap models.RateSnapshot
		err := row.Scan(
			&snap.SnapshotID,
			&snap.PivotCurrency,
			&snap.QuoteCurrency,
			&snap.Rate,
			&snap.FetchedAt,
			&snap.SourceTag,
			&snap.CreatedAt,
		)
		return snap, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan snapshots by ids: %w", err)
	}

	return mapping.ToDomainRateSnapshotSlice(modelSnaps), nil
}

// ListSnapshots retrieves up to limit snapshots for a pair, newest first.
func (r *PgxRateSnapshotRepository) ListSnapshots(ctx context.Context, pivot, quote domain.CurrencyCode, limit int) ([]domain.RateSnapshot, error) {
	query := `
		SELECT snapshot_id, pivot_currency, quote_currency, rate, fetched_at, source_tag, created_at
		FROM rate_snapshots
		WHERE pivot_currency = $1 AND quote_currency = $2
		ORDER BY fetched_at DESC
		LIMIT $3;
	`

	rows, err := r.Pool.Query(ctx, query, string(pivot), string(quote), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot history for %s/%s: %w", pivot, quote, err)
	}
	defer rows.Close()

	modelSnaps, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.RateSnapshot, error) {
		var snap models.RateSnapshot
		err := row.Scan(
			&snap.SnapshotID,
			&snap.PivotCurrency,
			&snap.QuoteCurrency,
			&snap.Rate,
			&snap.FetchedAt,
			&snap.SourceTag,
			&snap.CreatedAt,
		)
		return snap, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan snapshot history for %s/%s: %w", pivot, quote, err)
	}

	return mapping.ToDomainRateSnapshotSlice(modelSnaps), nil
}
