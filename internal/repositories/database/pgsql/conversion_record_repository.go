package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/temidayo/currency-exchange-service/internal/apperrors"
	"github.com/temidayo/currency-exchange-service/internal/core/domain"
	portsrepo "github.com/temidayo/currency-exchange-service/internal/core/ports/repositories"
	"github.com/temidayo/currency-exchange-service/internal/models"
	"github.com/temidayo/currency-exchange-service/internal/utils/mapping"
)

// PgxConversionRecordRepository implements the immutable conversion audit store using pgxpool.
type PgxConversionRecordRepository struct {
	BaseRepository
}

// newPgxConversionRecordRepository creates a new repository for conversion audit data.
func newPgxConversionRecordRepository(pool *pgxpool.Pool) portsrepo.ConversionRecordRepositoryWithTx {
	return &PgxConversionRecordRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ConversionRecordRepositoryWithTx = (*PgxConversionRecordRepository)(nil)

// SaveConversionRecord inserts a new audit record inside a transaction,
// verifying first that every referenced snapshot id exists. The schema also
// declares foreign keys, but the explicit check keeps the failure typed
// instead of surfacing as a raw constraint violation.
func (r *PgxConversionRecordRepository) SaveConversionRecord(ctx context.Context, record domain.ConversionRecord) error {
	modelRec := mapping.ToModelConversionRecord(record)

	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	for _, snapshotID := range record.SnapshotRefs() {
		var exists bool
		err = tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM rate_snapshots WHERE snapshot_id = $1)`,
			snapshotID,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to verify snapshot reference %s: %w", snapshotID, err)
		}
		if !exists {
			return fmt.Errorf("%w: conversion references unknown snapshot %s", apperrors.ErrValidation, snapshotID)
		}
	}

	query := `
		INSERT INTO conversion_records (
			conversion_id, base_currency, target_currency, input_amount, output_amount,
			raw_rate, effective_rate, margin_applied, base_snapshot_id, quote_snapshot_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`

	_, err = tx.Exec(ctx, query,
		modelRec.ConversionID,
		modelRec.BaseCurrency,
		modelRec.TargetCurrency,
		modelRec.InputAmount,
		modelRec.OutputAmount,
		modelRec.RawRate,
		modelRec.EffectiveRate,
		modelRec.MarginApplied,
		modelRec.BaseSnapshotID,
		modelRec.QuoteSnapshotID,
		modelRec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save conversion record %s: %w", modelRec.ConversionID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit conversion record %s: %w", modelRec.ConversionID, err)
	}
	return nil
}

// FindConversionRecordByID retrieves a single audit record.
func (r *PgxConversionRecordRepository) FindConversionRecordByID(ctx context.Context, conversionID string) (*domain.ConversionRecord, error) {
	query := `
		SELECT conversion_id, base_currency, target_currency, input_amount, output_amount,
			raw_rate, effective_rate, margin_applied, base_snapshot_id, quote_snapshot_id, created_at
		FROM conversion_records
		WHERE conversion_id = $1;
	`

	var modelRec models.ConversionRecord
	err := r.Pool.QueryRow(ctx, query, conversionID).Scan(
		&modelRec.ConversionID,
		&modelRec.BaseCurrency,
		&modelRec.TargetCurrency,
		&modelRec.InputAmount,
		&modelRec.OutputAmount,
		&modelRec.RawRate,
		&modelRec.EffectiveRate,
		&modelRec.MarginApplied,
		&modelRec.BaseSnapshotID,
		&modelRec.QuoteSnapshotID,
		&modelRec.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("conversion record %s not found", conversionID))
		}
		return nil, fmt.Errorf("failed to find conversion record %s: %w", conversionID, err)
	}

	domainRec := mapping.ToDomainConversionRecord(modelRec)
	return &domainRec, nil
}

// ListConversionRecords retrieves audit records newest first with the total count.
func (r *PgxConversionRecordRepository) ListConversionRecords(ctx context.Context, page, pageSize int) ([]domain.ConversionRecord, int, error) {
	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM conversion_records`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count conversion records: %w", err)
	}
	if total == 0 {
		return []domain.ConversionRecord{}, 0, nil
	}

	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	query := `
		SELECT conversion_id, base_currency, target_currency, input_amount, output_amount,
			raw_rate, effective_rate, margin_applied, base_snapshot_id, quote_snapshot_id, created_at
		FROM conversion_records
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
	`

	rows, err := r.Pool.Query(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list conversion records: %w", err)
	}
	defer rows.Close()

	modelRecs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ConversionRecord, error) {
		var rec models.ConversionRecord
		err := row.Scan(
			&rec.ConversionID,
			&rec.BaseCurrency,
			&rec.TargetCurrency,
			&rec.InputAmount,
			&rec.OutputAmount,
			&rec.RawRate,
			&rec.EffectiveRate,
			&rec.MarginApplied,
			&rec.BaseSnapshotID,
			&rec.QuoteSnapshotID,
			&rec.CreatedAt,
		)
		return rec, err
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan conversion records: %w", err)
	}

	return mapping.ToDomainConversionRecordSlice(modelRecs), total, nil
}
