package repo

import (
	"context"
	"errors"
	"fmt"

	"conversion-engine/internal/core"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PackagingRepo is the Postgres-backed packaging master. Pure data fetch:
// active/inactive filtering is the PackagingResolver's job, not the query's,
// so tests of the business rule never need database semantics.
type PackagingRepo struct {
	pool *pgxpool.Pool
}

// NewPackagingRepo constructs a PackagingRepo over the given pool.
func NewPackagingRepo(pool *pgxpool.Pool) *PackagingRepo {
	return &PackagingRepo{pool: pool}
}

// GetByID returns the packaging record, or (nil, nil) when none exists.
func (r *PackagingRepo) GetByID(ctx context.Context, packagingTypeID string) (*core.PackagingRecord, error) {
	var rec core.PackagingRecord
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, capacity_liters, net_weight_kg_default, is_active
		FROM packaging_types
		WHERE id = $1
	`, packagingTypeID).Scan(&rec.PackagingTypeID, &rec.Name, &rec.CapacityLiters, &rec.NetWeightKgDefault, &rec.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query packaging type %q: %w", packagingTypeID, err)
	}
	return &rec, nil
}

// ListActive returns all active packaging types ordered by id, for the
// calling layer's pick lists.
func (r *PackagingRepo) ListActive(ctx context.Context) ([]core.PackagingRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, capacity_liters, net_weight_kg_default, is_active
		FROM packaging_types
		WHERE is_active = true
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query packaging types: %w", err)
	}
	defer rows.Close()

	var records []core.PackagingRecord
	for rows.Next() {
		var rec core.PackagingRecord
		if err := rows.Scan(&rec.PackagingTypeID, &rec.Name, &rec.CapacityLiters, &rec.NetWeightKgDefault, &rec.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan packaging type: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
