package repo

import (
	"context"
	"errors"
	"fmt"

	"conversion-engine/internal/core"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ProductRepo is the Postgres-backed product master.
type ProductRepo struct {
	pool *pgxpool.Pool
}

// NewProductRepo constructs a ProductRepo over the given pool.
func NewProductRepo(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

// GetByCode returns the product record, or (nil, nil) when none exists.
// A NULL density_kg_per_liter column maps to a nil pointer; the engine
// decides what a missing density means, not the repository.
func (r *ProductRepo) GetByCode(ctx context.Context, productCode string) (*core.ProductRecord, error) {
	var (
		rec     core.ProductRecord
		density *decimal.Decimal
	)
	err := r.pool.QueryRow(ctx, `
		SELECT code, name, density_kg_per_liter, is_active
		FROM products
		WHERE code = $1
	`, productCode).Scan(&rec.Code, &rec.Name, &density, &rec.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query product %q: %w", productCode, err)
	}
	rec.DensityKgPerLiter = density
	return &rec, nil
}
