package core

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DensityResolver produces the DensityInfo for a conversion's volume→weight
// hop, honoring density freezing: once a density has been used for a
// transaction lineage, replays must reuse it unchanged.
type DensityResolver struct {
	repo ProductRepository
}

// NewDensityResolver constructs a DensityResolver over the given repository.
func NewDensityResolver(repo ProductRepository) *DensityResolver {
	return &DensityResolver{repo: repo}
}

// Resolve returns the density to use, in precedence order: frozen existing
// value, explicit override, product master. Supplying an override alongside
// a frozen value is an error, never a silent ignore. A missing density is a
// hard error; there is no default.
func (r *DensityResolver) Resolve(ctx context.Context, productCode string, override *decimal.Decimal, existing *DensityInfo) (*DensityInfo, error) {
	if existing != nil {
		if override != nil {
			return nil, &DensityAlreadyFrozenError{ProductCode: productCode}
		}
		frozen := *existing
		frozen.Source = DensityFrozen
		return &frozen, nil
	}

	if override != nil {
		return &DensityInfo{
			DensityKgPerLiter: *override,
			Source:            DensityFromOverride,
			CapturedAt:        time.Now().UTC(),
		}, nil
	}

	rec, err := r.repo.GetByCode(ctx, productCode)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product %q: %w", productCode, err)
	}
	if rec == nil || rec.DensityKgPerLiter == nil {
		return nil, &MissingDensityError{ProductCode: productCode}
	}

	return &DensityInfo{
		DensityKgPerLiter: *rec.DensityKgPerLiter,
		Source:            DensityFromProductMaster,
		CapturedAt:        time.Now().UTC(),
	}, nil
}
