package core

import (
	"context"
	"fmt"
	"time"
)

// PackagingResolver turns a packaging_type_id into an immutable
// PackagingSnapshot. The fetch is a pure repository call; all usability
// validation happens here.
type PackagingResolver struct {
	repo PackagingRepository
}

// NewPackagingResolver constructs a PackagingResolver over the given
// repository.
func NewPackagingResolver(repo PackagingRepository) *PackagingResolver {
	return &PackagingResolver{repo: repo}
}

// Resolve fetches the packaging record and captures it as a snapshot.
// A missing record and an inactive one fail identically: inactive packaging
// is not usable for new conversions.
func (r *PackagingResolver) Resolve(ctx context.Context, packagingTypeID string) (*PackagingSnapshot, error) {
	rec, err := r.repo.GetByID(ctx, packagingTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch packaging type %q: %w", packagingTypeID, err)
	}
	if rec == nil || !rec.IsActive {
		return nil, &PackagingNotFoundError{PackagingTypeID: packagingTypeID}
	}

	return &PackagingSnapshot{
		PackagingTypeID:    rec.PackagingTypeID,
		Name:               rec.Name,
		CapacityLiters:     rec.CapacityLiters,
		NetWeightKgDefault: rec.NetWeightKgDefault,
		IsActive:           rec.IsActive,
		CapturedAt:         time.Now().UTC(),
	}, nil
}
