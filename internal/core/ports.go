package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// PackagingRecord is the raw packaging master row. Pure data: whether the
// record is usable for a conversion is decided by the PackagingResolver, not
// by the repository.
type PackagingRecord struct {
	PackagingTypeID    string
	Name               string
	CapacityLiters     decimal.Decimal
	NetWeightKgDefault decimal.Decimal
	IsActive           bool
}

// ProductRecord is the raw product master row.
type ProductRecord struct {
	Code              string
	Name              string
	DensityKgPerLiter *decimal.Decimal // nil when the master has no density
	IsActive          bool
}

// PackagingRepository fetches packaging master data. Implementations return
// (nil, nil) when no record exists; they carry no business rules.
type PackagingRepository interface {
	GetByID(ctx context.Context, packagingTypeID string) (*PackagingRecord, error)
}

// ProductRepository fetches product master data. Implementations return
// (nil, nil) when no record exists; they carry no business rules.
type ProductRepository interface {
	GetByCode(ctx context.Context, productCode string) (*ProductRecord, error)
}
