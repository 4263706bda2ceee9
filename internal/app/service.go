package app

import (
	"context"

	"github.com/shopspring/decimal"
)

// ApplicationService is the calling layer around the engine: it wires the
// master-data repositories in, persists every successful result verbatim to
// the conversion log, and replays stored conversions under their frozen
// density.
type ApplicationService interface {
	// Convert runs one conversion and records the result.
	Convert(ctx context.Context, req ConvertRequest) (*ConvertResult, error)
	// Replay re-computes a stored conversion, feeding its frozen density
	// back, and reports whether the accounting quantity still matches.
	Replay(ctx context.Context, conversionID string) (*ReplayResult, error)
	// ListPackagingTypes returns the active packaging master for pick lists.
	ListPackagingTypes(ctx context.Context) ([]PackagingTypeInfo, error)

	// ConvertWithFixedFactor is the retired pre-engine entry point that let
	// callers supply an ad hoc factor. It always fails with
	// LegacyFallbackBlockedError so old call sites break loudly instead of
	// producing untraceable quantities.
	//
	// Deprecated: route conversions through Convert.
	ConvertWithFixedFactor(ctx context.Context, productCode string, qty, factor decimal.Decimal) (*ConvertResult, error)
}
