package app

import (
	"github.com/shopspring/decimal"

	"conversion-engine/internal/core"
)

// ConvertRequest is the host-facing input for one conversion call.
type ConvertRequest struct {
	CommercialQty   decimal.Decimal
	CommercialUnit  string
	ProductCode     string
	PackagingTypeID string
	DensityOverride *decimal.Decimal
	Context         core.TransactionContext
	// ExistingDensity carries the frozen density of an earlier conversion in
	// the same transaction lineage; the normal entry point for replays is
	// Replay, which loads it from the conversion log.
	ExistingDensity *core.DensityInfo
}
