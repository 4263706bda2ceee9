package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionContext identifies the business operation a conversion serves.
type TransactionContext string

const (
	ContextProcurement     TransactionContext = "PROCUREMENT"
	ContextStockAdjustment TransactionContext = "STOCK_ADJUSTMENT"
	ContextCosting         TransactionContext = "COSTING"
	ContextDispatch        TransactionContext = "DISPATCH"
	ContextSales           TransactionContext = "SALES"
)

// FactorSource records where a conversion step's factor came from.
type FactorSource string

const (
	SourcePackagingSnapshot FactorSource = "PACKAGING_SNAPSHOT"
	SourceDensity           FactorSource = "DENSITY"
	SourceFixed1000         FactorSource = "FIXED_1000"
	SourceIdentity          FactorSource = "IDENTITY"
)

// DensitySource records where a density value came from.
type DensitySource string

const (
	DensityFromProductMaster DensitySource = "PRODUCT_MASTER"
	DensityFromOverride      DensitySource = "OVERRIDE"
	DensityFrozen            DensitySource = "FROZEN"
)

// RoundingMode selects the rounding behavior of a PrecisionRule. Only
// half-up is used in production computations today; the other modes exist
// for forward compatibility and are never silently substituted.
type RoundingMode string

const (
	RoundHalfUp RoundingMode = "HALF_UP"
	RoundDown   RoundingMode = "DOWN"
	RoundUp     RoundingMode = "UP"
)

// PrecisionRule is an explicit per-step rounding instruction. It is always
// threaded through as a value, never read from ambient configuration, so two
// concurrent conversions with different precision requirements cannot
// interfere.
type PrecisionRule struct {
	DecimalPlaces int32        `json:"decimal_places"`
	Mode          RoundingMode `json:"rounding_mode"`
}

// PackagingSnapshot is the packaging master record as it stood when a
// conversion resolved it. Once attached to a step it is immutable: later
// edits to the packaging master must never retroactively alter a produced
// result.
type PackagingSnapshot struct {
	PackagingTypeID    string          `json:"packaging_type_id"`
	Name               string          `json:"name,omitempty"`
	CapacityLiters     decimal.Decimal `json:"capacity_liters"`
	NetWeightKgDefault decimal.Decimal `json:"net_weight_kg_default"`
	IsActive           bool            `json:"is_active"`
	CapturedAt         time.Time       `json:"captured_at"`
}

// DensityInfo is a density value frozen at the moment it was first used.
// Replays of the same transaction lineage must feed it back unchanged.
type DensityInfo struct {
	DensityKgPerLiter decimal.Decimal `json:"density_kg_per_liter"`
	Source            DensitySource   `json:"source"`
	CapturedAt        time.Time       `json:"captured_at"`
}

// ConversionRequest is the engine's input. One request, one conversion;
// nothing is persisted by the engine itself.
type ConversionRequest struct {
	CommercialQty   decimal.Decimal    `json:"commercial_qty"`
	CommercialUnit  string             `json:"commercial_unit"`
	ProductCode     string             `json:"product_code,omitempty"`
	PackagingTypeID string             `json:"packaging_type_id,omitempty"`
	DensityOverride *decimal.Decimal   `json:"density_override,omitempty"`
	Context         TransactionContext `json:"transaction_context"`
	// ExistingDensity is the frozen density of an earlier conversion in the
	// same transaction lineage, supplied by the caller on historical
	// re-computation. When set, a DensityOverride on the same request is an
	// error, never a silent ignore.
	ExistingDensity *DensityInfo `json:"existing_density,omitempty"`
}

// ConversionStep is one arithmetic hop of the factor chain.
type ConversionStep struct {
	FromUnit     string          `json:"from_unit"`
	ToUnit       string          `json:"to_unit"`
	Factor       decimal.Decimal `json:"factor"`
	FactorSource FactorSource    `json:"factor_source"`
	RawValue     decimal.Decimal `json:"raw_value"`
	RoundedValue decimal.Decimal `json:"rounded_value"`
	// PrecisionApplied is set only when rounding actually changed the value.
	PrecisionApplied *PrecisionRule `json:"precision_applied,omitempty"`
	Formula          string         `json:"calculation_formula"`
	// Snapshot carries the packaging record used by a PACKAGING_SNAPSHOT
	// step; nil for every other factor source.
	Snapshot *PackagingSnapshot `json:"packaging_snapshot,omitempty"`
}

// WasRounded reports whether rounding changed this step's value.
func (s ConversionStep) WasRounded() bool { return s.PrecisionApplied != nil }

// ConversionResult is the engine's output. Immutable once produced; the
// calling layer persists it verbatim, including the full breakdown, for
// audit.
type ConversionResult struct {
	CommercialQty  decimal.Decimal `json:"commercial_qty"`
	CommercialUnit CommercialUnit  `json:"commercial_unit"`
	// PhysicalQtyLiters is absent when the commercial unit is a weight unit:
	// that path never passes through the volume layer.
	PhysicalQtyLiters *decimal.Decimal `json:"physical_qty_liters,omitempty"`
	AccountingQtyKg   decimal.Decimal  `json:"accounting_qty_kg"`
	AccountingQtyMt   decimal.Decimal  `json:"accounting_qty_mt"`
	IsReversible      bool             `json:"is_reversible"`
	// Breakdown is the ordered factor chain, insertion order = computation
	// order, never empty for a successful result.
	Breakdown []ConversionStep `json:"breakdown"`
	// Density is the density used by the volume→weight hop, frozen for the
	// transaction lineage; nil on the pure weight path.
	Density *DensityInfo `json:"density,omitempty"`
}
