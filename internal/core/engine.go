package core

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Engine runs the three-layer conversion pipeline:
//
//	commercial unit → physical unit (liters) → accounting unit (kg / mt)
//
// It is stateless and safe for concurrent use; each request is processed
// independently. Any invariant violation aborts the pipeline with a typed
// error; no partial result is ever returned.
type Engine struct {
	packaging *PackagingResolver
	density   *DensityResolver
	precision PrecisionConfig
}

// NewEngine constructs an Engine over the two master-data repositories with
// the production precision configuration.
func NewEngine(packaging PackagingRepository, products ProductRepository) *Engine {
	return NewEngineWithPrecision(packaging, products, DefaultPrecision())
}

// NewEngineWithPrecision constructs an Engine with explicit rounding rules.
func NewEngineWithPrecision(packaging PackagingRepository, products ProductRepository, precision PrecisionConfig) *Engine {
	return &Engine{
		packaging: NewPackagingResolver(packaging),
		density:   NewDensityResolver(products),
		precision: precision,
	}
}

var factor1000 = decimal.NewFromInt(1000)

// Convert executes one conversion. Pipeline stages run strictly in order
// with no backtracking:
//
//  1. normalize the commercial unit
//  2. dispatch context gate (weight units blocked for DISPATCH)
//  3. commercial → physical (packaging capacity, or identity for LTR)
//  4. physical → accounting (density, or FIXED_1000/identity for weight units)
//  5. per-step precision pass (folded into stages 3–4)
//  6. reversibility evaluation and audit assembly
func (e *Engine) Convert(ctx context.Context, req ConversionRequest) (*ConversionResult, error) {
	if req.CommercialQty.IsNegative() {
		return nil, &ConversionError{
			ErrCode: CodeNegativeQuantity,
			Message: fmt.Sprintf("commercial quantity must be non-negative, got %s", req.CommercialQty),
		}
	}

	unit, err := NormalizeUnit(req.CommercialUnit)
	if err != nil {
		return nil, err
	}

	// Dispatch-time physical-safety gate: warehouses dispatch packages and
	// liters, never raw weight. Fails before any repository lookup.
	if req.Context == ContextDispatch && unit.Category() == CategoryWeight {
		return nil, &DispatchVolumeConversionBlockedError{Unit: unit}
	}

	var (
		steps    []ConversionStep
		physical *decimal.Decimal
		density  *DensityInfo
		kg       decimal.Decimal
	)

	// Stage 3: commercial → physical.
	switch unit.Category() {
	case CategoryPackage:
		if req.PackagingTypeID == "" {
			return nil, &MissingPackagingDefinitionError{Unit: unit}
		}
		snap, err := e.packaging.Resolve(ctx, req.PackagingTypeID)
		if err != nil {
			return nil, err
		}
		step := buildStep(req.CommercialQty, string(unit), string(UnitLTR), snap.CapacityLiters, SourcePackagingSnapshot, e.precision.Liters)
		step.Snapshot = snap
		steps = append(steps, step)
		physical = &step.RoundedValue

	case CategoryVolume:
		// Identity hop; recorded only if rounding changes the entered value.
		rounded, was := Round(req.CommercialQty, e.precision.Liters)
		if was {
			steps = append(steps, identityStep(req.CommercialQty, string(UnitLTR), rounded, e.precision.Liters))
		}
		physical = &rounded

	case CategoryWeight:
		// No physical layer on the weight path.
	}

	// Stage 4: physical → accounting.
	if physical != nil {
		density, err = e.density.Resolve(ctx, req.ProductCode, req.DensityOverride, req.ExistingDensity)
		if err != nil {
			return nil, err
		}
		step := buildStep(*physical, string(UnitLTR), string(UnitKG), density.DensityKgPerLiter, SourceDensity, e.precision.Kilograms)
		steps = append(steps, step)
		kg = step.RoundedValue
	} else if unit == UnitMT {
		step := buildStep(req.CommercialQty, string(UnitMT), string(UnitKG), factor1000, SourceFixed1000, e.precision.Kilograms)
		steps = append(steps, step)
		kg = step.RoundedValue
	} else {
		// KG is already the accounting unit. The identity hop is recorded
		// unconditionally here: it is the only step on this path and the
		// breakdown of a successful conversion is never empty.
		rounded, was := Round(req.CommercialQty, e.precision.Kilograms)
		step := identityStep(req.CommercialQty, string(UnitKG), rounded, e.precision.Kilograms)
		if !was {
			step.PrecisionApplied = nil
			step.Formula = fmt.Sprintf("%s KG × 1 (IDENTITY) = %s KG", req.CommercialQty, rounded)
		}
		steps = append(steps, step)
		kg = rounded
	}

	// kg → mt is an exact decimal shift, never rounded separately.
	mt := kg.Shift(-3)

	return &ConversionResult{
		CommercialQty:     req.CommercialQty,
		CommercialUnit:    unit,
		PhysicalQtyLiters: physical,
		AccountingQtyKg:   kg,
		AccountingQtyMt:   mt,
		IsReversible:      isReversible(density, steps),
		Breakdown:         steps,
		Density:           density,
	}, nil
}

// isReversible is intentionally conservative: a density override or any
// rounding loss marks the result non-reversible, because a false
// "reversible" claim could later justify an incorrect reverse calculation
// in a financial audit.
func isReversible(density *DensityInfo, steps []ConversionStep) bool {
	if density != nil && density.Source == DensityFromOverride {
		return false
	}
	for _, s := range steps {
		if s.WasRounded() {
			return false
		}
	}
	return true
}

// buildStep computes one multiplicative hop, applies the precision rule and
// renders the audit formula. PrecisionApplied is set only when rounding
// actually changed the value.
func buildStep(input decimal.Decimal, from, to string, factor decimal.Decimal, source FactorSource, rule PrecisionRule) ConversionStep {
	raw := input.Mul(factor)
	rounded, was := Round(raw, rule)

	step := ConversionStep{
		FromUnit:     from,
		ToUnit:       to,
		Factor:       factor,
		FactorSource: source,
		RawValue:     raw,
		RoundedValue: rounded,
		Formula:      fmt.Sprintf("%s %s × %s (%s) = %s %s", input, from, factor, source, raw, to),
	}
	if was {
		r := rule
		step.PrecisionApplied = &r
		step.Formula += fmt.Sprintf(" → rounded to %s (%d dp, %s)", rounded, rule.DecimalPlaces, rule.Mode)
	}
	return step
}

// identityStep records a factor-1 hop whose value was changed by rounding.
// The trail never hides a rounding event.
func identityStep(input decimal.Decimal, unit string, rounded decimal.Decimal, rule PrecisionRule) ConversionStep {
	r := rule
	return ConversionStep{
		FromUnit:         unit,
		ToUnit:           unit,
		Factor:           decimal.NewFromInt(1),
		FactorSource:     SourceIdentity,
		RawValue:         input,
		RoundedValue:     rounded,
		PrecisionApplied: &r,
		Formula: fmt.Sprintf("%s %s × 1 (IDENTITY) = %s %s → rounded to %s (%d dp, %s)",
			input, unit, input, unit, rounded, rule.DecimalPlaces, rule.Mode),
	}
}
