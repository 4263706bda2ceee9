package core

import "fmt"

// Error codes surfaced by Code(). The calling layer keys blocking UI
// behavior off these rather than parsing messages.
const (
	CodeUnknownUnit                = "UNKNOWN_UNIT"
	CodeMissingPackagingDefinition = "MISSING_PACKAGING_DEFINITION"
	CodePackagingNotFound          = "PACKAGING_NOT_FOUND"
	CodeMissingDensity             = "MISSING_DENSITY"
	CodeDensityAlreadyFrozen       = "DENSITY_ALREADY_FROZEN"
	CodeDispatchBlocked            = "DISPATCH_VOLUME_CONVERSION_BLOCKED"
	CodeLegacyFallbackBlocked      = "LEGACY_FALLBACK_BLOCKED"
	CodeNegativeQuantity           = "NEGATIVE_QUANTITY"
)

// EngineError is implemented by every typed failure the engine raises.
// Every error is terminal for the call: the engine never retries and never
// substitutes a default value.
type EngineError interface {
	error
	Code() string
}

// UnknownUnitError is raised when a raw unit string has no alias-table
// mapping.
type UnknownUnitError struct {
	Unit string
}

func (e *UnknownUnitError) Code() string { return CodeUnknownUnit }

func (e *UnknownUnitError) Error() string {
	return fmt.Sprintf("unknown commercial unit %q: use one of KG, MT, LTR, CARTON, PAIL, DRUM, IBC, EA or a registered alias", e.Unit)
}

// MissingPackagingDefinitionError is raised when a package unit (CARTON,
// PAIL, DRUM, IBC, EA) arrives without a packaging_type_id.
type MissingPackagingDefinitionError struct {
	Unit CommercialUnit
}

func (e *MissingPackagingDefinitionError) Code() string { return CodeMissingPackagingDefinition }

func (e *MissingPackagingDefinitionError) Error() string {
	return fmt.Sprintf("unit %s is a package unit and requires a packaging_type_id: supply the packaging type for this product before converting", e.Unit)
}

// PackagingNotFoundError is raised when the packaging master has no usable
// record for the id. Missing and inactive records are equally unusable for
// new conversions.
type PackagingNotFoundError struct {
	PackagingTypeID string
}

func (e *PackagingNotFoundError) Code() string { return CodePackagingNotFound }

func (e *PackagingNotFoundError) Error() string {
	return fmt.Sprintf("packaging type %q not found or inactive: register or reactivate it in the packaging master before converting", e.PackagingTypeID)
}

// MissingDensityError is raised when a volume→weight hop is required but no
// density exists on the product master and none was supplied. There is no
// default density.
type MissingDensityError struct {
	ProductCode string
}

func (e *MissingDensityError) Code() string { return CodeMissingDensity }

func (e *MissingDensityError) Error() string {
	return fmt.Sprintf("no density available for product %q: set density_kg_per_liter on the product master or supply an explicit override", e.ProductCode)
}

// DensityAlreadyFrozenError is raised when a request carries both a frozen
// density and a new override. Overriding a frozen density is forbidden
// regardless of caller intent.
type DensityAlreadyFrozenError struct {
	ProductCode string
}

func (e *DensityAlreadyFrozenError) Code() string { return CodeDensityAlreadyFrozen }

func (e *DensityAlreadyFrozenError) Error() string {
	return fmt.Sprintf("density for product %q is frozen for this transaction lineage: remove the override, the frozen value must be reused as-is", e.ProductCode)
}

// DispatchVolumeConversionBlockedError is raised when a DISPATCH transaction
// is entered in a weight unit. Dispatch instructions must be stated in the
// units the warehouse physically handles.
type DispatchVolumeConversionBlockedError struct {
	Unit CommercialUnit
}

func (e *DispatchVolumeConversionBlockedError) Code() string { return CodeDispatchBlocked }

func (e *DispatchVolumeConversionBlockedError) Error() string {
	return fmt.Sprintf("dispatch quantities cannot be entered in weight unit %s: enter the quantity in a package unit (CARTON, PAIL, DRUM, IBC, EA) or in LTR", e.Unit)
}

// LegacyFallbackBlockedError is raised by retired ad hoc conversion entry
// points. Every conversion must go through the engine so that the factor
// chain is auditable.
type LegacyFallbackBlockedError struct {
	Operation string
}

func (e *LegacyFallbackBlockedError) Code() string { return CodeLegacyFallbackBlocked }

func (e *LegacyFallbackBlockedError) Error() string {
	return fmt.Sprintf("legacy conversion path %q is blocked: route the conversion through the engine so the factor chain is recorded", e.Operation)
}

// ConversionError covers failures not otherwise classified.
type ConversionError struct {
	ErrCode string
	Message string
}

func (e *ConversionError) Code() string { return e.ErrCode }

func (e *ConversionError) Error() string {
	return fmt.Sprintf("conversion failed (%s): %s", e.ErrCode, e.Message)
}
