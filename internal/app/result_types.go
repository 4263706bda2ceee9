package app

import (
	"time"

	"github.com/shopspring/decimal"

	"conversion-engine/internal/core"
)

// ConvertResult wraps the engine's result with the conversion-log id under
// which it was persisted.
type ConvertResult struct {
	ConversionID string                 `json:"conversion_id"`
	Result       *core.ConversionResult `json:"result"`
}

// PackagingTypeInfo is a pick-list row for the calling layer.
type PackagingTypeInfo struct {
	PackagingTypeID    string          `json:"packaging_type_id"`
	Name               string          `json:"name"`
	CapacityLiters     decimal.Decimal `json:"capacity_liters"`
	NetWeightKgDefault decimal.Decimal `json:"net_weight_kg_default"`
}

// ReplayResult compares a stored conversion with its re-computation under
// the frozen density. Match is false when current master data would have
// produced a different accounting quantity; drift is reported, never
// silently absorbed.
type ReplayResult struct {
	ConversionID string                 `json:"conversion_id"`
	RecordedAt   time.Time              `json:"recorded_at"`
	StoredKg     decimal.Decimal        `json:"stored_accounting_qty_kg"`
	Recomputed   *core.ConversionResult `json:"recomputed"`
	Match        bool                   `json:"match"`
}
