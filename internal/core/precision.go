package core

import "github.com/shopspring/decimal"

// Default production precision. Liters and kilograms both carry four decimal
// places, rounded half-up; metric tons are derived from kilograms by an
// exact decimal shift and never rounded separately.
var (
	DefaultLitersRule    = PrecisionRule{DecimalPlaces: 4, Mode: RoundHalfUp}
	DefaultKilogramsRule = PrecisionRule{DecimalPlaces: 4, Mode: RoundHalfUp}
)

// PrecisionConfig bundles the per-layer rounding rules a conversion runs
// under. Passed explicitly per engine, never ambient.
type PrecisionConfig struct {
	Liters    PrecisionRule
	Kilograms PrecisionRule
}

// DefaultPrecision returns the production rounding configuration.
func DefaultPrecision() PrecisionConfig {
	return PrecisionConfig{Liters: DefaultLitersRule, Kilograms: DefaultKilogramsRule}
}

// Round applies rule to v and reports whether rounding changed the value.
// That flag, not the mere presence of a rule, decides whether a step is
// marked precision_applied and whether reversibility is affected.
//
// Quantities in this engine are non-negative, so shopspring's
// round-half-away-from-zero is exactly half-up here.
func Round(v decimal.Decimal, rule PrecisionRule) (decimal.Decimal, bool) {
	var rounded decimal.Decimal
	switch rule.Mode {
	case RoundHalfUp:
		rounded = v.Round(rule.DecimalPlaces)
	case RoundDown:
		rounded = v.RoundDown(rule.DecimalPlaces)
	case RoundUp:
		rounded = v.RoundUp(rule.DecimalPlaces)
	default:
		// A zero-value rule performs no rounding. Unrecognized modes are
		// never mapped onto a different mode.
		return v, false
	}
	return rounded, !rounded.Equal(v)
}
