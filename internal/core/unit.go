package core

import "strings"

// unitAliases is the only place raw unit strings are accepted. Keys are
// lowercase, trimmed forms. Anything not listed here is rejected outright;
// no unit is ever guessed from an unrecognized string.
var unitAliases = map[string]CommercialUnit{
	"kg":         UnitKG,
	"kgs":        UnitKG,
	"kilo":       UnitKG,
	"kilos":      UnitKG,
	"kilogram":   UnitKG,
	"kilograms":  UnitKG,
	"mt":         UnitMT,
	"ton":        UnitMT,
	"tons":       UnitMT,
	"tonne":      UnitMT,
	"tonnes":     UnitMT,
	"metric ton": UnitMT,
	"l":          UnitLTR,
	"lt":         UnitLTR,
	"ltr":        UnitLTR,
	"ltrs":       UnitLTR,
	"liter":      UnitLTR,
	"liters":     UnitLTR,
	"litre":      UnitLTR,
	"litres":     UnitLTR,
	"ctn":        UnitCarton,
	"carton":     UnitCarton,
	"cartons":    UnitCarton,
	"pail":       UnitPail,
	"pails":      UnitPail,
	"bucket":     UnitPail,
	"drum":       UnitDrum,
	"drums":      UnitDrum,
	"barrel":     UnitDrum,
	"ibc":        UnitIBC,
	"tote":       UnitIBC,
	"ea":         UnitEA,
	"each":       UnitEA,
	"pc":         UnitEA,
	"pcs":        UnitEA,
	"piece":      UnitEA,
	"pieces":     UnitEA,
	"unit":       UnitEA,
	"units":      UnitEA,
}

// CommercialUnit is the closed set of units a user may enter on a
// transaction. Raw strings only enter the system through NormalizeUnit;
// everything past that point works on this enumeration.
type CommercialUnit string

const (
	UnitKG     CommercialUnit = "KG"
	UnitMT     CommercialUnit = "MT"
	UnitLTR    CommercialUnit = "LTR"
	UnitCarton CommercialUnit = "CARTON"
	UnitPail   CommercialUnit = "PAIL"
	UnitDrum   CommercialUnit = "DRUM"
	UnitIBC    CommercialUnit = "IBC"
	UnitEA     CommercialUnit = "EA"
)

// UnitCategory groups commercial units by the conversion path they take.
type UnitCategory string

const (
	CategoryWeight  UnitCategory = "WEIGHT"  // already in accounting terms
	CategoryVolume  UnitCategory = "VOLUME"  // needs density only
	CategoryPackage UnitCategory = "PACKAGE" // needs packaging capacity, then density
)

// Category returns the conversion category of the unit.
func (u CommercialUnit) Category() UnitCategory {
	switch u {
	case UnitKG, UnitMT:
		return CategoryWeight
	case UnitLTR:
		return CategoryVolume
	default:
		return CategoryPackage
	}
}

// NormalizeUnit canonicalizes a raw unit string against the alias table.
// Lookup is case- and whitespace-tolerant. An unmapped string fails with
// UnknownUnitError before any repository lookup happens.
func NormalizeUnit(raw string) (CommercialUnit, error) {
	key := strings.ToLower(strings.Join(strings.Fields(raw), " "))
	if unit, ok := unitAliases[key]; ok {
		return unit, nil
	}
	return "", &UnknownUnitError{Unit: raw}
}
