package enums

import "fmt"

// PenaltyUnit represents the denominations a penalty can be owed in.
type PenaltyUnit string

const (
	PenaltyUnitEuro      PenaltyUnit = "euro"
	PenaltyUnitBeerCrate PenaltyUnit = "beer_crate"
)

var validPenaltyUnits = []PenaltyUnit{
	PenaltyUnitEuro,
	PenaltyUnitBeerCrate,
}

// PenaltyUnits returns the closed set of known units. Payment reconciliation
// iterates over this slice, so adding a denomination is a single change here.
func PenaltyUnits() []PenaltyUnit {
	units := make([]PenaltyUnit, len(validPenaltyUnits))
	copy(units, validPenaltyUnits)
	return units
}

// String implements fmt.Stringer.
func (u PenaltyUnit) String() string {
	return string(u)
}

// IsValid reports whether the unit is recognized.
func (u PenaltyUnit) IsValid() bool {
	for _, candidate := range validPenaltyUnits {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParsePenaltyUnit converts a raw string into a PenaltyUnit.
func ParsePenaltyUnit(value string) (PenaltyUnit, error) {
	for _, candidate := range validPenaltyUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid penalty unit %q", value)
}
