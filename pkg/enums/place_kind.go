package enums

import "fmt"

// PlaceKind categorizes where a game took place.
type PlaceKind string

const (
	PlaceKindHome   PlaceKind = "home"
	PlaceKindAway   PlaceKind = "away"
	PlaceKindRemote PlaceKind = "remote"
)

var validPlaceKinds = []PlaceKind{
	PlaceKindHome,
	PlaceKindAway,
	PlaceKindRemote,
}

// String implements fmt.Stringer.
func (p PlaceKind) String() string {
	return string(p)
}

// IsValid reports whether the place kind is recognized.
func (p PlaceKind) IsValid() bool {
	for _, candidate := range validPlaceKinds {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePlaceKind converts a raw string into a PlaceKind.
func ParsePlaceKind(value string) (PlaceKind, error) {
	for _, candidate := range validPlaceKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid place kind %q", value)
}
