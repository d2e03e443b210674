package types

import "fmt"

// AppTypeFilter selects applications by stereotype when listing them
type AppTypeFilter string

const (
	// AppTypeAll is the default listing: everything except profiles
	AppTypeAll          AppTypeFilter = ""
	AppTypeTargets      AppTypeFilter = "TARGETS"
	AppTypeDependencies AppTypeFilter = "DEPENDENCIES"
	AppTypeProfiles     AppTypeFilter = "PROFILES"
)

// IsValid checks if the filter is valid
func (f AppTypeFilter) IsValid() bool {
	switch f {
	case AppTypeAll,
		AppTypeTargets,
		AppTypeDependencies,
		AppTypeProfiles:
		return true
	default:
		return false
	}
}

// Match reports whether an application with the given stereotype is listed.
// Applications without a stereotype are always listed.
func (f AppTypeFilter) Match(s Stereotype) bool {
	if s == "" {
		return true
	}
	switch f {
	case AppTypeTargets:
		return s == StereotypeTargetApp
	case AppTypeProfiles:
		return s == StereotypeProfile
	case AppTypeDependencies, AppTypeAll:
		return s != StereotypeProfile
	default:
		return false
	}
}

// ParseAppTypeFilter parses a string into an AppTypeFilter
func ParseAppTypeFilter(s string) (AppTypeFilter, error) {
	f := AppTypeFilter(s)
	if !f.IsValid() {
		return "", fmt.Errorf("invalid apptype: %s", s)
	}
	return f, nil
}

// Direction is the dependency direction from an application's perspective
type Direction string

const (
	// DirectionNorthbound means dependencies coming in to the application
	DirectionNorthbound Direction = "NORTHBOUND"
	// DirectionSouthbound means dependencies going out from the application
	DirectionSouthbound Direction = "SOUTHBOUND"
)

// IsValid checks if the direction is valid
func (d Direction) IsValid() bool {
	return d == DirectionNorthbound || d == DirectionSouthbound
}

// ParseDirection parses a string into a Direction
func ParseDirection(s string) (Direction, error) {
	d := Direction(s)
	if !d.IsValid() {
		return "", fmt.Errorf("invalid direction: %s", s)
	}
	return d, nil
}
