package types

import "fmt"

// Stereotype classifies an application for reporting rollups
type Stereotype string

const (
	StereotypeTargetApp  Stereotype = "TARGETAPP"
	StereotypeDependency Stereotype = "DEPENDENCY"
	StereotypeProfile    Stereotype = "PROFILE"
)

// AllStereotypes returns all valid stereotypes
func AllStereotypes() []Stereotype {
	return []Stereotype{
		StereotypeTargetApp,
		StereotypeDependency,
		StereotypeProfile,
	}
}

// IsValid checks if the stereotype is valid
func (s Stereotype) IsValid() bool {
	switch s {
	case StereotypeTargetApp,
		StereotypeDependency,
		StereotypeProfile:
		return true
	default:
		return false
	}
}

// String returns the string representation of the stereotype
func (s Stereotype) String() string {
	return string(s)
}

// ParseStereotype parses a string into a Stereotype. An empty string is
// accepted and means the application has no stereotype.
func ParseStereotype(s string) (Stereotype, error) {
	if s == "" {
		return "", nil
	}
	st := Stereotype(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid stereotype: %s", s)
	}
	return st, nil
}
