package types

import (
	"fmt"
	"strings"
)

// FactorKind identifies one of the three qualitative risk factors
type FactorKind string

const (
	FactorSeverity      FactorKind = "severity"
	FactorLikelihood    FactorKind = "likelihood"
	FactorDetectability FactorKind = "detectability"
)

// AllFactorKinds returns all factor kinds in display order
func AllFactorKinds() []FactorKind {
	return []FactorKind{
		FactorSeverity,
		FactorLikelihood,
		FactorDetectability,
	}
}

// IsValid checks if the factor kind is valid
func (k FactorKind) IsValid() bool {
	switch k {
	case FactorSeverity, FactorLikelihood, FactorDetectability:
		return true
	default:
		return false
	}
}

// String returns the string representation of the factor kind
func (k FactorKind) String() string {
	return string(k)
}

// ParseFactorKind parses a case-insensitive string into a FactorKind
func ParseFactorKind(s string) (FactorKind, error) {
	kind := FactorKind(strings.ToLower(strings.TrimSpace(s)))
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid factor kind: %s", s)
	}
	return kind, nil
}

// Rating is an ordinal value on the fixed 1..5 scale
type Rating int

const (
	MinRating Rating = 1
	MaxRating Rating = 5
)

// AllRatings returns 1..5 in ascending order
func AllRatings() []Rating {
	return []Rating{1, 2, 3, 4, 5}
}

// IsValid reports whether the rating lies within 1..5
func (r Rating) IsValid() bool {
	return r >= MinRating && r <= MaxRating
}

// Clamp returns the nearest rating within 1..5
func (r Rating) Clamp() Rating {
	switch {
	case r < MinRating:
		return MinRating
	case r > MaxRating:
		return MaxRating
	default:
		return r
	}
}

// Int returns the rating as int
func (r Rating) Int() int {
	return int(r)
}
