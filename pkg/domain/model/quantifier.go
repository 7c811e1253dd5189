package model

import (
	"math"

	"github.com/secmon-lab/isorisk/pkg/domain/types"
)

// Upper bounds (inclusive) of each risk level
const (
	LowMaxScore    = 4
	MediumMaxScore = 12
	HighMaxScore   = 20
)

// ComputeScore returns round(severity * likelihood * detectability / 5).
//
// Inputs outside 1..5 are clamped to the nearest bound before computing. Detectability is used
// as-is: a higher rating (harder to detect) yields a higher score.
func ComputeScore(severity, likelihood, detectability types.Rating) int {
	s := severity.Clamp().Int()
	l := likelihood.Clamp().Int()
	d := detectability.Clamp().Int()

	return int(math.Floor(float64(s*l*d)/5 + 0.5))
}

// IsClamped reports whether ComputeScore would clamp any of the inputs
func IsClamped(severity, likelihood, detectability types.Rating) bool {
	return !severity.IsValid() || !likelihood.IsValid() || !detectability.IsValid()
}

// Classify buckets a score into a risk level
func Classify(score int) types.RiskLevel {
	switch {
	case score <= LowMaxScore:
		return types.RiskLevelLow
	case score <= MediumMaxScore:
		return types.RiskLevelMedium
	case score <= HighMaxScore:
		return types.RiskLevelHigh
	default:
		return types.RiskLevelCritical
	}
}

var legacyLabelTable = map[types.FactorKind]map[types.LegacyLabel]types.Rating{
	types.FactorSeverity: {
		types.SeverityNegligible:   1,
		types.SeverityMinor:        2,
		types.SeverityModerate:     3,
		types.SeverityMajor:        4,
		types.SeverityCatastrophic: 5,
		types.SeverityLow:          1,
		types.SeverityMedium:       3,
		types.SeverityHigh:         4,
		types.SeverityCritical:     5,
	},
	types.FactorLikelihood: {
		types.LikelihoodRare:          1,
		types.LikelihoodUnlikely:      2,
		types.LikelihoodPossible:      3,
		types.LikelihoodLikely:        4,
		types.LikelihoodAlmostCertain: 5,
		types.LikelihoodVeryLow:       1,
		types.LikelihoodLow:           2,
		types.LikelihoodMedium:        3,
		types.LikelihoodHigh:          4,
		types.LikelihoodVeryHigh:      5,
	},
	types.FactorDetectability: {
		types.DetectabilityEasy:               1,
		types.DetectabilityModerate:           2,
		types.DetectabilityDifficult:          3,
		types.DetectabilityVeryDifficult:      4,
		types.DetectabilityAlmostUndetectable: 5,
		types.DetectabilityChanceVeryHigh:     1,
		types.DetectabilityChanceHigh:         2,
		types.DetectabilityChanceModerate:     3,
		types.DetectabilityChanceLow:          4,
		types.DetectabilityChanceVeryLow:      5,
	},
}

// MapLegacyLabel converts a legacy label into a rating. Matching ignores case, surrounding
// spaces, and the choice of space/hyphen/underscore. Unknown labels and kinds map to 1 so
// historical records keep the score they were shown with.
func MapLegacyLabel(kind types.FactorKind, label string) types.Rating {
	table, ok := legacyLabelTable[kind]
	if !ok {
		return types.MinRating
	}
	if rating, ok := table[types.NormalizeLegacyLabel(label)]; ok {
		return rating
	}
	return types.MinRating
}

// IsKnownLegacyLabel reports whether label has an explicit entry for kind
func IsKnownLegacyLabel(kind types.FactorKind, label string) bool {
	table, ok := legacyLabelTable[kind]
	if !ok {
		return false
	}
	_, ok = table[types.NormalizeLegacyLabel(label)]
	return ok
}

var primaryLegacyLabels = map[types.FactorKind][5]types.LegacyLabel{
	// The REST vocabulary only has four severity labels; 1 and 2 share "low".
	types.FactorSeverity: {
		types.SeverityLow,
		types.SeverityLow,
		types.SeverityMedium,
		types.SeverityHigh,
		types.SeverityCritical,
	},
	types.FactorLikelihood: {
		types.LikelihoodRare,
		types.LikelihoodUnlikely,
		types.LikelihoodPossible,
		types.LikelihoodLikely,
		types.LikelihoodAlmostCertain,
	},
	types.FactorDetectability: {
		types.DetectabilityEasy,
		types.DetectabilityModerate,
		types.DetectabilityDifficult,
		types.DetectabilityVeryDifficult,
		types.DetectabilityAlmostUndetectable,
	},
}

// LegacyLabel returns the REST payload label for a rating. The rating is clamped first.
// An unknown kind returns an empty label.
func LegacyLabel(kind types.FactorKind, rating types.Rating) types.LegacyLabel {
	labels, ok := primaryLegacyLabels[kind]
	if !ok {
		return ""
	}
	return labels[rating.Clamp().Int()-1]
}
