package types

import "strings"

// LegacyLabel is a free-text factor label used by older records and by the REST payload
type LegacyLabel string

// Severity labels
const (
	SeverityNegligible   LegacyLabel = "negligible"
	SeverityMinor        LegacyLabel = "minor"
	SeverityModerate     LegacyLabel = "moderate"
	SeverityMajor        LegacyLabel = "major"
	SeverityCatastrophic LegacyLabel = "catastrophic"

	// Qualitative risk labels that were stored in the severity column
	SeverityLow      LegacyLabel = "low"
	SeverityMedium   LegacyLabel = "medium"
	SeverityHigh     LegacyLabel = "high"
	SeverityCritical LegacyLabel = "critical"
)

// Likelihood labels
const (
	LikelihoodRare          LegacyLabel = "rare"
	LikelihoodUnlikely      LegacyLabel = "unlikely"
	LikelihoodPossible      LegacyLabel = "possible"
	LikelihoodLikely        LegacyLabel = "likely"
	LikelihoodAlmostCertain LegacyLabel = "almost_certain"

	LikelihoodVeryLow  LegacyLabel = "very_low"
	LikelihoodLow      LegacyLabel = "low"
	LikelihoodMedium   LegacyLabel = "medium"
	LikelihoodHigh     LegacyLabel = "high"
	LikelihoodVeryHigh LegacyLabel = "very_high"
)

// Detectability labels. Higher ratings mean harder to detect.
const (
	DetectabilityEasy               LegacyLabel = "easily_detectable"
	DetectabilityModerate           LegacyLabel = "moderately_detectable"
	DetectabilityDifficult          LegacyLabel = "difficult"
	DetectabilityVeryDifficult      LegacyLabel = "very_difficult"
	DetectabilityAlmostUndetectable LegacyLabel = "almost_undetectable"

	// Detection-chance wording: "very high chance of detection" is rating 1
	DetectabilityChanceVeryHigh LegacyLabel = "very_high"
	DetectabilityChanceHigh     LegacyLabel = "high"
	DetectabilityChanceModerate LegacyLabel = "moderate"
	DetectabilityChanceLow      LegacyLabel = "low"
	DetectabilityChanceVeryLow  LegacyLabel = "very_low"
)

// NormalizeLegacyLabel lower-cases the label, trims it and turns spaces and hyphens into underscores
func NormalizeLegacyLabel(s string) LegacyLabel {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	return LegacyLabel(s)
}

// String returns the string representation of the label
func (l LegacyLabel) String() string {
	return string(l)
}
