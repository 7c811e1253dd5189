package model

import (
	"strings"

	"github.com/secmon-lab/isorisk/pkg/domain/types"
)

// SubmissionPayload is the body the compliance backend accepts for a risk entry
type SubmissionPayload struct {
	RiskTitle             string                  `json:"risk_title"`
	RiskDescription       string                  `json:"risk_description"`
	Severity              types.LegacyLabel       `json:"severity"`
	Likelihood            types.LegacyLabel       `json:"likelihood"`
	Detectability         types.LegacyLabel       `json:"detectability"`
	ImpactScore           int                     `json:"impact_score"`
	RiskLevel             types.RiskLevel         `json:"risk_level"`
	RiskTreatmentStrategy types.TreatmentStrategy `json:"risk_treatment_strategy"`
	RiskTreatmentPlan     string                  `json:"risk_treatment_plan"`
	MonitoringFrequency   string                  `json:"monitoring_frequency"`
	ReviewFrequency       string                  `json:"review_frequency"`
}

// treatmentPlanSeparator joins action descriptions into risk_treatment_plan
const treatmentPlanSeparator = "; "

// NewSubmissionPayload builds the payload from the draft's current values
func NewSubmissionPayload(a *RiskAssessment) *SubmissionPayload {
	descriptions := make([]string, 0, len(a.TreatmentActions))
	for _, action := range a.TreatmentActions {
		if d := strings.TrimSpace(action.Description); d != "" {
			descriptions = append(descriptions, d)
		}
	}

	return &SubmissionPayload{
		RiskTitle:             a.RiskTitle,
		RiskDescription:       a.RiskDescription,
		Severity:              LegacyLabel(types.FactorSeverity, a.Severity),
		Likelihood:            LegacyLabel(types.FactorLikelihood, a.Likelihood),
		Detectability:         LegacyLabel(types.FactorDetectability, a.Detectability),
		ImpactScore:           a.Score(),
		RiskLevel:             a.Level(),
		RiskTreatmentStrategy: a.TreatmentStrategy,
		RiskTreatmentPlan:     strings.Join(descriptions, treatmentPlanSeparator),
		MonitoringFrequency:   a.MonitoringFrequency,
		ReviewFrequency:       a.ReviewFrequency.String(),
	}
}
