package model

import (
	"fmt"
	"strings"

	"github.com/secmon-lab/isorisk/pkg/domain/types"
)

// Field identifiers reported by MissingFields. They match the JSON names of RiskAssessment.
const (
	FieldStep                  = "step"
	FieldOrganizationContext   = "organization_context"
	FieldScope                 = "scope"
	FieldStakeholders          = "stakeholders"
	FieldRiskTitle             = "risk_title"
	FieldRiskDescription       = "risk_description"
	FieldPotentialCauses       = "potential_causes"
	FieldPotentialConsequences = "potential_consequences"
	FieldSeverity              = "severity"
	FieldLikelihood            = "likelihood"
	FieldDetectability         = "detectability"
	FieldTreatmentStrategy     = "risk_treatment_strategy"
	FieldTreatmentActions      = "treatment_actions"
	FieldMonitoringMethods     = "monitoring_methods"
	FieldMonitoringFrequency   = "monitoring_frequency"
	FieldReviewFrequency       = "review_frequency"
)

// ValidateStep reports whether every required field of step is populated
func ValidateStep(step types.StepID, a *RiskAssessment) bool {
	return len(MissingFields(step, a)) == 0
}

// MissingFields lists the required fields of step that are empty, in declaration order.
// An unknown step yields FieldStep.
func MissingFields(step types.StepID, a *RiskAssessment) []string {
	var missing []string
	need := func(ok bool, field string) {
		if !ok {
			missing = append(missing, field)
		}
	}

	switch step {
	case types.StepContext:
		need(hasText(a.OrganizationContext), FieldOrganizationContext)
		need(hasText(a.Scope), FieldScope)
		need(hasEntries(a.Stakeholders), FieldStakeholders)

	case types.StepIdentification:
		need(hasText(a.RiskTitle), FieldRiskTitle)
		need(hasText(a.RiskDescription), FieldRiskDescription)
		need(hasEntries(a.PotentialCauses), FieldPotentialCauses)
		need(hasEntries(a.PotentialConsequences), FieldPotentialConsequences)

	case types.StepAnalysis:
		need(a.Severity.IsValid(), FieldSeverity)
		need(a.Likelihood.IsValid(), FieldLikelihood)
		need(a.Detectability.IsValid(), FieldDetectability)

	case types.StepEvaluation:
		need(a.TreatmentStrategy.IsValid(), FieldTreatmentStrategy)

	case types.StepTreatment:
		if len(a.TreatmentActions) == 0 {
			missing = append(missing, FieldTreatmentActions)
			break
		}
		for i, action := range a.TreatmentActions {
			need(hasText(action.Description), fmt.Sprintf("%s[%d].description", FieldTreatmentActions, i))
			need(hasText(action.Responsible), fmt.Sprintf("%s[%d].responsible", FieldTreatmentActions, i))
		}

	case types.StepMonitoring:
		need(hasEntries(a.MonitoringMethods), FieldMonitoringMethods)
		need(hasText(a.MonitoringFrequency), FieldMonitoringFrequency)
		need(hasText(string(a.ReviewFrequency)), FieldReviewFrequency)

	default:
		missing = append(missing, FieldStep)
	}

	return missing
}

// FirstIncompleteStep returns the first step that fails validation with its missing fields.
// ok is false when every step validates.
func FirstIncompleteStep(a *RiskAssessment) (step types.StepID, missing []string, ok bool) {
	for _, s := range types.AllSteps() {
		if m := MissingFields(s, a); len(m) > 0 {
			return s, m, true
		}
	}
	return "", nil, false
}

func hasText(s string) bool {
	return strings.TrimSpace(s) != ""
}

// hasEntries requires at least one non-blank entry
func hasEntries(values []string) bool {
	for _, v := range values {
		if hasText(v) {
			return true
		}
	}
	return false
}
