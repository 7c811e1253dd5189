package model_test

import (
	"github.com/secmon-lab/isorisk/pkg/domain/model"
	"github.com/secmon-lab/isorisk/pkg/domain/types"
)

func newCompleteAssessment() *model.RiskAssessment {
	return &model.RiskAssessment{
		OrganizationContext:   "Food processing plant, 120 employees",
		Scope:                 "Cold storage line",
		Stakeholders:          []string{"QA", "Production"},
		RiskTitle:             "Refrigeration failure",
		RiskDescription:       "Compressor outage raises storage temperature",
		PotentialCauses:       []string{"Power loss"},
		PotentialConsequences: []string{"Spoiled stock"},
		Severity:              3,
		Likelihood:            4,
		Detectability:         2,
		TreatmentStrategy:     types.TreatmentMitigate,
		TreatmentActions: []model.TreatmentAction{
			{Description: "Install backup generator", Responsible: "Facilities", Timeline: "Q3", CostEstimate: "12000"},
			{Description: "Add temperature alarms", Responsible: "QA", Timeline: "Q2", CostEstimate: "800"},
		},
		MonitoringMethods:   []string{"Temperature log review"},
		MonitoringFrequency: "weekly",
		ReviewFrequency:     types.ReviewQuarterly,
	}
}
