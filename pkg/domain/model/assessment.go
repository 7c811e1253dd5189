package model

import (
	"slices"

	"github.com/secmon-lab/isorisk/pkg/domain/types"
)

// TreatmentAction is one planned action of the risk treatment step
type TreatmentAction struct {
	Description  string `json:"description"`
	Responsible  string `json:"responsible"`
	Timeline     string `json:"timeline"`
	CostEstimate string `json:"cost_estimate"`
}

// RiskAssessment is the in-progress draft of the assessment wizard. It is owned by the caller
// and passed to every validation call; nothing here keeps a copy.
type RiskAssessment struct {
	// context
	OrganizationContext string   `json:"organization_context"`
	InternalContext     string   `json:"internal_context"`
	ExternalContext     string   `json:"external_context"`
	Scope               string   `json:"scope"`
	Stakeholders        []string `json:"stakeholders"`

	// identification
	RiskTitle             string   `json:"risk_title"`
	RiskDescription       string   `json:"risk_description"`
	PotentialCauses       []string `json:"potential_causes"`
	PotentialConsequences []string `json:"potential_consequences"`
	ImpactAreas           []string `json:"impact_areas"`

	// analysis
	Severity      types.Rating `json:"severity"`
	Likelihood    types.Rating `json:"likelihood"`
	Detectability types.Rating `json:"detectability"`

	// evaluation
	TreatmentStrategy types.TreatmentStrategy `json:"risk_treatment_strategy"`
	EvaluationNotes   string                  `json:"evaluation_notes"`

	// treatment
	TreatmentActions []TreatmentAction `json:"treatment_actions"`

	// monitoring
	MonitoringMethods   []string              `json:"monitoring_methods"`
	Indicators          []string              `json:"indicators"`
	ResponsibleParties  []string              `json:"responsible_parties"`
	MonitoringFrequency string                `json:"monitoring_frequency"`
	ReviewFrequency     types.ReviewFrequency `json:"review_frequency"`
}

// NewRiskAssessment returns an empty draft with the analysis factors at the lowest rating
func NewRiskAssessment() *RiskAssessment {
	return &RiskAssessment{
		Severity:      types.MinRating,
		Likelihood:    types.MinRating,
		Detectability: types.MinRating,
	}
}

// Score recomputes the risk score from the current factors
func (a *RiskAssessment) Score() int {
	return ComputeScore(a.Severity, a.Likelihood, a.Detectability)
}

// Level recomputes the risk level from the current factors
func (a *RiskAssessment) Level() types.RiskLevel {
	return Classify(a.Score())
}

// Clone returns a deep copy of the draft
func (a *RiskAssessment) Clone() *RiskAssessment {
	if a == nil {
		return nil
	}
	c := *a
	c.Stakeholders = slices.Clone(a.Stakeholders)
	c.PotentialCauses = slices.Clone(a.PotentialCauses)
	c.PotentialConsequences = slices.Clone(a.PotentialConsequences)
	c.ImpactAreas = slices.Clone(a.ImpactAreas)
	c.TreatmentActions = slices.Clone(a.TreatmentActions)
	c.MonitoringMethods = slices.Clone(a.MonitoringMethods)
	c.Indicators = slices.Clone(a.Indicators)
	c.ResponsibleParties = slices.Clone(a.ResponsibleParties)
	return &c
}
