package types

import "fmt"

// StepID identifies a stage of the risk assessment wizard
type StepID string

const (
	StepContext        StepID = "context"
	StepIdentification StepID = "identification"
	StepAnalysis       StepID = "analysis"
	StepEvaluation     StepID = "evaluation"
	StepTreatment      StepID = "treatment"
	StepMonitoring     StepID = "monitoring"

	// StepSubmitted is the terminal state reached after the last step validates.
	// It is not part of AllSteps.
	StepSubmitted StepID = "submitted"
)

// AllSteps returns the wizard steps in navigation order
func AllSteps() []StepID {
	return []StepID{
		StepContext,
		StepIdentification,
		StepAnalysis,
		StepEvaluation,
		StepTreatment,
		StepMonitoring,
	}
}

// Index returns the position of the step in AllSteps, or -1 for unknown steps and StepSubmitted
func (s StepID) Index() int {
	for i, step := range AllSteps() {
		if step == s {
			return i
		}
	}
	return -1
}

// IsValid reports whether s is one of the six wizard steps
func (s StepID) IsValid() bool {
	return s.Index() >= 0
}

// String returns the string representation of the step
func (s StepID) String() string {
	return string(s)
}

// ParseStepID parses a string into a wizard StepID
func ParseStepID(s string) (StepID, error) {
	step := StepID(s)
	if !step.IsValid() {
		return "", fmt.Errorf("invalid assessment step: %s", s)
	}
	return step, nil
}
