package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrAssessmentNotFound = errors.New("assessment not found")

	// Input errors
	ErrIncompleteAssessment = errors.New("assessment is incomplete")
	ErrUnknownAction        = errors.New("unknown navigation action")
)

// Context keys for error values
const (
	AssessmentIDKey = "assessment_id"
	StepKey         = "step"
	MissingKey      = "missing"
	ActionKey       = "action"
)
