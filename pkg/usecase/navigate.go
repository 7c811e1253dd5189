package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/isorisk/pkg/domain/model"
	"github.com/secmon-lab/isorisk/pkg/domain/types"
)

// NavigateAction is a wizard move requested by the client
type NavigateAction string

const (
	NavigateNext NavigateAction = "next"
	NavigateBack NavigateAction = "back"
	NavigateJump NavigateAction = "jump"
)

// NavigateRequest carries the wizard position held by the client together with the draft
type NavigateRequest struct {
	Current    types.StepID          `json:"current"`
	Completed  []types.StepID        `json:"completed"`
	Action     NavigateAction        `json:"action"`
	Target     types.StepID          `json:"target,omitempty"`
	Assessment *model.RiskAssessment `json:"assessment"`
}

// NavigateResult is the wizard position after the move. Missing is set when next was blocked.
type NavigateResult struct {
	Current      types.StepID       `json:"current"`
	Completed    []types.StepID     `json:"completed"`
	Submitted    bool               `json:"submitted"`
	Missing      []string           `json:"missing"`
	AssessmentID model.AssessmentID `json:"assessment_id,omitempty"`
}

// Navigate applies one wizard move. Passing the last step submits the draft.
func (uc *AssessmentUseCase) Navigate(ctx context.Context, req NavigateRequest) (*NavigateResult, error) {
	if req.Current == "" {
		req.Current = types.StepContext
	}
	w, err := model.RestoreWizard(req.Current, req.Completed)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to restore wizard", goerr.V(StepKey, req.Current))
	}

	draft := req.Assessment
	if draft == nil {
		draft = &model.RiskAssessment{}
	}

	result := &NavigateResult{Missing: []string{}}

	switch req.Action {
	case NavigateNext:
		missing, err := w.Next(draft)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to advance wizard")
		}
		if len(missing) > 0 {
			result.Missing = missing
			break
		}
		if w.Submitted() {
			created, err := uc.Submit(ctx, draft)
			if err != nil {
				return nil, err
			}
			result.AssessmentID = created.ID
		}

	case NavigateBack:
		if err := w.Back(); err != nil {
			return nil, goerr.Wrap(err, "failed to go back")
		}

	case NavigateJump:
		if err := w.Jump(req.Target); err != nil {
			return nil, goerr.Wrap(err, "failed to jump")
		}

	default:
		return nil, goerr.Wrap(ErrUnknownAction, "invalid navigation action", goerr.V(ActionKey, req.Action))
	}

	result.Current = w.Current()
	result.Completed = w.CompletedSteps()
	if result.Completed == nil {
		result.Completed = []types.StepID{}
	}
	result.Submitted = w.Submitted()
	return result, nil
}
