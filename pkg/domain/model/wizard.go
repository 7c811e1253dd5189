package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/isorisk/pkg/domain/types"
)

// Wizard is the linear navigation state of a risk assessment. Forward moves are gated by
// step validation, backward moves are always allowed.
type Wizard struct {
	index     int
	completed map[types.StepID]bool
	submitted bool
}

// NewWizard returns a wizard positioned on the first step
func NewWizard() *Wizard {
	return &Wizard{
		completed: make(map[types.StepID]bool),
	}
}

// RestoreWizard rebuilds a wizard from a client-held position. Completion marks beyond the
// current step are dropped since they could not have been reached without validating it.
func RestoreWizard(current types.StepID, completed []types.StepID) (*Wizard, error) {
	if current == types.StepSubmitted {
		return nil, goerr.Wrap(ErrAlreadySubmitted, "cannot restore a submitted wizard")
	}
	if !current.IsValid() {
		return nil, goerr.Wrap(ErrUnknownStep, "invalid current step", goerr.V(CurrentKey, current))
	}

	w := NewWizard()
	w.index = current.Index()
	for _, step := range completed {
		if step.IsValid() && step.Index() < w.index {
			w.completed[step] = true
		}
	}
	return w, nil
}

// Current returns the current step, or StepSubmitted after submission
func (w *Wizard) Current() types.StepID {
	if w.submitted {
		return types.StepSubmitted
	}
	return types.AllSteps()[w.index]
}

// Index returns the position of the current step. After submission it is len(AllSteps()).
func (w *Wizard) Index() int {
	if w.submitted {
		return len(types.AllSteps())
	}
	return w.index
}

// Submitted reports whether the last step has been passed
func (w *Wizard) Submitted() bool {
	return w.submitted
}

// Completed reports whether step has been validated on the way forward
func (w *Wizard) Completed(step types.StepID) bool {
	return w.completed[step]
}

// CompletedSteps returns completed steps in navigation order
func (w *Wizard) CompletedSteps() []types.StepID {
	var steps []types.StepID
	for _, step := range types.AllSteps() {
		if w.completed[step] {
			steps = append(steps, step)
		}
	}
	return steps
}

// Next validates the current step against a. If fields are missing they are returned and the
// wizard does not move. Otherwise the step is marked completed and the wizard advances, or
// becomes submitted when leaving the last step.
func (w *Wizard) Next(a *RiskAssessment) ([]string, error) {
	if w.submitted {
		return nil, goerr.Wrap(ErrAlreadySubmitted, "cannot advance")
	}

	step := w.Current()
	if missing := MissingFields(step, a); len(missing) > 0 {
		return missing, nil
	}

	w.completed[step] = true
	if w.index == len(types.AllSteps())-1 {
		w.submitted = true
	} else {
		w.index++
	}
	return nil, nil
}

// Back moves to the previous step without validation
func (w *Wizard) Back() error {
	if w.submitted {
		return goerr.Wrap(ErrAlreadySubmitted, "cannot go back")
	}
	if w.index == 0 {
		return goerr.Wrap(ErrNoPreviousStep, "already on the first step", goerr.V(CurrentKey, w.Current()))
	}
	w.index--
	return nil
}

// Jump moves to step, which must not be after the current step
func (w *Wizard) Jump(step types.StepID) error {
	if w.submitted {
		return goerr.Wrap(ErrAlreadySubmitted, "cannot jump")
	}
	if !step.IsValid() {
		return goerr.Wrap(ErrUnknownStep, "invalid jump target", goerr.V(TargetKey, step))
	}
	if step.Index() > w.index {
		return goerr.Wrap(ErrJumpAhead, "jump target is ahead",
			goerr.V(CurrentKey, w.Current()),
			goerr.V(TargetKey, step))
	}
	w.index = step.Index()
	return nil
}
