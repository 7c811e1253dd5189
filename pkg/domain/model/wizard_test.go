package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/isorisk/pkg/domain/model"
	"github.com/secmon-lab/isorisk/pkg/domain/types"
)

func TestWizard_NextIsGatedByValidation(t *testing.T) {
	w := model.NewWizard()
	a := newCompleteAssessment()
	a.Scope = ""

	missing, err := w.Next(a)
	gt.NoError(t, err).Required()
	gt.Value(t, missing).Equal([]string{model.FieldScope})
	gt.Value(t, w.Current()).Equal(types.StepContext)
	gt.Bool(t, w.Completed(types.StepContext)).False()

	a.Scope = "Cold storage line"
	missing, err = w.Next(a)
	gt.NoError(t, err).Required()
	gt.Array(t, missing).Length(0)
	gt.Value(t, w.Current()).Equal(types.StepIdentification)
	gt.Bool(t, w.Completed(types.StepContext)).True()
}

func TestWizard_WalkToSubmission(t *testing.T) {
	w := model.NewWizard()
	a := newCompleteAssessment()

	for i, step := range types.AllSteps() {
		gt.Value(t, w.Current()).Equal(step)
		gt.Value(t, w.Index()).Equal(i)

		missing, err := w.Next(a)
		gt.NoError(t, err).Required()
		gt.Array(t, missing).Length(0)
	}

	gt.Bool(t, w.Submitted()).True()
	gt.Value(t, w.Current()).Equal(types.StepSubmitted)
	gt.Value(t, w.Index()).Equal(len(types.AllSteps()))
	gt.Value(t, w.CompletedSteps()).Equal(types.AllSteps())

	_, err := w.Next(a)
	gt.Error(t, err).Is(model.ErrAlreadySubmitted)
	gt.Error(t, w.Back()).Is(model.ErrAlreadySubmitted)
	gt.Error(t, w.Jump(types.StepContext)).Is(model.ErrAlreadySubmitted)
}

func TestWizard_Back(t *testing.T) {
	w := model.NewWizard()
	gt.Error(t, w.Back()).Is(model.ErrNoPreviousStep)

	a := newCompleteAssessment()
	_, err := w.Next(a)
	gt.NoError(t, err).Required()

	// back is allowed even when the draft became invalid
	a.RiskTitle = ""
	gt.NoError(t, w.Back())
	gt.Value(t, w.Current()).Equal(types.StepContext)
}

func TestWizard_Jump(t *testing.T) {
	w := model.NewWizard()
	a := newCompleteAssessment()
	for range 3 {
		_, err := w.Next(a)
		gt.NoError(t, err).Required()
	}
	gt.Value(t, w.Current()).Equal(types.StepEvaluation)

	t.Run("ahead is rejected", func(t *testing.T) {
		gt.Error(t, w.Jump(types.StepTreatment)).Is(model.ErrJumpAhead)
		gt.Value(t, w.Current()).Equal(types.StepEvaluation)
	})

	t.Run("unknown step is rejected", func(t *testing.T) {
		gt.Error(t, w.Jump(types.StepSubmitted)).Is(model.ErrUnknownStep)
	})

	t.Run("current step is allowed", func(t *testing.T) {
		gt.NoError(t, w.Jump(types.StepEvaluation))
		gt.Value(t, w.Current()).Equal(types.StepEvaluation)
	})

	t.Run("earlier step is allowed", func(t *testing.T) {
		gt.NoError(t, w.Jump(types.StepIdentification))
		gt.Value(t, w.Current()).Equal(types.StepIdentification)
		gt.Bool(t, w.Completed(types.StepAnalysis)).True()
	})
}

func TestRestoreWizard(t *testing.T) {
	t.Run("drops completion marks beyond current", func(t *testing.T) {
		w, err := model.RestoreWizard(types.StepAnalysis, []types.StepID{
			types.StepContext,
			types.StepIdentification,
			types.StepTreatment,
			"bogus",
		})
		gt.NoError(t, err).Required()
		gt.Value(t, w.Current()).Equal(types.StepAnalysis)
		gt.Value(t, w.CompletedSteps()).Equal([]types.StepID{types.StepContext, types.StepIdentification})
	})

	t.Run("rejects submitted", func(t *testing.T) {
		_, err := model.RestoreWizard(types.StepSubmitted, nil)
		gt.Error(t, err).Is(model.ErrAlreadySubmitted)
	})

	t.Run("rejects unknown", func(t *testing.T) {
		_, err := model.RestoreWizard("review", nil)
		gt.Error(t, err).Is(model.ErrUnknownStep)
	})
}
