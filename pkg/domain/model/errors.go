package model

import "github.com/m-mizutani/goerr/v2"

// Wizard navigation errors. A step that fails validation is not an error; see Wizard.Next.
var (
	ErrAlreadySubmitted = goerr.New("assessment is already submitted")
	ErrNoPreviousStep   = goerr.New("no previous step")
	ErrJumpAhead        = goerr.New("cannot jump ahead of the current step")
	ErrUnknownStep      = goerr.New("unknown assessment step")
)

// Context keys for error values
const (
	StepKey    = "step"
	CurrentKey = "current"
	TargetKey  = "target"
)
