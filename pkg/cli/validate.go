package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/isorisk/pkg/domain/model"
	"github.com/secmon-lab/isorisk/pkg/domain/types"
	"github.com/secmon-lab/isorisk/pkg/utils/logging"
	"github.com/secmon-lab/isorisk/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

// ErrValidationFailed is returned when any checked step has missing fields
var ErrValidationFailed = goerr.New("assessment validation failed")

func cmdValidate() *cli.Command {
	var path string
	var step string
	var payload bool

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate a risk assessment draft stored as JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "Path to the assessment JSON file",
				Required:    true,
				Destination: &path,
			},
			&cli.StringFlag{
				Name:        "step",
				Usage:       "Validate only this step (context, identification, analysis, evaluation, treatment, monitoring)",
				Destination: &step,
			},
			&cli.BoolFlag{
				Name:        "payload",
				Usage:       "Print the submission payload when the draft is complete",
				Destination: &payload,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			draft, err := loadDraft(path)
			if err != nil {
				return err
			}

			steps := types.AllSteps()
			if step != "" {
				id, err := types.ParseStepID(step)
				if err != nil {
					return goerr.Wrap(err, "invalid step", goerr.V("step", step))
				}
				steps = []types.StepID{id}
			}

			w := c.Root().Writer
			failed, err := writeValidation(w, steps, draft)
			if err != nil {
				return err
			}

			if len(failed) > 0 {
				logging.Default().Debug("assessment incomplete", "path", path, "steps", failed)
				return goerr.Wrap(ErrValidationFailed, "incomplete steps",
					goerr.V("path", path), goerr.V("steps", failed))
			}

			if payload {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				if err := enc.Encode(model.NewSubmissionPayload(draft)); err != nil {
					return goerr.Wrap(err, "failed to encode payload")
				}
			}
			return nil
		},
	}
}

func loadDraft(path string) (*model.RiskAssessment, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	f, err := os.Open(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open assessment file", goerr.V("path", path))
	}
	defer safe.Close(context.Background(), f)

	// Decoded into a zero value so omitted ratings fail validation, as in the HTTP API
	var draft model.RiskAssessment
	if err := json.NewDecoder(f).Decode(&draft); err != nil {
		return nil, goerr.Wrap(err, "failed to decode assessment file", goerr.V("path", path))
	}
	return &draft, nil
}

func writeValidation(w io.Writer, steps []types.StepID, draft *model.RiskAssessment) ([]types.StepID, error) {
	var failed []types.StepID
	for _, s := range steps {
		missing := model.MissingFields(s, draft)
		var err error
		if len(missing) == 0 {
			_, err = fmt.Fprintf(w, "%s %s\n", color.GreenString("ok  "), s)
		} else {
			failed = append(failed, s)
			_, err = fmt.Fprintf(w, "%s %s: missing %v\n", color.RedString("fail"), s, missing)
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to write validation result")
		}
	}
	return failed, nil
}
