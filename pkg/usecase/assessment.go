package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/isorisk/pkg/domain/interfaces"
	"github.com/secmon-lab/isorisk/pkg/domain/model"
	"github.com/secmon-lab/isorisk/pkg/domain/types"
	"github.com/secmon-lab/isorisk/pkg/service/notion"
	"github.com/secmon-lab/isorisk/pkg/service/slack"
	"github.com/secmon-lab/isorisk/pkg/utils/async"
	"github.com/secmon-lab/isorisk/pkg/utils/logging"
)

type AssessmentUseCase struct {
	repo     interfaces.Repository
	catalog  *model.FactorCatalog
	notifier slack.Notifier
	exporter notion.Exporter
	metrics  MetricsRecorder
	now      func() time.Time
}

func NewAssessmentUseCase(repo interfaces.Repository, catalog *model.FactorCatalog, notifier slack.Notifier, exporter notion.Exporter, metrics MetricsRecorder, now func() time.Time) *AssessmentUseCase {
	if catalog == nil {
		catalog = model.DefaultFactorCatalog()
	}
	if now == nil {
		now = time.Now
	}
	return &AssessmentUseCase{
		repo:     repo,
		catalog:  catalog,
		notifier: notifier,
		exporter: exporter,
		metrics:  metrics,
		now:      now,
	}
}

// QuantifyResult is the computed score of a factor triple
type QuantifyResult struct {
	Score int             `json:"score"`
	Level types.RiskLevel `json:"level"`
	// Clamped is true when any input was outside 1..5
	Clamped bool `json:"clamped"`
}

// StepValidation is the outcome of validating one wizard step
type StepValidation struct {
	Step    types.StepID `json:"step"`
	Valid   bool         `json:"valid"`
	Missing []string     `json:"missing"`
}

// Catalog returns the factor presentation catalog
func (uc *AssessmentUseCase) Catalog() *model.FactorCatalog {
	return uc.catalog
}

// Quantify computes score and level of the triple
func (uc *AssessmentUseCase) Quantify(severity, likelihood, detectability types.Rating) *QuantifyResult {
	score := model.ComputeScore(severity, likelihood, detectability)
	result := &QuantifyResult{
		Score:   score,
		Level:   model.Classify(score),
		Clamped: model.IsClamped(severity, likelihood, detectability),
	}
	if uc.metrics != nil {
		uc.metrics.ObserveQuantification(result.Level)
	}
	return result
}

// ValidateStep reports the missing fields of step. A nil draft is validated as empty.
func (uc *AssessmentUseCase) ValidateStep(step types.StepID, a *model.RiskAssessment) *StepValidation {
	if a == nil {
		a = &model.RiskAssessment{}
	}
	missing := model.MissingFields(step, a)
	if missing == nil {
		missing = []string{}
	}
	return &StepValidation{
		Step:    step,
		Valid:   len(missing) == 0,
		Missing: missing,
	}
}

// Submit validates every step in wizard order and stores the assessment. The draft is copied
// and never modified. High and critical submissions are announced to Slack in background, and
// every submission is exported to the Notion risk register when one is configured.
func (uc *AssessmentUseCase) Submit(ctx context.Context, a *model.RiskAssessment) (*model.Assessment, error) {
	if a == nil {
		a = &model.RiskAssessment{}
	}

	if step, missing, ok := model.FirstIncompleteStep(a); ok {
		return nil, goerr.Wrap(ErrIncompleteAssessment, "assessment has missing fields",
			goerr.V(StepKey, step),
			goerr.V(MissingKey, missing))
	}

	assessment := &model.Assessment{
		ID:          model.NewAssessmentID(),
		Draft:       a.Clone(),
		SubmittedAt: uc.now().UTC(),
	}

	created, err := uc.repo.Assessment().Create(ctx, assessment)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store assessment", goerr.V(AssessmentIDKey, assessment.ID))
	}

	level := created.Level()
	logging.From(ctx).Info("assessment submitted",
		"id", created.ID,
		"score", created.Score(),
		"level", level,
	)

	if uc.metrics != nil {
		uc.metrics.ObserveSubmission(level)
	}

	if uc.notifier != nil && level.RequiresEscalation() {
		notified := created.Clone()
		async.Dispatch(ctx, func(ctx context.Context) error {
			return uc.notifier.NotifyAssessment(ctx, notified)
		})
	}

	if uc.exporter != nil {
		exported := created.Clone()
		async.Dispatch(ctx, func(ctx context.Context) error {
			url, err := uc.exporter.ExportAssessment(ctx, exported)
			if err != nil {
				return goerr.Wrap(err, "failed to export assessment", goerr.V(AssessmentIDKey, exported.ID))
			}
			logging.From(ctx).Info("assessment exported to risk register", "id", exported.ID, "url", url)
			return nil
		})
	}

	return created, nil
}

// IncompleteDetail extracts the failing step and its missing fields from a Submit error
func IncompleteDetail(err error) (types.StepID, []string, bool) {
	if !errors.Is(err, ErrIncompleteAssessment) {
		return "", nil, false
	}
	var ge *goerr.Error
	if !errors.As(err, &ge) {
		return "", nil, false
	}
	values := ge.Values()
	step, _ := values[StepKey].(types.StepID)
	missing, _ := values[MissingKey].([]string)
	return step, missing, true
}

// Get returns a stored assessment
func (uc *AssessmentUseCase) Get(ctx context.Context, id model.AssessmentID) (*model.Assessment, error) {
	assessment, err := uc.repo.Assessment().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrAssessmentNotFound, "assessment not found", goerr.V(AssessmentIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get assessment", goerr.V(AssessmentIDKey, id))
	}
	return assessment, nil
}

// List returns stored assessments, newest first
func (uc *AssessmentUseCase) List(ctx context.Context) ([]*model.Assessment, error) {
	assessments, err := uc.repo.Assessment().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list assessments")
	}
	return assessments, nil
}

// ListByLevel returns the stored assessments of one risk level, newest first
func (uc *AssessmentUseCase) ListByLevel(ctx context.Context, level types.RiskLevel) ([]*model.Assessment, error) {
	assessments, err := uc.repo.Assessment().ListByLevel(ctx, level)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list assessments by level", goerr.V("level", level))
	}
	return assessments, nil
}

// Payload returns the REST submission payload of a stored assessment
func (uc *AssessmentUseCase) Payload(ctx context.Context, id model.AssessmentID) (*model.SubmissionPayload, error) {
	assessment, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return model.NewSubmissionPayload(assessment.Draft), nil
}

// Dashboard aggregates every stored assessment
func (uc *AssessmentUseCase) Dashboard(ctx context.Context) (*model.Dashboard, error) {
	assessments, err := uc.List(ctx)
	if err != nil {
		return nil, err
	}
	return model.NewDashboard(assessments), nil
}
