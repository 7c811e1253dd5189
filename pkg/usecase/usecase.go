package usecase

import (
	"time"

	"github.com/secmon-lab/isorisk/pkg/domain/interfaces"
	"github.com/secmon-lab/isorisk/pkg/domain/model"
	"github.com/secmon-lab/isorisk/pkg/domain/types"
	"github.com/secmon-lab/isorisk/pkg/service/notion"
	"github.com/secmon-lab/isorisk/pkg/service/slack"
)

// MetricsRecorder receives domain events for instrumentation
type MetricsRecorder interface {
	ObserveQuantification(level types.RiskLevel)
	ObserveSubmission(level types.RiskLevel)
	ObserveReviewReminders(n int)
}

type UseCases struct {
	repo       interfaces.Repository
	notifier   slack.Notifier
	exporter   notion.Exporter
	metrics    MetricsRecorder
	catalog    *model.FactorCatalog
	now        func() time.Time
	Assessment *AssessmentUseCase
}

type Option func(*UseCases)

// WithExporter enables export of submitted assessments to a Notion risk register
func WithExporter(exporter notion.Exporter) Option {
	return func(uc *UseCases) {
		uc.exporter = exporter
	}
}

// WithNotifier enables Slack notifications of escalated submissions and review reminders
func WithNotifier(notifier slack.Notifier) Option {
	return func(uc *UseCases) {
		uc.notifier = notifier
	}
}

func WithMetrics(metrics MetricsRecorder) Option {
	return func(uc *UseCases) {
		uc.metrics = metrics
	}
}

// WithCatalog replaces the built-in factor catalog
func WithCatalog(catalog *model.FactorCatalog) Option {
	return func(uc *UseCases) {
		uc.catalog = catalog
	}
}

// WithClock overrides the time source of submissions
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:    repo,
		catalog: model.DefaultFactorCatalog(),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Assessment = NewAssessmentUseCase(repo, uc.catalog, uc.notifier, uc.exporter, uc.metrics, uc.now)

	return uc
}
