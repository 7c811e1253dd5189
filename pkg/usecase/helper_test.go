package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/secmon-lab/isorisk/pkg/domain/model"
	"github.com/secmon-lab/isorisk/pkg/domain/types"
)

func newDraft(s, l, d types.Rating) *model.RiskAssessment {
	return &model.RiskAssessment{
		OrganizationContext:   "Bakery, two production sites",
		Scope:                 "Allergen management",
		Stakeholders:          []string{"QA", "Customers"},
		RiskTitle:             "Undeclared sesame",
		RiskDescription:       "Sesame residue on shared equipment",
		PotentialCauses:       []string{"Insufficient line cleaning"},
		PotentialConsequences: []string{"Allergic reaction", "Recall"},
		Severity:              s,
		Likelihood:            l,
		Detectability:         d,
		TreatmentStrategy:     types.TreatmentMitigate,
		TreatmentActions: []model.TreatmentAction{
			{Description: "Validate cleaning with swab tests", Responsible: "QA lead"},
			{Description: "Dedicated sesame production day", Responsible: "Production manager"},
		},
		MonitoringMethods:   []string{"Swab test results"},
		MonitoringFrequency: "weekly",
		ReviewFrequency:     types.ReviewMonthly,
	}
}

type mockNotifier struct {
	mu         sync.Mutex
	submitted  []*model.Assessment
	reviewDue  []*model.Assessment
	reviewErr  error
	notifiedCh chan struct{}
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{notifiedCh: make(chan struct{}, 16)}
}

func (m *mockNotifier) NotifyAssessment(ctx context.Context, a *model.Assessment) error {
	m.mu.Lock()
	m.submitted = append(m.submitted, a)
	m.mu.Unlock()
	m.notifiedCh <- struct{}{}
	return nil
}

func (m *mockNotifier) NotifyReviewDue(ctx context.Context, a *model.Assessment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.reviewErr != nil {
		return m.reviewErr
	}
	m.reviewDue = append(m.reviewDue, a)
	return nil
}

func (m *mockNotifier) submittedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.submitted)
}

func (m *mockNotifier) reviewDueCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.reviewDue)
}

// waitNotified blocks until one NotifyAssessment call or the timeout
func (m *mockNotifier) waitNotified(timeout time.Duration) bool {
	select {
	case <-m.notifiedCh:
		return true
	case <-time.After(timeout):
		return false
	}
}

type mockMetrics struct {
	mu              sync.Mutex
	quantifications map[types.RiskLevel]int
	submissions     map[types.RiskLevel]int
	reminders       int
}

func newMockMetrics() *mockMetrics {
	return &mockMetrics{
		quantifications: map[types.RiskLevel]int{},
		submissions:     map[types.RiskLevel]int{},
	}
}

func (m *mockMetrics) ObserveQuantification(level types.RiskLevel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quantifications[level]++
}

func (m *mockMetrics) ObserveSubmission(level types.RiskLevel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissions[level]++
}

func (m *mockMetrics) ObserveReviewReminders(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reminders += n
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

type mockExporter struct {
	exportedCh chan *model.Assessment
	err        error
}

func newMockExporter() *mockExporter {
	return &mockExporter{exportedCh: make(chan *model.Assessment, 16)}
}

func (m *mockExporter) ExportAssessment(ctx context.Context, a *model.Assessment) (string, error) {
	m.exportedCh <- a
	if m.err != nil {
		return "", m.err
	}
	return "https://www.notion.so/" + a.ID.String(), nil
}
