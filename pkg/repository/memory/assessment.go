package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/isorisk/pkg/domain/model"
	"github.com/secmon-lab/isorisk/pkg/domain/types"
)

type assessmentRepository struct {
	mu          sync.RWMutex
	assessments map[model.AssessmentID]*model.Assessment
}

func newAssessmentRepository() *assessmentRepository {
	return &assessmentRepository{
		assessments: make(map[model.AssessmentID]*model.Assessment),
	}
}

func (r *assessmentRepository) Create(ctx context.Context, assessment *model.Assessment) (*model.Assessment, error) {
	if assessment.ID == "" {
		return nil, goerr.New("assessment ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.assessments[assessment.ID]; exists {
		return nil, goerr.Wrap(ErrAlreadyExists, "assessment already exists", goerr.V("id", assessment.ID))
	}

	created := assessment.Clone()
	if created.SubmittedAt.IsZero() {
		created.SubmittedAt = time.Now().UTC()
	}
	r.assessments[created.ID] = created

	// Return a copy to prevent external modification
	return created.Clone(), nil
}

func (r *assessmentRepository) Get(ctx context.Context, id model.AssessmentID) (*model.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	assessment, exists := r.assessments[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
	}

	return assessment.Clone(), nil
}

func (r *assessmentRepository) List(ctx context.Context) ([]*model.Assessment, error) {
	return r.filter(func(*model.Assessment) bool { return true }), nil
}

func (r *assessmentRepository) ListByLevel(ctx context.Context, level types.RiskLevel) ([]*model.Assessment, error) {
	return r.filter(func(a *model.Assessment) bool { return a.Level() == level }), nil
}

// filter returns copies of the matching assessments, newest submission first
func (r *assessmentRepository) filter(match func(*model.Assessment) bool) []*model.Assessment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	assessments := make([]*model.Assessment, 0, len(r.assessments))
	for _, assessment := range r.assessments {
		if match(assessment) {
			assessments = append(assessments, assessment.Clone())
		}
	}

	slices.SortFunc(assessments, func(a, b *model.Assessment) int {
		if c := b.SubmittedAt.Compare(a.SubmittedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	return assessments
}

func (r *assessmentRepository) UpdateReviewReminder(ctx context.Context, id model.AssessmentID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	assessment, exists := r.assessments[id]
	if !exists {
		return goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
	}

	assessment.LastReviewReminderAt = at.UTC()
	return nil
}

func (r *assessmentRepository) Delete(ctx context.Context, id model.AssessmentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.assessments[id]; !exists {
		return goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
	}

	delete(r.assessments, id)
	return nil
}
