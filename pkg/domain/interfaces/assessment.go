package interfaces

import (
	"context"
	"time"

	"github.com/secmon-lab/isorisk/pkg/domain/model"
	"github.com/secmon-lab/isorisk/pkg/domain/types"
)

// AssessmentRepository defines the interface for submitted assessment persistence
type AssessmentRepository interface {
	// Create stores a submitted assessment. The ID must be set by the caller.
	Create(ctx context.Context, assessment *model.Assessment) (*model.Assessment, error)

	// Get retrieves an assessment by ID
	Get(ctx context.Context, id model.AssessmentID) (*model.Assessment, error)

	// List retrieves all assessments, newest submission first
	List(ctx context.Context) ([]*model.Assessment, error)

	// ListByLevel retrieves assessments of one risk level, newest submission first
	ListByLevel(ctx context.Context, level types.RiskLevel) ([]*model.Assessment, error)

	// UpdateReviewReminder records when the last review reminder was sent
	UpdateReviewReminder(ctx context.Context, id model.AssessmentID, at time.Time) error

	// Delete deletes an assessment by ID
	Delete(ctx context.Context, id model.AssessmentID) error
}
