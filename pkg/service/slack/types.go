package slack

import (
	"context"

	"github.com/secmon-lab/isorisk/pkg/domain/model"
)

// Notifier posts assessment events to Slack
type Notifier interface {
	// NotifyAssessment announces a newly submitted assessment
	NotifyAssessment(ctx context.Context, assessment *model.Assessment) error

	// NotifyReviewDue reminds the channel that an assessment is due for periodic review
	NotifyReviewDue(ctx context.Context, assessment *model.Assessment) error
}
