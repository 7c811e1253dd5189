package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/isorisk/pkg/utils/errutil"
	"github.com/secmon-lab/isorisk/pkg/utils/logging"
)

// SendDueReviewReminders posts a reminder for every assessment whose review interval has
// elapsed at now and stamps it. It returns the number of reminders sent. A failing reminder is
// logged and skipped so that one bad entry does not block the others.
func (uc *AssessmentUseCase) SendDueReviewReminders(ctx context.Context, now time.Time) (int, error) {
	if uc.notifier == nil {
		return 0, nil
	}

	assessments, err := uc.List(ctx)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, a := range assessments {
		if !a.ReviewDue(now) {
			continue
		}

		if err := uc.notifier.NotifyReviewDue(ctx, a); err != nil {
			_ = errutil.Handle(ctx, goerr.Wrap(err, "failed to send review reminder", goerr.V(AssessmentIDKey, a.ID)),
				"review reminder failed")
			continue
		}

		if err := uc.repo.Assessment().UpdateReviewReminder(ctx, a.ID, now); err != nil {
			return sent, goerr.Wrap(err, "failed to record review reminder", goerr.V(AssessmentIDKey, a.ID))
		}
		sent++
	}

	if uc.metrics != nil && sent > 0 {
		uc.metrics.ObserveReviewReminders(sent)
	}
	if sent > 0 {
		logging.From(ctx).Info("review reminders sent", "count", sent)
	}
	return sent, nil
}
