package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/isorisk/pkg/domain/types"
	"github.com/secmon-lab/isorisk/pkg/repository/memory"
	"github.com/secmon-lab/isorisk/pkg/usecase"
)

func TestSendDueReviewReminders(t *testing.T) {
	repo := memory.New()
	notifier := newMockNotifier()
	metrics := newMockMetrics()
	uc := usecase.New(repo,
		usecase.WithNotifier(notifier),
		usecase.WithMetrics(metrics),
		usecase.WithClock(fixedClock(submittedAt)),
	)
	ctx := context.Background()

	monthly := newDraft(3, 4, 2)
	annual := newDraft(3, 4, 2)
	annual.ReviewFrequency = types.ReviewAnnually
	unscheduled := newDraft(3, 4, 2)
	unscheduled.ReviewFrequency = "ad_hoc"

	created, err := uc.Assessment.Submit(ctx, monthly)
	gt.NoError(t, err).Required()
	_, err = uc.Assessment.Submit(ctx, annual)
	gt.NoError(t, err).Required()
	_, err = uc.Assessment.Submit(ctx, unscheduled)
	gt.NoError(t, err).Required()

	month, _ := types.ReviewMonthly.Interval()

	t.Run("nothing is due before the interval", func(t *testing.T) {
		sent, err := uc.Assessment.SendDueReviewReminders(ctx, submittedAt.Add(month/2))
		gt.NoError(t, err).Required()
		gt.Value(t, sent).Equal(0)
	})

	t.Run("fires once per elapsed interval", func(t *testing.T) {
		at := submittedAt.Add(month)
		sent, err := uc.Assessment.SendDueReviewReminders(ctx, at)
		gt.NoError(t, err).Required()
		gt.Value(t, sent).Equal(1)

		stored, err := repo.Assessment().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Bool(t, stored.LastReviewReminderAt.Equal(at)).True()

		sent, err = uc.Assessment.SendDueReviewReminders(ctx, at)
		gt.NoError(t, err).Required()
		gt.Value(t, sent).Equal(0)

		sent, err = uc.Assessment.SendDueReviewReminders(ctx, at.Add(month))
		gt.NoError(t, err).Required()
		gt.Value(t, sent).Equal(1)

		gt.Value(t, notifier.reviewDueCount()).Equal(2)
		gt.Value(t, metrics.reminders).Equal(2)
	})

	t.Run("failed reminder is not stamped", func(t *testing.T) {
		notifier.reviewErr = errors.New("slack down")
		at := submittedAt.Add(3 * month)
		sent, err := uc.Assessment.SendDueReviewReminders(ctx, at)
		gt.NoError(t, err).Required()
		gt.Value(t, sent).Equal(0)

		stored, err := repo.Assessment().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Bool(t, stored.LastReviewReminderAt.Before(at)).True()
	})
}

func TestSendDueReviewReminders_WithoutNotifier(t *testing.T) {
	uc := usecase.New(memory.New(), usecase.WithClock(fixedClock(submittedAt)))
	_, err := uc.Assessment.Submit(context.Background(), newDraft(3, 4, 2))
	gt.NoError(t, err).Required()

	sent, err := uc.Assessment.SendDueReviewReminders(context.Background(), submittedAt.AddDate(1, 0, 0))
	gt.NoError(t, err).Required()
	gt.Value(t, sent).Equal(0)
}
