package worker

import (
	"context"
	"time"

	"github.com/secmon-lab/isorisk/pkg/utils/logging"
)

// ReviewReminder sends reminders for assessments whose review interval elapsed at now
type ReviewReminder interface {
	SendDueReviewReminders(ctx context.Context, now time.Time) (int, error)
}

// ReviewReminderWorker periodically sends due review reminders
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
type ReviewReminderWorker struct {
	reminder ReviewReminder
	interval time.Duration
	now      func() time.Time
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewReviewReminderWorker creates a new worker
func NewReviewReminderWorker(reminder ReviewReminder, interval time.Duration) *ReviewReminderWorker {
	return &ReviewReminderWorker{
		reminder: reminder,
		interval: interval,
		now:      time.Now,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background loop. The first check runs immediately without blocking startup.
func (w *ReviewReminderWorker) Start(ctx context.Context) error {
	logging.Default().Info("review reminder worker starting",
		"interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *ReviewReminderWorker) Stop() {
	logging.Default().Info("review reminder worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("review reminder worker stopped")
}

// Done is closed when the loop exits
func (w *ReviewReminderWorker) Done() <-chan struct{} {
	return w.doneCh
}

func (w *ReviewReminderWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	w.check(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.check(ctx)

		case <-w.stopCh:
			logging.Default().Info("review reminder worker received stop signal")
			return

		case <-ctx.Done():
			logging.Default().Info("review reminder worker context cancelled")
			return
		}
	}
}

func (w *ReviewReminderWorker) check(ctx context.Context) {
	sent, err := w.reminder.SendDueReviewReminders(ctx, w.now())
	if err != nil {
		// Log error but continue worker
		logging.Default().Error("review reminder check failed (will retry next interval)",
			"error", err.Error())
		return
	}
	if sent > 0 {
		logging.Default().Info("review reminder check completed", "sent", sent)
	}
}
