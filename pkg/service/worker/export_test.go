package worker

import "time"

// SetClock replaces the time source of the worker for testing
func (w *ReviewReminderWorker) SetClock(now func() time.Time) {
	w.now = now
}
