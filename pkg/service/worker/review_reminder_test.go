package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/isorisk/pkg/service/worker"
)

type mockReminder struct {
	mu    sync.Mutex
	calls []time.Time
	err   error
	ch    chan struct{}
}

func newMockReminder() *mockReminder {
	return &mockReminder{ch: make(chan struct{}, 64)}
}

func (m *mockReminder) SendDueReviewReminders(ctx context.Context, now time.Time) (int, error) {
	m.mu.Lock()
	m.calls = append(m.calls, now)
	err := m.err
	m.mu.Unlock()

	select {
	case m.ch <- struct{}{}:
	default:
	}
	if err != nil {
		return 0, err
	}
	return 1, nil
}

func (m *mockReminder) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *mockReminder) wait(t *testing.T, n int) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for i := 0; i < n; i++ {
		select {
		case <-m.ch:
		case <-deadline:
			t.Fatalf("expected %d calls, got %d", n, m.callCount())
		}
	}
}

func TestReviewReminderWorker_InitialRunAndTicks(t *testing.T) {
	reminder := newMockReminder()
	w := worker.NewReviewReminderWorker(reminder, 20*time.Millisecond)
	fixed := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	w.SetClock(func() time.Time { return fixed })

	gt.NoError(t, w.Start(context.Background())).Required()
	reminder.wait(t, 3)
	w.Stop()

	reminder.mu.Lock()
	defer reminder.mu.Unlock()
	gt.Bool(t, len(reminder.calls) >= 3).True()
	gt.Bool(t, reminder.calls[0].Equal(fixed)).True()
}

func TestReviewReminderWorker_ContinuesAfterError(t *testing.T) {
	reminder := newMockReminder()
	reminder.err = errors.New("firestore unavailable")
	w := worker.NewReviewReminderWorker(reminder, 10*time.Millisecond)

	gt.NoError(t, w.Start(context.Background())).Required()
	reminder.wait(t, 2)
	w.Stop()
}

func TestReviewReminderWorker_StopsOnContextCancel(t *testing.T) {
	reminder := newMockReminder()
	w := worker.NewReviewReminderWorker(reminder, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	gt.NoError(t, w.Start(ctx)).Required()
	reminder.wait(t, 1)
	cancel()

	select {
	case <-w.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}
	gt.Value(t, reminder.callCount()).Equal(1)
}
