package background

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func newTestManager() *Manager {
	return NewManager(NewBus(), nil)
}

// S1 — Completion round trip.
func TestRunInBackgroundCompletes(t *testing.T) {
	m := newTestManager()

	id := m.RunInBackground(func(ctx context.Context) (string, error) {
		return "done", nil
	}, TaskShell)

	if id == "" || id[0] != 'b' {
		t.Fatalf("id = %q, want b-prefixed", id)
	}

	snap, err := m.GetOutput(id, true, 5*time.Second)
	if err != nil {
		t.Fatalf("GetOutput: %v", err)
	}
	if snap.Status != StatusCompleted || snap.Output != "done" {
		t.Fatalf("snapshot = %+v, want completed/done", snap)
	}

	events := m.DrainNotifications()
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	if events[0].TaskID != id || events[0].Status != StatusCompleted || events[0].Summary != "done" {
		t.Fatalf("event = %+v", events[0])
	}

	if got := m.DrainNotifications(); len(got) != 0 {
		t.Fatalf("second drain = %v, want empty", got)
	}
}

// S2 — Failure capture.
func TestRunInBackgroundCapturesFailure(t *testing.T) {
	m := newTestManager()

	id := m.RunInBackground(func(ctx context.Context) (string, error) {
		return "", errors.New("boom")
	}, TaskSubAgent)

	if id[0] != 'a' {
		t.Fatalf("id = %q, want a-prefixed", id)
	}

	snap, err := m.GetOutput(id, true, 5*time.Second)
	if err != nil {
		t.Fatalf("GetOutput: %v", err)
	}
	if snap.Status != StatusError {
		t.Fatalf("status = %v, want error", snap.Status)
	}
	if !strings.HasPrefix(snap.Output, "Error:") {
		t.Fatalf("output = %q, want Error: prefix", snap.Output)
	}

	events := m.DrainNotifications()
	if len(events) != 1 || events[0].Status != StatusError {
		t.Fatalf("events = %+v", events)
	}
}

// S3 — Parallel throughput.
func TestParallelTasksRunConcurrently(t *testing.T) {
	m := newTestManager()

	start := time.Now()
	ids := make([]string, 3)
	delays := []time.Duration{50 * time.Millisecond, 100 * time.Millisecond, 150 * time.Millisecond}
	for i, d := range delays {
		d := d
		ids[i] = m.RunInBackground(func(ctx context.Context) (string, error) {
			time.Sleep(d)
			return "ok", nil
		}, TaskShell)
	}

	for _, id := range ids {
		snap, err := m.GetOutput(id, true, 2*time.Second)
		if err != nil {
			t.Fatalf("GetOutput(%s): %v", id, err)
		}
		if snap.Status != StatusCompleted {
			t.Fatalf("task %s status = %v", id, snap.Status)
		}
	}

	if elapsed := time.Since(start); elapsed >= 300*time.Millisecond {
		t.Fatalf("elapsed = %v, want < 300ms (proves parallelism)", elapsed)
	}
}

func TestGetOutputNonBlockingSnapshotsRunning(t *testing.T) {
	m := newTestManager()
	release := make(chan struct{})

	id := m.RunInBackground(func(ctx context.Context) (string, error) {
		<-release
		return "ok", nil
	}, TaskShell)

	snap, err := m.GetOutput(id, false, 0)
	if err != nil {
		t.Fatalf("GetOutput: %v", err)
	}
	if snap.Status != StatusRunning {
		t.Fatalf("status = %v, want running", snap.Status)
	}
	close(release)
}

func TestGetOutputBlockingTimesOut(t *testing.T) {
	m := newTestManager()
	release := make(chan struct{})

	id := m.RunInBackground(func(ctx context.Context) (string, error) {
		<-release
		return "ok", nil
	}, TaskShell)

	start := time.Now()
	snap, err := m.GetOutput(id, true, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("GetOutput: %v", err)
	}
	if snap.Status != StatusRunning {
		t.Fatalf("status = %v, want running (timeout)", snap.Status)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Fatalf("elapsed = %v, expiry should be near the 50ms timeout", elapsed)
	}
	close(release)
}

func TestMultipleBlockingCallersReleasedTogether(t *testing.T) {
	m := newTestManager()
	id := m.RunInBackground(func(ctx context.Context) (string, error) {
		time.Sleep(50 * time.Millisecond)
		return "ok", nil
	}, TaskShell)

	results := make(chan Snapshot, 3)
	for i := 0; i < 3; i++ {
		go func() {
			snap, _ := m.GetOutput(id, true, 2*time.Second)
			results <- snap
		}()
	}

	for i := 0; i < 3; i++ {
		snap := <-results
		if snap.Status != StatusCompleted {
			t.Fatalf("caller %d saw status %v", i, snap.Status)
		}
	}
}

// S: stop_task semantics — cooperative cancel, stopped tasks emit no notification.
func TestStopTaskIsImmediateAndSilent(t *testing.T) {
	m := newTestManager()
	cancelled := make(chan struct{})

	id := m.RunInBackground(func(ctx context.Context) (string, error) {
		<-ctx.Done()
		close(cancelled)
		return "", ctx.Err()
	}, TaskShell)

	snap, err := m.StopTask(id)
	if err != nil {
		t.Fatalf("StopTask: %v", err)
	}
	if snap.Status != StatusStopped {
		t.Fatalf("status = %v, want stopped", snap.Status)
	}

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("work never observed cancellation")
	}

	// Give the await goroutine a moment to drain the (discarded) error.
	time.Sleep(50 * time.Millisecond)

	if events := m.DrainNotifications(); len(events) != 0 {
		t.Fatalf("events = %+v, want none for a stopped task", events)
	}

	// Idempotent: stopping again reports the same terminal status.
	snap2, err := m.StopTask(id)
	if err != nil {
		t.Fatalf("second StopTask: %v", err)
	}
	if snap2.Status != StatusStopped {
		t.Fatalf("second status = %v, want stopped", snap2.Status)
	}
}

func TestGetOutputUnknownID(t *testing.T) {
	m := newTestManager()
	if _, err := m.GetOutput("b999-nope", false, 0); err == nil {
		t.Fatal("expected not-found error")
	}
}

func TestSummaryTruncatedAt500Characters(t *testing.T) {
	m := newTestManager()
	long := strings.Repeat("x", 1000)

	id := m.RunInBackground(func(ctx context.Context) (string, error) {
		return long, nil
	}, TaskShell)

	if _, err := m.GetOutput(id, true, time.Second); err != nil {
		t.Fatalf("GetOutput: %v", err)
	}

	events := m.DrainNotifications()
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	if len(events[0].Summary) != summaryLimit {
		t.Fatalf("summary len = %d, want %d", len(events[0].Summary), summaryLimit)
	}
}
