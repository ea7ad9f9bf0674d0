package cli

import (
	"context"
	"testing"
	"time"
)

func TestSpinnerStartStop(t *testing.T) {
	s := newSpinnerWithContext(context.Background(), "working...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if s.Cancelled() != true {
		// Stop cancels the spinner's internal context.
		t.Error("spinner context should be cancelled after Stop")
	}
}

func TestSpinnerImmediateStop(t *testing.T) {
	s := newSpinnerWithContext(context.Background(), "idle")
	done := make(chan struct{})
	go func() {
		s.Start()
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("spinner Stop deadlocked")
	}
}

func TestSpinnerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerWithContext(ctx, "cancellable")
	s.Start()
	cancel()

	time.Sleep(50 * time.Millisecond)
	if !s.Cancelled() {
		t.Error("spinner should report cancellation")
	}
	s.Stop()
}
