package queue

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestRateWindowAdmitsBurst(t *testing.T) {
	w := NewRateWindow(3, time.Minute)
	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := w.Do(context.Background(), func() error { return nil }); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("expected full quota admitted without waiting, took %s", elapsed)
	}
}

func TestRateWindowDelaysPastQuota(t *testing.T) {
	w := NewRateWindow(2, 200*time.Millisecond)
	for i := 0; i < 2; i++ {
		if err := w.Do(context.Background(), func() error { return nil }); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	}
	start := time.Now()
	if err := w.Do(context.Background(), func() error { return nil }); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Fatalf("expected call past quota to wait, took %s", elapsed)
	}
}

func TestRateWindowContextCanceled(t *testing.T) {
	w := NewRateWindow(1, time.Hour)
	if err := w.Do(context.Background(), func() error { return nil }); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ran := false
	err := w.Do(ctx, func() error { ran = true; return nil })
	if err == nil {
		t.Fatalf("expected error after cancel")
	}
	if ran {
		t.Fatalf("expected op not to run after cancel")
	}
}

func TestRateWindowReturnsOpError(t *testing.T) {
	w := NewRateWindow(5, time.Minute)
	wantErr := errors.New("boom")
	err := w.Do(context.Background(), func() error { return wantErr })
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected op error, got %v", err)
	}
}

func TestRateWindowDrainWaitsForInflight(t *testing.T) {
	w := NewRateWindow(2, time.Minute)
	release := make(chan struct{})
	var finished atomic.Bool
	go func() {
		_ = w.Do(context.Background(), func() error {
			<-release
			finished.Store(true)
			return nil
		})
	}()
	time.Sleep(20 * time.Millisecond)
	close(release)
	w.Drain()
	if !finished.Load() {
		t.Fatalf("expected inflight op finished before Drain returned")
	}
}
