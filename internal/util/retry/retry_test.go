package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDo_Success(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		return nil
	}

	err := Do(context.Background(), operation)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", attempts)
	}
}

func TestDo_SucceedsAfterTransientFailures(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	}

	err := Do(context.Background(), operation,
		WithMaxAttempts(5),
		WithInterval(time.Millisecond))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	t.Parallel()
	attempts := 0
	wantErr := errors.New("still propagating")
	operation := func() error {
		attempts++
		return wantErr
	}

	err := Do(context.Background(), operation,
		WithMaxAttempts(10),
		WithInterval(time.Millisecond))
	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if attempts != 10 {
		t.Errorf("expected exactly 10 attempts, got %d", attempts)
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("expected wrapped original error, got %v", err)
	}
}

func TestDo_FixedIntervalDoesNotGrow(t *testing.T) {
	t.Parallel()
	var gaps []time.Duration
	last := time.Now()
	attempts := 0
	operation := func() error {
		now := time.Now()
		if attempts > 0 {
			gaps = append(gaps, now.Sub(last))
		}
		last = now
		attempts++
		return errors.New("transient")
	}

	interval := 20 * time.Millisecond
	_ = Do(context.Background(), operation,
		WithMaxAttempts(4),
		WithInterval(interval))

	for i, gap := range gaps {
		if gap > 4*interval {
			t.Errorf("gap %d grew to %v, expected fixed interval near %v", i, gap, interval)
		}
	}
}

func TestDo_FatalErrorShortCircuits(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		return Fatal(errors.New("quota exceeded"))
	}

	err := Do(context.Background(), operation,
		WithMaxAttempts(5),
		WithInterval(time.Millisecond))
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Errorf("expected fatal error to stop retries, got %d attempts", attempts)
	}
}

func TestDo_ContextCancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	operation := func() error {
		attempts++
		cancel()
		return errors.New("transient")
	}

	err := Do(ctx, operation,
		WithMaxAttempts(5),
		WithInterval(time.Minute))
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt before cancellation, got %d", attempts)
	}
}

func TestDo_ExponentialBackoffCapped(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		return errors.New("transient")
	}

	start := time.Now()
	_ = Do(context.Background(), operation,
		WithMaxAttempts(4),
		WithInterval(time.Millisecond),
		WithMultiplier(2.0),
		WithMaxInterval(5*time.Millisecond))
	elapsed := time.Since(start)

	if attempts != 4 {
		t.Errorf("expected 4 attempts, got %d", attempts)
	}
	// 1 + 2 + 4(capped to 5) ms of delay; generous upper bound
	if elapsed > time.Second {
		t.Errorf("backoff took too long: %v", elapsed)
	}
}

func TestFatal_NilPassthrough(t *testing.T) {
	t.Parallel()
	if Fatal(nil) != nil {
		t.Error("Fatal(nil) should return nil")
	}
}

func TestIsFatal(t *testing.T) {
	t.Parallel()
	if IsFatal(errors.New("plain")) {
		t.Error("plain error should not be fatal")
	}
	wrapped := Fatal(errors.New("boom"))
	if !IsFatal(wrapped) {
		t.Error("Fatal-wrapped error should be fatal")
	}
	double := errors.Join(errors.New("outer"), wrapped)
	if !IsFatal(double) {
		t.Error("fatal error should survive wrapping")
	}
}
