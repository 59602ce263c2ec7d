package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastConfig(maxRetries int) *Config {
	return &Config{
		MaxRetries:    maxRetries,
		BackoffFactor: 1.0,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		Jitter:        time.Millisecond,
	}
}

func TestRetry_SuccessOnFirstTry(t *testing.T) {
	ctx := context.Background()
	retrier := NewRetrier(fastConfig(3))

	counter := 0
	err := retrier.Do(ctx, func() error {
		counter++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counter != 1 {
		t.Errorf("expected 1 attempt, got %d", counter)
	}
}

func TestRetry_SuccessAfterRetries(t *testing.T) {
	ctx := context.Background()
	retrier := NewRetrier(fastConfig(3))

	counter := 0
	err := retrier.Do(ctx, func() error {
		counter++
		if counter < 3 {
			return errors.New("temporary error")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counter != 3 {
		t.Errorf("expected 3 attempts, got %d", counter)
	}
}

func TestRetry_BudgetExhausted(t *testing.T) {
	ctx := context.Background()
	retrier := NewRetrier(fastConfig(2))

	counter := 0
	wantErr := errors.New("always fails")
	err := retrier.Do(ctx, func() error {
		counter++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected last error, got %v", err)
	}
	if counter != 3 {
		t.Errorf("expected 3 attempts, got %d", counter)
	}
}

func TestRetry_ZeroRetriesRunsOnce(t *testing.T) {
	ctx := context.Background()
	retrier := NewRetrier(fastConfig(0))

	counter := 0
	err := retrier.Do(ctx, func() error {
		counter++
		return errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if counter != 1 {
		t.Errorf("expected single attempt, got %d", counter)
	}
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	retrier := NewRetrier(&Config{
		MaxRetries:    5,
		BackoffFactor: 1.0,
		InitialDelay:  time.Second,
		MaxDelay:      time.Second,
	})

	cancel()
	err := retrier.Do(ctx, func() error {
		return errors.New("fails once before waiting")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
