package api

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func noSleep(delays *[]time.Duration) func(context.Context, time.Duration) error {
	return func(_ context.Context, d time.Duration) error {
		if delays != nil {
			*delays = append(*delays, d)
		}
		return nil
	}
}

func TestRetrierSucceedsOnThirdAttempt(t *testing.T) {
	calls := 0
	r := Retrier{MaxRetries: 3, BaseDelay: time.Second, Sleep: noSleep(nil)}
	err := r.Do(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("boom")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("want success, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d", calls)
	}
}

func TestRetrierExhaustionAggregates(t *testing.T) {
	calls := 0
	boom := errors.New("boom")
	r := Retrier{MaxRetries: 3, BaseDelay: time.Second, Sleep: noSleep(nil)}
	err := r.Do(context.Background(), func(context.Context) error {
		calls++
		return boom
	})
	if err == nil {
		t.Fatal("want aggregated error")
	}
	if calls != 4 {
		t.Fatalf("calls = %d, want initial try plus three retries", calls)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("aggregated error should wrap attempt errors: %v", err)
	}
	if !strings.Contains(err.Error(), "after 4 attempts") {
		t.Fatalf("error = %v", err)
	}
}

func TestRetrierBackoffCurve(t *testing.T) {
	var delays []time.Duration
	r := Retrier{MaxRetries: 3, BaseDelay: time.Second, Sleep: noSleep(&delays)}
	_ = r.Do(context.Background(), func(context.Context) error { return errors.New("x") })
	want := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}
	if len(delays) != len(want) {
		t.Fatalf("delays = %v", delays)
	}
	for i := range want {
		if delays[i] != want[i] {
			t.Fatalf("delay[%d] = %v, want %v", i, delays[i], want[i])
		}
	}
}

func TestRetrierStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	r := Retrier{MaxRetries: 5, BaseDelay: time.Millisecond}
	err := r.Do(ctx, func(context.Context) error {
		calls++
		cancel()
		return errors.New("x")
	})
	if err == nil {
		t.Fatal("want error")
	}
	if calls != 1 {
		t.Fatalf("calls = %d, cancellation should stop retries", calls)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error should carry cancellation: %v", err)
	}
}
