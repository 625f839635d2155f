package coordinator

import (
	"math/rand"
	"testing"
	"time"
)

func TestNextBackoffDelayDeterministicNoJitter(t *testing.T) {
	cfg := BackoffConfig{
		InitialDelay: 100 * time.Millisecond,
		Multiplier:   2.0,
		MaxDelay:     1 * time.Second,
		Jitter:       false,
	}

	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{4, 800 * time.Millisecond},
		{5, 1 * time.Second},
		{9, 1 * time.Second},
	}
	for _, tc := range cases {
		if got := NextBackoffDelay(cfg, tc.attempt, nil); got != tc.want {
			t.Fatalf("attempt %d: got %v, want %v", tc.attempt, got, tc.want)
		}
	}
}

func TestNextBackoffDelayJitterStaysBounded(t *testing.T) {
	cfg := BackoffConfig{
		InitialDelay: 100 * time.Millisecond,
		Multiplier:   2.0,
		MaxDelay:     1 * time.Second,
		Jitter:       true,
	}
	rng := rand.New(rand.NewSource(42))
	for attempt := 2; attempt <= 8; attempt++ {
		got := NextBackoffDelay(cfg, attempt, rng)
		if got < 0 || got > time.Duration(1.5*float64(time.Second)) {
			t.Fatalf("attempt %d: jittered delay out of bounds: %v", attempt, got)
		}
	}
}

func TestNextBackoffDelayEdgeConfigs(t *testing.T) {
	if got := NextBackoffDelay(BackoffConfig{}, 3, nil); got != 0 {
		t.Fatalf("zero config should yield zero delay, got %v", got)
	}
	cfg := BackoffConfig{InitialDelay: 50 * time.Millisecond, Multiplier: 0.5}
	if got := NextBackoffDelay(cfg, 3, nil); got != 50*time.Millisecond {
		t.Fatalf("sub-1.0 multiplier should clamp, got %v", got)
	}
}
