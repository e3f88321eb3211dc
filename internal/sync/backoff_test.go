package sync

import (
	"testing"
	"time"
)

func TestRetryDelaySchedule(t *testing.T) {
	cases := []struct {
		previousRetries int
		want            time.Duration
	}{
		{0, 0},
		{-1, 0},
		{1, 2 * time.Second},
		{2, 10 * time.Second},
		{3, 30 * time.Second},
		{4, 30 * time.Second},
		{100, 30 * time.Second},
	}
	for _, tc := range cases {
		if got := RetryDelay(tc.previousRetries); got != tc.want {
			t.Fatalf("RetryDelay(%d) = %v, want %v", tc.previousRetries, got, tc.want)
		}
	}
}

func TestRetryDelayIsMonotonic(t *testing.T) {
	prev := time.Duration(0)
	for i := 0; i < 10; i++ {
		d := RetryDelay(i)
		if d < prev {
			t.Fatalf("RetryDelay(%d) = %v, want >= %v", i, d, prev)
		}
		prev = d
	}
}
