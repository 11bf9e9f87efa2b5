package worker

import (
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"
)

// TestPickRetryDelay clamps the attempt index into the delay schedule.
func TestPickRetryDelay(t *testing.T) {
	delays := []time.Duration{10 * time.Second, 30 * time.Second, 2 * time.Minute}

	if got := pickRetryDelay(1, delays); got != 10*time.Second {
		t.Errorf("attempt 1 delay = %v", got)
	}
	if got := pickRetryDelay(3, delays); got != 2*time.Minute {
		t.Errorf("attempt 3 delay = %v", got)
	}
	if got := pickRetryDelay(99, delays); got != 2*time.Minute {
		t.Errorf("overflow attempt should clamp to the last delay, got %v", got)
	}
	if got := pickRetryDelay(0, delays); got != 10*time.Second {
		t.Errorf("attempt 0 should clamp to the first delay, got %v", got)
	}
	if got := pickRetryDelay(1, nil); got != 30*time.Second {
		t.Errorf("empty schedule fallback = %v", got)
	}
}

// TestShouldRetry never retries a vanished task row.
func TestShouldRetry(t *testing.T) {
	if shouldRetry(gorm.ErrRecordNotFound) {
		t.Error("missing task row must not retry")
	}
	if !shouldRetry(errors.New("connection refused")) {
		t.Error("transient errors should retry")
	}
}
