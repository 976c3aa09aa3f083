package util

import (
	"testing"
	"time"
)

func TestRemainingSeconds(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		duration int
		elapsed  time.Duration
		want     int
	}{
		{"just started", 30, 0, 1800},
		{"halfway", 30, 15 * time.Minute, 900},
		{"exactly expired", 30, 30 * time.Minute, 0},
		{"past expiry clamps to zero", 30, 45 * time.Minute, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemainingSeconds(start, tt.duration, start.Add(tt.elapsed))
			if got != tt.want {
				t.Errorf("RemainingSeconds() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsTimeExpired(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	if IsTimeExpired(start, 30, start.Add(29*time.Minute)) {
		t.Error("expired before duration elapsed")
	}
	if !IsTimeExpired(start, 30, start.Add(30*time.Minute)) {
		t.Error("not expired at exact duration")
	}
	if IsTimeExpired(start, 0, start.Add(1000*time.Hour)) {
		t.Error("zero duration must never expire")
	}
}
