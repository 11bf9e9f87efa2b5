package model

import (
	"testing"
	"time"
)

// TestUsableAt covers the status/expiry matrix of an upload token.
func TestUsableAt(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name   string
		status int
		expiry time.Time
		want   bool
	}{
		{"active before expiry", TokenStatusActive, now.Add(time.Hour), true},
		{"active at expiry", TokenStatusActive, now, false},
		{"active past expiry", TokenStatusActive, now.Add(-time.Hour), false},
		{"expired", TokenStatusExpired, now.Add(time.Hour), false},
		{"revoked", TokenStatusRevoked, now.Add(time.Hour), false},
		{"fulfilled", TokenStatusFulfilled, now.Add(time.Hour), false},
	}
	for _, tc := range cases {
		tok := UploadToken{Status: tc.status, ExpiresAt: tc.expiry}
		if got := tok.UsableAt(now); got != tc.want {
			t.Errorf("%s: UsableAt = %v, want %v", tc.name, got, tc.want)
		}
	}
}

// TestIsBatch checks the batch marker label.
func TestIsBatch(t *testing.T) {
	batch := UploadToken{Label: BatchLabel}
	if !batch.IsBatch() {
		t.Error("token with batch label should be batch")
	}
	bound := UploadToken{Label: "Police Report"}
	if bound.IsBatch() {
		t.Error("label-bound token should not be batch")
	}
}
