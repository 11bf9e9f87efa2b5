package model

import "testing"

// TestStringListRoundTrip checks JSON column encoding of label lists.
func TestStringListRoundTrip(t *testing.T) {
	original := StringList{"Police Report", "Repair Estimate", "Photos"}

	value, err := original.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}

	var decoded StringList
	if err := decoded.Scan(value); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(decoded) != len(original) {
		t.Fatalf("decoded %d labels, want %d", len(decoded), len(original))
	}
	for i := range original {
		if decoded[i] != original[i] {
			t.Errorf("label %d = %q, want %q", i, decoded[i], original[i])
		}
	}
}

// TestStringListScanNil checks that a NULL column scans to an empty list.
func TestStringListScanNil(t *testing.T) {
	var list StringList
	if err := list.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("Scan(nil) produced %d entries, want 0", len(list))
	}
}
