package utils

import (
	"strings"
	"testing"
)

func TestGenerateTransactionIDFormat(t *testing.T) {
	id := GenerateTransactionID()
	if !strings.HasPrefix(id, "KONZE-") {
		t.Fatalf("expected KONZE- prefix, got %q", id)
	}
	suffix := strings.TrimPrefix(id, "KONZE-")
	if len(suffix) != 8 {
		t.Fatalf("expected 8 char suffix, got %q", suffix)
	}
	if suffix != strings.ToUpper(suffix) {
		t.Fatalf("suffix not uppercase: %q", suffix)
	}
}

func TestGenerateTransactionIDSampleUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := GenerateTransactionID()
		if seen[id] {
			t.Fatalf("duplicate transaction id in sample: %q", id)
		}
		seen[id] = true
	}
}
