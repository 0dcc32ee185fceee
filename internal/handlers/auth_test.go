package handlers

import "testing"

// TestNormalizeName проверяет обрезку пробелов и отбрасывание пустых имен.
func TestNormalizeName(t *testing.T) {
	if normalizeName(nil) != nil {
		t.Fatal("expected nil for nil name")
	}

	empty := "   "
	if normalizeName(&empty) != nil {
		t.Fatal("expected nil for blank name")
	}

	padded := "  Priya  "
	result := normalizeName(&padded)
	if result == nil || *result != "Priya" {
		t.Fatalf("expected trimmed name, got %v", result)
	}
}
