package handlers

import "testing"

// TestNormalizeEMIDisabled проверяет сброс полей EMI без признака EMI.
func TestNormalizeEMIDisabled(t *testing.T) {
	months := 12
	total, completed := normalizeEMI(false, &months)

	if total != nil || completed != nil {
		t.Fatal("expected nil EMI fields without EMI flag")
	}
}

// TestNormalizeEMIEnabled проверяет нулевой стартовый прогресс EMI.
func TestNormalizeEMIEnabled(t *testing.T) {
	months := 12
	total, completed := normalizeEMI(true, &months)

	if total == nil || *total != 12 {
		t.Fatalf("expected total months 12, got %v", total)
	}
	if completed == nil || *completed != 0 {
		t.Fatalf("expected completed months 0, got %v", completed)
	}
}
