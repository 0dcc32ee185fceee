package insights

import (
	"testing"
	"time"
)

// TestMonthBounds проверяет границы календарного месяца.
func TestMonthBounds(t *testing.T) {
	start, end, err := MonthBounds("2025-02")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if start.Format("2006-01-02") != "2025-02-01" {
		t.Fatalf("unexpected start: %s", start)
	}
	if end.Format("2006-01-02") != "2025-02-28" {
		t.Fatalf("unexpected end: %s", end)
	}

	if _, _, err := MonthBounds("2025/02"); err == nil {
		t.Fatal("expected error for invalid month format")
	}
}

// TestDaysInMonth проверяет длину месяца, включая февраль високосного года.
func TestDaysInMonth(t *testing.T) {
	if got := DaysInMonth(time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)); got != 31 {
		t.Fatalf("expected 31 days in March, got %d", got)
	}
	if got := DaysInMonth(time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)); got != 29 {
		t.Fatalf("expected 29 days in Feb 2024, got %d", got)
	}
}

// TestIsOverdue проверяет признак просроченного счета.
func TestIsOverdue(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

	if !IsOverdue(now, 10, false) {
		t.Fatal("expected bill due on the 10th to be overdue on the 15th")
	}
	if IsOverdue(now, 20, false) {
		t.Fatal("bill due on the 20th reported overdue on the 15th")
	}
	if IsOverdue(now, 10, true) {
		t.Fatal("paid bill reported overdue")
	}
}

// TestIsDueSoon проверяет окно "скоро к оплате".
func TestIsDueSoon(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

	if !IsDueSoon(now, 17, 3) {
		t.Fatal("expected bill due on the 17th to be due soon")
	}
	if IsDueSoon(now, 19, 3) {
		t.Fatal("bill due on the 19th reported due soon within 3 days")
	}
	if IsDueSoon(now, 10, 3) {
		t.Fatal("past due day reported as due soon")
	}
}

// TestDaysUntilDue проверяет перенос срока на следующий месяц.
func TestDaysUntilDue(t *testing.T) {
	now := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)

	if got := DaysUntilDue(now, 20); got != 5 {
		t.Fatalf("expected 5 days until the 20th, got %d", got)
	}

	// Срок 10-го уже прошел, следующий — 10 апреля.
	if got := DaysUntilDue(now, 10); got != 26 {
		t.Fatalf("expected 26 days until next month's 10th, got %d", got)
	}
}
