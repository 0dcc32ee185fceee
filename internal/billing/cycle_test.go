package billing

import (
	"testing"
	"time"

	"example.com/finwell/backend/internal/models"
)

var sweepNow = time.Date(2025, time.March, 2, 8, 0, 0, 0, time.UTC)

func paidAt(t time.Time) *time.Time {
	return &t
}

// TestMonthlyCycleReset проверяет сброс ежемесячного счета в новом месяце.
func TestMonthlyCycleReset(t *testing.T) {
	bill := models.Bill{
		Frequency:  models.BillFrequencyMonthly,
		IsPaid:     true,
		LastPaidAt: paidAt(time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC)),
	}

	if !NeedsCycleReset(sweepNow, bill) {
		t.Fatal("expected reset for a bill paid last month")
	}

	bill.LastPaidAt = paidAt(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
	if NeedsCycleReset(sweepNow, bill) {
		t.Fatal("reset requested for a bill paid this month")
	}
}

// TestQuarterlyAndYearlyCycles проверяет более длинные периоды.
func TestQuarterlyAndYearlyCycles(t *testing.T) {
	quarterly := models.Bill{
		Frequency:  models.BillFrequencyQuarterly,
		IsPaid:     true,
		LastPaidAt: paidAt(time.Date(2024, time.December, 5, 0, 0, 0, 0, time.UTC)),
	}
	if !NeedsCycleReset(sweepNow, quarterly) {
		t.Fatal("expected reset three months after payment")
	}

	quarterly.LastPaidAt = paidAt(time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC))
	if NeedsCycleReset(sweepNow, quarterly) {
		t.Fatal("quarterly reset requested after only two months")
	}

	yearly := models.Bill{
		Frequency:  models.BillFrequencyYearly,
		IsPaid:     true,
		LastPaidAt: paidAt(time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)),
	}
	if !NeedsCycleReset(sweepNow, yearly) {
		t.Fatal("expected reset twelve months after payment")
	}
}

// TestCycleResetSkips проверяет случаи, в которых сброса не бывает.
func TestCycleResetSkips(t *testing.T) {
	unpaid := models.Bill{Frequency: models.BillFrequencyMonthly, IsPaid: false}
	if NeedsCycleReset(sweepNow, unpaid) {
		t.Fatal("reset requested for an unpaid bill")
	}

	oneTime := models.Bill{
		Frequency:  models.BillFrequencyOneTime,
		IsPaid:     true,
		LastPaidAt: paidAt(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)),
	}
	if NeedsCycleReset(sweepNow, oneTime) {
		t.Fatal("reset requested for a one-time bill")
	}

	noHistory := models.Bill{Frequency: models.BillFrequencyMonthly, IsPaid: true}
	if NeedsCycleReset(sweepNow, noHistory) {
		t.Fatal("reset requested without a last payment date")
	}
}
