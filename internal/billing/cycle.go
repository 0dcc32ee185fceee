package billing

import (
	"time"

	"example.com/finwell/backend/internal/models"
)

// NeedsCycleReset сообщает, начался ли для оплаченного периодического счета
// новый платежный период с момента последней оплаты. Разовые и неоплаченные
// счета никогда не сбрасываются.
func NeedsCycleReset(now time.Time, bill models.Bill) bool {
	if !bill.IsPaid || bill.Frequency == models.BillFrequencyOneTime {
		return false
	}
	if bill.LastPaidAt == nil {
		return false
	}

	paid := *bill.LastPaidAt
	monthsSince := (now.Year()-paid.Year())*12 + int(now.Month()) - int(paid.Month())

	switch bill.Frequency {
	case models.BillFrequencyMonthly:
		return monthsSince >= 1
	case models.BillFrequencyQuarterly:
		return monthsSince >= 3
	case models.BillFrequencyYearly:
		return monthsSince >= 12
	}

	return false
}
