package insights

import (
	"fmt"
	"math"
	"time"

	"example.com/finwell/backend/internal/models"
)

type AlertType string

const (
	AlertTypeDanger  AlertType = "danger"
	AlertTypeWarning AlertType = "warning"
	AlertTypeSuccess AlertType = "success"
	AlertTypeInfo    AlertType = "info"
)

// Alert — одно уведомление для пользователя. ID стабилен между пересчетами,
// чтобы фронтенд мог использовать его как ключ списка.
type Alert struct {
	ID      string    `json:"id"`
	Type    AlertType `json:"type"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
}

const billDueSoonDays = 3

// GenerateAlerts собирает список уведомлений по снимку данных за месяц.
// Список пересчитывается заново при каждом вызове; состояние не хранится.
func GenerateAlerts(
	now time.Time,
	transactions []models.Transaction,
	budget *models.Budget,
	bills []models.Bill,
	challenges []models.Challenge,
) []Alert {
	alerts := make([]Alert, 0)

	totalExpenses := SumByType(transactions, models.TransactionTypeExpense)

	if budget != nil && budget.MonthlyLimit > 0 {
		usage := totalExpenses / budget.MonthlyLimit * 100
		if usage >= 100 {
			alerts = append(alerts, Alert{
				ID:      "budget-exceeded",
				Type:    AlertTypeDanger,
				Title:   "Budget Exceeded",
				Message: fmt.Sprintf("You have spent %d%% of your monthly budget. Try to limit further spending.", int(math.Round(usage))),
			})
		} else if usage >= 80 {
			alerts = append(alerts, Alert{
				ID:      "budget-warning",
				Type:    AlertTypeWarning,
				Title:   "Budget Almost Full",
				Message: fmt.Sprintf("You have used %d%% of your monthly budget. Be mindful of spending.", int(math.Round(usage))),
			})
		}
	}

	for _, bill := range bills {
		if IsOverdue(now, bill.DueDay, bill.IsPaid) {
			alerts = append(alerts, Alert{
				ID:      "bill-overdue-" + bill.ID.String(),
				Type:    AlertTypeDanger,
				Title:   "Bill Overdue",
				Message: fmt.Sprintf("%s (₹%v) was due on the %dth. Pay it as soon as possible.", bill.Name, bill.Amount, bill.DueDay),
			})
		} else if !bill.IsPaid && IsDueSoon(now, bill.DueDay, billDueSoonDays) {
			alerts = append(alerts, Alert{
				ID:      "bill-due-" + bill.ID.String(),
				Type:    AlertTypeWarning,
				Title:   "Bill Due Soon",
				Message: fmt.Sprintf("%s (₹%v) is due on the %dth.", bill.Name, bill.Amount, bill.DueDay),
			})
		}
	}

	if budget != nil && budget.SavingGoal > 0 {
		totalSavings := SumByType(transactions, models.TransactionTypeSavings)
		expectedPace := budget.SavingGoal / float64(DaysInMonth(now)) * float64(now.Day())

		if totalSavings < expectedPace*0.5 {
			alerts = append(alerts, Alert{
				ID:      "savings-behind",
				Type:    AlertTypeWarning,
				Title:   "Savings Behind Target",
				Message: fmt.Sprintf("Save ₹%d more to stay on track for your monthly goal.", int(math.Round(expectedPace-totalSavings))),
			})
		}
	}

	for _, challenge := range challenges {
		if challenge.Status != models.ChallengeStatusActive {
			continue
		}
		if len(challenge.CheckIns) < 5 {
			continue
		}
		if !recentStreak(challenge.CheckIns, 5) {
			continue
		}
		alerts = append(alerts, Alert{
			ID:      "streak-" + challenge.ID.String(),
			Type:    AlertTypeSuccess,
			Title:   "Saving Streak!",
			Message: fmt.Sprintf("You're on a %d-day streak in %q! Keep it up!", len(challenge.CheckIns), challenge.Title),
		})
	}

	if budget == nil {
		alerts = append(alerts, Alert{
			ID:      "no-budget",
			Type:    AlertTypeInfo,
			Title:   "Set Your Budget",
			Message: "Set a monthly budget to track your spending and get personalized insights.",
		})
	}

	return alerts
}

func recentStreak(checkIns []models.CheckIn, length int) bool {
	for _, checkIn := range checkIns[len(checkIns)-length:] {
		if !checkIn.Completed {
			return false
		}
	}
	return true
}
