package insights

import (
	"math"

	"example.com/finwell/backend/internal/models"
)

type HealthLabel string

const (
	HealthLabelGood    HealthLabel = "Good"
	HealthLabelAverage HealthLabel = "Average"
	HealthLabelPoor    HealthLabel = "Poor"

	colorGood    = "#22c55e"
	colorAverage = "#f59e0b"
	colorPoor    = "#ef4444"
)

type HealthBreakdown struct {
	BudgetAdherence        int `json:"budget_adherence"`
	SavingsRate            int `json:"savings_rate"`
	BillsPunctuality       int `json:"bills_punctuality"`
	ChallengeParticipation int `json:"challenge_participation"`
}

type HealthResult struct {
	Score     int             `json:"score"`
	Label     HealthLabel     `json:"label"`
	Color     string          `json:"color"`
	Breakdown HealthBreakdown `json:"breakdown"`
}

// CalculateHealthScore считает составную оценку финансового здоровья 0-100
// по четырем факторам: соблюдение бюджета (30%), норма сбережений (30%),
// оплата счетов (20%) и участие в челленджах (20%).
func CalculateHealthScore(
	transactions []models.Transaction,
	budget *models.Budget,
	bills []models.Bill,
	challenges []models.Challenge,
	monthlyIncome float64,
) HealthResult {
	totalExpenses := SumByType(transactions, models.TransactionTypeExpense)
	totalSavings := SumByType(transactions, models.TransactionTypeSavings)

	// Нет бюджета — фактор не штрафуется; напоминание выдает генератор алертов.
	budgetAdherence := 100.0
	if budget != nil && budget.MonthlyLimit > 0 {
		budgetAdherence = clamp((budget.MonthlyLimit-totalExpenses)/budget.MonthlyLimit*100, 0, 100)
	}

	// Цель — сбережения не ниже 20% дохода.
	savingsRate := 0.0
	if monthlyIncome > 0 {
		rate := totalSavings / monthlyIncome * 100
		savingsRate = clamp(rate/20*100, 0, 100)
	}

	billsPunctuality := 100.0
	if len(bills) > 0 {
		paid := 0
		for _, bill := range bills {
			if bill.IsPaid {
				paid++
			}
		}
		billsPunctuality = float64(paid) / float64(len(bills)) * 100
	}

	challengeParticipation := 0.0
	counted := 0
	progress := 0.0
	for _, challenge := range challenges {
		if challenge.Status != models.ChallengeStatusActive && challenge.Status != models.ChallengeStatusCompleted {
			continue
		}
		counted++
		if challenge.TargetAmount > 0 {
			progress += math.Min(1, challenge.SavedAmount/challenge.TargetAmount)
		}
	}
	if counted > 0 {
		challengeParticipation = progress / float64(counted) * 100
	}

	score := int(math.Round(budgetAdherence*0.3 + savingsRate*0.3 + billsPunctuality*0.2 + challengeParticipation*0.2))

	label := HealthLabelPoor
	color := colorPoor
	switch {
	case score >= 80:
		label = HealthLabelGood
		color = colorGood
	case score >= 50:
		label = HealthLabelAverage
		color = colorAverage
	}

	return HealthResult{
		Score: score,
		Label: label,
		Color: color,
		Breakdown: HealthBreakdown{
			BudgetAdherence:        int(math.Round(budgetAdherence)),
			SavingsRate:            int(math.Round(savingsRate)),
			BillsPunctuality:       int(math.Round(billsPunctuality)),
			ChallengeParticipation: int(math.Round(challengeParticipation)),
		},
	}
}

// SumByType суммирует суммы транзакций указанного типа.
func SumByType(transactions []models.Transaction, transactionType models.TransactionType) float64 {
	total := 0.0
	for _, transaction := range transactions {
		if transaction.Type == transactionType {
			total += transaction.Amount
		}
	}
	return total
}

func clamp(value, low, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
