package insights

import (
	"testing"

	"github.com/google/uuid"

	"example.com/finwell/backend/internal/models"
)

func expense(amount float64) models.Transaction {
	category := models.ExpenseCategoryNeeds
	return models.Transaction{
		ID:       uuid.New(),
		Type:     models.TransactionTypeExpense,
		Amount:   amount,
		Category: &category,
	}
}

func savings(amount float64) models.Transaction {
	return models.Transaction{
		ID:     uuid.New(),
		Type:   models.TransactionTypeSavings,
		Amount: amount,
	}
}

// TestHealthScoreEmptySnapshot проверяет дефолты при пустом снимке данных.
func TestHealthScoreEmptySnapshot(t *testing.T) {
	result := CalculateHealthScore(nil, nil, nil, nil, 50000)

	if result.Score != 50 {
		t.Fatalf("expected score 50, got %d", result.Score)
	}
	if result.Label != HealthLabelAverage {
		t.Fatalf("expected label Average, got %s", result.Label)
	}

	breakdown := result.Breakdown
	if breakdown.BudgetAdherence != 100 {
		t.Fatalf("expected budget adherence 100, got %d", breakdown.BudgetAdherence)
	}
	if breakdown.SavingsRate != 0 {
		t.Fatalf("expected savings rate 0, got %d", breakdown.SavingsRate)
	}
	if breakdown.BillsPunctuality != 100 {
		t.Fatalf("expected bills punctuality 100, got %d", breakdown.BillsPunctuality)
	}
	if breakdown.ChallengeParticipation != 0 {
		t.Fatalf("expected challenge participation 0, got %d", breakdown.ChallengeParticipation)
	}
}

// TestBudgetAdherenceBounds проверяет границы фактора соблюдения бюджета.
func TestBudgetAdherenceBounds(t *testing.T) {
	budget := &models.Budget{MonthlyLimit: 1000}

	result := CalculateHealthScore(nil, budget, nil, nil, 0)
	if result.Breakdown.BudgetAdherence != 100 {
		t.Fatalf("expected adherence 100 with no expenses, got %d", result.Breakdown.BudgetAdherence)
	}

	result = CalculateHealthScore([]models.Transaction{expense(500)}, budget, nil, nil, 0)
	if result.Breakdown.BudgetAdherence != 50 {
		t.Fatalf("expected adherence 50, got %d", result.Breakdown.BudgetAdherence)
	}

	result = CalculateHealthScore([]models.Transaction{expense(1500)}, budget, nil, nil, 0)
	if result.Breakdown.BudgetAdherence != 0 {
		t.Fatalf("expected adherence 0 when over limit, got %d", result.Breakdown.BudgetAdherence)
	}
}

// TestBudgetAdherenceMonotonic проверяет невозрастание фактора при росте трат.
func TestBudgetAdherenceMonotonic(t *testing.T) {
	budget := &models.Budget{MonthlyLimit: 2000}

	previous := 101
	for _, spent := range []float64{0, 400, 800, 1200, 1600, 2000, 2400} {
		result := CalculateHealthScore([]models.Transaction{expense(spent)}, budget, nil, nil, 0)
		adherence := result.Breakdown.BudgetAdherence
		if adherence > previous {
			t.Fatalf("adherence increased from %d to %d at spent=%v", previous, adherence, spent)
		}
		previous = adherence
	}
}

// TestSavingsRateTarget проверяет цель в 20% дохода.
func TestSavingsRateTarget(t *testing.T) {
	result := CalculateHealthScore([]models.Transaction{savings(2000)}, nil, nil, nil, 10000)
	if result.Breakdown.SavingsRate != 100 {
		t.Fatalf("expected savings rate 100 at 20%% of income, got %d", result.Breakdown.SavingsRate)
	}

	result = CalculateHealthScore([]models.Transaction{savings(1000)}, nil, nil, nil, 10000)
	if result.Breakdown.SavingsRate != 50 {
		t.Fatalf("expected savings rate 50 at 10%% of income, got %d", result.Breakdown.SavingsRate)
	}

	result = CalculateHealthScore([]models.Transaction{savings(2000)}, nil, nil, nil, 0)
	if result.Breakdown.SavingsRate != 0 {
		t.Fatalf("expected savings rate 0 with no income, got %d", result.Breakdown.SavingsRate)
	}
}

// TestBillsPunctuality проверяет долю оплаченных счетов.
func TestBillsPunctuality(t *testing.T) {
	bills := []models.Bill{
		{ID: uuid.New(), IsPaid: true},
		{ID: uuid.New(), IsPaid: true},
		{ID: uuid.New(), IsPaid: true},
		{ID: uuid.New(), IsPaid: false},
	}

	result := CalculateHealthScore(nil, nil, bills, nil, 0)
	if result.Breakdown.BillsPunctuality != 75 {
		t.Fatalf("expected punctuality 75, got %d", result.Breakdown.BillsPunctuality)
	}
}

// TestChallengeParticipation проверяет усреднение прогресса по челленджам.
func TestChallengeParticipation(t *testing.T) {
	challenges := []models.Challenge{
		{Status: models.ChallengeStatusActive, TargetAmount: 1000, SavedAmount: 500},
		{Status: models.ChallengeStatusCompleted, TargetAmount: 1000, SavedAmount: 2000},
		{Status: models.ChallengeStatusAbandoned, TargetAmount: 1000, SavedAmount: 1000},
	}

	// Прогресс выше цели урезается до 1; заброшенный челлендж не участвует.
	result := CalculateHealthScore(nil, nil, nil, challenges, 0)
	if result.Breakdown.ChallengeParticipation != 75 {
		t.Fatalf("expected participation 75, got %d", result.Breakdown.ChallengeParticipation)
	}
}

// TestChallengeZeroTarget проверяет защиту от деления на ноль в цели.
func TestChallengeZeroTarget(t *testing.T) {
	challenges := []models.Challenge{
		{Status: models.ChallengeStatusActive, TargetAmount: 0, SavedAmount: 100},
		{Status: models.ChallengeStatusActive, TargetAmount: 1000, SavedAmount: 1000},
	}

	result := CalculateHealthScore(nil, nil, nil, challenges, 0)
	if result.Breakdown.ChallengeParticipation != 50 {
		t.Fatalf("expected participation 50, got %d", result.Breakdown.ChallengeParticipation)
	}
}

// TestHealthLabelBoundaries проверяет пороги меток Good/Average/Poor.
func TestHealthLabelBoundaries(t *testing.T) {
	// Без бюджета и счетов фиксированы 30+20 баллов; норма сбережений добирает остальное.

	result := CalculateHealthScore([]models.Transaction{savings(2000)}, nil, nil, nil, 10000)
	if result.Score != 80 || result.Label != HealthLabelGood {
		t.Fatalf("expected 80/Good, got %d/%s", result.Score, result.Label)
	}

	result = CalculateHealthScore([]models.Transaction{savings(1900)}, nil, nil, nil, 10000)
	if result.Score != 79 || result.Label != HealthLabelAverage {
		t.Fatalf("expected 79/Average, got %d/%s", result.Score, result.Label)
	}

	result = CalculateHealthScore(nil, nil, nil, nil, 10000)
	if result.Score != 50 || result.Label != HealthLabelAverage {
		t.Fatalf("expected 50/Average, got %d/%s", result.Score, result.Label)
	}

	budget := &models.Budget{MonthlyLimit: 1000}
	result = CalculateHealthScore([]models.Transaction{expense(35)}, budget, nil, nil, 0)
	if result.Score != 49 || result.Label != HealthLabelPoor {
		t.Fatalf("expected 49/Poor, got %d/%s", result.Score, result.Label)
	}
}

// TestHealthScoreRange проверяет, что итог всегда в пределах 0-100.
func TestHealthScoreRange(t *testing.T) {
	budget := &models.Budget{MonthlyLimit: 100}
	transactions := []models.Transaction{expense(1e9), savings(1e9)}

	result := CalculateHealthScore(transactions, budget, nil, nil, 1)
	if result.Score < 0 || result.Score > 100 {
		t.Fatalf("score out of range: %d", result.Score)
	}

	result = CalculateHealthScore(nil, nil, nil, nil, 0)
	if result.Score < 0 || result.Score > 100 {
		t.Fatalf("score out of range: %d", result.Score)
	}
}
