package insights

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"example.com/finwell/backend/internal/models"
)

// 15 марта 2025, в месяце 31 день.
var alertsNow = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

func findAlert(alerts []Alert, id string) (Alert, bool) {
	for _, alert := range alerts {
		if alert.ID == id {
			return alert, true
		}
	}
	return Alert{}, false
}

// TestNoBudgetAlert проверяет единственное напоминание при отсутствии бюджета.
func TestNoBudgetAlert(t *testing.T) {
	alerts := GenerateAlerts(alertsNow, nil, nil, nil, nil)

	if len(alerts) != 1 {
		t.Fatalf("expected exactly one alert, got %d", len(alerts))
	}
	if alerts[0].ID != "no-budget" || alerts[0].Type != AlertTypeInfo {
		t.Fatalf("unexpected alert: %+v", alerts[0])
	}

	budget := &models.Budget{MonthlyLimit: 1000}
	alerts = GenerateAlerts(alertsNow, nil, budget, nil, nil)
	if _, ok := findAlert(alerts, "no-budget"); ok {
		t.Fatal("no-budget alert emitted despite budget being set")
	}
}

// TestBudgetUsageThresholds проверяет пороги 80% и 100% расхода бюджета.
func TestBudgetUsageThresholds(t *testing.T) {
	budget := &models.Budget{MonthlyLimit: 1000}

	alerts := GenerateAlerts(alertsNow, []models.Transaction{expense(1200)}, budget, nil, nil)
	alert, ok := findAlert(alerts, "budget-exceeded")
	if !ok || alert.Type != AlertTypeDanger {
		t.Fatalf("expected danger budget-exceeded alert, got %+v", alerts)
	}
	if !strings.Contains(alert.Message, "120%") {
		t.Fatalf("expected usage percent in message, got %q", alert.Message)
	}
	if _, ok := findAlert(alerts, "budget-warning"); ok {
		t.Fatal("warning emitted alongside exceeded alert")
	}

	alerts = GenerateAlerts(alertsNow, []models.Transaction{expense(800)}, budget, nil, nil)
	alert, ok = findAlert(alerts, "budget-warning")
	if !ok || alert.Type != AlertTypeWarning {
		t.Fatalf("expected warning budget-warning alert, got %+v", alerts)
	}

	alerts = GenerateAlerts(alertsNow, []models.Transaction{expense(500)}, budget, nil, nil)
	if _, ok := findAlert(alerts, "budget-warning"); ok {
		t.Fatal("warning emitted below 80% usage")
	}
}

// TestBillOverdueAlert проверяет алерт по просроченному счету.
func TestBillOverdueAlert(t *testing.T) {
	bill := models.Bill{ID: uuid.New(), Name: "Electricity", Amount: 1200, DueDay: 10}

	alerts := GenerateAlerts(alertsNow, nil, nil, []models.Bill{bill}, nil)

	alert, ok := findAlert(alerts, "bill-overdue-"+bill.ID.String())
	if !ok || alert.Type != AlertTypeDanger {
		t.Fatalf("expected danger overdue alert, got %+v", alerts)
	}
	if !strings.Contains(alert.Message, "Electricity") || !strings.Contains(alert.Message, "1200") {
		t.Fatalf("expected bill name and amount in message, got %q", alert.Message)
	}

	// Счет не может быть одновременно просрочен и "скоро к оплате".
	if _, ok := findAlert(alerts, "bill-due-"+bill.ID.String()); ok {
		t.Fatal("both overdue and due-soon emitted for the same bill")
	}
}

// TestBillDueSoonAlert проверяет алерт за 3 дня до срока оплаты.
func TestBillDueSoonAlert(t *testing.T) {
	dueSoon := models.Bill{ID: uuid.New(), Name: "Internet", Amount: 799, DueDay: 17}
	farAway := models.Bill{ID: uuid.New(), Name: "Rent", Amount: 15000, DueDay: 25}
	paid := models.Bill{ID: uuid.New(), Name: "Water", Amount: 300, DueDay: 16, IsPaid: true}

	alerts := GenerateAlerts(alertsNow, nil, nil, []models.Bill{dueSoon, farAway, paid}, nil)

	if _, ok := findAlert(alerts, "bill-due-"+dueSoon.ID.String()); !ok {
		t.Fatalf("expected due-soon alert, got %+v", alerts)
	}
	if _, ok := findAlert(alerts, "bill-due-"+farAway.ID.String()); ok {
		t.Fatal("due-soon alert emitted for a bill outside the window")
	}
	if _, ok := findAlert(alerts, "bill-due-"+paid.ID.String()); ok {
		t.Fatal("due-soon alert emitted for a paid bill")
	}
	if _, ok := findAlert(alerts, "bill-overdue-"+paid.ID.String()); ok {
		t.Fatal("overdue alert emitted for a paid bill")
	}
}

// TestSavingsPaceAlert проверяет предупреждение об отставании от цели.
func TestSavingsPaceAlert(t *testing.T) {
	budget := &models.Budget{MonthlyLimit: 10000, SavingGoal: 3100}

	// Ожидаемый темп к 15 марта: 3100/31*15 = 1500.
	alerts := GenerateAlerts(alertsNow, []models.Transaction{savings(700)}, budget, nil, nil)
	alert, ok := findAlert(alerts, "savings-behind")
	if !ok || alert.Type != AlertTypeWarning {
		t.Fatalf("expected savings-behind warning, got %+v", alerts)
	}
	if !strings.Contains(alert.Message, "₹800") {
		t.Fatalf("expected shortfall of 800 in message, got %q", alert.Message)
	}

	alerts = GenerateAlerts(alertsNow, []models.Transaction{savings(800)}, budget, nil, nil)
	if _, ok := findAlert(alerts, "savings-behind"); ok {
		t.Fatal("savings-behind emitted above half of expected pace")
	}

	noGoal := &models.Budget{MonthlyLimit: 10000}
	alerts = GenerateAlerts(alertsNow, nil, noGoal, nil, nil)
	if _, ok := findAlert(alerts, "savings-behind"); ok {
		t.Fatal("savings-behind emitted without a saving goal")
	}
}

// TestChallengeStreakAlert проверяет поздравление за серию чек-инов.
func TestChallengeStreakAlert(t *testing.T) {
	completed := func(n int) []models.CheckIn {
		checkIns := make([]models.CheckIn, n)
		for i := range checkIns {
			checkIns[i] = models.CheckIn{Completed: true}
		}
		return checkIns
	}

	streaky := models.Challenge{
		ID:       uuid.New(),
		Title:    "30-Day Savings Sprint",
		Status:   models.ChallengeStatusActive,
		CheckIns: completed(7),
	}

	alerts := GenerateAlerts(alertsNow, nil, nil, nil, []models.Challenge{streaky})
	alert, ok := findAlert(alerts, "streak-"+streaky.ID.String())
	if !ok || alert.Type != AlertTypeSuccess {
		t.Fatalf("expected streak success alert, got %+v", alerts)
	}
	// В сообщении — общее число чек-инов, не длина серии.
	if !strings.Contains(alert.Message, "7-day streak") {
		t.Fatalf("expected total check-in count in message, got %q", alert.Message)
	}

	broken := streaky
	broken.ID = uuid.New()
	broken.CheckIns = append(completed(4), models.CheckIn{Completed: false})
	alerts = GenerateAlerts(alertsNow, nil, nil, nil, []models.Challenge{broken})
	if _, ok := findAlert(alerts, "streak-"+broken.ID.String()); ok {
		t.Fatal("streak alert emitted with a broken streak")
	}

	short := streaky
	short.ID = uuid.New()
	short.CheckIns = completed(4)
	alerts = GenerateAlerts(alertsNow, nil, nil, nil, []models.Challenge{short})
	if _, ok := findAlert(alerts, "streak-"+short.ID.String()); ok {
		t.Fatal("streak alert emitted with fewer than 5 check-ins")
	}

	finished := streaky
	finished.ID = uuid.New()
	finished.Status = models.ChallengeStatusCompleted
	alerts = GenerateAlerts(alertsNow, nil, nil, nil, []models.Challenge{finished})
	if _, ok := findAlert(alerts, "streak-"+finished.ID.String()); ok {
		t.Fatal("streak alert emitted for a non-active challenge")
	}
}

// TestAlertOrdering проверяет порядок правил в итоговом списке.
func TestAlertOrdering(t *testing.T) {
	bill := models.Bill{ID: uuid.New(), Name: "Electricity", Amount: 1200, DueDay: 10}

	alerts := GenerateAlerts(alertsNow, nil, nil, []models.Bill{bill}, nil)
	if len(alerts) != 2 {
		t.Fatalf("expected two alerts, got %d", len(alerts))
	}
	if alerts[0].ID != "bill-overdue-"+bill.ID.String() {
		t.Fatalf("expected bill alert first, got %s", alerts[0].ID)
	}
	if alerts[1].ID != "no-budget" {
		t.Fatalf("expected no-budget alert last, got %s", alerts[1].ID)
	}
}
