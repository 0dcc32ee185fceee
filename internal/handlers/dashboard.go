package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/finwell/backend/internal/auth"
	"example.com/finwell/backend/internal/insights"
	"example.com/finwell/backend/internal/models"
	"example.com/finwell/backend/internal/repository"
)

type DashboardHandler struct {
	Transactions *repository.TransactionRepository
	Budgets      *repository.BudgetRepository
	Bills        *repository.BillRepository
	Challenges   *repository.ChallengeRepository
	Profiles     *repository.ProfileRepository
}

// NewDashboardHandler создает обработчик сводки за месяц.
func NewDashboardHandler(
	transactions *repository.TransactionRepository,
	budgets *repository.BudgetRepository,
	bills *repository.BillRepository,
	challenges *repository.ChallengeRepository,
	profiles *repository.ProfileRepository,
) *DashboardHandler {
	return &DashboardHandler{
		Transactions: transactions,
		Budgets:      budgets,
		Bills:        bills,
		Challenges:   challenges,
		Profiles:     profiles,
	}
}

type DashboardTotals struct {
	Income      float64 `json:"income"`
	Expenses    float64 `json:"expenses"`
	Savings     float64 `json:"savings"`
	UnpaidBills float64 `json:"unpaid_bills"`
}

type DashboardResponse struct {
	Month  string                `json:"month"`
	Health insights.HealthResult `json:"health"`
	Alerts []insights.Alert      `json:"alerts"`
	Totals DashboardTotals       `json:"totals"`
}

// Snapshot собирает месячную сводку: оценку финансового здоровья,
// уведомления и итоги по транзакциям и счетам.
func (h *DashboardHandler) Snapshot(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	now := time.Now().UTC()
	month := c.QueryParam("month")
	if month == "" {
		month = insights.CurrentMonth(now)
	}

	from, to, err := insights.MonthBounds(month)
	if err != nil {
		return badRequest(c, "invalid month")
	}

	ctx := c.Request().Context()

	transactions, err := h.Transactions.ListByPeriod(ctx, userID, from, to)
	if err != nil {
		return serverError(c)
	}

	var budget *models.Budget
	stored, err := h.Budgets.GetByMonth(ctx, userID, month)
	if err == nil {
		budget = &stored
	} else if !errors.Is(err, repository.ErrNotFound) {
		return serverError(c)
	}

	bills, err := h.Bills.List(ctx, userID)
	if err != nil {
		return serverError(c)
	}

	challenges, err := h.Challenges.List(ctx, userID)
	if err != nil {
		return serverError(c)
	}

	var monthlyIncome float64
	profile, err := h.Profiles.Get(ctx, userID)
	if err == nil {
		monthlyIncome = profile.MonthlyIncome
	} else if !errors.Is(err, repository.ErrNotFound) {
		return serverError(c)
	}

	health := insights.CalculateHealthScore(transactions, budget, bills, challenges, monthlyIncome)
	alerts := insights.GenerateAlerts(now, transactions, budget, bills, challenges)

	var unpaidBills float64
	for _, bill := range bills {
		if !bill.IsPaid {
			unpaidBills += bill.Amount
		}
	}

	return c.JSON(http.StatusOK, DashboardResponse{
		Month:  month,
		Health: health,
		Alerts: alerts,
		Totals: DashboardTotals{
			Income:      insights.SumByType(transactions, models.TransactionTypeIncome),
			Expenses:    insights.SumByType(transactions, models.TransactionTypeExpense),
			Savings:     insights.SumByType(transactions, models.TransactionTypeSavings),
			UnpaidBills: unpaidBills,
		},
	})
}
