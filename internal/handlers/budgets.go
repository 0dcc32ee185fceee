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

type BudgetHandler struct {
	Budgets *repository.BudgetRepository
}

// NewBudgetHandler создает обработчик месячных бюджетов.
func NewBudgetHandler(budgets *repository.BudgetRepository) *BudgetHandler {
	return &BudgetHandler{Budgets: budgets}
}

type UpsertBudgetRequest struct {
	Month        string  `json:"month" validate:"omitempty,len=7"`
	MonthlyLimit float64 `json:"monthly_limit" validate:"gte=0"`
	SavingGoal   float64 `json:"saving_goal" validate:"gte=0"`
	NeedsLimit   float64 `json:"needs_limit" validate:"gte=0"`
	WantsLimit   float64 `json:"wants_limit" validate:"gte=0"`
	EMILimit     float64 `json:"emi_limit" validate:"gte=0"`
}

type BudgetResponse struct {
	Budget models.Budget `json:"budget"`
}

// Get возвращает бюджет на месяц (?month=2006-01, по умолчанию текущий).
func (h *BudgetHandler) Get(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	month := c.QueryParam("month")
	if month == "" {
		month = insights.CurrentMonth(time.Now().UTC())
	}
	if _, _, err := insights.MonthBounds(month); err != nil {
		return badRequest(c, "invalid month")
	}

	budget, err := h.Budgets.GetByMonth(c.Request().Context(), userID, month)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "budget not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, BudgetResponse{Budget: budget})
}

// Upsert создает или обновляет бюджет на месяц.
func (h *BudgetHandler) Upsert(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req UpsertBudgetRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	month := req.Month
	if month == "" {
		month = insights.CurrentMonth(time.Now().UTC())
	}
	if _, _, err := insights.MonthBounds(month); err != nil {
		return badRequest(c, "invalid month")
	}

	budget, err := h.Budgets.Upsert(c.Request().Context(), models.Budget{
		UserID:       userID,
		Month:        month,
		MonthlyLimit: req.MonthlyLimit,
		SavingGoal:   req.SavingGoal,
		NeedsLimit:   req.NeedsLimit,
		WantsLimit:   req.WantsLimit,
		EMILimit:     req.EMILimit,
	})
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, BudgetResponse{Budget: budget})
}
