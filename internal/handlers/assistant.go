package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/finwell/backend/internal/assistant"
	"example.com/finwell/backend/internal/auth"
	"example.com/finwell/backend/internal/insights"
	"example.com/finwell/backend/internal/models"
	"example.com/finwell/backend/internal/repository"
)

type AssistantHandler struct {
	Assistant    *assistant.Service
	Transactions *repository.TransactionRepository
	Budgets      *repository.BudgetRepository
	Bills        *repository.BillRepository
	Challenges   *repository.ChallengeRepository
	Profiles     *repository.ProfileRepository
}

// NewAssistantHandler создает обработчик чат-ассистента.
func NewAssistantHandler(
	service *assistant.Service,
	transactions *repository.TransactionRepository,
	budgets *repository.BudgetRepository,
	bills *repository.BillRepository,
	challenges *repository.ChallengeRepository,
	profiles *repository.ProfileRepository,
) *AssistantHandler {
	return &AssistantHandler{
		Assistant:    service,
		Transactions: transactions,
		Budgets:      budgets,
		Bills:        bills,
		Challenges:   challenges,
		Profiles:     profiles,
	}
}

type ChatRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

// Chat отвечает на сообщение пользователя с учетом его финансовой сводки.
func (h *AssistantHandler) Chat(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	ctx := c.Request().Context()
	now := time.Now().UTC()
	month := insights.CurrentMonth(now)

	from, to, err := insights.MonthBounds(month)
	if err != nil {
		return serverError(c)
	}

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
	fc := assistant.BuildContext(transactions, budget, bills, challenges, monthlyIncome, health.Score)

	reply, err := h.Assistant.Chat(ctx, req.Message, fc)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ChatResponse{Reply: assistant.FallbackReply(err)})
	}

	return c.JSON(http.StatusOK, ChatResponse{Reply: reply})
}
