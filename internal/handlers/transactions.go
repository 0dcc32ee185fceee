package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/finwell/backend/internal/auth"
	"example.com/finwell/backend/internal/insights"
	"example.com/finwell/backend/internal/models"
	"example.com/finwell/backend/internal/notifications"
	"example.com/finwell/backend/internal/repository"
)

const salaryDescription = "Monthly Salary"

type TransactionHandler struct {
	Transactions *repository.TransactionRepository
	Profiles     *repository.ProfileRepository
	Notifier     *notifications.Hub
}

// NewTransactionHandler создает обработчик транзакций.
func NewTransactionHandler(transactions *repository.TransactionRepository, profiles *repository.ProfileRepository, notifier *notifications.Hub) *TransactionHandler {
	return &TransactionHandler{Transactions: transactions, Profiles: profiles, Notifier: notifier}
}

type CreateTransactionRequest struct {
	Type        models.TransactionType  `json:"type" validate:"required,oneof=income expense savings"`
	Amount      float64                 `json:"amount" validate:"gt=0"`
	Category    *models.ExpenseCategory `json:"category" validate:"omitempty,oneof=needs wants emi"`
	Description string                  `json:"description" validate:"max=200"`
	OccurredAt  *time.Time              `json:"occurred_at"`
}

type TransactionsResponse struct {
	Transactions []models.Transaction `json:"transactions"`
}

// List возвращает транзакции пользователя за месяц (?month=2006-01).
// Для пользователей с фиксированным доходом предварительно доначисляет
// зарплату текущего месяца.
func (h *TransactionHandler) List(c echo.Context) error {
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

	if month == insights.CurrentMonth(now) {
		h.ensureSalary(c.Request().Context(), userID, now, from, to)
	}

	transactions, err := h.Transactions.ListByPeriod(c.Request().Context(), userID, from, to)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, TransactionsResponse{Transactions: transactions})
}

// Create добавляет транзакцию.
func (h *TransactionHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	// Категория трат относится только к расходам.
	category := req.Category
	if req.Type != models.TransactionTypeExpense {
		category = nil
	}

	occurredAt := time.Now().UTC()
	if req.OccurredAt != nil {
		occurredAt = req.OccurredAt.UTC()
	}

	transaction, err := h.Transactions.Create(c.Request().Context(), models.Transaction{
		UserID:      userID,
		Type:        req.Type,
		Amount:      req.Amount,
		Category:    category,
		Description: strings.TrimSpace(req.Description),
		OccurredAt:  occurredAt,
	})
	if err != nil {
		return serverError(c)
	}

	h.notifySnapshot(userID, "transaction_created")
	return c.JSON(http.StatusCreated, transaction)
}

// Delete удаляет транзакцию.
func (h *TransactionHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	transactionID, err := uuid.Parse(c.Param("transactionId"))
	if err != nil {
		return badRequest(c, "invalid transaction id")
	}

	if err := h.Transactions.Delete(c.Request().Context(), userID, transactionID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "transaction not found")
		}
		return serverError(c)
	}

	h.notifySnapshot(userID, "transaction_deleted")
	return c.NoContent(http.StatusNoContent)
}

// ensureSalary доначисляет зарплату текущего месяца, если ее день уже
// наступил и начисления еще не было. Ошибки не прерывают запрос.
func (h *TransactionHandler) ensureSalary(ctx context.Context, userID uuid.UUID, now time.Time, from, to time.Time) {
	profile, err := h.Profiles.Get(ctx, userID)
	if err != nil {
		return
	}

	if profile.IncomeType != models.IncomeTypeFixed || profile.SalaryDate == nil || profile.MonthlyIncome <= 0 {
		return
	}
	if now.Day() < *profile.SalaryDate {
		return
	}

	exists, err := h.Transactions.SalaryExists(ctx, userID, from, to, salaryDescription, profile.MonthlyIncome)
	if err != nil || exists {
		return
	}

	occurredAt := time.Date(now.Year(), now.Month(), *profile.SalaryDate, 0, 0, 0, 0, time.UTC)
	_, err = h.Transactions.Create(ctx, models.Transaction{
		UserID:      userID,
		Type:        models.TransactionTypeIncome,
		Amount:      profile.MonthlyIncome,
		Description: salaryDescription,
		OccurredAt:  occurredAt,
	})
	if err != nil {
		return
	}

	h.notifySnapshot(userID, "salary_posted")
}

func (h *TransactionHandler) notifySnapshot(userID uuid.UUID, reason string) {
	if h.Notifier == nil {
		return
	}

	h.Notifier.Publish(userID, notifications.Event{
		Type: notifications.EventSnapshotUpdated,
		Data: map[string]interface{}{"reason": reason},
	})
}
