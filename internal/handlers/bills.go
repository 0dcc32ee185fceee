package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/finwell/backend/internal/auth"
	"example.com/finwell/backend/internal/billing"
	"example.com/finwell/backend/internal/models"
	"example.com/finwell/backend/internal/notifications"
	"example.com/finwell/backend/internal/repository"
)

type BillHandler struct {
	Bills        *repository.BillRepository
	Transactions *repository.TransactionRepository
	Notifier     *notifications.Hub
}

// NewBillHandler создает обработчик регулярных счетов.
func NewBillHandler(bills *repository.BillRepository, transactions *repository.TransactionRepository, notifier *notifications.Hub) *BillHandler {
	return &BillHandler{Bills: bills, Transactions: transactions, Notifier: notifier}
}

type CreateBillRequest struct {
	Name           string               `json:"name" validate:"required,max=100"`
	Amount         float64              `json:"amount" validate:"gt=0"`
	DueDay         int                  `json:"due_day" validate:"required,min=1,max=31"`
	Frequency      models.BillFrequency `json:"frequency" validate:"required,oneof=monthly quarterly yearly one_time"`
	IsEMI          bool                 `json:"is_emi"`
	EMITotalMonths *int                 `json:"emi_total_months" validate:"omitempty,gt=0"`
}

type UpdateBillRequest struct {
	Name           string               `json:"name" validate:"required,max=100"`
	Amount         float64              `json:"amount" validate:"gt=0"`
	DueDay         int                  `json:"due_day" validate:"required,min=1,max=31"`
	Frequency      models.BillFrequency `json:"frequency" validate:"required,oneof=monthly quarterly yearly one_time"`
	IsEMI          bool                 `json:"is_emi"`
	EMITotalMonths *int                 `json:"emi_total_months" validate:"omitempty,gt=0"`
}

type BillsResponse struct {
	Bills []models.Bill `json:"bills"`
}

// List возвращает счета пользователя, предварительно переводя оплаченные
// периодические счета в неоплаченные при наступлении нового периода.
func (h *BillHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	bills, err := h.Bills.List(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	now := time.Now().UTC()
	for i := range bills {
		if !billing.NeedsCycleReset(now, bills[i]) {
			continue
		}
		if err := h.Bills.ResetCycle(c.Request().Context(), bills[i].ID); err != nil {
			continue
		}

		bills[i].IsPaid = false
		if bills[i].IsEMI && bills[i].EMICompletedMonths != nil {
			bumped := *bills[i].EMICompletedMonths + 1
			bills[i].EMICompletedMonths = &bumped
		}
	}

	return c.JSON(http.StatusOK, BillsResponse{Bills: bills})
}

// Create добавляет счет.
func (h *BillHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req CreateBillRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	totalMonths, completedMonths := normalizeEMI(req.IsEMI, req.EMITotalMonths)

	bill, err := h.Bills.Create(c.Request().Context(), models.Bill{
		UserID:             userID,
		Name:               strings.TrimSpace(req.Name),
		Amount:             req.Amount,
		DueDay:             req.DueDay,
		Frequency:          req.Frequency,
		IsEMI:              req.IsEMI,
		EMITotalMonths:     totalMonths,
		EMICompletedMonths: completedMonths,
	})
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, bill)
}

// Update обновляет реквизиты счета.
func (h *BillHandler) Update(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	billID, err := uuid.Parse(c.Param("billId"))
	if err != nil {
		return badRequest(c, "invalid bill id")
	}

	var req UpdateBillRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	totalMonths, _ := normalizeEMI(req.IsEMI, req.EMITotalMonths)

	bill, err := h.Bills.Update(c.Request().Context(), userID, models.Bill{
		ID:             billID,
		Name:           strings.TrimSpace(req.Name),
		Amount:         req.Amount,
		DueDay:         req.DueDay,
		Frequency:      req.Frequency,
		IsEMI:          req.IsEMI,
		EMITotalMonths: totalMonths,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "bill not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, bill)
}

// Delete удаляет счет.
func (h *BillHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	billID, err := uuid.Parse(c.Param("billId"))
	if err != nil {
		return badRequest(c, "invalid bill id")
	}

	if err := h.Bills.Delete(c.Request().Context(), userID, billID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "bill not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

// Pay помечает счет оплаченным и записывает платеж расходной транзакцией.
func (h *BillHandler) Pay(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	billID, err := uuid.Parse(c.Param("billId"))
	if err != nil {
		return badRequest(c, "invalid bill id")
	}

	bill, err := h.Bills.GetByID(c.Request().Context(), userID, billID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "bill not found")
		}
		return serverError(c)
	}

	if bill.IsPaid {
		return badRequest(c, "bill is already paid")
	}

	category := models.ExpenseCategoryNeeds
	suffix := " (Bill)"
	if bill.IsEMI {
		category = models.ExpenseCategoryEMI
		suffix = " (EMI)"
	}

	now := time.Now().UTC()
	_, err = h.Transactions.Create(c.Request().Context(), models.Transaction{
		UserID:      userID,
		Type:        models.TransactionTypeExpense,
		Amount:      bill.Amount,
		Category:    &category,
		Description: bill.Name + suffix,
		OccurredAt:  now,
	})
	if err != nil {
		return serverError(c)
	}

	paid, err := h.Bills.MarkPaid(c.Request().Context(), userID, billID, now)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "bill not found")
		}
		return serverError(c)
	}

	h.notifySnapshot(userID, "bill_paid")
	return c.JSON(http.StatusOK, paid)
}

// Unpay снимает отметку об оплате.
func (h *BillHandler) Unpay(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	billID, err := uuid.Parse(c.Param("billId"))
	if err != nil {
		return badRequest(c, "invalid bill id")
	}

	bill, err := h.Bills.MarkUnpaid(c.Request().Context(), userID, billID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "bill not found")
		}
		return serverError(c)
	}

	h.notifySnapshot(userID, "bill_unpaid")
	return c.JSON(http.StatusOK, bill)
}

// normalizeEMI приводит поля EMI к согласованному виду: без признака EMI
// месяцы не хранятся, с признаком прогресс стартует с нуля.
func normalizeEMI(isEMI bool, totalMonths *int) (*int, *int) {
	if !isEMI {
		return nil, nil
	}

	zero := 0
	return totalMonths, &zero
}

func (h *BillHandler) notifySnapshot(userID uuid.UUID, reason string) {
	if h.Notifier == nil {
		return
	}

	h.Notifier.Publish(userID, notifications.Event{
		Type: notifications.EventSnapshotUpdated,
		Data: map[string]interface{}{"reason": reason},
	})
}
