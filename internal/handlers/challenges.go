package handlers

import (
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

const checkInDateLayout = "2006-01-02"

type ChallengeHandler struct {
	Challenges   *repository.ChallengeRepository
	Transactions *repository.TransactionRepository
	Profiles     *repository.ProfileRepository
	Notifier     *notifications.Hub
}

// NewChallengeHandler создает обработчик сберегательных челленджей.
func NewChallengeHandler(challenges *repository.ChallengeRepository, transactions *repository.TransactionRepository, profiles *repository.ProfileRepository, notifier *notifications.Hub) *ChallengeHandler {
	return &ChallengeHandler{
		Challenges:   challenges,
		Transactions: transactions,
		Profiles:     profiles,
		Notifier:     notifier,
	}
}

type CreateChallengeRequest struct {
	Title           string                    `json:"title" validate:"required,max=100"`
	Description     string                    `json:"description" validate:"max=300"`
	TargetAmount    float64                   `json:"target_amount" validate:"gt=0"`
	Frequency       models.ChallengeFrequency `json:"frequency" validate:"required,oneof=daily weekly"`
	PerPeriodTarget float64                   `json:"per_period_target" validate:"gte=0"`
	DurationDays    int                       `json:"duration_days" validate:"required,min=1,max=365"`
}

type CheckInRequest struct {
	Amount float64 `json:"amount" validate:"gte=0"`
}

type ChallengesResponse struct {
	Challenges []models.Challenge `json:"challenges"`
}

type SuggestionsResponse struct {
	Suggestions []insights.ChallengeSuggestion `json:"suggestions"`
}

// List возвращает челленджи пользователя.
func (h *ChallengeHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	challenges, err := h.Challenges.List(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, ChallengesResponse{Challenges: challenges})
}

// Create добавляет челлендж.
func (h *ChallengeHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req CreateChallengeRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	now := time.Now().UTC()
	challenge, err := h.Challenges.Create(c.Request().Context(), models.Challenge{
		UserID:          userID,
		Title:           strings.TrimSpace(req.Title),
		Description:     strings.TrimSpace(req.Description),
		TargetAmount:    req.TargetAmount,
		Frequency:       req.Frequency,
		PerPeriodTarget: req.PerPeriodTarget,
		DurationDays:    req.DurationDays,
		StartDate:       now,
		EndDate:         now.AddDate(0, 0, req.DurationDays),
	})
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, challenge)
}

// Abandon переводит челлендж в статус abandoned.
func (h *ChallengeHandler) Abandon(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	challengeID, err := uuid.Parse(c.Param("challengeId"))
	if err != nil {
		return badRequest(c, "invalid challenge id")
	}

	challenge, err := h.Challenges.UpdateStatus(c.Request().Context(), userID, challengeID, models.ChallengeStatusAbandoned)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "challenge not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, challenge)
}

// CheckIn записывает отметку дня: создает сберегательную транзакцию
// и наращивает накопленное. Пустая сумма берется из цели периода.
func (h *ChallengeHandler) CheckIn(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	challengeID, err := uuid.Parse(c.Param("challengeId"))
	if err != nil {
		return badRequest(c, "invalid challenge id")
	}

	var req CheckInRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	challenge, err := h.Challenges.GetByID(c.Request().Context(), userID, challengeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "challenge not found")
		}
		return serverError(c)
	}

	amount := req.Amount
	if amount == 0 {
		amount = challenge.PerPeriodTarget
	}
	if amount <= 0 {
		return badRequest(c, "amount is required")
	}

	now := time.Now().UTC()
	_, err = h.Transactions.Create(c.Request().Context(), models.Transaction{
		UserID:      userID,
		Type:        models.TransactionTypeSavings,
		Amount:      amount,
		Description: challenge.Title + " (Challenge)",
		OccurredAt:  now,
	})
	if err != nil {
		return serverError(c)
	}

	updated, err := h.Challenges.AddCheckIn(c.Request().Context(), userID, challengeID, models.CheckIn{
		Date:      now.Format(checkInDateLayout),
		Amount:    amount,
		Completed: true,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return notFound(c, "challenge not found")
		case errors.Is(err, repository.ErrConflict):
			return conflict(c, "already checked in today")
		case errors.Is(err, repository.ErrInvalid):
			return badRequest(c, "challenge is not active")
		default:
			return serverError(c)
		}
	}

	h.notifySnapshot(userID, "challenge_check_in")
	return c.JSON(http.StatusOK, updated)
}

// Suggestions подбирает челленджи под профиль и расходы текущего месяца.
// Уже запущенные челленджи с теми же названиями отфильтровываются.
func (h *ChallengeHandler) Suggestions(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	profile, err := h.Profiles.Get(c.Request().Context(), userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return serverError(c)
	}

	now := time.Now().UTC()
	from, to, err := insights.MonthBounds(insights.CurrentMonth(now))
	if err != nil {
		return serverError(c)
	}

	transactions, err := h.Transactions.ListByPeriod(c.Request().Context(), userID, from, to)
	if err != nil {
		return serverError(c)
	}

	challenges, err := h.Challenges.List(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	totalExpenses := insights.SumByType(transactions, models.TransactionTypeExpense)
	suggestions := insights.GenerateChallengeSuggestions(profile.MonthlyIncome, totalExpenses, profile.Profession, profile.IncomeType)

	activeTitles := make(map[string]struct{})
	for _, challenge := range challenges {
		if challenge.Status == models.ChallengeStatusActive {
			activeTitles[challenge.Title] = struct{}{}
		}
	}

	filtered := make([]insights.ChallengeSuggestion, 0, len(suggestions))
	for _, suggestion := range suggestions {
		if _, taken := activeTitles[suggestion.Title]; taken {
			continue
		}
		filtered = append(filtered, suggestion)
	}

	return c.JSON(http.StatusOK, SuggestionsResponse{Suggestions: filtered})
}

func (h *ChallengeHandler) notifySnapshot(userID uuid.UUID, reason string) {
	if h.Notifier == nil {
		return
	}

	h.Notifier.Publish(userID, notifications.Event{
		Type: notifications.EventSnapshotUpdated,
		Data: map[string]interface{}{"reason": reason},
	})
}
