package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/finwell/backend/internal/auth"
	"example.com/finwell/backend/internal/models"
	"example.com/finwell/backend/internal/repository"
)

type ProfileHandler struct {
	Profiles *repository.ProfileRepository
}

// NewProfileHandler создает обработчик профиля пользователя.
func NewProfileHandler(profiles *repository.ProfileRepository) *ProfileHandler {
	return &ProfileHandler{Profiles: profiles}
}

type UpdateProfileRequest struct {
	Profession    models.Profession `json:"profession" validate:"required,oneof=employee freelancer student business_owner other"`
	IncomeType    models.IncomeType `json:"income_type" validate:"required,oneof=fixed variable"`
	MonthlyIncome float64           `json:"monthly_income" validate:"gte=0"`
	SalaryDate    *int              `json:"salary_date" validate:"omitempty,min=1,max=31"`
}

type ProfileResponse struct {
	Profile models.UserProfile `json:"profile"`
}

// Get возвращает профиль текущего пользователя.
func (h *ProfileHandler) Get(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	profile, err := h.Profiles.Get(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "profile not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, ProfileResponse{Profile: profile})
}

// Update создает или обновляет профиль текущего пользователя.
func (h *ProfileHandler) Update(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	// День зарплаты имеет смысл только при фиксированном доходе.
	salaryDate := req.SalaryDate
	if req.IncomeType != models.IncomeTypeFixed {
		salaryDate = nil
	}

	profile, err := h.Profiles.Upsert(c.Request().Context(), models.UserProfile{
		UserID:        userID,
		Profession:    req.Profession,
		IncomeType:    req.IncomeType,
		MonthlyIncome: req.MonthlyIncome,
		SalaryDate:    salaryDate,
	})
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, ProfileResponse{Profile: profile})
}
