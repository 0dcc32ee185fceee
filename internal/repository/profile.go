package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/finwell/backend/internal/models"
)

type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository создает репозиторий финансовых профилей.
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Get возвращает профиль пользователя.
func (r *ProfileRepository) Get(ctx context.Context, userID uuid.UUID) (models.UserProfile, error) {
	var profile models.UserProfile
	var salaryDate *int

	err := r.db.QueryRow(ctx,
		`SELECT user_id, profession, income_type, monthly_income, salary_date, created_at, updated_at
		 FROM user_profiles
		 WHERE user_id = $1`,
		userID,
	).Scan(&profile.UserID, &profile.Profession, &profile.IncomeType, &profile.MonthlyIncome, &salaryDate, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile, ErrNotFound
		}
		return profile, err
	}

	profile.SalaryDate = salaryDate
	return profile, nil
}

// Upsert создает или обновляет профиль пользователя.
func (r *ProfileRepository) Upsert(ctx context.Context, profile models.UserProfile) (models.UserProfile, error) {
	var saved models.UserProfile
	var salaryDate *int

	err := r.db.QueryRow(ctx,
		`INSERT INTO user_profiles (user_id, profession, income_type, monthly_income, salary_date)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id) DO UPDATE
		 SET profession = EXCLUDED.profession,
		     income_type = EXCLUDED.income_type,
		     monthly_income = EXCLUDED.monthly_income,
		     salary_date = EXCLUDED.salary_date,
		     updated_at = NOW()
		 RETURNING user_id, profession, income_type, monthly_income, salary_date, created_at, updated_at`,
		profile.UserID, profile.Profession, profile.IncomeType, profile.MonthlyIncome, profile.SalaryDate,
	).Scan(&saved.UserID, &saved.Profession, &saved.IncomeType, &saved.MonthlyIncome, &salaryDate, &saved.CreatedAt, &saved.UpdatedAt)
	if err != nil {
		return saved, err
	}

	saved.SalaryDate = salaryDate
	return saved, nil
}
