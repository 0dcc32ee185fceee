package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/finwell/backend/internal/models"
)

type BudgetRepository struct {
	db *pgxpool.Pool
}

// NewBudgetRepository создает репозиторий бюджетов.
func NewBudgetRepository(db *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// GetByMonth возвращает бюджет пользователя на месяц ("2006-01").
func (r *BudgetRepository) GetByMonth(ctx context.Context, userID uuid.UUID, month string) (models.Budget, error) {
	var budget models.Budget

	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, month, monthly_limit, saving_goal, needs_limit, wants_limit, emi_limit, created_at, updated_at
		 FROM budgets
		 WHERE user_id = $1 AND month = $2`,
		userID, month,
	).Scan(&budget.ID, &budget.UserID, &budget.Month, &budget.MonthlyLimit, &budget.SavingGoal,
		&budget.NeedsLimit, &budget.WantsLimit, &budget.EMILimit, &budget.CreatedAt, &budget.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return budget, ErrNotFound
		}
		return budget, err
	}

	return budget, nil
}

// Upsert создает или обновляет бюджет на месяц.
func (r *BudgetRepository) Upsert(ctx context.Context, budget models.Budget) (models.Budget, error) {
	var saved models.Budget

	err := r.db.QueryRow(ctx,
		`INSERT INTO budgets (user_id, month, monthly_limit, saving_goal, needs_limit, wants_limit, emi_limit)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (user_id, month) DO UPDATE
		 SET monthly_limit = EXCLUDED.monthly_limit,
		     saving_goal = EXCLUDED.saving_goal,
		     needs_limit = EXCLUDED.needs_limit,
		     wants_limit = EXCLUDED.wants_limit,
		     emi_limit = EXCLUDED.emi_limit,
		     updated_at = NOW()
		 RETURNING id, user_id, month, monthly_limit, saving_goal, needs_limit, wants_limit, emi_limit, created_at, updated_at`,
		budget.UserID, budget.Month, budget.MonthlyLimit, budget.SavingGoal,
		budget.NeedsLimit, budget.WantsLimit, budget.EMILimit,
	).Scan(&saved.ID, &saved.UserID, &saved.Month, &saved.MonthlyLimit, &saved.SavingGoal,
		&saved.NeedsLimit, &saved.WantsLimit, &saved.EMILimit, &saved.CreatedAt, &saved.UpdatedAt)
	if err != nil {
		return saved, err
	}

	return saved, nil
}
