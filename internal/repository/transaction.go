package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/finwell/backend/internal/models"
)

type TransactionRepository struct {
	db *pgxpool.Pool
}

// NewTransactionRepository создает репозиторий транзакций.
func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// ListByPeriod возвращает транзакции пользователя за период, новые первыми.
func (r *TransactionRepository) ListByPeriod(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.Transaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, type, amount, category, description, occurred_at, created_at
		 FROM transactions
		 WHERE user_id = $1 AND occurred_at >= $2 AND occurred_at <= $3
		 ORDER BY occurred_at DESC, created_at DESC`,
		userID, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]models.Transaction, 0)
	for rows.Next() {
		var transaction models.Transaction
		var category *models.ExpenseCategory
		err := rows.Scan(&transaction.ID, &transaction.UserID, &transaction.Type, &transaction.Amount,
			&category, &transaction.Description, &transaction.OccurredAt, &transaction.CreatedAt)
		if err != nil {
			return nil, err
		}
		transaction.Category = category
		transactions = append(transactions, transaction)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return transactions, nil
}

// Create сохраняет транзакцию.
func (r *TransactionRepository) Create(ctx context.Context, transaction models.Transaction) (models.Transaction, error) {
	var saved models.Transaction
	var category *models.ExpenseCategory

	err := r.db.QueryRow(ctx,
		`INSERT INTO transactions (id, user_id, type, amount, category, description, occurred_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, user_id, type, amount, category, description, occurred_at, created_at`,
		uuid.New(), transaction.UserID, transaction.Type, transaction.Amount,
		transaction.Category, transaction.Description, transaction.OccurredAt,
	).Scan(&saved.ID, &saved.UserID, &saved.Type, &saved.Amount, &category, &saved.Description, &saved.OccurredAt, &saved.CreatedAt)
	if err != nil {
		return saved, err
	}

	saved.Category = category
	return saved, nil
}

// Delete удаляет транзакцию пользователя.
func (r *TransactionRepository) Delete(ctx context.Context, userID, transactionID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM transactions WHERE id = $1 AND user_id = $2`,
		transactionID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// SalaryExists сообщает, проведена ли уже зарплата в заданном периоде.
// Используется для идемпотентной автопроводки зарплаты.
func (r *TransactionRepository) SalaryExists(ctx context.Context, userID uuid.UUID, from, to time.Time, description string, amount float64) (bool, error) {
	var exists bool

	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM transactions
			WHERE user_id = $1
			  AND type = 'income'
			  AND description = $2
			  AND amount = $3
			  AND occurred_at >= $4 AND occurred_at <= $5
		 )`,
		userID, description, amount, from, to,
	).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}
