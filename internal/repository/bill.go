package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/finwell/backend/internal/models"
)

type BillRepository struct {
	db *pgxpool.Pool
}

// BillWithOwner — счет вместе с email владельца, для рассылки напоминаний.
type BillWithOwner struct {
	models.Bill
	Email string
}

// NewBillRepository создает репозиторий счетов.
func NewBillRepository(db *pgxpool.Pool) *BillRepository {
	return &BillRepository{db: db}
}

const billColumns = `id, user_id, name, amount, due_day, frequency, is_emi,
	emi_total_months, emi_completed_months, is_paid, last_paid_at, created_at`

// List возвращает счета пользователя по возрастанию дня оплаты.
func (r *BillRepository) List(ctx context.Context, userID uuid.UUID) ([]models.Bill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+billColumns+`
		 FROM bills
		 WHERE user_id = $1
		 ORDER BY due_day, created_at`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bills := make([]models.Bill, 0)
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, bill)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bills, nil
}

// GetByID возвращает счет пользователя.
func (r *BillRepository) GetByID(ctx context.Context, userID, billID uuid.UUID) (models.Bill, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+billColumns+`
		 FROM bills
		 WHERE id = $1 AND user_id = $2`,
		billID, userID,
	)

	bill, err := scanBill(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return bill, ErrNotFound
		}
		return bill, err
	}

	return bill, nil
}

// Create сохраняет новый счет.
func (r *BillRepository) Create(ctx context.Context, bill models.Bill) (models.Bill, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO bills (id, user_id, name, amount, due_day, frequency, is_emi, emi_total_months, emi_completed_months)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+billColumns,
		uuid.New(), bill.UserID, bill.Name, bill.Amount, bill.DueDay, bill.Frequency,
		bill.IsEMI, bill.EMITotalMonths, bill.EMICompletedMonths,
	)

	return scanBill(row)
}

// Update обновляет реквизиты счета.
func (r *BillRepository) Update(ctx context.Context, userID uuid.UUID, bill models.Bill) (models.Bill, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE bills
		 SET name = $3, amount = $4, due_day = $5, frequency = $6, is_emi = $7, emi_total_months = $8
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+billColumns,
		bill.ID, userID, bill.Name, bill.Amount, bill.DueDay, bill.Frequency, bill.IsEMI, bill.EMITotalMonths,
	)

	updated, err := scanBill(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return updated, ErrNotFound
		}
		return updated, err
	}

	return updated, nil
}

// Delete удаляет счет пользователя.
func (r *BillRepository) Delete(ctx context.Context, userID, billID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM bills WHERE id = $1 AND user_id = $2`,
		billID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// MarkPaid помечает счет оплаченным и наращивает прогресс EMI.
func (r *BillRepository) MarkPaid(ctx context.Context, userID, billID uuid.UUID, paidAt time.Time) (models.Bill, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE bills
		 SET is_paid = TRUE,
		     last_paid_at = $3,
		     emi_completed_months = CASE
		         WHEN is_emi AND emi_completed_months IS NOT NULL THEN emi_completed_months + 1
		         ELSE emi_completed_months
		     END
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+billColumns,
		billID, userID, paidAt,
	)

	bill, err := scanBill(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return bill, ErrNotFound
		}
		return bill, err
	}

	return bill, nil
}

// MarkUnpaid снимает отметку об оплате.
func (r *BillRepository) MarkUnpaid(ctx context.Context, userID, billID uuid.UUID) (models.Bill, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE bills
		 SET is_paid = FALSE
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+billColumns,
		billID, userID,
	)

	bill, err := scanBill(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return bill, ErrNotFound
		}
		return bill, err
	}

	return bill, nil
}

// ResetCycle переводит периодический счет в неоплаченные на новый период
// и наращивает прогресс EMI.
func (r *BillRepository) ResetCycle(ctx context.Context, billID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`UPDATE bills
		 SET is_paid = FALSE,
		     emi_completed_months = CASE
		         WHEN is_emi AND emi_completed_months IS NOT NULL THEN emi_completed_months + 1
		         ELSE emi_completed_months
		     END
		 WHERE id = $1 AND is_paid = TRUE`,
		billID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// ListAll возвращает все счета с email владельца для ежедневной сверки.
func (r *BillRepository) ListAll(ctx context.Context) ([]BillWithOwner, error) {
	rows, err := r.db.Query(ctx,
		`SELECT b.id, b.user_id, b.name, b.amount, b.due_day, b.frequency, b.is_emi,
		        b.emi_total_months, b.emi_completed_months, b.is_paid, b.last_paid_at, b.created_at,
		        u.email
		 FROM bills b
		 JOIN users u ON u.id = b.user_id
		 ORDER BY b.user_id, b.due_day`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bills := make([]BillWithOwner, 0)
	for rows.Next() {
		var row BillWithOwner
		var emiTotal, emiCompleted *int
		var lastPaidAt *time.Time
		err := rows.Scan(&row.ID, &row.UserID, &row.Name, &row.Amount, &row.DueDay, &row.Frequency, &row.IsEMI,
			&emiTotal, &emiCompleted, &row.IsPaid, &lastPaidAt, &row.CreatedAt, &row.Email)
		if err != nil {
			return nil, err
		}
		row.EMITotalMonths = emiTotal
		row.EMICompletedMonths = emiCompleted
		row.LastPaidAt = lastPaidAt
		bills = append(bills, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bills, nil
}

func scanBill(row pgx.Row) (models.Bill, error) {
	var bill models.Bill
	var emiTotal, emiCompleted *int
	var lastPaidAt *time.Time

	err := row.Scan(&bill.ID, &bill.UserID, &bill.Name, &bill.Amount, &bill.DueDay, &bill.Frequency,
		&bill.IsEMI, &emiTotal, &emiCompleted, &bill.IsPaid, &lastPaidAt, &bill.CreatedAt)
	if err != nil {
		return bill, err
	}

	bill.EMITotalMonths = emiTotal
	bill.EMICompletedMonths = emiCompleted
	bill.LastPaidAt = lastPaidAt
	return bill, nil
}
