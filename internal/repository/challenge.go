package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/finwell/backend/internal/models"
)

type ChallengeRepository struct {
	db *pgxpool.Pool
}

// NewChallengeRepository создает репозиторий челленджей.
func NewChallengeRepository(db *pgxpool.Pool) *ChallengeRepository {
	return &ChallengeRepository{db: db}
}

const challengeColumns = `id, user_id, title, description, target_amount, saved_amount,
	frequency, per_period_target, duration_days, start_date, end_date, status, check_ins, created_at`

// List возвращает челленджи пользователя, свежие первыми.
func (r *ChallengeRepository) List(ctx context.Context, userID uuid.UUID) ([]models.Challenge, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+challengeColumns+`
		 FROM challenges
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	challenges := make([]models.Challenge, 0)
	for rows.Next() {
		challenge, err := scanChallenge(rows)
		if err != nil {
			return nil, err
		}
		challenges = append(challenges, challenge)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return challenges, nil
}

// GetByID возвращает челлендж пользователя.
func (r *ChallengeRepository) GetByID(ctx context.Context, userID, challengeID uuid.UUID) (models.Challenge, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+challengeColumns+`
		 FROM challenges
		 WHERE id = $1 AND user_id = $2`,
		challengeID, userID,
	)

	challenge, err := scanChallenge(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return challenge, ErrNotFound
		}
		return challenge, err
	}

	return challenge, nil
}

// Create сохраняет новый челлендж.
func (r *ChallengeRepository) Create(ctx context.Context, challenge models.Challenge) (models.Challenge, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO challenges (id, user_id, title, description, target_amount, frequency,
		                         per_period_target, duration_days, start_date, end_date, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING `+challengeColumns,
		uuid.New(), challenge.UserID, challenge.Title, challenge.Description,
		challenge.TargetAmount, challenge.Frequency, challenge.PerPeriodTarget,
		challenge.DurationDays, challenge.StartDate, challenge.EndDate, models.ChallengeStatusActive,
	)

	return scanChallenge(row)
}

// UpdateStatus меняет статус челленджа.
func (r *ChallengeRepository) UpdateStatus(ctx context.Context, userID, challengeID uuid.UUID, status models.ChallengeStatus) (models.Challenge, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE challenges
		 SET status = $3
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+challengeColumns,
		challengeID, userID, status,
	)

	challenge, err := scanChallenge(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return challenge, ErrNotFound
		}
		return challenge, err
	}

	return challenge, nil
}

// AddCheckIn добавляет отметку, наращивает накопленное и завершает
// челлендж при достижении цели. Повторная отметка за тот же день
// возвращает ErrConflict.
func (r *ChallengeRepository) AddCheckIn(ctx context.Context, userID, challengeID uuid.UUID, checkIn models.CheckIn) (models.Challenge, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return models.Challenge{}, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx,
		`SELECT `+challengeColumns+`
		 FROM challenges
		 WHERE id = $1 AND user_id = $2
		 FOR UPDATE`,
		challengeID, userID,
	)

	challenge, err := scanChallenge(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return challenge, ErrNotFound
		}
		return challenge, err
	}

	if challenge.Status != models.ChallengeStatusActive {
		return challenge, ErrInvalid
	}

	for _, existing := range challenge.CheckIns {
		if existing.Date == checkIn.Date {
			return challenge, ErrConflict
		}
	}

	challenge.CheckIns = append(challenge.CheckIns, checkIn)
	challenge.SavedAmount += checkIn.Amount
	if challenge.SavedAmount >= challenge.TargetAmount {
		challenge.Status = models.ChallengeStatusCompleted
	}

	raw, err := json.Marshal(challenge.CheckIns)
	if err != nil {
		return challenge, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE challenges
		 SET check_ins = $3, saved_amount = $4, status = $5
		 WHERE id = $1 AND user_id = $2`,
		challengeID, userID, raw, challenge.SavedAmount, challenge.Status,
	)
	if err != nil {
		return challenge, err
	}

	if err := tx.Commit(ctx); err != nil {
		return challenge, err
	}

	return challenge, nil
}

func scanChallenge(row pgx.Row) (models.Challenge, error) {
	var challenge models.Challenge
	var rawCheckIns []byte

	err := row.Scan(&challenge.ID, &challenge.UserID, &challenge.Title, &challenge.Description,
		&challenge.TargetAmount, &challenge.SavedAmount, &challenge.Frequency, &challenge.PerPeriodTarget,
		&challenge.DurationDays, &challenge.StartDate, &challenge.EndDate, &challenge.Status,
		&rawCheckIns, &challenge.CreatedAt)
	if err != nil {
		return challenge, err
	}

	if err := json.Unmarshal(rawCheckIns, &challenge.CheckIns); err != nil {
		return challenge, err
	}

	return challenge, nil
}
