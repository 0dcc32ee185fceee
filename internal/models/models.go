package models

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

type ExpenseCategory string

type BillFrequency string

type ChallengeFrequency string

type ChallengeStatus string

type Profession string

type IncomeType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeSavings TransactionType = "savings"

	ExpenseCategoryNeeds ExpenseCategory = "needs"
	ExpenseCategoryWants ExpenseCategory = "wants"
	ExpenseCategoryEMI   ExpenseCategory = "emi"

	BillFrequencyMonthly   BillFrequency = "monthly"
	BillFrequencyQuarterly BillFrequency = "quarterly"
	BillFrequencyYearly    BillFrequency = "yearly"
	BillFrequencyOneTime   BillFrequency = "one_time"

	ChallengeFrequencyDaily  ChallengeFrequency = "daily"
	ChallengeFrequencyWeekly ChallengeFrequency = "weekly"

	ChallengeStatusActive    ChallengeStatus = "active"
	ChallengeStatusCompleted ChallengeStatus = "completed"
	ChallengeStatusAbandoned ChallengeStatus = "abandoned"

	ProfessionEmployee      Profession = "employee"
	ProfessionFreelancer    Profession = "freelancer"
	ProfessionStudent       Profession = "student"
	ProfessionBusinessOwner Profession = "business_owner"
	ProfessionOther         Profession = "other"

	IncomeTypeFixed    IncomeType = "fixed"
	IncomeTypeVariable IncomeType = "variable"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         *string   `json:"name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type UserProfile struct {
	UserID        uuid.UUID  `json:"user_id"`
	Profession    Profession `json:"profession"`
	IncomeType    IncomeType `json:"income_type"`
	MonthlyIncome float64    `json:"monthly_income"`
	SalaryDate    *int       `json:"salary_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type Transaction struct {
	ID          uuid.UUID        `json:"id"`
	UserID      uuid.UUID        `json:"user_id"`
	Type        TransactionType  `json:"type"`
	Amount      float64          `json:"amount"`
	Category    *ExpenseCategory `json:"category,omitempty"`
	Description string           `json:"description"`
	OccurredAt  time.Time        `json:"occurred_at"`
	CreatedAt   time.Time        `json:"created_at"`
}

// Budget хранится по одной записи на пользователя и месяц ("2006-01").
type Budget struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Month        string    `json:"month"`
	MonthlyLimit float64   `json:"monthly_limit"`
	SavingGoal   float64   `json:"saving_goal"`
	NeedsLimit   float64   `json:"needs_limit"`
	WantsLimit   float64   `json:"wants_limit"`
	EMILimit     float64   `json:"emi_limit"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Bill struct {
	ID                 uuid.UUID     `json:"id"`
	UserID             uuid.UUID     `json:"user_id"`
	Name               string        `json:"name"`
	Amount             float64       `json:"amount"`
	DueDay             int           `json:"due_day"`
	Frequency          BillFrequency `json:"frequency"`
	IsEMI              bool          `json:"is_emi"`
	EMITotalMonths     *int          `json:"emi_total_months,omitempty"`
	EMICompletedMonths *int          `json:"emi_completed_months,omitempty"`
	IsPaid             bool          `json:"is_paid"`
	LastPaidAt         *time.Time    `json:"last_paid_at,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
}

type CheckIn struct {
	Date      string  `json:"date"`
	Amount    float64 `json:"amount"`
	Completed bool    `json:"completed"`
}

type Challenge struct {
	ID              uuid.UUID          `json:"id"`
	UserID          uuid.UUID          `json:"user_id"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	TargetAmount    float64            `json:"target_amount"`
	SavedAmount     float64            `json:"saved_amount"`
	Frequency       ChallengeFrequency `json:"frequency"`
	PerPeriodTarget float64            `json:"per_period_target"`
	DurationDays    int                `json:"duration_days"`
	StartDate       time.Time          `json:"start_date"`
	EndDate         time.Time          `json:"end_date"`
	Status          ChallengeStatus    `json:"status"`
	CheckIns        []CheckIn          `json:"check_ins"`
	CreatedAt       time.Time          `json:"created_at"`
}

type RefreshToken struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	TokenHash  string     `json:"-"`
	ExpiresAt  time.Time  `json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	ReplacedBy *uuid.UUID `json:"replaced_by,omitempty"`
}
