package assistant

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"example.com/finwell/backend/internal/models"
)

// ErrMissingAPIKey возвращается клиентом, если ключ API не настроен.
var ErrMissingAPIKey = errors.New("assistant api key is missing")

// FinancialContext — сводка финансов пользователя, которая подмешивается
// в системный промпт ассистента.
type FinancialContext struct {
	MonthlyIncome    float64
	TotalExpenses    float64
	BudgetLimit      float64
	TotalSavings     float64
	HealthScore      int
	UpcomingBills    string
	ActiveChallenges string
}

type Service struct {
	client Client
}

// NewService создает сервис чат-ассистента.
func NewService(client Client) *Service {
	return &Service{client: client}
}

// BuildContext собирает финансовую сводку из данных пользователя за месяц.
func BuildContext(transactions []models.Transaction, budget *models.Budget, bills []models.Bill, challenges []models.Challenge, monthlyIncome float64, healthScore int) FinancialContext {
	var totalExpenses, totalSavings float64
	for _, tx := range transactions {
		switch tx.Type {
		case models.TransactionTypeExpense:
			totalExpenses += tx.Amount
		case models.TransactionTypeSavings:
			totalSavings += tx.Amount
		}
	}

	var budgetLimit float64
	if budget != nil {
		budgetLimit = budget.MonthlyLimit
	}

	upcoming := make([]string, 0)
	for _, bill := range bills {
		if bill.IsPaid {
			continue
		}
		upcoming = append(upcoming, fmt.Sprintf("%s (₹%s, due %dth)", bill.Name, formatAmount(bill.Amount), bill.DueDay))
	}

	active := make([]string, 0)
	for _, challenge := range challenges {
		if challenge.Status == models.ChallengeStatusActive {
			active = append(active, challenge.Title)
		}
	}

	return FinancialContext{
		MonthlyIncome:    monthlyIncome,
		TotalExpenses:    totalExpenses,
		BudgetLimit:      budgetLimit,
		TotalSavings:     totalSavings,
		HealthScore:      healthScore,
		UpcomingBills:    joinOrNone(upcoming),
		ActiveChallenges: joinOrNone(active),
	}
}

// Chat отправляет сообщение пользователя вместе с финансовой сводкой.
func (s *Service) Chat(ctx context.Context, message string, fc FinancialContext) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", errors.New("message is empty")
	}

	messages := []Message{
		{Role: "system", Content: buildSystemPrompt(fc)},
		{Role: "user", Content: message},
	}

	reply, err := s.client.Chat(ctx, messages)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(reply), nil
}

// FallbackReply подбирает дружелюбный ответ на ошибку провайдера.
func FallbackReply(err error) string {
	if errors.Is(err, ErrMissingAPIKey) {
		return "The assistant API key is not configured. Please add it to your environment and restart the server."
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "quota") || strings.Contains(msg, "429") || strings.Contains(msg, "RESOURCE_EXHAUSTED"):
		return "The AI assistant has reached its usage limit. Please wait a while and try again."
	case strings.Contains(msg, "API_KEY_INVALID") || strings.Contains(msg, "status 400"):
		return "The assistant API key appears to be invalid. Please check the server configuration."
	default:
		return "I'm having trouble connecting. Please try again later."
	}
}

func buildSystemPrompt(fc FinancialContext) string {
	return fmt.Sprintf(`You are FinWell AI, a friendly and encouraging financial wellbeing assistant for an Indian user.
You help them understand their finances and build better money habits.
Keep responses concise (2-4 paragraphs max), encouraging, and actionable.
Use INR (₹) for currency. Avoid complex financial jargon.
Be warm and supportive, like a knowledgeable friend.

User's current financial summary:
- Monthly income: ₹%s
- This month's expenses: ₹%s
- Budget limit: ₹%s
- Savings this month: ₹%s
- Financial health score: %d/100
- Upcoming bills: %s
- Active saving challenges: %s`,
		formatAmount(fc.MonthlyIncome),
		formatAmount(fc.TotalExpenses),
		formatAmount(fc.BudgetLimit),
		formatAmount(fc.TotalSavings),
		fc.HealthScore,
		fc.UpcomingBills,
		fc.ActiveChallenges,
	)
}

func formatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "None"
	}

	return strings.Join(values, ", ")
}
