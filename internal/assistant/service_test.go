package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"example.com/finwell/backend/internal/models"
)

type stubClient struct {
	reply    string
	err      error
	messages []Message
}

func (s *stubClient) Chat(_ context.Context, messages []Message) (string, error) {
	s.messages = messages
	return s.reply, s.err
}

// TestBuildContext проверяет сборку финансовой сводки.
func TestBuildContext(t *testing.T) {
	transactions := []models.Transaction{
		{Type: models.TransactionTypeExpense, Amount: 500},
		{Type: models.TransactionTypeSavings, Amount: 200},
		{Type: models.TransactionTypeIncome, Amount: 1000},
	}
	bills := []models.Bill{
		{Name: "Rent", Amount: 12000, DueDay: 5},
		{Name: "Internet", Amount: 800, DueDay: 10, IsPaid: true},
	}
	challenges := []models.Challenge{
		{Title: "No-Spend Weekend", Status: models.ChallengeStatusActive},
		{Title: "Old Challenge", Status: models.ChallengeStatusAbandoned},
	}

	fc := BuildContext(transactions, nil, bills, challenges, 25000, 72)

	if fc.TotalExpenses != 500 {
		t.Fatalf("expected total expenses 500, got %v", fc.TotalExpenses)
	}
	if fc.TotalSavings != 200 {
		t.Fatalf("expected total savings 200, got %v", fc.TotalSavings)
	}
	if fc.BudgetLimit != 0 {
		t.Fatalf("expected budget limit 0 without budget, got %v", fc.BudgetLimit)
	}
	if fc.UpcomingBills != "Rent (₹12000, due 5th)" {
		t.Fatalf("unexpected upcoming bills: %q", fc.UpcomingBills)
	}
	if fc.ActiveChallenges != "No-Spend Weekend" {
		t.Fatalf("unexpected active challenges: %q", fc.ActiveChallenges)
	}
}

// TestBuildContextEmpty проверяет заглушку "None" при пустых данных.
func TestBuildContextEmpty(t *testing.T) {
	fc := BuildContext(nil, nil, nil, nil, 0, 50)

	if fc.UpcomingBills != "None" {
		t.Fatalf("expected bills None, got %q", fc.UpcomingBills)
	}
	if fc.ActiveChallenges != "None" {
		t.Fatalf("expected challenges None, got %q", fc.ActiveChallenges)
	}
}

// TestChatIncludesFinancialSummary проверяет системный промпт и обрезку ответа.
func TestChatIncludesFinancialSummary(t *testing.T) {
	client := &stubClient{reply: "  You're doing great!  "}
	service := NewService(client)

	fc := FinancialContext{
		MonthlyIncome:    25000,
		HealthScore:      64,
		UpcomingBills:    "None",
		ActiveChallenges: "None",
	}

	reply, err := service.Chat(context.Background(), "How am I doing?", fc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "You're doing great!" {
		t.Fatalf("unexpected reply: %q", reply)
	}

	if len(client.messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(client.messages))
	}
	if client.messages[0].Role != "system" {
		t.Fatalf("expected system message first, got %s", client.messages[0].Role)
	}
	if !strings.Contains(client.messages[0].Content, "FinWell AI") {
		t.Fatal("expected system prompt to introduce the assistant")
	}
	if !strings.Contains(client.messages[0].Content, "Monthly income: ₹25000") {
		t.Fatal("expected system prompt to contain monthly income")
	}
	if !strings.Contains(client.messages[0].Content, "Financial health score: 64/100") {
		t.Fatal("expected system prompt to contain health score")
	}
}

// TestChatEmptyMessage проверяет отказ на пустое сообщение.
func TestChatEmptyMessage(t *testing.T) {
	service := NewService(&stubClient{})

	if _, err := service.Chat(context.Background(), "   ", FinancialContext{}); err == nil {
		t.Fatal("expected error for empty message")
	}
}

// TestFallbackReply проверяет подбор ответа под ошибку провайдера.
func TestFallbackReply(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"missing key", ErrMissingAPIKey, "not configured"},
		{"quota", errors.New("gemini api error (status 429): RESOURCE_EXHAUSTED"), "usage limit"},
		{"invalid key", errors.New("gemini api error (status 400): API_KEY_INVALID"), "invalid"},
		{"generic", errors.New("connection refused"), "trouble connecting"},
	}

	for _, tc := range cases {
		if got := FallbackReply(tc.err); !strings.Contains(got, tc.want) {
			t.Fatalf("%s: expected reply to contain %q, got %q", tc.name, tc.want, got)
		}
	}
}
