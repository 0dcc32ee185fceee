package insights

import (
	"testing"

	"example.com/finwell/backend/internal/models"
)

func findSuggestion(suggestions []ChallengeSuggestion, title string) (ChallengeSuggestion, bool) {
	for _, suggestion := range suggestions {
		if suggestion.Title == title {
			return suggestion, true
		}
	}
	return ChallengeSuggestion{}, false
}

// TestSuggestionsAlwaysStartWithBasePair проверяет обязательную пару предложений.
func TestSuggestionsAlwaysStartWithBasePair(t *testing.T) {
	suggestions := GenerateChallengeSuggestions(0, 0, models.ProfessionOther, models.IncomeTypeFixed)

	if len(suggestions) < 2 {
		t.Fatalf("expected at least two suggestions, got %d", len(suggestions))
	}
	if suggestions[0].Title != "30-Day Savings Sprint" {
		t.Fatalf("expected sprint first, got %s", suggestions[0].Title)
	}
	if suggestions[1].Title != "Weekly Wealth Builder" {
		t.Fatalf("expected wealth builder second, got %s", suggestions[1].Title)
	}

	// При нулевом доходе работают нижние границы ₹50 и ₹200.
	if suggestions[0].PerPeriodTarget != 50 || suggestions[0].TargetAmount != 1500 {
		t.Fatalf("unexpected sprint amounts: %+v", suggestions[0])
	}
	if suggestions[1].PerPeriodTarget != 200 || suggestions[1].TargetAmount != 800 {
		t.Fatalf("unexpected builder amounts: %+v", suggestions[1])
	}
}

// TestSuggestionAmountsScaleWithIncome проверяет формулы сумм от дохода.
func TestSuggestionAmountsScaleWithIncome(t *testing.T) {
	suggestions := GenerateChallengeSuggestions(30000, 0, models.ProfessionEmployee, models.IncomeTypeFixed)

	sprint, _ := findSuggestion(suggestions, "30-Day Savings Sprint")
	// 1% от 30000 = 300 в день, округление до десятков.
	if sprint.PerPeriodTarget != 300 || sprint.TargetAmount != 9000 || sprint.DurationDays != 30 {
		t.Fatalf("unexpected sprint: %+v", sprint)
	}

	builder, _ := findSuggestion(suggestions, "Weekly Wealth Builder")
	// 5% от 30000 = 1500 в неделю, округление до сотен.
	if builder.PerPeriodTarget != 1500 || builder.TargetAmount != 6000 || builder.DurationDays != 28 {
		t.Fatalf("unexpected builder: %+v", builder)
	}
}

// TestStudentMicroSaver проверяет фиксированное студенческое предложение.
func TestStudentMicroSaver(t *testing.T) {
	suggestions := GenerateChallengeSuggestions(10000, 3000, models.ProfessionStudent, models.IncomeTypeFixed)

	micro, ok := findSuggestion(suggestions, "Micro Saver")
	if !ok {
		t.Fatalf("expected Micro Saver for a student, got %+v", suggestions)
	}
	if micro.TargetAmount != 600 || micro.PerPeriodTarget != 20 || micro.DurationDays != 30 {
		t.Fatalf("unexpected micro saver: %+v", micro)
	}
	if micro.Frequency != models.ChallengeFrequencyDaily {
		t.Fatalf("expected daily frequency, got %s", micro.Frequency)
	}
}

// TestWantsFreeWeekThreshold проверяет порог 60% расходов от дохода.
func TestWantsFreeWeekThreshold(t *testing.T) {
	suggestions := GenerateChallengeSuggestions(10000, 7000, models.ProfessionOther, models.IncomeTypeFixed)
	wantsFree, ok := findSuggestion(suggestions, "Wants-Free Week")
	if !ok {
		t.Fatalf("expected Wants-Free Week at 70%% spending, got %+v", suggestions)
	}
	if wantsFree.TargetAmount != 700 || wantsFree.PerPeriodTarget != 100 || wantsFree.DurationDays != 7 {
		t.Fatalf("unexpected wants-free week: %+v", wantsFree)
	}

	suggestions = GenerateChallengeSuggestions(10000, 6000, models.ProfessionOther, models.IncomeTypeFixed)
	if _, ok := findSuggestion(suggestions, "Wants-Free Week"); ok {
		t.Fatal("Wants-Free Week emitted at exactly 60% spending")
	}
}

// TestVariableIncomeFloor проверяет маскирование отрицательного
// располагаемого дохода нижней границей ₹500.
func TestVariableIncomeFloor(t *testing.T) {
	suggestions := GenerateChallengeSuggestions(10000, 15000, models.ProfessionOther, models.IncomeTypeVariable)

	boost, ok := findSuggestion(suggestions, "Income Boost Saver")
	if !ok {
		t.Fatalf("expected Income Boost Saver, got %+v", suggestions)
	}
	if boost.PerPeriodTarget != 500 || boost.TargetAmount != 2000 {
		t.Fatalf("expected floored amounts 500/2000, got %+v", boost)
	}
}

// TestPowerSaverForHighIncome проверяет предложение для дохода от 50000.
func TestPowerSaverForHighIncome(t *testing.T) {
	suggestions := GenerateChallengeSuggestions(50000, 0, models.ProfessionEmployee, models.IncomeTypeFixed)

	power, ok := findSuggestion(suggestions, "Power Saver Challenge")
	if !ok {
		t.Fatalf("expected Power Saver Challenge, got %+v", suggestions)
	}
	if power.TargetAmount != 5000 || power.PerPeriodTarget != 1250 || power.DurationDays != 30 {
		t.Fatalf("unexpected power saver: %+v", power)
	}

	suggestions = GenerateChallengeSuggestions(49999, 0, models.ProfessionEmployee, models.IncomeTypeFixed)
	if _, ok := findSuggestion(suggestions, "Power Saver Challenge"); ok {
		t.Fatal("Power Saver emitted below the income threshold")
	}
}

// TestSuggestionsTruncatedToFour проверяет урезание списка до четырех.
func TestSuggestionsTruncatedToFour(t *testing.T) {
	// Студент с переменным доходом, перерасходом и доходом от 50000
	// проходит по всем веткам сразу.
	suggestions := GenerateChallengeSuggestions(50000, 40000, models.ProfessionStudent, models.IncomeTypeVariable)

	if len(suggestions) != 4 {
		t.Fatalf("expected exactly four suggestions, got %d", len(suggestions))
	}
	if suggestions[3].Title != "Micro Saver" {
		t.Fatalf("expected Micro Saver fourth, got %s", suggestions[3].Title)
	}
	if _, ok := findSuggestion(suggestions, "Income Boost Saver"); ok {
		t.Fatal("fifth suggestion survived truncation")
	}
	if _, ok := findSuggestion(suggestions, "Power Saver Challenge"); ok {
		t.Fatal("sixth suggestion survived truncation")
	}
}
