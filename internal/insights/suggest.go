package insights

import (
	"fmt"
	"math"

	"example.com/finwell/backend/internal/models"
)

// ChallengeSuggestion — кандидат сберегательного челленджа. Не сохраняется:
// запись создается только когда пользователь принимает предложение.
type ChallengeSuggestion struct {
	Title           string                    `json:"title"`
	Description     string                    `json:"description"`
	TargetAmount    float64                   `json:"target_amount"`
	Frequency       models.ChallengeFrequency `json:"frequency"`
	PerPeriodTarget float64                   `json:"per_period_target"`
	DurationDays    int                       `json:"duration_days"`
}

const maxSuggestions = 4

// GenerateChallengeSuggestions подбирает до четырех челленджей под доход,
// расходы, профессию и тип дохода пользователя.
func GenerateChallengeSuggestions(
	monthlyIncome float64,
	totalExpenses float64,
	profession models.Profession,
	incomeType models.IncomeType,
) []ChallengeSuggestion {
	suggestions := make([]ChallengeSuggestion, 0, maxSuggestions)
	disposable := monthlyIncome - totalExpenses

	// Около 1% дохода в день, минимум ₹50, с округлением до десятков.
	dailySave := math.Max(50, math.Round(monthlyIncome*0.01/10)*10)
	suggestions = append(suggestions, ChallengeSuggestion{
		Title:           "30-Day Savings Sprint",
		Description:     fmt.Sprintf("Save ₹%v every day for 30 days. Small steps lead to big savings!", dailySave),
		TargetAmount:    dailySave * 30,
		Frequency:       models.ChallengeFrequencyDaily,
		PerPeriodTarget: dailySave,
		DurationDays:    30,
	})

	weeklySave := math.Max(200, math.Round(monthlyIncome*0.05/100)*100)
	suggestions = append(suggestions, ChallengeSuggestion{
		Title:           "Weekly Wealth Builder",
		Description:     fmt.Sprintf("Set aside ₹%v each week. In 4 weeks you'll have ₹%v!", weeklySave, weeklySave*4),
		TargetAmount:    weeklySave * 4,
		Frequency:       models.ChallengeFrequencyWeekly,
		PerPeriodTarget: weeklySave,
		DurationDays:    28,
	})

	if totalExpenses > monthlyIncome*0.6 {
		suggestions = append(suggestions, ChallengeSuggestion{
			Title:           "Wants-Free Week",
			Description:     "Avoid all 'wants' spending for 7 days. Only spend on needs and EMIs.",
			TargetAmount:    math.Round(totalExpenses * 0.1),
			Frequency:       models.ChallengeFrequencyDaily,
			PerPeriodTarget: math.Round(totalExpenses * 0.1 / 7),
			DurationDays:    7,
		})
	}

	if profession == models.ProfessionStudent {
		suggestions = append(suggestions, ChallengeSuggestion{
			Title:           "Micro Saver",
			Description:     "Save just ₹20 per day. It adds up to ₹600 in a month!",
			TargetAmount:    600,
			Frequency:       models.ChallengeFrequencyDaily,
			PerPeriodTarget: 20,
			DurationDays:    30,
		})
	}

	if incomeType == models.IncomeTypeVariable {
		// Отрицательный располагаемый доход маскируется нижней границей ₹500.
		weeklyBoost := math.Max(500, math.Round(disposable*0.15/100)*100)
		suggestions = append(suggestions, ChallengeSuggestion{
			Title:           "Income Boost Saver",
			Description:     fmt.Sprintf("Save ₹%v from each payment you receive this month.", weeklyBoost),
			TargetAmount:    weeklyBoost * 4,
			Frequency:       models.ChallengeFrequencyWeekly,
			PerPeriodTarget: weeklyBoost,
			DurationDays:    28,
		})
	}

	if monthlyIncome >= 50000 {
		bigSave := math.Round(monthlyIncome*0.1/1000) * 1000
		suggestions = append(suggestions, ChallengeSuggestion{
			Title:           "Power Saver Challenge",
			Description:     fmt.Sprintf("Save ₹%v this month by cutting discretionary spending.", bigSave),
			TargetAmount:    bigSave,
			Frequency:       models.ChallengeFrequencyWeekly,
			PerPeriodTarget: math.Round(bigSave / 4),
			DurationDays:    30,
		})
	}

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}

	return suggestions
}
