package insights

import (
	"fmt"
	"math"
	"time"
)

const monthLayout = "2006-01"

// CurrentMonth возвращает месяц в формате "2006-01".
func CurrentMonth(now time.Time) string {
	return now.Format(monthLayout)
}

// MonthBounds возвращает начало и конец календарного месяца.
func MonthBounds(month string) (time.Time, time.Time, error) {
	start, err := time.Parse(monthLayout, month)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month %q: %w", month, err)
	}

	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end, nil
}

// DaysInMonth возвращает число дней в месяце, на который приходится now.
func DaysInMonth(now time.Time) int {
	firstOfNext := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1).Day()
}

// IsOverdue сообщает, просрочен ли неоплаченный счет в текущем месяце.
func IsOverdue(now time.Time, dueDay int, isPaid bool) bool {
	if isPaid {
		return false
	}

	return now.After(dueAt(now, dueDay))
}

// IsDueSoon сообщает, наступает ли срок оплаты в ближайшие daysAhead дней.
func IsDueSoon(now time.Time, dueDay int, daysAhead int) bool {
	due := dueAt(now, dueDay)
	if due.Before(now) {
		return false
	}

	return due.Before(now.AddDate(0, 0, daysAhead))
}

// DaysUntilDue возвращает число дней до срока оплаты, перенося его на
// следующий месяц, если срок в текущем уже прошел.
func DaysUntilDue(now time.Time, dueDay int) int {
	due := dueAt(now, dueDay)
	if due.Before(now) {
		due = due.AddDate(0, 1, 0)
	}

	return int(math.Ceil(due.Sub(now).Hours() / 24))
}

func dueAt(now time.Time, dueDay int) time.Time {
	return time.Date(now.Year(), now.Month(), dueDay, 0, 0, 0, 0, now.Location())
}
