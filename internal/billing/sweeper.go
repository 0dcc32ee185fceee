package billing

import (
	"context"
	"log/slog"
	"time"

	"example.com/finwell/backend/internal/insights"
	"example.com/finwell/backend/internal/notifications"
	"example.com/finwell/backend/internal/notify"
	"example.com/finwell/backend/internal/repository"
)

// Sweeper раз в день сбрасывает оплаченные периодические счета на новый
// период и рассылает напоминания о предстоящих и просроченных счетах.
type Sweeper struct {
	bills        *repository.BillRepository
	sender       *notify.Sender
	hub          *notifications.Hub
	logger       *slog.Logger
	reminderDays int
}

// NewSweeper создает ежедневную сверку счетов.
func NewSweeper(bills *repository.BillRepository, sender *notify.Sender, hub *notifications.Hub, logger *slog.Logger, reminderDays int) *Sweeper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{
		bills:        bills,
		sender:       sender,
		hub:          hub,
		logger:       logger,
		reminderDays: reminderDays,
	}
}

// Run выполняет один проход сверки.
func (s *Sweeper) Run(ctx context.Context) {
	now := time.Now().UTC()

	bills, err := s.bills.ListAll(ctx)
	if err != nil {
		s.logger.Error("billing sweep: list bills", slog.String("error", err.Error()))
		return
	}

	resets := 0
	reminders := 0

	for _, row := range bills {
		if NeedsCycleReset(now, row.Bill) {
			if err := s.bills.ResetCycle(ctx, row.ID); err != nil {
				s.logger.Error("billing sweep: reset cycle",
					slog.String("bill_id", row.ID.String()),
					slog.String("error", err.Error()))
				continue
			}

			resets++
			s.hub.Publish(row.UserID, notifications.Event{
				Type: notifications.EventSnapshotUpdated,
				Data: map[string]interface{}{"reason": "bill_cycle_reset", "bill_id": row.ID},
			})
			continue
		}

		if row.IsPaid {
			continue
		}

		overdue := insights.IsOverdue(now, row.DueDay, row.IsPaid)
		if !overdue && !insights.IsDueSoon(now, row.DueDay, s.reminderDays) {
			continue
		}

		reminders++
		s.hub.Publish(row.UserID, notifications.Event{
			Type: notifications.EventBillReminder,
			Data: map[string]interface{}{
				"bill_id": row.ID,
				"name":    row.Name,
				"amount":  row.Amount,
				"due_day": row.DueDay,
				"overdue": overdue,
			},
		})

		if !s.sender.Enabled() {
			continue
		}
		if err := s.sender.SendBillReminder(row.Email, row.Bill, overdue); err != nil {
			s.logger.Error("billing sweep: send reminder",
				slog.String("bill_id", row.ID.String()),
				slog.String("error", err.Error()))
		}
	}

	s.logger.Info("billing sweep finished",
		slog.Int("bills", len(bills)),
		slog.Int("cycle_resets", resets),
		slog.Int("reminders", reminders))
}
