package notify

import (
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/jordan-wright/email"

	"example.com/finwell/backend/internal/config"
	"example.com/finwell/backend/internal/models"
)

// Sender отправляет напоминания о счетах по SMTP.
type Sender struct {
	cfg    config.SMTPConfig
	logger *slog.Logger
}

// NewSender создает отправителя писем.
func NewSender(cfg config.SMTPConfig, logger *slog.Logger) *Sender {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sender{cfg: cfg, logger: logger}
}

// Enabled сообщает, настроен ли SMTP. Без настройки напоминания молча пропускаются.
func (s *Sender) Enabled() bool {
	return s.cfg.Host != "" && s.cfg.Sender != ""
}

// SendBillReminder отправляет напоминание о неоплаченном счете.
func (s *Sender) SendBillReminder(to string, bill models.Bill, overdue bool) error {
	message := email.NewEmail()
	message.From = s.cfg.Sender
	message.To = []string{to}

	if overdue {
		message.Subject = "Overdue Bill: " + bill.Name
		message.Text = []byte(fmt.Sprintf(
			"Your bill %s (₹%v) was due on the %dth and is still unpaid.\nPay it as soon as possible to keep your financial health score up.\n\n— FinWell",
			bill.Name, bill.Amount, bill.DueDay,
		))
	} else {
		message.Subject = "Upcoming Bill: " + bill.Name
		message.Text = []byte(fmt.Sprintf(
			"Your bill %s (₹%v) is due on the %dth.\nMark it paid in FinWell once you settle it.\n\n— FinWell",
			bill.Name, bill.Amount, bill.DueDay,
		))
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	if err := message.Send(addr, auth); err != nil {
		return fmt.Errorf("send bill reminder: %w", err)
	}

	s.logger.Info("bill reminder sent", slog.String("to", to), slog.String("bill", bill.Name))
	return nil
}
