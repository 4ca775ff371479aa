package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/shopspring/decimal"

	"fedha/internal/amqp"
	"fedha/internal/core"
)

// EmailSender delivers bill reminder emails over SMTP.
type EmailSender struct {
	host     string
	port     int
	sender   string
	password string
}

func NewEmailSender(host string, port int, sender, password string) *EmailSender {
	return &EmailSender{host: host, port: port, sender: sender, password: password}
}

// SendBillReminder emails the owner about one due or overdue bill. The
// body is Swahili like the rest of the user-facing surface.
func (s *EmailSender) SendBillReminder(ctx context.Context, msg *amqp.BillReminderMessage) error {
	amount := msg.Amount
	if d, err := decimal.NewFromString(msg.Amount); err == nil {
		amount = core.FormatTZS(d)
	}

	e := email.NewEmail()
	e.From = s.sender
	e.To = []string{msg.Email}
	e.Subject = fmt.Sprintf("Kumbusho: %s inadaiwa %s", msg.Title, msg.DueDate)

	body := fmt.Sprintf(
		"Habari %s,\n\n"+
			"Hii ni kumbusho kwamba malipo yako ya %q (%s) ya kiasi cha %s "+
			"yanadaiwa tarehe %s.\n"+
			"Tafadhali hakikisha umelipa kwa wakati.\n\n"+
			"Fedha",
		msg.Username, msg.Title, msg.Category, amount, msg.DueDate,
	)
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	auth := smtp.PlainAuth("", s.sender, s.password, s.host)
	if err := e.Send(addr, auth); err != nil {
		slog.ErrorContext(ctx, "Failed to send reminder email",
			"to", msg.Email, "bill_id", msg.BillID, "error", err)
		return fmt.Errorf("send email: %w", err)
	}

	slog.InfoContext(ctx, "Reminder email sent", "to", msg.Email, "bill_id", msg.BillID)
	return nil
}
