package notify

import (
	"context"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"

	"apteka_notify_backend/platform/config"
)

// AlertMailer emails the administrator when an order could not be notified
// on any channel. Quietly does nothing when SMTP is not configured.
type AlertMailer struct {
	cfg config.AlertConfig
}

func NewAlertMailer(cfg config.AlertConfig) *AlertMailer {
	return &AlertMailer{cfg: cfg}
}

// SendDeliveryFailure reports one undeliverable order.
func (m *AlertMailer) SendDeliveryFailure(ctx context.Context, orderNumber, phone, reason string) error {
	if !m.cfg.IsAlertEnabled() {
		return nil
	}

	msg := gomail.NewMsg()
	if err := msg.From(m.cfg.GetAlertFromAddress()); err != nil {
		return fmt.Errorf("alert from: %w", err)
	}
	if err := msg.To(m.cfg.GetAlertAdminAddress()); err != nil {
		return fmt.Errorf("alert to: %w", err)
	}
	msg.Subject(fmt.Sprintf("Не удалось уведомить клиента по заказу %s", orderNumber))
	msg.SetBodyString(gomail.TypeTextPlain, fmt.Sprintf(
		"Заказ: %s\nТелефон: %s\nПричина: %s\n\nКлиента нужно обзвонить вручную.",
		orderNumber, phone, reason,
	))

	client, err := gomail.NewClient(m.cfg.GetAlertSMTPHost(),
		gomail.WithPort(m.cfg.GetAlertSMTPPort()),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.cfg.GetAlertSMTPUser()),
		gomail.WithPassword(m.cfg.GetAlertSMTPPassword()),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
	)
	if err != nil {
		return fmt.Errorf("alert smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("alert smtp send: %w", err)
	}

	return nil
}
