package notify

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"apteka_notify_backend/internal/extract"
	"apteka_notify_backend/internal/orders/repository"
	"apteka_notify_backend/platform/config"
	"apteka_notify_backend/platform/logger"
	"apteka_notify_backend/platform/phone"
)

const (
	statusSent    = "✅"
	statusFailed  = "❌"
	statusSkipped = "⏭"
)

// Dispatcher drains pending orders and notifies their customers. Channels
// are tried in order; the first success wins and the rest are skipped.
type Dispatcher struct {
	cfg      config.NotifyConfig
	orders   *repository.Repository
	channels []Channel
	deduper  *Deduper
	logRepo  *LogRepository
	alerts   *AlertMailer
	limiter  *rate.Limiter
	log      *logger.Logger
}

func NewDispatcher(
	cfg config.NotifyConfig,
	orders *repository.Repository,
	channels []Channel,
	deduper *Deduper,
	logRepo *LogRepository,
	alerts *AlertMailer,
	log *logger.Logger,
) *Dispatcher {
	interval := cfg.GetSendInterval()
	if interval <= 0 {
		interval = 2 * time.Second
	}

	return &Dispatcher{
		cfg:      cfg,
		orders:   orders,
		channels: channels,
		deduper:  deduper,
		logRepo:  logRepo,
		alerts:   alerts,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		log:      log,
	}
}

// DispatchPending notifies every order that has not been sent yet. Failed
// orders keep their pending state and are retried on the next run.
func (d *Dispatcher) DispatchPending(ctx context.Context) error {
	pending, err := d.orders.ListPending(ctx, 100)
	if err != nil {
		return err
	}

	for i := range pending {
		if err := ctx.Err(); err != nil {
			return err
		}
		d.dispatchOrder(ctx, &pending[i])
	}

	return nil
}

func (d *Dispatcher) dispatchOrder(ctx context.Context, order *repository.Order) {
	if d.isIgnored(order.Phone) {
		d.log.NotifyEvent("none", order.OrderNumber, order.Phone, false, "phone is blacklisted")
		d.updateStatus(ctx, order, statusSkipped, statusSkipped, true)
		return
	}
	if !phone.IsLikelyRUMobile(order.Phone) {
		d.log.NotifyEvent("none", order.OrderNumber, order.Phone, false, "not a mobile number")
		d.alert(ctx, order, "номер не похож на мобильный")
		d.updateStatus(ctx, order, statusFailed, statusFailed, true)
		return
	}

	first, err := d.deduper.Claim(ctx, order.OrderNumber)
	if err != nil {
		d.log.Error("dedupe claim failed", "order", order.OrderNumber, "error", err)
		return
	}
	if !first {
		d.log.Info("notification already sent recently", "order", order.OrderNumber)
		d.updateStatus(ctx, order, order.WaStatus, order.SmsStatus, true)
		return
	}

	message := BuildMessage(d.cfg.GetNotificationTemplate(), order)

	waStatus, smsStatus := order.WaStatus, order.SmsStatus
	delivered := false
	var lastErr error

	for _, ch := range d.channels {
		if !ch.Enabled() {
			continue
		}
		if err := d.limiter.Wait(ctx); err != nil {
			return
		}

		messageID, err := ch.Send(ctx, order.Phone, message)
		d.record(ctx, order, ch.Name(), messageID, err)

		status := statusSent
		if err != nil {
			status = statusFailed
			lastErr = err
		}
		switch ch.Name() {
		case "whatsapp":
			waStatus = status
		case "sms":
			smsStatus = status
		}

		d.log.NotifyEvent(ch.Name(), order.OrderNumber, order.Phone, err == nil, errString(err))
		if err == nil {
			delivered = true
			break
		}
	}

	if !delivered {
		// Leave the order pending for the next run.
		if err := d.deduper.Release(ctx, order.OrderNumber); err != nil {
			d.log.Error("dedupe release failed", "order", order.OrderNumber, "error", err)
		}
		d.alert(ctx, order, "ни один канал не доставил сообщение: "+errString(lastErr))
	}

	d.updateStatus(ctx, order, waStatus, smsStatus, delivered)
}

func (d *Dispatcher) isIgnored(orderPhone string) bool {
	normalized := extract.NormalizePhone(orderPhone)
	for _, ignored := range d.cfg.GetIgnoredPhones() {
		if extract.NormalizePhone(ignored) == normalized {
			return true
		}
	}
	return false
}

func (d *Dispatcher) record(ctx context.Context, order *repository.Order, channel, messageID string, sendErr error) {
	entry := &LogEntry{
		OrderID:      &order.ID,
		OrderNumber:  order.OrderNumber,
		Phone:        order.Phone,
		Channel:      channel,
		Success:      sendErr == nil,
		MessageID:    messageID,
		ErrorMessage: errString(sendErr),
	}
	if err := d.logRepo.Record(ctx, entry); err != nil {
		d.log.DatabaseError("notification_log.record", err)
	}
}

func (d *Dispatcher) updateStatus(ctx context.Context, order *repository.Order, waStatus, smsStatus string, sent bool) {
	if err := d.orders.UpdateSendStatus(ctx, order.ID, waStatus, smsStatus, sent); err != nil {
		d.log.DatabaseError("orders.update_send_status", err)
	}
}

func (d *Dispatcher) alert(ctx context.Context, order *repository.Order, reason string) {
	if d.alerts == nil {
		return
	}
	if err := d.alerts.SendDeliveryFailure(ctx, order.OrderNumber, order.Phone, reason); err != nil {
		d.log.Error("admin alert failed", "order", order.OrderNumber, "error", err)
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
