package mailintake

import (
	"context"
	"time"

	"apteka_notify_backend/platform/config"
	"apteka_notify_backend/platform/logger"
)

// OrderRegistrar records one extracted order. Implemented by the orders
// service; an interface here keeps the intake side free of storage concerns.
type OrderRegistrar interface {
	RegisterEmailOrder(ctx context.Context, data OrderData) error
}

// Service ties the IMAP monitor, the archiver and the extraction pipeline
// together. One CheckOnce call is one poll cycle.
type Service struct {
	cfg       config.MailConfig
	monitor   *Monitor
	archiver  *Archiver // nil when archiving is not configured
	registrar OrderRegistrar
	log       *logger.Logger
}

func NewService(cfg config.MailConfig, monitor *Monitor, archiver *Archiver, registrar OrderRegistrar, log *logger.Logger) *Service {
	return &Service{cfg: cfg, monitor: monitor, archiver: archiver, registrar: registrar, log: log}
}

// CheckOnce fetches unread vendor emails received today, archives them,
// extracts order data and hands each order to the registrar. Failures on a
// single email are logged and skipped so one bad message cannot stall the
// rest of the batch.
func (s *Service) CheckOnce(ctx context.Context) error {
	if !s.cfg.IsMailEnabled() {
		return nil
	}

	emails, err := s.monitor.FetchUnread(time.Now())
	if err != nil {
		return err
	}
	s.log.MailEvent("fetched", "", len(emails))

	for _, email := range emails {
		if s.archiver != nil {
			if err := s.archiver.Store(ctx, email); err != nil {
				s.log.Error("mail archive failed", "uid", email.UID, "error", err)
			}
		}

		data := ProcessEmail(email)
		s.log.MailEvent("extracted", email.Subject, len(data.Products))

		if err := s.registrar.RegisterEmailOrder(ctx, data); err != nil {
			s.log.Error("order registration failed",
				"subject", email.Subject, "order", data.OrderNumber, "error", err)
		}

		if err := ctx.Err(); err != nil {
			return err
		}
	}

	return nil
}
