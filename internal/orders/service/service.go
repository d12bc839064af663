// Package service implements order registration from every intake channel:
// vendor email, chat/voice text and the browser extension.
package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"apteka_notify_backend/internal/extract"
	"apteka_notify_backend/internal/mailintake"
	"apteka_notify_backend/internal/orders/repository"
	"apteka_notify_backend/internal/orders/transport"
	"apteka_notify_backend/platform/apperr"
	"apteka_notify_backend/platform/logger"
)

const (
	// Source values recorded per order.
	SourceEmail     = "email"
	SourceChat      = "chat"
	SourceExtension = "extension"

	// manualOrderNumber marks orders entered without a vendor reference.
	manualOrderNumber = "Ручной"

	msgPhoneNotFound   = "phone number not found in message"
	msgProductNotFound = "product name not found in message"
	msgInvalidPhone    = "phone number is not a valid russian number"
	msgProductRequired = "product name or product url is required"
)

// DispatchEnqueuer asks the background worker to notify pending orders.
// Implemented by the scheduler client; nil leaves dispatch to the ticker.
type DispatchEnqueuer interface {
	EnqueueNotifyDispatch(ctx context.Context, triggeredBy string) error
}

// Service registers and queries orders
type Service struct {
	repo       *repository.Repository
	splitter   *extract.Splitter
	httpClient *http.Client
	enqueuer   DispatchEnqueuer
	log        *logger.Logger
}

// New creates a new orders service
func New(repo *repository.Repository, log *logger.Logger) *Service {
	return &Service{
		repo:       repo,
		splitter:   extract.NewSplitter(extract.DefaultVocabulary()),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
}

// SetDispatchEnqueuer wires the scheduler client so freshly registered
// orders get notified without waiting for the next poll cycle.
func (s *Service) SetDispatchEnqueuer(enqueuer DispatchEnqueuer) {
	s.enqueuer = enqueuer
}

func (s *Service) requestDispatch(ctx context.Context, source string) {
	if s.enqueuer == nil {
		return
	}
	if err := s.enqueuer.EnqueueNotifyDispatch(ctx, source); err != nil {
		s.log.Warn("failed to enqueue notification dispatch", "source", source, "error", err)
	}
}

// RegisterEmailOrder records an order extracted from a vendor email. Emails
// without a phone or order number are logged and skipped, and an order
// number that already exists is treated as an already-processed duplicate.
// Neither case is an error: the mail intake keeps going.
func (s *Service) RegisterEmailOrder(ctx context.Context, data mailintake.OrderData) error {
	if data.Phone == "" {
		s.log.Warn("email order skipped, no phone", "subject", data.Subject)
		return nil
	}
	if data.OrderNumber == "" {
		s.log.Warn("email order skipped, no order number", "subject", data.Subject)
		return nil
	}

	existing, err := s.repo.FindByNumber(ctx, data.OrderNumber)
	if err != nil {
		return err
	}
	if existing != nil {
		s.log.Info("email order already registered", "order", data.OrderNumber)
		return nil
	}

	now := time.Now()
	order := &repository.Order{
		ID:            uuid.New(),
		OrderNumber:   data.OrderNumber,
		Phone:         data.Phone,
		Products:      strings.Join(data.Products, "\n"),
		TotalClient:   data.TotalClient,
		TotalPharmacy: data.TotalPharmacy,
		Source:        SourceEmail,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return err
	}

	s.log.Info("email order registered", "order", order.OrderNumber, "phone", order.Phone)
	return nil
}

// RegisterChatMessage turns one chat or voice-transcript message into an
// order. A missing phone or empty product list comes back as a validation
// error so the caller can prompt for re-entry.
func (s *Service) RegisterChatMessage(ctx context.Context, req transport.ChatMessageRequest) (*transport.OrderResponse, error) {
	phone, ok := extract.ExtractPhone(req.Text)
	if !ok {
		return nil, apperr.Validation(msgPhoneNotFound)
	}

	items := s.splitter.SplitProducts(req.Text)
	if len(items) == 0 {
		return nil, apperr.Validation(msgProductNotFound)
	}

	orderNumber := manualOrderNumber
	if number, ok := extract.ExtractOrderNumber(req.Text); ok {
		orderNumber = number
	}

	now := time.Now()
	order := &repository.Order{
		ID:          uuid.New(),
		OrderNumber: orderNumber,
		Phone:       phone,
		Products:    strings.Join(items, "\n"),
		Source:      SourceChat,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.log.Info("chat order registered", "order", order.OrderNumber, "phone", order.Phone)
	s.requestDispatch(ctx, SourceChat)
	resp := toResponse(order)
	return &resp, nil
}

// RegisterExtension records an order captured by the browser extension. The
// product name is taken from the request, or scraped from the product page
// URL when only that was sent along.
func (s *Service) RegisterExtension(ctx context.Context, req transport.CreateOrderRequest) (*transport.OrderResponse, error) {
	phone := extract.NormalizePhone(req.Phone)
	if len(phone) != 12 || !strings.HasPrefix(phone, "+7") {
		return nil, apperr.Validation(msgInvalidPhone)
	}

	product := strings.TrimSpace(req.Product)
	if product == "" && req.ProductURL != "" {
		product = ProductNameFromURL(ctx, s.httpClient, req.ProductURL)
	}
	if product == "" {
		return nil, apperr.Validation(msgProductRequired)
	}

	orderNumber := req.OrderNumber
	if orderNumber == "" {
		orderNumber = manualOrderNumber
	}

	now := time.Now()
	order := &repository.Order{
		ID:          uuid.New(),
		OrderNumber: orderNumber,
		Phone:       phone,
		Products:    product,
		TotalClient: req.TotalClient,
		Note:        req.Note,
		Source:      SourceExtension,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.log.Info("extension order registered", "order", order.OrderNumber, "phone", order.Phone)
	s.requestDispatch(ctx, SourceExtension)
	resp := toResponse(order)
	return &resp, nil
}

// ListByDate returns orders for one calendar day, today when date is empty.
func (s *Service) ListByDate(ctx context.Context, date string) ([]transport.OrderResponse, error) {
	day := time.Now()
	if date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			return nil, apperr.Validation("date must be YYYY-MM-DD")
		}
		day = parsed
	}

	orders, err := s.repo.ListByDate(ctx, day)
	if err != nil {
		return nil, err
	}
	return toResponses(orders), nil
}

// ListPending returns orders that have not been notified yet.
func (s *Service) ListPending(ctx context.Context) ([]transport.OrderResponse, error) {
	orders, err := s.repo.ListPending(ctx, 100)
	if err != nil {
		return nil, err
	}
	return toResponses(orders), nil
}

// UpdateContactStatus records a manual follow-up outcome on one order.
func (s *Service) UpdateContactStatus(ctx context.Context, id string, req transport.UpdateContactStatusRequest) error {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return apperr.Validation("invalid order id")
	}
	return s.repo.UpdateContactStatus(ctx, orderID, req.ContactStatus, req.Note)
}

// Delete removes one order.
func (s *Service) Delete(ctx context.Context, id string) error {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return apperr.Validation("invalid order id")
	}
	return s.repo.Delete(ctx, orderID)
}

func toResponse(order *repository.Order) transport.OrderResponse {
	return transport.OrderResponse{
		ID:            order.ID.String(),
		OrderNumber:   order.OrderNumber,
		Phone:         order.Phone,
		Products:      order.Products,
		TotalClient:   order.TotalClient,
		TotalPharmacy: order.TotalPharmacy,
		Source:        order.Source,
		WaStatus:      order.WaStatus,
		SmsStatus:     order.SmsStatus,
		ContactStatus: order.ContactStatus,
		Note:          order.Note,
		SentAt:        order.SentAt,
		CreatedAt:     order.CreatedAt,
	}
}

func toResponses(orders []repository.Order) []transport.OrderResponse {
	responses := make([]transport.OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, toResponse(&orders[i]))
	}
	return responses
}
