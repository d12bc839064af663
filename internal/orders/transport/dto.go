// Package transport defines request and response DTOs for the orders API.
package transport

import "time"

// CreateOrderRequest registers an order captured by the browser extension.
// Either a product name or a product page URL must be supplied; when only
// the URL is present the product name is scraped from the page.
type CreateOrderRequest struct {
	Phone       string  `json:"phone" validate:"required"`
	OrderNumber string  `json:"order_number"`
	Product     string  `json:"product"`
	ProductURL  string  `json:"product_url" validate:"omitempty,url"`
	TotalClient float64 `json:"total_client" validate:"gte=0"`
	Note        string  `json:"note"`
}

// ChatMessageRequest registers an order dictated or typed in chat. The text
// is expected to contain a phone number and one or more product mentions;
// voice messages arrive here already transcribed.
type ChatMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

// UpdateContactStatusRequest records a manual follow-up outcome.
type UpdateContactStatusRequest struct {
	ContactStatus string `json:"contact_status" validate:"required,max=100"`
	Note          string `json:"note" validate:"max=500"`
}

// ListOrdersRequest filters the order list by calendar day (YYYY-MM-DD).
type ListOrdersRequest struct {
	Date string `form:"date"`
}

// OrderResponse is the API representation of one order.
type OrderResponse struct {
	ID            string     `json:"id"`
	OrderNumber   string     `json:"order_number"`
	Phone         string     `json:"phone"`
	Products      string     `json:"products"`
	TotalClient   float64    `json:"total_client"`
	TotalPharmacy float64    `json:"total_pharmacy"`
	Source        string     `json:"source"`
	WaStatus      string     `json:"wa_status"`
	SmsStatus     string     `json:"sms_status"`
	ContactStatus string     `json:"contact_status"`
	Note          string     `json:"note"`
	SentAt        *time.Time `json:"sent_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
