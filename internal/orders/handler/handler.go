package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"apteka_notify_backend/internal/orders/service"
	"apteka_notify_backend/internal/orders/transport"
	"apteka_notify_backend/platform/httpkit"
	"apteka_notify_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for orders
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new orders handler
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the order routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/orders", h.Create)
	rg.GET("/orders", h.List)
	rg.GET("/orders/pending", h.ListPending)
	rg.PATCH("/orders/:id/contact-status", h.UpdateContactStatus)
	rg.DELETE("/orders/:id", h.Delete)

	rg.POST("/messages", h.CreateFromMessage)
}

// Create handles POST /api/v1/orders (browser extension intake)
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	order, err := h.svc.RegisterExtension(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, order)
}

// CreateFromMessage handles POST /api/v1/messages (chat or transcribed voice)
func (h *Handler) CreateFromMessage(c *gin.Context) {
	var req transport.ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	order, err := h.svc.RegisterChatMessage(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, order)
}

// List handles GET /api/v1/orders?date=YYYY-MM-DD
func (h *Handler) List(c *gin.Context) {
	var req transport.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	orders, err := h.svc.ListByDate(c.Request.Context(), req.Date)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, orders)
}

// ListPending handles GET /api/v1/orders/pending
func (h *Handler) ListPending(c *gin.Context) {
	orders, err := h.svc.ListPending(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, orders)
}

// UpdateContactStatus handles PATCH /api/v1/orders/:id/contact-status
func (h *Handler) UpdateContactStatus(c *gin.Context) {
	var req transport.UpdateContactStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	err := h.svc.UpdateContactStatus(c.Request.Context(), c.Param("id"), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"status": "updated"})
}

// Delete handles DELETE /api/v1/orders/:id
func (h *Handler) Delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"status": "deleted"})
}
