package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/boutique/internal/domain/models"
	"github.com/mamadbah2/boutique/internal/service/orders"
)

// OrderService is the ledger surface used over HTTP.
type OrderService interface {
	Refresh(ctx context.Context) error
	List() []models.Order
	Create(ctx context.Context, input orders.Input, confirmed bool) (models.Order, error)
	Update(ctx context.Context, id string, input orders.Input, confirmed bool) (models.Order, error)
	Delete(ctx context.Context, id string, confirmed bool) error
}

type orderRequest struct {
	orders.Input
	Confirm bool `json:"confirm"`
}

// OrderHandler exposes the order ledger. Creating or editing an order needs the
// catalog and directory to be current, so those are refreshed first.
type OrderHandler struct {
	svc       OrderService
	stock     StockService
	customers CustomerService
	logger    *zap.Logger
}

// NewOrderHandler builds an OrderHandler. A nil logger disables logging.
func NewOrderHandler(svc OrderService, stock StockService, customers CustomerService, logger *zap.Logger) *OrderHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderHandler{svc: svc, stock: stock, customers: customers, logger: logger}
}

// List reloads and returns the ledger, newest first.
func (h *OrderHandler) List(c *gin.Context) {
	if err := h.svc.Refresh(c.Request.Context()); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": h.svc.List()})
}

// Create places an order for the selected stock item and customer.
func (h *OrderHandler) Create(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	if err := req.Input.Validate(); err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.refreshSelections(c.Request.Context()); err != nil {
		respondError(c, h.logger, err)
		return
	}

	order, err := h.svc.Create(c.Request.Context(), req.Input, confirmed(c, req.Confirm))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// Update rebuilds an order from the submitted selection.
func (h *OrderHandler) Update(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	if err := req.Input.Validate(); err != nil {
		respondError(c, h.logger, err)
		return
	}
	ctx := c.Request.Context()
	if err := h.refreshSelections(ctx); err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.svc.Refresh(ctx); err != nil {
		respondError(c, h.logger, err)
		return
	}

	order, err := h.svc.Update(ctx, c.Param("id"), req.Input, confirmed(c, req.Confirm))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// Delete removes an order once confirmed through ?confirm=true.
func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), confirmed(c, false)); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OrderHandler) refreshSelections(ctx context.Context) error {
	if err := h.stock.Refresh(ctx); err != nil {
		return err
	}
	return h.customers.Refresh(ctx)
}
