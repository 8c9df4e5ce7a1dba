package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/boutique/internal/domain/models"
	"github.com/mamadbah2/boutique/internal/service/catalog"
)

// StockService is the catalog surface used over HTTP.
type StockService interface {
	Refresh(ctx context.Context) error
	List() []models.StockItem
	Create(ctx context.Context, input models.StockItem, confirmed bool) (models.StockItem, error)
	Update(ctx context.Context, id string, input models.StockItem, confirmed bool) (models.StockItem, error)
	Delete(ctx context.Context, id string, confirmed bool) error
}

type stockRequest struct {
	models.StockItem
	Confirm bool `json:"confirm"`
}

// StockHandler exposes the stock catalog.
type StockHandler struct {
	svc    StockService
	logger *zap.Logger
}

// NewStockHandler builds a StockHandler. A nil logger disables logging.
func NewStockHandler(svc StockService, logger *zap.Logger) *StockHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockHandler{svc: svc, logger: logger}
}

// List reloads and returns the catalog, newest first.
func (h *StockHandler) List(c *gin.Context) {
	if err := h.svc.Refresh(c.Request.Context()); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stock": h.svc.List()})
}

// Create adds a stock item.
func (h *StockHandler) Create(c *gin.Context) {
	var req stockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	item, err := h.svc.Create(c.Request.Context(), req.StockItem, confirmed(c, req.Confirm))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Update overwrites a stock item.
func (h *StockHandler) Update(c *gin.Context) {
	var req stockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	if err := catalog.Validate(req.StockItem); err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.svc.Refresh(c.Request.Context()); err != nil {
		respondError(c, h.logger, err)
		return
	}

	item, err := h.svc.Update(c.Request.Context(), c.Param("id"), req.StockItem, confirmed(c, req.Confirm))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete removes a stock item once confirmed through ?confirm=true.
func (h *StockHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), confirmed(c, false)); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
