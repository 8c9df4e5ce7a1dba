package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/boutique/internal/domain/models"
	"github.com/mamadbah2/boutique/internal/service/customers"
)

// CustomerService is the directory surface used over HTTP.
type CustomerService interface {
	Refresh(ctx context.Context) error
	List() []models.Customer
	Create(ctx context.Context, input models.Customer, confirmed bool) (models.Customer, error)
	Update(ctx context.Context, id string, input models.Customer, confirmed bool) (models.Customer, error)
	Delete(ctx context.Context, id string, confirmed bool) error
}

type customerRequest struct {
	models.Customer
	Confirm bool `json:"confirm"`
}

// CustomerHandler exposes the customer directory.
type CustomerHandler struct {
	svc    CustomerService
	logger *zap.Logger
}

// NewCustomerHandler builds a CustomerHandler. A nil logger disables logging.
func NewCustomerHandler(svc CustomerService, logger *zap.Logger) *CustomerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomerHandler{svc: svc, logger: logger}
}

// List reloads and returns the directory, newest first.
func (h *CustomerHandler) List(c *gin.Context) {
	if err := h.svc.Refresh(c.Request.Context()); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": h.svc.List()})
}

// Create adds a customer.
func (h *CustomerHandler) Create(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	customer, err := h.svc.Create(c.Request.Context(), req.Customer, confirmed(c, req.Confirm))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// Update overwrites a customer.
func (h *CustomerHandler) Update(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	if err := customers.Validate(req.Customer); err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.svc.Refresh(c.Request.Context()); err != nil {
		respondError(c, h.logger, err)
		return
	}

	customer, err := h.svc.Update(c.Request.Context(), c.Param("id"), req.Customer, confirmed(c, req.Confirm))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// Delete removes a customer once confirmed through ?confirm=true.
func (h *CustomerHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), confirmed(c, false)); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
