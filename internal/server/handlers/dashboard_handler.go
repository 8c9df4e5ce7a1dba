package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Counter is implemented by the catalog, directory and ledger services.
type Counter interface {
	Count() int
}

// DashboardHandler summarizes the boutique for the signed-in operator.
type DashboardHandler struct {
	stock     Counter
	customers Counter
	orders    Counter
	pnl       PNLService
	logger    *zap.Logger
}

// NewDashboardHandler builds a DashboardHandler. A nil logger disables logging.
func NewDashboardHandler(stock, customers, orders Counter, pnl PNLService, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{stock: stock, customers: customers, orders: orders, pnl: pnl, logger: logger}
}

// Show returns the signed-in user, record counts and the all-time profit.
func (h *DashboardHandler) Show(c *gin.Context) {
	report, err := h.pnl.Report(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	sess, _ := SessionFrom(c)
	c.JSON(http.StatusOK, gin.H{
		"user":        sess.Email,
		"stock":       h.stock.Count(),
		"customers":   h.customers.Count(),
		"orders":      h.orders.Count(),
		"totalProfit": report.TotalProfit,
	})
}
