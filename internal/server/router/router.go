package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mamadbah2/boutique/internal/server/handlers"
)

// Handlers groups the HTTP handlers mounted by New.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Stock     *handlers.StockHandler
	Customers *handlers.CustomerHandler
	Orders    *handlers.OrderHandler
	PNL       *handlers.PNLHandler
	Dashboard *handlers.DashboardHandler
}

// New wires the Gin engine with required routes and middlewares. A nil
// registry disables request metrics and the /metrics endpoint.
func New(h Handlers, auth handlers.AuthService, registry *prometheus.Registry, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))
	if registry != nil {
		r.Use(metricsMiddleware(newHTTPMetrics(registry)))
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/login", h.Auth.LoginPage)
	r.POST("/login", h.Auth.Login)
	r.POST("/logout", h.Auth.Logout)

	api := r.Group("/api", requireSession(auth, logger))
	{
		api.GET("/dashboard", h.Dashboard.Show)

		api.GET("/stock", h.Stock.List)
		api.POST("/stock", h.Stock.Create)
		api.PUT("/stock/:id", h.Stock.Update)
		api.DELETE("/stock/:id", h.Stock.Delete)

		api.GET("/customers", h.Customers.List)
		api.POST("/customers", h.Customers.Create)
		api.PUT("/customers/:id", h.Customers.Update)
		api.DELETE("/customers/:id", h.Customers.Delete)

		api.GET("/orders", h.Orders.List)
		api.POST("/orders", h.Orders.Create)
		api.PUT("/orders/:id", h.Orders.Update)
		api.DELETE("/orders/:id", h.Orders.Delete)

		api.GET("/pnl", h.PNL.Report)
		api.GET("/pnl/export.xlsx", h.PNL.Export)
		api.POST("/pnl/share", h.PNL.Share)
	}

	logger.Info("router initialized")

	return r
}
