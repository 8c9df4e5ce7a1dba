package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/mamadbah2/boutique/internal/config"
	"github.com/mamadbah2/boutique/internal/repository/firestore"
	"github.com/mamadbah2/boutique/internal/repository/mongodb"
	"github.com/mamadbah2/boutique/internal/repository/records"
	"github.com/mamadbah2/boutique/internal/repository/sheets"
	"github.com/mamadbah2/boutique/internal/scheduler"
	"github.com/mamadbah2/boutique/internal/server/handlers"
	"github.com/mamadbah2/boutique/internal/server/router"
	authsvc "github.com/mamadbah2/boutique/internal/service/auth"
	catalogsvc "github.com/mamadbah2/boutique/internal/service/catalog"
	customersvc "github.com/mamadbah2/boutique/internal/service/customers"
	ordersvc "github.com/mamadbah2/boutique/internal/service/orders"
	pnlsvc "github.com/mamadbah2/boutique/internal/service/pnl"
	whatsappsvc "github.com/mamadbah2/boutique/internal/service/whatsapp"
	whatsappclient "github.com/mamadbah2/boutique/pkg/clients/whatsapp"
	"github.com/mamadbah2/boutique/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.App.Env))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, closeStore, err := openStore(context.Background(), cfg, baseLogger)
	if err != nil {
		baseLogger.Fatal("failed to init record store", zap.String("backend", cfg.Store.Backend), zap.Error(err))
	}
	defer closeStore()

	stockSvc := catalogsvc.NewService(store, baseLogger.Named("svc.catalog"))
	customerSvc := customersvc.NewService(store, baseLogger.Named("svc.customers"))
	orderSvc := ordersvc.NewService(store, stockSvc, customerSvc, baseLogger.Named("svc.orders"))
	pnlSvc := pnlsvc.NewService(store, baseLogger.Named("svc.pnl"))
	authSvc := authsvc.NewService(cfg.Auth, baseLogger.Named("svc.auth"))

	warmCtx, cancelWarm := context.WithTimeout(context.Background(), 30*time.Second)
	for name, refresh := range map[string]func(context.Context) error{
		"stock":     stockSvc.Refresh,
		"customers": customerSvc.Refresh,
		"orders":    orderSvc.Refresh,
	} {
		if err := refresh(warmCtx); err != nil {
			baseLogger.Warn("initial load failed", zap.String("collection", name), zap.Error(err))
		}
	}
	cancelWarm()

	var messagingSvc whatsappsvc.MessagingService
	if cfg.WhatsApp.Enabled() {
		whatsClient := whatsappclient.NewClient(cfg.WhatsApp)
		messagingSvc = whatsappsvc.NewMetaWhatsAppService(whatsClient, baseLogger.Named("svc.whatsapp"))
		baseLogger.Info("whatsapp notifications enabled")
	} else {
		baseLogger.Warn("whatsapp token missing, pnl sharing disabled")
	}

	var sheetsRepo sheets.Repository
	if cfg.Sheets.Enabled() {
		repo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		sheetsRepo = repo
	}

	var registry *prometheus.Registry
	if cfg.Server.MetricsEnabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	engine := router.New(router.Handlers{
		Auth:      handlers.NewAuthHandler(authSvc, cfg.App.Env == "production", baseLogger.Named("handlers.auth")),
		Stock:     handlers.NewStockHandler(stockSvc, baseLogger.Named("handlers.stock")),
		Customers: handlers.NewCustomerHandler(customerSvc, baseLogger.Named("handlers.customers")),
		Orders:    handlers.NewOrderHandler(orderSvc, stockSvc, customerSvc, baseLogger.Named("handlers.orders")),
		PNL:       handlers.NewPNLHandler(pnlSvc, messagingSvc, baseLogger.Named("handlers.pnl")),
		Dashboard: handlers.NewDashboardHandler(stockSvc, customerSvc, orderSvc, pnlSvc, baseLogger.Named("handlers.dashboard")),
	}, authSvc, registry, baseLogger.Named("router"))

	var registerer prometheus.Registerer
	if registry != nil {
		registerer = registry
	}
	sched, err := scheduler.NewScheduler(*cfg, pnlSvc, sheetsRepo, messagingSvc, registerer, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// openStore connects the configured record store backend.
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (records.Store, func(), error) {
	switch cfg.Store.Backend {
	case config.StoreMongoDB:
		connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()

		repo, err := mongodb.NewMongoDBRepository(connectCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := repo.Close(context.Background()); err != nil {
				log.Error("failed to close mongodb connection", zap.Error(err))
			}
		}
		return repo, closeFn, nil
	case config.StoreFirestore:
		repo, err := firestore.NewFirestoreRepository(cfg.Firestore, log.Named("repo.firestore"))
		if err != nil {
			return nil, nil, err
		}
		return repo, func() {}, nil
	case config.StoreMemory:
		log.Warn("using in-memory record store, data is lost on restart")
		return records.NewMemoryStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported store backend %q", cfg.Store.Backend)
	}
}
