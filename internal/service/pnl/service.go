package pnl

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/boutique/internal/domain/models"
	"github.com/mamadbah2/boutique/internal/repository/records"
)

// Service loads orders and stock from the record store and runs the engine.
// Every call recomputes from scratch.
type Service struct {
	store  records.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new PNL service instance.
func NewService(store records.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// Report returns the unfiltered report over all orders.
func (s *Service) Report(ctx context.Context) (models.PNLReport, error) {
	orders, stock, err := s.load(ctx)
	if err != nil {
		return models.PNLReport{}, err
	}
	return Compute(orders, stock), nil
}

// ReportBetween returns the report restricted to [startDate, endDate]. Bounds
// are validated before the store is touched.
func (s *Service) ReportBetween(ctx context.Context, startDate, endDate string) (models.PNLReport, error) {
	if _, _, err := ParseRange(startDate, endDate); err != nil {
		return models.PNLReport{}, err
	}
	full, err := s.Report(ctx)
	if err != nil {
		return models.PNLReport{}, err
	}
	return Filter(full, startDate, endDate)
}

// SaveSnapshot computes the report for [start, end] and stores its summary in
// the snapshots collection.
func (s *Service) SaveSnapshot(ctx context.Context, start, end models.Date) (models.PNLSnapshot, models.PNLReport, error) {
	report, err := s.ReportBetween(ctx, start.String(), end.String())
	if err != nil {
		return models.PNLSnapshot{}, models.PNLReport{}, err
	}

	snapshot := models.SnapshotOf(report, s.now().UTC())
	if _, err := s.store.Create(ctx, records.CollectionPNLSnapshots, snapshot.Attributes()); err != nil {
		s.logger.Error("failed to store pnl snapshot", zap.Error(err))
		return models.PNLSnapshot{}, models.PNLReport{}, fmt.Errorf("%w: save pnl snapshot: %v", models.ErrStore, err)
	}

	s.logger.Info("pnl snapshot stored",
		zap.String("start", start.String()),
		zap.String("end", end.String()),
		zap.Int("orders", snapshot.Orders),
		zap.Float64("total_profit", snapshot.TotalProfit))
	return snapshot, report, nil
}

func (s *Service) load(ctx context.Context) ([]models.Order, []models.StockItem, error) {
	orderDocs, err := s.store.List(ctx, records.CollectionOrders)
	if err != nil {
		s.logger.Error("failed to load orders", zap.Error(err))
		return nil, nil, fmt.Errorf("%w: load orders: %v", models.ErrStore, err)
	}
	stockDocs, err := s.store.List(ctx, records.CollectionStock)
	if err != nil {
		s.logger.Error("failed to load stock", zap.Error(err))
		return nil, nil, fmt.Errorf("%w: load stock: %v", models.ErrStore, err)
	}

	orders := make([]models.Order, 0, len(orderDocs))
	for _, doc := range orderDocs {
		orders = append(orders, models.OrderFromDocument(doc))
	}
	stock := make([]models.StockItem, 0, len(stockDocs))
	for _, doc := range stockDocs {
		stock = append(stock, models.StockItemFromDocument(doc))
	}
	return orders, stock, nil
}
