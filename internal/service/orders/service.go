// Package orders manages the order ledger. Each order embeds a copy of the
// stock item and customer it was placed with.
package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/boutique/internal/domain/models"
	"github.com/mamadbah2/boutique/internal/repository/records"
	"github.com/mamadbah2/boutique/internal/service/mirror"
)

const (
	promptCreate = "Are you sure you want to add this order?"
	promptUpdate = "Are you sure you want to update this order?"
	promptDelete = "Are you sure you want to delete this order?"
)

// StockLookup resolves a live stock item by id.
type StockLookup interface {
	Get(id string) (models.StockItem, bool)
}

// CustomerLookup resolves a live customer by id.
type CustomerLookup interface {
	Get(id string) (models.Customer, bool)
}

// Input is an order as entered by the user: references to the chosen stock
// item and customer plus the sale details.
type Input struct {
	StockID      string         `json:"stockId"`
	CustomerID   string         `json:"customerId"`
	SellingPrice models.Numeric `json:"sellingPrice"`
	Quantity     models.Numeric `json:"quantity"`
	Date         string         `json:"date"`
	Time         string         `json:"time"`
}

// Service mirrors the orders collection and writes through to the record store.
type Service struct {
	store     records.Store
	stock     StockLookup
	customers CustomerLookup
	orders    *mirror.List[models.Order]
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires a new order ledger. Call Refresh to load it.
func NewService(store records.Store, stock StockLookup, customers CustomerLookup, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:     store,
		stock:     stock,
		customers: customers,
		orders:    mirror.New(func(o models.Order) string { return o.ID }),
		logger:    logger,
		now:       time.Now,
	}
}

// Refresh reloads the ledger from the store, newest first.
func (s *Service) Refresh(ctx context.Context) error {
	docs, err := s.store.List(ctx, records.CollectionOrders)
	if err != nil {
		s.logger.Error("failed to load orders", zap.Error(err))
		return fmt.Errorf("%w: load orders: %v", models.ErrStore, err)
	}

	orders := make([]models.Order, len(docs))
	for i, doc := range docs {
		orders[len(docs)-1-i] = models.OrderFromDocument(doc)
	}
	s.orders.Reset(orders)
	return nil
}

// List returns the ledger, newest first.
func (s *Service) List() []models.Order {
	return s.orders.Items()
}

// Count returns the number of orders.
func (s *Service) Count() int {
	return s.orders.Len()
}

// Create snapshots the selected stock item and customer into a new order.
func (s *Service) Create(ctx context.Context, input Input, confirmed bool) (models.Order, error) {
	order, err := s.build(input)
	if err != nil {
		return models.Order{}, err
	}
	if err := models.RequireConfirmation(confirmed, promptCreate); err != nil {
		return models.Order{}, err
	}

	order.CreatedAt = s.now().UTC()
	id, err := s.store.Create(ctx, records.CollectionOrders, order.Attributes())
	if err != nil {
		s.logger.Error("failed to save order", zap.Error(err))
		return models.Order{}, fmt.Errorf("%w: save order: %v", models.ErrStore, err)
	}
	order.ID = id
	s.orders.Prepend(order)

	s.logger.Info("order added",
		zap.String("id", id),
		zap.String("stock_id", order.StockArticle.ID),
		zap.String("customer_id", order.Customer.ID))
	return order, nil
}

// Update rebuilds an existing order from the currently selected stock item and
// customer. The previous snapshots are discarded, not diffed.
func (s *Service) Update(ctx context.Context, id string, input Input, confirmed bool) (models.Order, error) {
	current, ok := s.orders.Get(id)
	if !ok {
		return models.Order{}, fmt.Errorf("%w: order %s", models.ErrNotFound, id)
	}

	order, err := s.build(input)
	if err != nil {
		return models.Order{}, err
	}
	if err := models.RequireConfirmation(confirmed, promptUpdate); err != nil {
		return models.Order{}, err
	}

	order.ID = id
	order.CreatedAt = current.CreatedAt
	if err := s.store.Update(ctx, records.CollectionOrders, id, order.Attributes()); err != nil {
		if errors.Is(err, records.ErrNotFound) {
			return models.Order{}, fmt.Errorf("%w: order %s", models.ErrNotFound, id)
		}
		s.logger.Error("failed to update order", zap.String("id", id), zap.Error(err))
		return models.Order{}, fmt.Errorf("%w: update order: %v", models.ErrStore, err)
	}
	s.orders.Replace(order)

	s.logger.Info("order updated", zap.String("id", id))
	return order, nil
}

// Delete removes an order.
func (s *Service) Delete(ctx context.Context, id string, confirmed bool) error {
	if err := models.RequireConfirmation(confirmed, promptDelete); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, records.CollectionOrders, id); err != nil {
		s.logger.Error("failed to delete order", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("%w: delete order: %v", models.ErrStore, err)
	}
	s.orders.Remove(id)

	s.logger.Info("order deleted", zap.String("id", id))
	return nil
}

// Validate reports whether every field is filled and the date is readable.
// It does not resolve the stock and customer references.
func (in Input) Validate() error {
	_, err := in.normalize().date()
	return err
}

func (in Input) normalize() Input {
	return Input{
		StockID:      strings.TrimSpace(in.StockID),
		CustomerID:   strings.TrimSpace(in.CustomerID),
		SellingPrice: models.Numeric(strings.TrimSpace(string(in.SellingPrice))),
		Quantity:     models.Numeric(strings.TrimSpace(string(in.Quantity))),
		Date:         strings.TrimSpace(in.Date),
		Time:         strings.TrimSpace(in.Time),
	}
}

func (in Input) date() (models.Date, error) {
	if in.StockID == "" || in.CustomerID == "" || in.SellingPrice.IsBlank() || in.Quantity.IsBlank() || in.Date == "" || in.Time == "" {
		return models.Date{}, fmt.Errorf("%w: please fill all fields", models.ErrValidation)
	}
	return models.ParseDate(in.Date)
}

func (s *Service) build(input Input) (models.Order, error) {
	in := input.normalize()
	date, err := in.date()
	if err != nil {
		return models.Order{}, err
	}

	item, ok := s.stock.Get(in.StockID)
	if !ok {
		return models.Order{}, fmt.Errorf("%w: unknown stock article %s", models.ErrValidation, in.StockID)
	}
	customer, ok := s.customers.Get(in.CustomerID)
	if !ok {
		return models.Order{}, fmt.Errorf("%w: unknown customer %s", models.ErrValidation, in.CustomerID)
	}

	return models.Order{
		StockArticle: item.Snapshot(),
		Customer:     customer.Snapshot(),
		SellingPrice: in.SellingPrice,
		Quantity:     in.Quantity,
		Date:         date,
		Time:         in.Time,
	}, nil
}
