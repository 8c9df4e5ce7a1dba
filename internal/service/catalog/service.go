// Package catalog manages the boutique's stock items.
package catalog

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
	promptCreate = "Do you want to add this stock?"
	promptUpdate = "Are you sure you want to update this stock?"
	promptDelete = "Are you sure you want to delete this stock item?"
)

// Service mirrors the stock collection and writes through to the record store.
type Service struct {
	store  records.Store
	items  *mirror.List[models.StockItem]
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new stock catalog instance. Call Refresh to load it.
func NewService(store records.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		items:  mirror.New(func(s models.StockItem) string { return s.ID }),
		logger: logger,
		now:    time.Now,
	}
}

// Refresh reloads the catalog from the store, newest first.
func (s *Service) Refresh(ctx context.Context) error {
	docs, err := s.store.List(ctx, records.CollectionStock)
	if err != nil {
		s.logger.Error("failed to load stock", zap.Error(err))
		return fmt.Errorf("%w: load stock: %v", models.ErrStore, err)
	}

	items := make([]models.StockItem, len(docs))
	for i, doc := range docs {
		items[len(docs)-1-i] = models.StockItemFromDocument(doc)
	}
	s.items.Reset(items)
	return nil
}

// List returns the catalog, newest first.
func (s *Service) List() []models.StockItem {
	return s.items.Items()
}

// Get returns the stock item with the given id.
func (s *Service) Get(id string) (models.StockItem, bool) {
	return s.items.Get(id)
}

// Count returns the number of stock items.
func (s *Service) Count() int {
	return s.items.Len()
}

// Create validates and stores a new stock item.
func (s *Service) Create(ctx context.Context, input models.StockItem, confirmed bool) (models.StockItem, error) {
	item := normalize(input)
	if err := validate(item); err != nil {
		return models.StockItem{}, err
	}
	if err := models.RequireConfirmation(confirmed, promptCreate); err != nil {
		return models.StockItem{}, err
	}

	item.ID = ""
	item.CreatedAt = s.now().UTC()
	id, err := s.store.Create(ctx, records.CollectionStock, item.Attributes())
	if err != nil {
		s.logger.Error("failed to save stock", zap.String("article_number", item.ArticleNumber), zap.Error(err))
		return models.StockItem{}, fmt.Errorf("%w: save stock: %v", models.ErrStore, err)
	}
	item.ID = id
	s.items.Prepend(item)

	s.logger.Info("stock added", zap.String("id", id), zap.String("article_number", item.ArticleNumber))
	return item, nil
}

// Update overwrites the fields of an existing stock item.
func (s *Service) Update(ctx context.Context, id string, input models.StockItem, confirmed bool) (models.StockItem, error) {
	current, ok := s.items.Get(id)
	if !ok {
		return models.StockItem{}, fmt.Errorf("%w: stock %s", models.ErrNotFound, id)
	}

	item := normalize(input)
	if err := validate(item); err != nil {
		return models.StockItem{}, err
	}
	if err := models.RequireConfirmation(confirmed, promptUpdate); err != nil {
		return models.StockItem{}, err
	}

	item.ID = id
	item.CreatedAt = current.CreatedAt
	if err := s.store.Update(ctx, records.CollectionStock, id, item.Attributes()); err != nil {
		if errors.Is(err, records.ErrNotFound) {
			return models.StockItem{}, fmt.Errorf("%w: stock %s", models.ErrNotFound, id)
		}
		s.logger.Error("failed to update stock", zap.String("id", id), zap.Error(err))
		return models.StockItem{}, fmt.Errorf("%w: update stock: %v", models.ErrStore, err)
	}
	s.items.Replace(item)

	s.logger.Info("stock updated", zap.String("id", id))
	return item, nil
}

// Delete removes a stock item. Past orders keep their snapshot of it.
func (s *Service) Delete(ctx context.Context, id string, confirmed bool) error {
	if err := models.RequireConfirmation(confirmed, promptDelete); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, records.CollectionStock, id); err != nil {
		s.logger.Error("failed to delete stock", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("%w: delete stock: %v", models.ErrStore, err)
	}
	s.items.Remove(id)

	s.logger.Info("stock deleted", zap.String("id", id))
	return nil
}

// Validate checks the required fields of a stock item without touching the store.
func Validate(item models.StockItem) error {
	return validate(normalize(item))
}

func normalize(item models.StockItem) models.StockItem {
	item.ArticleNumber = strings.TrimSpace(item.ArticleNumber)
	item.ProductName = strings.TrimSpace(item.ProductName)
	item.ProductCost = models.Numeric(strings.TrimSpace(string(item.ProductCost)))
	item.Quantity = models.Numeric(strings.TrimSpace(string(item.Quantity)))
	return item
}

func validate(item models.StockItem) error {
	if item.ArticleNumber == "" || item.ProductName == "" || item.ProductCost.IsBlank() || item.Quantity.IsBlank() {
		return fmt.Errorf("%w: please fill all fields", models.ErrValidation)
	}
	return nil
}
