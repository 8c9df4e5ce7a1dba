// Package customers manages the boutique's customer directory.
package customers

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
	promptCreate = "Are you sure you want to add this customer?"
	promptUpdate = "Are you sure you want to update this customer?"
	promptDelete = "Are you sure you want to delete this customer?"
)

// Service mirrors the customers collection and writes through to the record store.
type Service struct {
	store     records.Store
	customers *mirror.List[models.Customer]
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires a new customer directory. Call Refresh to load it.
func NewService(store records.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:     store,
		customers: mirror.New(func(c models.Customer) string { return c.ID }),
		logger:    logger,
		now:       time.Now,
	}
}

// Refresh reloads the directory from the store, newest first.
func (s *Service) Refresh(ctx context.Context) error {
	docs, err := s.store.List(ctx, records.CollectionCustomers)
	if err != nil {
		s.logger.Error("failed to load customers", zap.Error(err))
		return fmt.Errorf("%w: load customers: %v", models.ErrStore, err)
	}

	customers := make([]models.Customer, len(docs))
	for i, doc := range docs {
		customers[len(docs)-1-i] = models.CustomerFromDocument(doc)
	}
	s.customers.Reset(customers)
	return nil
}

// List returns the directory, newest first.
func (s *Service) List() []models.Customer {
	return s.customers.Items()
}

// Get returns the customer with the given id.
func (s *Service) Get(id string) (models.Customer, bool) {
	return s.customers.Get(id)
}

// Count returns the number of customers.
func (s *Service) Count() int {
	return s.customers.Len()
}

// Create validates and stores a new customer.
func (s *Service) Create(ctx context.Context, input models.Customer, confirmed bool) (models.Customer, error) {
	customer := normalize(input)
	if err := validate(customer); err != nil {
		return models.Customer{}, err
	}
	if err := models.RequireConfirmation(confirmed, promptCreate); err != nil {
		return models.Customer{}, err
	}

	customer.ID = ""
	customer.CreatedAt = s.now().UTC()
	id, err := s.store.Create(ctx, records.CollectionCustomers, customer.Attributes())
	if err != nil {
		s.logger.Error("failed to save customer", zap.Error(err))
		return models.Customer{}, fmt.Errorf("%w: save customer: %v", models.ErrStore, err)
	}
	customer.ID = id
	s.customers.Prepend(customer)

	s.logger.Info("customer added", zap.String("id", id))
	return customer, nil
}

// Update overwrites an existing customer. Orders already placed keep their
// own copy of the old details.
func (s *Service) Update(ctx context.Context, id string, input models.Customer, confirmed bool) (models.Customer, error) {
	current, ok := s.customers.Get(id)
	if !ok {
		return models.Customer{}, fmt.Errorf("%w: customer %s", models.ErrNotFound, id)
	}

	customer := normalize(input)
	if err := validate(customer); err != nil {
		return models.Customer{}, err
	}
	if err := models.RequireConfirmation(confirmed, promptUpdate); err != nil {
		return models.Customer{}, err
	}

	customer.ID = id
	customer.CreatedAt = current.CreatedAt
	if err := s.store.Update(ctx, records.CollectionCustomers, id, customer.Attributes()); err != nil {
		if errors.Is(err, records.ErrNotFound) {
			return models.Customer{}, fmt.Errorf("%w: customer %s", models.ErrNotFound, id)
		}
		s.logger.Error("failed to update customer", zap.String("id", id), zap.Error(err))
		return models.Customer{}, fmt.Errorf("%w: update customer: %v", models.ErrStore, err)
	}
	s.customers.Replace(customer)

	s.logger.Info("customer updated", zap.String("id", id))
	return customer, nil
}

// Delete removes a customer.
func (s *Service) Delete(ctx context.Context, id string, confirmed bool) error {
	if err := models.RequireConfirmation(confirmed, promptDelete); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, records.CollectionCustomers, id); err != nil {
		s.logger.Error("failed to delete customer", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("%w: delete customer: %v", models.ErrStore, err)
	}
	s.customers.Remove(id)

	s.logger.Info("customer deleted", zap.String("id", id))
	return nil
}

// Validate checks the required fields of a customer without touching the store.
func Validate(c models.Customer) error {
	return validate(normalize(c))
}

func normalize(c models.Customer) models.Customer {
	c.FirstName = strings.TrimSpace(c.FirstName)
	c.SecondName = strings.TrimSpace(c.SecondName)
	c.ContactNumber = strings.TrimSpace(c.ContactNumber)
	c.Address = strings.TrimSpace(c.Address)
	return c
}

func validate(c models.Customer) error {
	if c.FirstName == "" || c.SecondName == "" {
		return fmt.Errorf("%w: first name and second name are required", models.ErrValidation)
	}
	return nil
}
