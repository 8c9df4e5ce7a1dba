// Package records defines the collection-scoped CRUD boundary to the hosted
// document database.
package records

import (
	"context"
	"errors"

	"github.com/mamadbah2/boutique/internal/domain/models"
)

// Collection names used by the application.
const (
	CollectionStock        = "stock"
	CollectionCustomers    = "customers"
	CollectionOrders       = "orders"
	CollectionPNLSnapshots = "pnl_snapshots"
)

// ErrNotFound is returned by Update when the id does not exist.
var ErrNotFound = errors.New("document not found")

// Store is a document database exposing independent collections, each a
// mapping from a store-generated id to a mutable attribute bag.
type Store interface {
	// List returns every document of the collection in creation order.
	List(ctx context.Context, collection string) ([]models.Document, error)
	// Create stores attrs and returns the id the store assigned.
	Create(ctx context.Context, collection string, attrs models.Attributes) (string, error)
	// Update overwrites the given attributes of an existing document.
	Update(ctx context.Context, collection, id string, attrs models.Attributes) error
	// Delete removes the document. Deleting a missing id is not an error.
	Delete(ctx context.Context, collection, id string) error
}
