package records

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/mamadbah2/boutique/internal/domain/models"
)

// MemoryStore keeps collections in process memory. It backs STORE_BACKEND=memory
// and the tests.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]models.Document
	newID       func() string
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store assigning random UUIDs.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string][]models.Document),
		newID:       func() string { return uuid.NewString() },
	}
}

func (s *MemoryStore) List(_ context.Context, collection string) ([]models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := s.collections[collection]
	out := make([]models.Document, 0, len(docs))
	for _, doc := range docs {
		attrs, err := cloneAttributes(doc.Attributes)
		if err != nil {
			return nil, err
		}
		out = append(out, models.Document{ID: doc.ID, Attributes: attrs})
	}
	return out, nil
}

func (s *MemoryStore) Create(_ context.Context, collection string, attrs models.Attributes) (string, error) {
	stored, err := cloneAttributes(attrs)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	s.collections[collection] = append(s.collections[collection], models.Document{ID: id, Attributes: stored})
	return id, nil
}

func (s *MemoryStore) Update(_ context.Context, collection, id string, attrs models.Attributes) error {
	patch, err := cloneAttributes(attrs)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, doc := range s.collections[collection] {
		if doc.ID != id {
			continue
		}
		for k, v := range patch {
			s.collections[collection][i].Attributes[k] = v
		}
		return nil
	}
	return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
}

func (s *MemoryStore) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collections[collection]
	for i, doc := range docs {
		if doc.ID == id {
			s.collections[collection] = append(docs[:i:i], docs[i+1:]...)
			return nil
		}
	}
	return nil
}

// cloneAttributes deep-copies through JSON so callers never share maps with
// the store, and values come back in the same shape a remote store returns.
func cloneAttributes(attrs models.Attributes) (models.Attributes, error) {
	raw, err := json.Marshal(attrs)
	if err != nil {
		return nil, fmt.Errorf("encode attributes: %w", err)
	}
	out := models.Attributes{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode attributes: %w", err)
	}
	if out == nil {
		out = models.Attributes{}
	}
	return out, nil
}
