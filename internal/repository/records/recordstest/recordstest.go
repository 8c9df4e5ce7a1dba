// Package recordstest provides record store doubles for service and handler tests.
package recordstest

import (
	"context"
	"errors"
	"sync"

	"github.com/mamadbah2/boutique/internal/domain/models"
	"github.com/mamadbah2/boutique/internal/repository/records"
)

// ErrUnavailable is the failure injected by Recorder.
var ErrUnavailable = errors.New("store unavailable")

// Recorder wraps a Store, counts write calls, and can be switched to fail.
type Recorder struct {
	records.Store

	mu     sync.Mutex
	writes int
	fail   bool
}

var _ records.Store = (*Recorder)(nil)

// NewRecorder wraps a fresh in-memory store.
func NewRecorder() *Recorder {
	return &Recorder{Store: records.NewMemoryStore()}
}

// Fail makes every subsequent call return ErrUnavailable (or succeed again when false).
func (r *Recorder) Fail(fail bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail = fail
}

// Writes returns the number of Create, Update and Delete calls attempted.
func (r *Recorder) Writes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

func (r *Recorder) failing(write bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if write {
		r.writes++
	}
	return r.fail
}

func (r *Recorder) List(ctx context.Context, collection string) ([]models.Document, error) {
	if r.failing(false) {
		return nil, ErrUnavailable
	}
	return r.Store.List(ctx, collection)
}

func (r *Recorder) Create(ctx context.Context, collection string, attrs models.Attributes) (string, error) {
	if r.failing(true) {
		return "", ErrUnavailable
	}
	return r.Store.Create(ctx, collection, attrs)
}

func (r *Recorder) Update(ctx context.Context, collection, id string, attrs models.Attributes) error {
	if r.failing(true) {
		return ErrUnavailable
	}
	return r.Store.Update(ctx, collection, id, attrs)
}

func (r *Recorder) Delete(ctx context.Context, collection, id string) error {
	if r.failing(true) {
		return ErrUnavailable
	}
	return r.Store.Delete(ctx, collection, id)
}
