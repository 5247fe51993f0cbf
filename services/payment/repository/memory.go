package repository

import (
	"context"
	"sync"

	"github.com/piresc/payrelay/internal/pkg/models"
	"github.com/piresc/payrelay/services/payment"
)

// MemoryRepo is a process-local ledger. Records are copied in and out so
// callers never share memory with the store.
type MemoryRepo struct {
	mu       sync.Mutex
	payments map[string]*models.Payment
}

// NewMemoryRepository creates an empty in-memory ledger
func NewMemoryRepository() *MemoryRepo {
	return &MemoryRepo{payments: make(map[string]*models.Payment)}
}

// Insert adds a new record
func (r *MemoryRepo) Insert(ctx context.Context, p *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.payments[p.ID]; exists {
		return payment.ErrDuplicateID
	}
	r.payments[p.ID] = p.Clone()
	return nil
}

// Get returns a copy of the record
func (r *MemoryRepo) Get(ctx context.Context, id string) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, exists := r.payments[id]
	if !exists {
		return nil, payment.ErrNotFound
	}
	return p.Clone(), nil
}

// Update applies mutate under the ledger lock
func (r *MemoryRepo) Update(ctx context.Context, id string, mutate payment.MutationFunc) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.payments[id]
	if !exists {
		return nil, payment.ErrNotFound
	}

	next := current.Clone()
	if err := mutate(next); err != nil {
		return nil, err
	}
	next.ID = id
	r.payments[id] = next

	return next.Clone(), nil
}
