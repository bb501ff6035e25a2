// Package memory implements the list-backed store the service runs on.
// All state is process-lifetime: seeded once at startup, gone on exit.
package memory

import (
	"context"
	"sync"

	"github.com/osyp/eventix/internal/domain"
)

// Store owns the three collections. A single RWMutex guards them; flows
// that must be atomic (capacity check + insert) run inside RunTx, which
// holds the write lock for the whole callback.
type Store struct {
	mu       sync.RWMutex
	events   []domain.Event
	users    []domain.User
	bookings []domain.Booking
}

func NewStore() *Store {
	return &Store{}
}

// Tx marks that the store's write lock is held. Sub-repositories bound to
// a Tx via With skip their own locking.
type Tx struct {
	store *Store
}

// RunTx runs fn under the store's write lock. It is the transaction
// boundary of this store: everything fn does through repositories bound
// with With(tx) is one critical section.
func (s *Store) RunTx(ctx context.Context, fn func(ctx context.Context, tx *Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(ctx, &Tx{store: s})
}

func (s *Store) Events() *EventRepo     { return &EventRepo{store: s} }
func (s *Store) Users() *UserRepo       { return &UserRepo{store: s} }
func (s *Store) Bookings() *BookingRepo { return &BookingRepo{store: s} }
