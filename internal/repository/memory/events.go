package memory

import (
	"context"

	"github.com/osyp/eventix/internal/domain"
	"github.com/osyp/eventix/internal/repository"
)

type EventRepo struct {
	store *Store
	tx    *Tx
}

func (r *EventRepo) With(tx *Tx) *EventRepo {
	cp := *r
	cp.tx = tx
	return &cp
}

func (r *EventRepo) rlock() func() {
	if r.tx != nil {
		return func() {}
	}
	r.store.mu.RLock()
	return r.store.mu.RUnlock
}

func (r *EventRepo) lock() func() {
	if r.tx != nil {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *EventRepo) List(ctx context.Context) ([]domain.Event, error) {
	defer r.rlock()()

	out := make([]domain.Event, len(r.store.events))
	copy(out, r.store.events)
	return out, nil
}

func (r *EventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	defer r.rlock()()

	for i := range r.store.events {
		if r.store.events[i].ID == id {
			e := r.store.events[i]
			return &e, nil
		}
	}
	return nil, repository.ErrNotFound
}

// Insert stores the event and returns its assigned ID (max existing + 1,
// starting at 1).
func (r *EventRepo) Insert(ctx context.Context, e domain.Event) (int64, error) {
	defer r.lock()()

	e.ID = nextEventID(r.store.events)
	r.store.events = append(r.store.events, e)
	return e.ID, nil
}

func nextEventID(events []domain.Event) int64 {
	var max int64
	for i := range events {
		if events[i].ID > max {
			max = events[i].ID
		}
	}
	return max + 1
}
