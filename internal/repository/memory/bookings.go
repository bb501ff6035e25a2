package memory

import (
	"context"
	"sort"

	"github.com/osyp/eventix/internal/domain"
	"github.com/osyp/eventix/internal/repository"
)

type BookingRepo struct {
	store *Store
	tx    *Tx
}

func (r *BookingRepo) With(tx *Tx) *BookingRepo {
	cp := *r
	cp.tx = tx
	return &cp
}

func (r *BookingRepo) rlock() func() {
	if r.tx != nil {
		return func() {}
	}
	r.store.mu.RLock()
	return r.store.mu.RUnlock
}

func (r *BookingRepo) lock() func() {
	if r.tx != nil {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *BookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	defer r.rlock()()

	for i := range r.store.bookings {
		if r.store.bookings[i].ID == id {
			b := r.store.bookings[i]
			return &b, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *BookingRepo) ListAll(ctx context.Context) ([]domain.Booking, error) {
	defer r.rlock()()

	return sortedByDateDesc(r.store.bookings, func(domain.Booking) bool { return true }), nil
}

func (r *BookingRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	defer r.rlock()()

	return sortedByDateDesc(r.store.bookings, func(b domain.Booking) bool {
		return b.UserID == userID
	}), nil
}

func (r *BookingRepo) ListByEvent(ctx context.Context, eventID int64) ([]domain.Booking, error) {
	defer r.rlock()()

	return sortedByDateDesc(r.store.bookings, func(b domain.Booking) bool {
		return b.EventID == eventID
	}), nil
}

// TicketsForEvent sums NumberOfTickets over the event's active bookings.
func (r *BookingRepo) TicketsForEvent(ctx context.Context, eventID int64) (int, error) {
	defer r.rlock()()

	var sum int
	for i := range r.store.bookings {
		b := &r.store.bookings[i]
		if b.EventID == eventID && b.Status == domain.BookingActive {
			sum += b.NumberOfTickets
		}
	}
	return sum, nil
}

// Insert stores the booking and returns its assigned ID (max existing + 1,
// starting at 1).
func (r *BookingRepo) Insert(ctx context.Context, b domain.Booking) (int64, error) {
	defer r.lock()()

	b.ID = nextBookingID(r.store.bookings)
	r.store.bookings = append(r.store.bookings, b)
	return b.ID, nil
}

// Delete removes the booking outright. Cancellation is a hard delete,
// not a status flip.
func (r *BookingRepo) Delete(ctx context.Context, id int64) error {
	defer r.lock()()

	for i := range r.store.bookings {
		if r.store.bookings[i].ID == id {
			r.store.bookings = append(r.store.bookings[:i], r.store.bookings[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func nextBookingID(bookings []domain.Booking) int64 {
	var max int64
	for i := range bookings {
		if bookings[i].ID > max {
			max = bookings[i].ID
		}
	}
	return max + 1
}

func sortedByDateDesc(bookings []domain.Booking, keep func(domain.Booking) bool) []domain.Booking {
	out := make([]domain.Booking, 0, len(bookings))
	for i := range bookings {
		if keep(bookings[i]) {
			out = append(out, bookings[i])
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].BookingDate.After(out[j].BookingDate)
	})
	return out
}
