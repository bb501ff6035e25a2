package memory

import (
	"context"

	"github.com/osyp/eventix/internal/domain"
	"github.com/osyp/eventix/internal/repository"
)

type UserRepo struct {
	store *Store
	tx    *Tx
}

func (r *UserRepo) With(tx *Tx) *UserRepo {
	cp := *r
	cp.tx = tx
	return &cp
}

func (r *UserRepo) rlock() func() {
	if r.tx != nil {
		return func() {}
	}
	r.store.mu.RLock()
	return r.store.mu.RUnlock
}

func (r *UserRepo) lock() func() {
	if r.tx != nil {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	defer r.rlock()()

	for i := range r.store.users {
		if r.store.users[i].ID == id {
			u := r.store.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

// GetByUsername matches the username exactly, case-sensitive.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	defer r.rlock()()

	for i := range r.store.users {
		if r.store.users[i].Username == username {
			u := r.store.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

// Insert stores the user and returns its assigned ID. It fails with
// repository.ErrConflict if the username is already taken, so the
// uniqueness check and the append are one step under the lock.
func (r *UserRepo) Insert(ctx context.Context, u domain.User) (int64, error) {
	defer r.lock()()

	for i := range r.store.users {
		if r.store.users[i].Username == u.Username {
			return 0, repository.ErrConflict
		}
	}

	u.ID = nextUserID(r.store.users)
	r.store.users = append(r.store.users, u)
	return u.ID, nil
}

func nextUserID(users []domain.User) int64 {
	var max int64
	for i := range users {
		if users[i].ID > max {
			max = users[i].ID
		}
	}
	return max + 1
}
