package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/osyp/eventix/internal/domain"
	"github.com/osyp/eventix/internal/metrics"
	"github.com/osyp/eventix/internal/repository"
	"github.com/osyp/eventix/internal/repository/memory"
)

type Service struct {
	store *memory.Store
}

func New(store *memory.Store) *Service {
	return &Service{store: store}
}

// Register creates an account with role user. The password is stored only
// as a bcrypt hash; the returned identity never carries it.
//
// Returns:
//   - *domain.Identity: the created identity.
//   - error: auth.ErrMissingCredentials if username or password is blank.
//   - error: auth.ErrUsernameTaken if the username exists (exact match).
func (s *Service) Register(ctx context.Context, username, password string) (*domain.Identity, error) {
	const op = "service.auth.Register"

	if strings.TrimSpace(username) == "" || password == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrMissingCredentials)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}

	id, err := s.store.Users().Insert(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%s: %w", op, ErrUsernameTaken)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	metrics.Registrations.Inc()

	return &domain.Identity{
		UserID:   id,
		Username: username,
		Role:     domain.RoleUser,
	}, nil
}

// Login verifies the password against the stored bcrypt hash. A missing
// user and a wrong password are indistinguishable to the caller.
//
// Returns:
//   - *domain.Identity: the stored identity, role included. The server-side
//     role is authoritative; clients must not infer it from the username.
//   - error: auth.ErrInvalidCredentials on any mismatch.
func (s *Service) Login(ctx context.Context, username, password string) (*domain.Identity, error) {
	const op = "service.auth.Login"

	user, err := s.store.Users().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.LoginFailures.Inc()
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		metrics.LoginFailures.Inc()
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	return &domain.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}
