package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/osyp/eventix/internal/domain"
	"github.com/osyp/eventix/internal/repository"
	"github.com/osyp/eventix/internal/repository/memory"
)

type Service struct {
	store *memory.Store
}

func New(store *memory.Store) *Service {
	return &Service{store: store}
}

// List returns the whole event catalog.
func (s *Service) List(ctx context.Context) ([]domain.Event, error) {
	const op = "service.events.List"

	out, err := s.store.Events().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// Get returns one event.
//
// Returns:
//   - *domain.Event: the event.
//   - error: events.ErrEventNotFound if no event has that ID.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Event, error) {
	const op = "service.events.Get"

	event, err := s.store.Events().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrEventNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return event, nil
}

// Create adds an event to the catalog and returns its assigned ID.
//
// Returns:
//   - int64: the new event ID.
//   - error: events.ErrInvalidEvent if the name is blank, the capacity is
//     not positive or the event ends before it starts.
func (s *Service) Create(
	ctx context.Context,
	name, description string,
	typ domain.EventType,
	start, end time.Time,
	maxAttendees int,
) (int64, error) {
	const op = "service.events.Create"

	if strings.TrimSpace(name) == "" {
		return 0, fmt.Errorf("%s: %w: name is required", op, ErrInvalidEvent)
	}

	if maxAttendees <= 0 {
		return 0, fmt.Errorf("%s: %w: max attendees must be positive", op, ErrInvalidEvent)
	}

	if !end.After(start) {
		return 0, fmt.Errorf("%s: %w: end time must be after start time", op, ErrInvalidEvent)
	}

	id, err := s.store.Events().Insert(ctx, domain.Event{
		Name:         name,
		Description:  description,
		Type:         typ,
		StartTime:    start,
		EndTime:      end,
		MaxAttendees: maxAttendees,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}
