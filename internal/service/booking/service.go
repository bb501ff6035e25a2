package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osyp/eventix/internal/domain"
	"github.com/osyp/eventix/internal/metrics"
	"github.com/osyp/eventix/internal/repository"
	"github.com/osyp/eventix/internal/repository/memory"
)

type Config struct {
	// UnitPrice is the fixed per-ticket price used for TotalPrice.
	UnitPrice decimal.Decimal
}

type Service struct {
	store *memory.Store
	cfg   Config
}

func New(store *memory.Store, cfg Config) *Service {
	if cfg.UnitPrice.LessThanOrEqual(decimal.Zero) {
		cfg.UnitPrice = decimal.NewFromInt(299)
	}

	return &Service{
		store: store,
		cfg:   cfg,
	}
}

// Create books tickets for an event. The capacity check and the insert run
// inside one store transaction, so two concurrent requests cannot both pass
// the check and overbook the event.
//
// Returns:
//   - *domain.Booking: the stored booking with its assigned ID.
//   - error: booking.ErrInvalidTickets if tickets is not positive.
//   - error: booking.ErrMissingUserName if userName is blank.
//   - error: booking.ErrEventNotFound if the event does not exist.
//   - error: booking.ErrCapacityExceeded if the event cannot seat the request.
func (s *Service) Create(
	ctx context.Context,
	eventID, userID int64,
	userName string,
	tickets int,
) (*domain.Booking, error) {
	const op = "service.booking.Create"

	if tickets <= 0 {
		metrics.BookingRejections.WithLabelValues("invalid_tickets").Inc()
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidTickets)
	}

	if strings.TrimSpace(userName) == "" {
		metrics.BookingRejections.WithLabelValues("missing_user_name").Inc()
		return nil, fmt.Errorf("%s: %w", op, ErrMissingUserName)
	}

	var created domain.Booking

	err := s.store.RunTx(ctx, func(ctx context.Context, tx *memory.Tx) error {
		event, err := s.store.Events().With(tx).GetByID(ctx, eventID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		booked, err := s.store.Bookings().With(tx).TicketsForEvent(ctx, eventID)
		if err != nil {
			return err
		}

		if booked+tickets > event.MaxAttendees {
			return ErrCapacityExceeded
		}

		b := domain.Booking{
			EventID:         eventID,
			UserID:          userID,
			UserName:        userName,
			EventName:       event.Name,
			NumberOfTickets: tickets,
			TotalPrice:      s.cfg.UnitPrice.Mul(decimal.NewFromInt(int64(tickets))),
			BookingDate:     time.Now().UTC(),
			Status:          domain.BookingActive,
		}

		id, err := s.store.Bookings().With(tx).Insert(ctx, b)
		if err != nil {
			return err
		}

		b.ID = id
		created = b
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrEventNotFound):
			metrics.BookingRejections.WithLabelValues("event_not_found").Inc()
		case errors.Is(err, ErrCapacityExceeded):
			metrics.BookingRejections.WithLabelValues("capacity_exceeded").Inc()
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	metrics.BookingsCreated.Inc()

	return &created, nil
}

// Availability reports how many tickets are booked and how many remain for
// an event.
//
// Returns:
//   - *domain.EventAvailability: booked and remaining counts.
//   - error: booking.ErrEventNotFound if the event does not exist.
func (s *Service) Availability(ctx context.Context, eventID int64) (*domain.EventAvailability, error) {
	const op = "service.booking.Availability"

	event, err := s.store.Events().GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrEventNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	booked, err := s.store.Bookings().TicketsForEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &domain.EventAvailability{
		EventID:       eventID,
		MaxAttendees:  event.MaxAttendees,
		TicketsBooked: booked,
		Remaining:     event.MaxAttendees - booked,
	}, nil
}

// ListForUser returns the user's bookings, newest first.
func (s *Service) ListForUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	const op = "service.booking.ListForUser"

	bookings, err := s.store.Bookings().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bookings, nil
}

// ListAll returns every booking, newest first. Authorization is the
// boundary layer's problem.
func (s *Service) ListAll(ctx context.Context) ([]domain.Booking, error) {
	const op = "service.booking.ListAll"

	bookings, err := s.store.Bookings().ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bookings, nil
}

// ListForEvent returns the event's bookings, newest first.
func (s *Service) ListForEvent(ctx context.Context, eventID int64) ([]domain.Booking, error) {
	const op = "service.booking.ListForEvent"

	bookings, err := s.store.Bookings().ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bookings, nil
}

// Cancel removes a booking permanently.
//
// Returns:
//   - *domain.Booking: the booking as it was before removal.
//   - error: booking.ErrBookingNotFound if no booking has that ID.
func (s *Service) Cancel(ctx context.Context, id int64) (*domain.Booking, error) {
	const op = "service.booking.Cancel"

	var removed *domain.Booking

	err := s.store.RunTx(ctx, func(ctx context.Context, tx *memory.Tx) error {
		b, err := s.store.Bookings().With(tx).GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		if err := s.store.Bookings().With(tx).Delete(ctx, id); err != nil {
			return err
		}

		removed = b
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	metrics.BookingsCancelled.Inc()

	return removed, nil
}
