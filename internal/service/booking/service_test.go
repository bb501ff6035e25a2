package booking

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osyp/eventix/internal/domain"
	"github.com/osyp/eventix/internal/repository/memory"
)

func newTestService(t *testing.T, events ...domain.Event) (*Service, *memory.Store) {
	t.Helper()

	store := memory.NewStore()
	for _, e := range events {
		_, err := store.Events().Insert(context.Background(), e)
		require.NoError(t, err)
	}

	return New(store, Config{}), store
}

func TestService_Create_CapacityScenario(t *testing.T) {
	svc, _ := newTestService(t, domain.Event{Name: "Tiny Gig", MaxAttendees: 2})
	ctx := context.Background()

	b, err := svc.Create(ctx, 1, 5, "alice", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), b.ID)
	assert.Equal(t, "Tiny Gig", b.EventName)
	assert.Equal(t, domain.BookingActive, b.Status)
	assert.True(t, b.TotalPrice.Equal(decimal.NewFromInt(598)), "2 tickets at the default unit price, got %s", b.TotalPrice)

	_, err = svc.Create(ctx, 1, 6, "bob", 1)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestService_Create_ExactCapacity(t *testing.T) {
	svc, _ := newTestService(t, domain.Event{Name: "Gig", MaxAttendees: 10})
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, 5, "alice", 7)
	require.NoError(t, err)

	// filling the event exactly is allowed
	_, err = svc.Create(ctx, 1, 6, "bob", 3)
	require.NoError(t, err)

	_, err = svc.Create(ctx, 1, 7, "carol", 1)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestService_Create_SequentialIDs(t *testing.T) {
	svc, _ := newTestService(t, domain.Event{Name: "Big Gig", MaxAttendees: 100})
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		b, err := svc.Create(ctx, 1, want, "alice", 1)
		require.NoError(t, err)
		assert.Equal(t, want, b.ID)
	}
}

func TestService_Create_UnitPriceFromConfig(t *testing.T) {
	store := memory.NewStore()
	_, err := store.Events().Insert(context.Background(), domain.Event{Name: "Gig", MaxAttendees: 10})
	require.NoError(t, err)

	svc := New(store, Config{UnitPrice: decimal.RequireFromString("12.50")})

	b, err := svc.Create(context.Background(), 1, 1, "alice", 3)
	require.NoError(t, err)
	assert.True(t, b.TotalPrice.Equal(decimal.RequireFromString("37.50")), "got %s", b.TotalPrice)
}

func TestService_Create_EventNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), 99, 1, "alice", 1)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestService_Create_Validation(t *testing.T) {
	svc, _ := newTestService(t, domain.Event{Name: "Gig", MaxAttendees: 10})
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, 1, "alice", 0)
	assert.ErrorIs(t, err, ErrInvalidTickets)

	_, err = svc.Create(ctx, 1, 1, "alice", -2)
	assert.ErrorIs(t, err, ErrInvalidTickets)

	_, err = svc.Create(ctx, 1, 1, "   ", 1)
	assert.ErrorIs(t, err, ErrMissingUserName)

	// nothing was stored
	list, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestService_Availability(t *testing.T) {
	svc, _ := newTestService(t, domain.Event{Name: "Gig", MaxAttendees: 50})
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, 1, "alice", 8)
	require.NoError(t, err)

	av, err := svc.Availability(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 50, av.MaxAttendees)
	assert.Equal(t, 8, av.TicketsBooked)
	assert.Equal(t, 42, av.Remaining)

	_, err = svc.Availability(ctx, 2)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestService_Cancel(t *testing.T) {
	svc, _ := newTestService(t, domain.Event{Name: "Gig", MaxAttendees: 10})
	ctx := context.Background()

	b, err := svc.Create(ctx, 1, 1, "alice", 4)
	require.NoError(t, err)

	removed, err := svc.Cancel(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, removed.ID)

	list, err := svc.ListForUser(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, list)

	// capacity is released
	av, err := svc.Availability(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 10, av.Remaining)
}

func TestService_Cancel_NotFound(t *testing.T) {
	svc, _ := newTestService(t, domain.Event{Name: "Gig", MaxAttendees: 10})
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, 1, "alice", 1)
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, 42)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	// the store is untouched
	list, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestService_Lists(t *testing.T) {
	svc, _ := newTestService(t,
		domain.Event{Name: "Gig A", MaxAttendees: 10},
		domain.Event{Name: "Gig B", MaxAttendees: 10},
	)
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, 1, "alice", 1)
	require.NoError(t, err)
	_, err = svc.Create(ctx, 2, 1, "alice", 2)
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, 2, "bob", 3)
	require.NoError(t, err)

	byUser, err := svc.ListForUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	byEvent, err := svc.ListForEvent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, byEvent, 2)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestService_Create_ConcurrentRespectsCapacity(t *testing.T) {
	svc, _ := newTestService(t, domain.Event{Name: "Gig", MaxAttendees: 10})
	ctx := context.Background()

	const workers = 20
	done := make(chan error, workers)
	for i := 0; i < workers; i++ {
		go func(userID int64) {
			_, err := svc.Create(ctx, 1, userID, "user", 1)
			done <- err
		}(int64(i + 1))
	}

	var ok int
	deadline := time.After(5 * time.Second)
	for i := 0; i < workers; i++ {
		select {
		case err := <-done:
			if err == nil {
				ok++
			} else {
				require.ErrorIs(t, err, ErrCapacityExceeded)
			}
		case <-deadline:
			t.Fatal("timed out waiting for bookings")
		}
	}

	assert.Equal(t, 10, ok, "exactly capacity-many bookings succeed")

	av, err := svc.Availability(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, av.Remaining)
}
