package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osyp/eventix/internal/domain"
	"github.com/osyp/eventix/internal/repository/memory"
)

func TestService_CreateAndGet(t *testing.T) {
	svc := New(memory.NewStore())
	ctx := context.Background()
	start := time.Now().UTC().AddDate(0, 0, 7)

	id, err := svc.Create(ctx, "Jazz Night", "an evening of jazz", domain.EventConcert, start, start.Add(3*time.Hour), 120)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	e, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Jazz Night", e.Name)
	assert.Equal(t, domain.EventConcert, e.Type)
	assert.Equal(t, 120, e.MaxAttendees)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestService_Get_NotFound(t *testing.T) {
	svc := New(memory.NewStore())

	_, err := svc.Get(context.Background(), 5)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestService_Create_Validation(t *testing.T) {
	svc := New(memory.NewStore())
	ctx := context.Background()
	start := time.Now().UTC()

	_, err := svc.Create(ctx, "  ", "", domain.EventOther, start, start.Add(time.Hour), 10)
	assert.ErrorIs(t, err, ErrInvalidEvent)

	_, err = svc.Create(ctx, "Gig", "", domain.EventOther, start, start.Add(time.Hour), 0)
	assert.ErrorIs(t, err, ErrInvalidEvent)

	_, err = svc.Create(ctx, "Gig", "", domain.EventOther, start, start.Add(-time.Hour), 10)
	assert.ErrorIs(t, err, ErrInvalidEvent)
}
