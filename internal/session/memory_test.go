package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2akonsultant/GoodnessGlamour/internal/models"
)

func TestMemoryStoreCreateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	first, created, err := m.Create(ctx, models.Session{ID: "CA1", Phone: "+911", Step: models.StepGreeting})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "+911", first.Phone)

	again, created, err := m.Create(ctx, models.Session{ID: "CA1", Phone: "+922", Step: models.StepGreeting})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "+911", again.Phone)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	_, _, err := m.Create(ctx, models.Session{ID: "CA1", Step: models.StepGreeting})
	require.NoError(t, err)

	s, err := m.Get(ctx, "CA1")
	require.NoError(t, err)
	s.Step = models.StepGetName
	s.Record(models.SpeakerCustomer, "hi", time.Now())

	stored, err := m.Get(ctx, "CA1")
	require.NoError(t, err)
	assert.Equal(t, models.StepGreeting, stored.Step)
	assert.Empty(t, stored.History)
}

func TestMemoryStoreSaveAfterDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	_, _, err := m.Create(ctx, models.Session{ID: "CA1"})
	require.NoError(t, err)

	require.NoError(t, m.Delete(ctx, "CA1"))
	require.NoError(t, m.Delete(ctx, "CA1"))

	err = m.Save(ctx, models.Session{ID: "CA1"})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.Get(ctx, "CA1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreSweep(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	_, _, _ = m.Create(ctx, models.Session{ID: "old", UpdatedAt: now.Add(-2 * time.Hour)})
	_, _, _ = m.Create(ctx, models.Session{ID: "fresh", UpdatedAt: now.Add(-time.Minute)})

	assert.Equal(t, 1, m.Sweep(now, 30*time.Minute))
	n, err := m.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	_, err = m.Get(ctx, "fresh")
	assert.NoError(t, err)
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("CA%d", i%10)
			_, _, _ = m.Create(ctx, models.Session{ID: id})
			if s, err := m.Get(ctx, id); err == nil {
				_ = m.Save(ctx, s)
			}
			if i%7 == 0 {
				_ = m.Delete(ctx, id)
			}
		}(i)
	}
	wg.Wait()
	n, err := m.Count(ctx)
	require.NoError(t, err)
	assert.LessOrEqual(t, n, 10)
}
