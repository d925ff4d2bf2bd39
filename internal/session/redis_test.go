package session

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2akonsultant/GoodnessGlamour/internal/models"
)

func TestRedisStoreIntegration(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	store := NewRedisStore(client, time.Minute)
	require.NoError(t, store.Ping(ctx))

	id := "test-" + uuid.NewString()
	defer store.Delete(ctx, id)

	_, created, err := store.Create(ctx, models.Session{ID: id, Phone: "+911", Step: models.StepGreeting})
	require.NoError(t, err)
	assert.True(t, created)

	_, created, err = store.Create(ctx, models.Session{ID: id, Phone: "+922"})
	require.NoError(t, err)
	assert.False(t, created)

	s, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "+911", s.Phone)

	s.Step = models.StepGetName
	require.NoError(t, store.Save(ctx, s))
	s, err = store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StepGetName, s.Step)

	require.NoError(t, store.Delete(ctx, id))
	assert.ErrorIs(t, store.Save(ctx, s), ErrNotFound)
	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}
