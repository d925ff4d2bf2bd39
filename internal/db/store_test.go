package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresStoreIntegration(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	s, err := New(ctx, url)
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.EnsureSchema(ctx))

	id := "BGTEST" + uuid.NewString()[:8]
	phone := "+91" + uuid.NewString()[:8]
	defer s.Pool.Exec(ctx, `DELETE FROM voice_bookings WHERE booking_id = $1`, id)

	at := time.Now().UTC().Truncate(time.Microsecond)
	require.NoError(t, s.Save(ctx, booking(id, phone, "haircut", at)))
	require.NoError(t, s.Save(ctx, booking(id, phone, "treatment", at)))

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "treatment", got.Service)
	assert.True(t, at.Equal(got.CreatedAt))

	list, err := s.List(ctx, ListFilter{Phone: phone})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = s.Get(ctx, "BG-missing-"+uuid.NewString())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
