package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2akonsultant/GoodnessGlamour/internal/models"
)

func booking(id, phone, service string, at time.Time) models.FinalizedBooking {
	return models.FinalizedBooking{
		BookingID:    id,
		CustomerName: "Sarah",
		Phone:        phone,
		Service:      service,
		Date:         "next Friday",
		Time:         "2 PM",
		Address:      "45 Park Avenue, Delhi",
		Status:       models.BookingStatusConfirmed,
		Source:       "sms",
		CreatedAt:    at,
	}
}

func openSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "bookings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteSaveAndGet(t *testing.T) {
	s := openSQLite(t)
	ctx := context.Background()
	at := time.Date(2025, 1, 6, 9, 30, 0, 0, time.UTC)

	b := booking("BG20250106093000", "+911", "coloring", at)
	dist := 3.5
	b.DistanceKm = &dist
	require.NoError(t, s.Save(ctx, b))

	got, err := s.Get(ctx, "BG20250106093000")
	require.NoError(t, err)
	assert.Equal(t, "Sarah", got.CustomerName)
	assert.Equal(t, "2 PM", got.Time)
	assert.True(t, at.Equal(got.CreatedAt))
	assert.Nil(t, got.Latitude)
	require.NotNil(t, got.DistanceKm)
	assert.Equal(t, 3.5, *got.DistanceKm)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestSQLiteSaveReplacesSameBookingID(t *testing.T) {
	s := openSQLite(t)
	ctx := context.Background()
	at := time.Now().UTC()

	require.NoError(t, s.Save(ctx, booking("BG1", "+911", "haircut", at)))
	require.NoError(t, s.Save(ctx, booking("BG1", "+911", "bridal", at)))

	all, err := s.List(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "bridal", all[0].Service)
}

func TestSQLiteListFilters(t *testing.T) {
	s := openSQLite(t)
	ctx := context.Background()
	base := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)

	require.NoError(t, s.Save(ctx, booking("BG1", "+911", "haircut", base)))
	require.NoError(t, s.Save(ctx, booking("BG2", "+912", "haircut", base.Add(time.Minute))))
	require.NoError(t, s.Save(ctx, booking("BG3", "+911", "coloring", base.Add(2*time.Minute))))

	got, err := s.List(ctx, ListFilter{Phone: "+911"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "BG3", got[0].BookingID)

	got, err = s.List(ctx, ListFilter{Service: "haircut", Limit: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "BG2", got[0].BookingID)

	got, err = s.List(ctx, ListFilter{Service: "haircut", Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "BG1", got[0].BookingID)
}

func TestListQueryUsesDollarPlaceholders(t *testing.T) {
	query, args, err := listQuery(psql, ListFilter{Phone: "+911", Limit: 10}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "phone = $1")
	assert.Contains(t, query, "LIMIT 10")
	assert.Equal(t, []any{"+911"}, args)
}
