package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/2akonsultant/GoodnessGlamour/internal/models"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Store keeps finalized bookings in PostgreSQL.
type Store struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() error {
	s.Pool.Close()
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS voice_bookings (
			id BIGSERIAL PRIMARY KEY,
			booking_id TEXT NOT NULL UNIQUE,
			customer_name TEXT NOT NULL,
			phone TEXT NOT NULL,
			service TEXT NOT NULL,
			date TEXT NOT NULL,
			time TEXT NOT NULL,
			address TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'confirmed',
			source TEXT NOT NULL DEFAULT 'voice_call',
			notes TEXT NOT NULL DEFAULT '',
			latitude DOUBLE PRECISION,
			longitude DOUBLE PRECISION,
			distance_km DOUBLE PRECISION,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS voice_bookings_phone_idx ON voice_bookings (phone);
		CREATE INDEX IF NOT EXISTS voice_bookings_created_at_idx ON voice_bookings (created_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("create voice_bookings: %w", err)
	}
	return nil
}

// Save upserts on booking_id, so a retried completion overwrites rather than duplicates.
func (s *Store) Save(ctx context.Context, b models.FinalizedBooking) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO voice_bookings (booking_id, customer_name, phone, service, date, time, address, status, source, notes, latitude, longitude, distance_km, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		ON CONFLICT (booking_id) DO UPDATE SET
			customer_name = EXCLUDED.customer_name,
			phone = EXCLUDED.phone,
			service = EXCLUDED.service,
			date = EXCLUDED.date,
			time = EXCLUDED.time,
			address = EXCLUDED.address,
			status = EXCLUDED.status,
			source = EXCLUDED.source,
			notes = EXCLUDED.notes,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			distance_km = EXCLUDED.distance_km
	`, bookingValues(b, b.CreatedAt)...)
	if err != nil {
		return fmt.Errorf("save booking %s: %w", b.BookingID, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, bookingID string) (models.FinalizedBooking, error) {
	query, args, err := psql.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return models.FinalizedBooking{}, err
	}
	var createdAt time.Time
	b, err := scanBooking(s.Pool.QueryRow(ctx, query, args...), &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.FinalizedBooking{}, ErrBookingNotFound
	}
	if err != nil {
		return models.FinalizedBooking{}, err
	}
	b.CreatedAt = createdAt
	return b, nil
}

func (s *Store) List(ctx context.Context, f ListFilter) ([]models.FinalizedBooking, error) {
	query, args, err := listQuery(psql, f).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.FinalizedBooking{}
	for rows.Next() {
		var createdAt time.Time
		b, err := scanBooking(rows, &createdAt)
		if err != nil {
			return nil, err
		}
		b.CreatedAt = createdAt
		out = append(out, b)
	}
	return out, rows.Err()
}

func listQuery(builder squirrel.StatementBuilderType, f ListFilter) squirrel.SelectBuilder {
	f = f.normalized()
	q := builder.Select(bookingColumns...).From(bookingsTable)
	if f.Phone != "" {
		q = q.Where(squirrel.Eq{"phone": f.Phone})
	}
	if f.Service != "" {
		q = q.Where(squirrel.Eq{"service": f.Service})
	}
	if f.Source != "" {
		q = q.Where(squirrel.Eq{"source": f.Source})
	}
	return q.OrderBy("created_at DESC", "booking_id DESC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset))
}
