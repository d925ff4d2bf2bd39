package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"github.com/2akonsultant/GoodnessGlamour/internal/models"
)

// sqliteTimeLayout is fixed width so created_at sorts chronologically as text.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore keeps finalized bookings in a local SQLite file, matching the
// salon's original single-file voice_bookings table.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer keeps SQLite from returning SQLITE_BUSY under concurrent completions.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure sqlite: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS voice_bookings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			booking_id TEXT UNIQUE NOT NULL,
			customer_name TEXT NOT NULL,
			phone TEXT NOT NULL,
			service TEXT NOT NULL,
			date TEXT NOT NULL,
			time TEXT NOT NULL,
			address TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'confirmed',
			source TEXT NOT NULL DEFAULT 'voice_call',
			notes TEXT NOT NULL DEFAULT '',
			latitude REAL,
			longitude REAL,
			distance_km REAL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_voice_bookings_phone ON voice_bookings(phone)`,
		`CREATE INDEX IF NOT EXISTS idx_voice_bookings_created_at ON voice_bookings(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Save(ctx context.Context, b models.FinalizedBooking) error {
	query, args, err := squirrel.Insert(bookingsTable).
		Options("OR REPLACE").
		Columns(bookingColumns...).
		Values(bookingValues(b, b.CreatedAt.UTC().Format(sqliteTimeLayout))...).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save booking %s: %w", b.BookingID, err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, bookingID string) (models.FinalizedBooking, error) {
	query, args, err := squirrel.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return models.FinalizedBooking{}, err
	}
	b, err := scanSQLiteBooking(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.FinalizedBooking{}, ErrBookingNotFound
	}
	return b, err
}

func (s *SQLiteStore) List(ctx context.Context, f ListFilter) ([]models.FinalizedBooking, error) {
	query, args, err := listQuery(squirrel.StatementBuilder, f).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.FinalizedBooking{}
	for rows.Next() {
		b, err := scanSQLiteBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func scanSQLiteBooking(row rowScanner) (models.FinalizedBooking, error) {
	var createdAt string
	b, err := scanBooking(row, &createdAt)
	if err != nil {
		return models.FinalizedBooking{}, err
	}
	if b.CreatedAt, err = time.Parse(sqliteTimeLayout, createdAt); err != nil {
		return models.FinalizedBooking{}, fmt.Errorf("parse created_at of %s: %w", b.BookingID, err)
	}
	return b, nil
}
