package db

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/2akonsultant/GoodnessGlamour/internal/models"
)

// LogSink records bookings in the log only. Used in development when no database
// is configured.
type LogSink struct {
	Logger zerolog.Logger
}

func (l LogSink) Save(_ context.Context, b models.FinalizedBooking) error {
	l.Logger.Info().
		Str("booking_id", b.BookingID).
		Str("customer", b.CustomerName).
		Str("phone", b.Phone).
		Str("service", b.Service).
		Str("date", b.Date).
		Str("time", b.Time).
		Str("address", b.Address).
		Str("source", b.Source).
		Msg("booking recorded")
	return nil
}

func (LogSink) Ping(context.Context) error { return nil }

func (LogSink) Close() error { return nil }
