package db

import (
	"errors"

	"github.com/2akonsultant/GoodnessGlamour/internal/models"
)

var ErrBookingNotFound = errors.New("booking not found")

const bookingsTable = "voice_bookings"

var bookingColumns = []string{
	"booking_id",
	"customer_name",
	"phone",
	"service",
	"date",
	"time",
	"address",
	"status",
	"source",
	"notes",
	"latitude",
	"longitude",
	"distance_km",
	"created_at",
}

// ListFilter narrows an admin listing. Zero values mean "any".
type ListFilter struct {
	Phone   string
	Service string
	Source  string
	Limit   int
	Offset  int
}

func (f ListFilter) normalized() ListFilter {
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

type rowScanner interface {
	Scan(dest ...any) error
}

func bookingValues(b models.FinalizedBooking, createdAt any) []any {
	return []any{
		b.BookingID,
		b.CustomerName,
		b.Phone,
		b.Service,
		b.Date,
		b.Time,
		b.Address,
		b.Status,
		b.Source,
		b.Notes,
		b.Latitude,
		b.Longitude,
		b.DistanceKm,
		createdAt,
	}
}

// scanBooking reads the columns in bookingColumns order. createdAt receives the
// last column so each driver can decode its own timestamp representation.
func scanBooking(row rowScanner, createdAt any) (models.FinalizedBooking, error) {
	var b models.FinalizedBooking
	err := row.Scan(
		&b.BookingID,
		&b.CustomerName,
		&b.Phone,
		&b.Service,
		&b.Date,
		&b.Time,
		&b.Address,
		&b.Status,
		&b.Source,
		&b.Notes,
		&b.Latitude,
		&b.Longitude,
		&b.DistanceKm,
		createdAt,
	)
	return b, err
}
