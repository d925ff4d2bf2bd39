package geocode

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/2akonsultant/GoodnessGlamour/internal/models"
)

var ErrNotFound = errors.New("geocode not found")

type Location struct {
	Lat         float64
	Lon         float64
	DisplayName string
	Confidence  float64
}

type Geocoder interface {
	Geocode(ctx context.Context, query string) (Location, error)
}

// BuildQuery joins the non-empty parts of an address, most specific first.
func BuildQuery(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}

const earthRadiusKm = 6371.0

// DistanceKm is the great-circle distance between two points.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// Enricher attaches coordinates and the doorstep travel distance to bookings.
type Enricher struct {
	Geocoder Geocoder
	// Region is appended to every address to keep matches local.
	Region    string
	OriginLat float64
	OriginLon float64
}

// Enrich returns a copy of b with location fields set. b itself is never modified.
func (e *Enricher) Enrich(ctx context.Context, b models.FinalizedBooking) (models.FinalizedBooking, error) {
	query := BuildQuery(b.Address, e.Region)
	if query == "" {
		return b, ErrNotFound
	}
	loc, err := e.Geocoder.Geocode(ctx, query)
	if err != nil {
		return b, fmt.Errorf("geocode %q: %w", query, err)
	}
	lat, lon := loc.Lat, loc.Lon
	dist := math.Round(DistanceKm(e.OriginLat, e.OriginLon, lat, lon)*10) / 10
	b.Latitude = &lat
	b.Longitude = &lon
	b.DistanceKm = &dist
	return b, nil
}
