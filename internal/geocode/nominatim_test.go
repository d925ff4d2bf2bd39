package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestParseNominatimItems(t *testing.T) {
	items := []nominatimItem{
		{
			Lat:         "19.0760",
			Lon:         "72.8777",
			DisplayName: "Mumbai, Maharashtra, India",
			Importance:  0.72,
		},
	}
	res, err := parseNominatimItems(items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Lat != 19.0760 || res.Lon != 72.8777 {
		t.Fatalf("unexpected coordinates: %+v", res)
	}
	if res.DisplayName != "Mumbai, Maharashtra, India" {
		t.Fatalf("unexpected display name: %s", res.DisplayName)
	}
	if res.Confidence != 0.72 {
		t.Fatalf("unexpected confidence: %f", res.Confidence)
	}
}

func TestParseNominatimItemsEmpty(t *testing.T) {
	if _, err := parseNominatimItems(nil); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNominatimGeocoderCachesAnswers(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.URL.Query().Get("countrycodes") != "in" {
			t.Errorf("missing country filter: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`[{"lat":"19.0760","lon":"72.8777","display_name":"Mumbai","importance":0.5}]`))
	}))
	defer srv.Close()

	g := &NominatimGeocoder{BaseURL: srv.URL, CountryCodes: "in", MinInterval: time.Millisecond}
	for i := 0; i < 2; i++ {
		loc, err := g.Geocode(context.Background(), "Mumbai")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if loc.Lat != 19.0760 {
			t.Fatalf("unexpected location: %+v", loc)
		}
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected one upstream call, got %d", calls)
	}
}
