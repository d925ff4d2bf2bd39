package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// NominatimGeocoder queries an OpenStreetMap Nominatim instance. Requests are
// throttled to one per MinInterval and successful answers are cached.
type NominatimGeocoder struct {
	BaseURL      string
	UserAgent    string
	CountryCodes string
	MinInterval  time.Duration
	Client       *http.Client

	once    sync.Once
	limiter *rate.Limiter
	mu      sync.Mutex
	cache   map[string]Location
}

type nominatimItem struct {
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	DisplayName string  `json:"display_name"`
	Importance  float64 `json:"importance"`
}

func (g *NominatimGeocoder) init() {
	if g.Client == nil {
		g.Client = &http.Client{Timeout: 10 * time.Second}
	}
	if g.BaseURL == "" {
		g.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if g.UserAgent == "" {
		g.UserAgent = "goodness-glamour-concierge"
	}
	if g.MinInterval <= 0 {
		g.MinInterval = time.Second
	}
	g.limiter = rate.NewLimiter(rate.Every(g.MinInterval), 1)
	g.cache = map[string]Location{}
}

func (g *NominatimGeocoder) Geocode(ctx context.Context, query string) (Location, error) {
	g.once.Do(g.init)

	g.mu.Lock()
	cached, ok := g.cache[query]
	g.mu.Unlock()
	if ok {
		return cached, nil
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return Location{}, err
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")
	if g.CountryCodes != "" {
		params.Set("countrycodes", g.CountryCodes)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return Location{}, err
	}
	req.Header.Set("User-Agent", g.UserAgent)

	resp, err := g.Client.Do(req)
	if err != nil {
		return Location{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Location{}, fmt.Errorf("nominatim http error: %s", resp.Status)
	}

	var items []nominatimItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return Location{}, err
	}
	loc, err := parseNominatimItems(items)
	if err != nil {
		return Location{}, err
	}

	g.mu.Lock()
	g.cache[query] = loc
	g.mu.Unlock()
	return loc, nil
}

func parseNominatimItems(items []nominatimItem) (Location, error) {
	if len(items) == 0 {
		return Location{}, ErrNotFound
	}
	lat, err := strconv.ParseFloat(items[0].Lat, 64)
	if err != nil {
		return Location{}, err
	}
	lon, err := strconv.ParseFloat(items[0].Lon, 64)
	if err != nil {
		return Location{}, err
	}
	if lat == 0 && lon == 0 && items[0].DisplayName == "" {
		return Location{}, ErrNotFound
	}
	return Location{
		Lat:         lat,
		Lon:         lon,
		DisplayName: items[0].DisplayName,
		Confidence:  items[0].Importance,
	}, nil
}
