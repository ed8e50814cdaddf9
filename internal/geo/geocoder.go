package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// Place is a single geocoding result.
type Place struct {
	DisplayName string  `json:"display_name"`
	Lat         float64 `json:"lat,string"`
	Lon         float64 `json:"lon,string"`
}

// Client talks to a Nominatim-compatible geocoding service. Lookups
// are driven by form typing, so each new request cancels the previous
// in-flight one: only the latest query's answer matters.
type Client struct {
	baseURL string
	http    *http.Client

	mu     sync.Mutex
	cancel context.CancelFunc
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Search resolves a free-text address to candidate places.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Place, error) {
	if limit <= 0 {
		limit = 5
	}
	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "jsonv2")
	q.Set("limit", strconv.Itoa(limit))

	var places []Place
	if err := c.get(ctx, "/search", q, &places); err != nil {
		return nil, err
	}
	return places, nil
}

// Reverse resolves coordinates to a place.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (*Place, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("format", "jsonv2")

	var place Place
	if err := c.get(ctx, "/reverse", q, &place); err != nil {
		return nil, err
	}
	return &place, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	ctx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.cancel = cancel
	c.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "pawhelp-backend/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
