package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchParsesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Riverside Park", r.URL.Query().Get("q"))
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		w.Write([]byte(`[{"display_name":"Riverside Park, Springfield","lat":"39.78","lon":"-89.65"}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	places, err := client.Search(context.Background(), "Riverside Park", 5)
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "Riverside Park, Springfield", places[0].DisplayName)
	assert.InDelta(t, 39.78, places[0].Lat, 0.001)
	assert.InDelta(t, -89.65, places[0].Lon, 0.001)
}

func TestReverseParsesResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		w.Write([]byte(`{"display_name":"Dock 4, Harbor District","lat":"41.1","lon":"-71.9"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	place, err := client.Reverse(context.Background(), 41.1, -71.9)
	require.NoError(t, err)
	assert.Equal(t, "Dock 4, Harbor District", place.DisplayName)
}

func TestSearchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Search(context.Background(), "anything", 5)
	assert.Error(t, err)
}

func TestNewLookupCancelsPrevious(t *testing.T) {
	var requests atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := requests.Add(1)
		if n == 1 {
			// Stall the first lookup until the test finishes; it must
			// be canceled long before then.
			select {
			case <-release:
			case <-r.Context().Done():
				return
			}
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()
	defer close(release)

	client := NewClient(srv.URL)

	firstErr := make(chan error, 1)
	go func() {
		_, err := client.Search(context.Background(), "riv", 5)
		firstErr <- err
	}()

	// Let the first request reach the server before superseding it.
	require.Eventually(t, func() bool { return requests.Load() == 1 }, time.Second, 5*time.Millisecond)

	_, err := client.Search(context.Background(), "riverside park", 5)
	require.NoError(t, err)

	select {
	case err := <-firstErr:
		assert.Error(t, err, "superseded lookup must fail with cancellation")
	case <-time.After(2 * time.Second):
		t.Fatal("first lookup never returned after being superseded")
	}
}
