package joke

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchJoke(t *testing.T) {
	var gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte("Why did the chicken cross the road?\n"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	joke, err := c.FetchJoke(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Why did the chicken cross the road?", joke)
	assert.Equal(t, "text/plain", gotAccept)
}

func TestFetchJokeBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.FetchJoke(context.Background())
	assert.Error(t, err)
}

func TestFetchJokeEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("  \n"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.FetchJoke(context.Background())
	assert.Error(t, err)
}

func TestFetchJokeCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL, time.Second)
	_, err := c.FetchJoke(ctx)
	assert.Error(t, err)
}

func TestNewClientDefaultURL(t *testing.T) {
	c := NewClient("", time.Second)
	assert.Equal(t, DefaultURL, c.url)
}
