package media_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"traderjoe/internal/media"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher(t *testing.T) {
	payload := bytes.Repeat([]byte("x"), 100)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.png":
			_, _ = w.Write(payload)
		case "/slow.png":
			select {
			case <-r.Context().Done():
			case <-time.After(time.Second):
			}
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		fetcher := &media.HTTPFetcher{Client: server.Client()}
		data, err := fetcher.Fetch(ctx, server.URL+"/ok.png")
		require.NoError(t, err)
		assert.Equal(t, payload, data)
	})

	t.Run("read limit", func(t *testing.T) {
		fetcher := &media.HTTPFetcher{Client: server.Client(), ReadLimit: 10}
		data, err := fetcher.Fetch(ctx, server.URL+"/ok.png")
		require.NoError(t, err)
		assert.Len(t, data, 11)
	})

	t.Run("status", func(t *testing.T) {
		fetcher := &media.HTTPFetcher{Client: server.Client()}
		_, err := fetcher.Fetch(ctx, server.URL+"/missing.png")
		var status *media.StatusError
		require.True(t, errors.As(err, &status))
		assert.Equal(t, http.StatusNotFound, status.StatusCode)
	})

	t.Run("timeout", func(t *testing.T) {
		fetcher := &media.HTTPFetcher{Client: server.Client(), Timeout: 50 * time.Millisecond}
		start := time.Now()
		_, err := fetcher.Fetch(ctx, server.URL+"/slow.png")
		assert.Error(t, err)
		assert.Less(t, time.Since(start), 900*time.Millisecond)
	})
}
