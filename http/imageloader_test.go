package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	bulletinhttp "github.com/dailybulletin/bulletin/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageLoader_FetchBytes(t *testing.T) {
	t.Parallel()

	t.Run("returns bytes on success", func(t *testing.T) {
		t.Parallel()

		payload := []byte{0xFF, 0xD8, 0xFF, 0xE0}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/jpeg")
			_, _ = w.Write(payload)
		}))
		defer server.Close()

		loader := bulletinhttp.NewImageLoader()
		data := loader.FetchBytes(context.Background(), server.URL)

		assert.Equal(t, payload, data)
	})

	t.Run("returns nil on non-2xx status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "forbidden", http.StatusForbidden)
		}))
		defer server.Close()

		loader := bulletinhttp.NewImageLoader()
		assert.Nil(t, loader.FetchBytes(context.Background(), server.URL))
	})

	t.Run("returns nil on unreachable host", func(t *testing.T) {
		t.Parallel()

		loader := bulletinhttp.NewImageLoader(bulletinhttp.WithImageTimeout(100 * time.Millisecond))
		assert.Nil(t, loader.FetchBytes(context.Background(), "http://non-existent-host.invalid/img.jpg"))
	})

	t.Run("returns nil on invalid URL", func(t *testing.T) {
		t.Parallel()

		loader := bulletinhttp.NewImageLoader()
		assert.Nil(t, loader.FetchBytes(context.Background(), "://not-a-url"))
	})

	t.Run("rate limit delays successive downloads", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("img"))
		}))
		defer server.Close()

		loader := bulletinhttp.NewImageLoader(bulletinhttp.WithRateLimit(20))

		start := time.Now()
		require.NotNil(t, loader.FetchBytes(context.Background(), server.URL))
		require.NotNil(t, loader.FetchBytes(context.Background(), server.URL))
		assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
	})

	t.Run("returns nil when context canceled during rate wait", func(t *testing.T) {
		t.Parallel()

		loader := bulletinhttp.NewImageLoader(bulletinhttp.WithRateLimit(0.001))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		// First call consumes the burst token.
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("img"))
		}))
		defer server.Close()

		_ = loader.FetchBytes(context.Background(), server.URL)
		assert.Nil(t, loader.FetchBytes(ctx, server.URL))
	})
}
