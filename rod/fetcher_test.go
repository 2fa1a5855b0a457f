//go:build integration

package rod_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailybulletin/bulletin"
	"github.com/dailybulletin/bulletin/rod"
)

// Ensure Fetcher implements bulletin.Fetcher.
var _ bulletin.Fetcher = (*rod.Fetcher)(nil)

const lazyPage = `<!DOCTYPE html>
<html><head><title>Lazy Article</title></head>
<body>
<article>
<h1>Lazy Article</h1>
<p id="marker">Rendered by script.</p>
<img id="lazy" alt="lazy">
<script>
window.addEventListener('scroll', () => {
	document.getElementById('lazy').src = '/real-image.jpg';
}, { once: true });
document.getElementById('marker').textContent = 'Rendered by script, post-load.';
</script>
</article>
</body></html>`

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(lazyPage))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	html, err := fetcher.Fetch(ctx, srv.URL)
	require.NoError(t, err)

	// Script output proves the DOM was read after execution; the populated
	// src proves the scroll pass fired the lazy-load handler.
	assert.Contains(t, html, "Rendered by script, post-load.")
	assert.Contains(t, html, `src="/real-image.jpg"`)
}

func TestFetcher_Fetch_ContextCanceled(t *testing.T) {
	t.Parallel()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = fetcher.Fetch(ctx, "https://example.com")
	require.Error(t, err)
}

func TestCapturer_Capture(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<!DOCTYPE html><html><body><h1>Snapshot</h1></body></html>"))
	}))
	defer srv.Close()

	capturer, err := rod.NewCapturer()
	require.NoError(t, err)
	defer capturer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	data, err := capturer.Capture(ctx, srv.URL)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestBrowserManager_RecyclesAfterMaxPages(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager(rod.WithMaxPages(2))
	require.NoError(t, err)
	defer manager.Close()

	first := manager.Browser()
	require.NotNil(t, first)

	manager.IncrementPageCount()
	manager.IncrementPageCount()

	second := manager.Browser()
	require.NotNil(t, second)
	assert.NotSame(t, first, second, "expected a fresh browser after the page budget")
}
