package press

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dailybulletin/bulletin"
)

// Warm eagerly downloads the bytes for every ref with bounded concurrency
// and returns a loader that serves from the warmed cache. URLs that failed
// to warm fall through to next, so the renderer gets one more chance at
// them. Block ordering is unaffected; the renderer still consumes blocks in
// sequence and only the byte fetches run early.
func Warm(ctx context.Context, next bulletin.ImageLoader, refs []bulletin.ImageRef, concurrency int) bulletin.ImageLoader {
	if concurrency <= 0 {
		concurrency = DefaultPrefetch
	}

	urls := make([]string, 0, len(refs))
	seen := make(map[string]bool, len(refs))
	for _, ref := range refs {
		if ref.SourceURL == "" || seen[ref.SourceURL] {
			continue
		}
		seen[ref.SourceURL] = true
		urls = append(urls, ref.SourceURL)
	}

	cache := make(map[string][]byte, len(urls))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, url := range urls {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return nil
			}
			data := next.FetchBytes(gctx, url)
			if data == nil {
				return nil
			}
			mu.Lock()
			cache[url] = data
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return &cachedLoader{cache: cache, next: next}
}

// cachedLoader serves warmed bytes and falls through to the underlying
// loader on cache misses.
type cachedLoader struct {
	cache map[string][]byte
	next  bulletin.ImageLoader
}

var _ bulletin.ImageLoader = (*cachedLoader)(nil)

func (l *cachedLoader) FetchBytes(ctx context.Context, url string) []byte {
	if data, ok := l.cache[url]; ok {
		return data
	}
	return l.next.FetchBytes(ctx, url)
}
