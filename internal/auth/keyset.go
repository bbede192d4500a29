package auth

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
)

const minRefreshInterval = 30 * time.Second

// KeySetFetcher retrieves a JWKS document.
type KeySetFetcher interface {
	FetchKeySet(ctx context.Context, url string) (jwk.Set, error)
}

// HTTPKeySetFetcher fetches key sets over HTTP.
type HTTPKeySetFetcher struct {
	client *http.Client
}

// NewHTTPKeySetFetcher creates a fetcher using client. A nil client uses
// http.DefaultClient.
func NewHTTPKeySetFetcher(client *http.Client) *HTTPKeySetFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPKeySetFetcher{client: client}
}

// FetchKeySet implements KeySetFetcher.
func (f *HTTPKeySetFetcher) FetchKeySet(ctx context.Context, url string) (jwk.Set, error) {
	return jwk.Fetch(ctx, url, jwk.WithHTTPClient(f.client))
}

// keySetCache holds the most recent key set for a single URL. A failed
// refresh falls back to the previous set when one exists.
type keySetCache struct {
	url     string
	ttl     time.Duration
	fetcher KeySetFetcher
	now     func() time.Time

	mu        sync.RWMutex
	set       jwk.Set
	fetchedAt time.Time
}

func newKeySetCache(url string, ttl time.Duration, fetcher KeySetFetcher) *keySetCache {
	return &keySetCache{
		url:     url,
		ttl:     ttl,
		fetcher: fetcher,
		now:     time.Now,
	}
}

// get returns the cached set, fetching it when missing or older than ttl.
func (c *keySetCache) get(ctx context.Context) (jwk.Set, error) {
	c.mu.RLock()
	if c.set != nil && c.now().Sub(c.fetchedAt) < c.ttl {
		defer c.mu.RUnlock()
		return c.set, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another caller may have refreshed while we waited for the lock.
	if c.set != nil && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.set, nil
	}
	return c.refreshLocked(ctx)
}

// refresh fetches the set ahead of its ttl. Used when a token names a key
// the cached set does not contain; refetches are spaced by
// minRefreshInterval so unknown key ids cannot force a fetch per request.
func (c *keySetCache) refresh(ctx context.Context) (jwk.Set, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.set != nil && c.now().Sub(c.fetchedAt) < minRefreshInterval {
		return c.set, nil
	}
	return c.refreshLocked(ctx)
}

func (c *keySetCache) refreshLocked(ctx context.Context) (jwk.Set, error) {
	set, err := c.fetcher.FetchKeySet(ctx, c.url)
	if err != nil {
		if c.set != nil {
			return c.set, nil
		}
		return nil, fmt.Errorf("fetch %s: %w", c.url, err)
	}
	c.set = set
	c.fetchedAt = c.now()
	return set, nil
}
