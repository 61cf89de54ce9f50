package inkwell

import (
	"context"
	"sync"
	"time"
)

// ListingCache is an in-memory cache of the home-page article window and the
// category list with TTL. Writes go straight to the Store; every mutating
// handler calls Invalidate afterwards.
type ListingCache struct {
	mu         sync.RWMutex
	recent     []ArticleView
	categories []Category
	fetched    time.Time
	ttl        time.Duration
	window     int
	store      *Store
}

// NewListingCache creates a ListingCache backed by the given Store, holding
// up to window recent articles.
func NewListingCache(s *Store, window int, ttl time.Duration) *ListingCache {
	return &ListingCache{store: s, window: window, ttl: ttl}
}

func (c *ListingCache) valid() bool {
	return c.recent != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *ListingCache) Invalidate() {
	c.mu.Lock()
	c.recent = nil
	c.categories = nil
	c.mu.Unlock()
}

func (c *ListingCache) load(ctx context.Context) error {
	if c.valid() {
		return nil
	}
	recent, err := c.store.ListRecent(ctx, c.window)
	if err != nil {
		return err
	}
	cats, err := c.store.ListCategories(ctx)
	if err != nil {
		return err
	}
	if recent == nil {
		recent = []ArticleView{}
	}
	c.recent = recent
	c.categories = cats
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns cached listings after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *ListingCache) ensureLoaded(ctx context.Context) ([]ArticleView, []Category, error) {
	c.mu.RLock()
	if c.valid() {
		recent, cats := c.recent, c.categories
		c.mu.RUnlock()
		return recent, cats, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(ctx); err != nil {
		return nil, nil, err
	}
	return c.recent, c.categories, nil
}

// Recent returns the cached home-page window of excerpt views.
func (c *ListingCache) Recent(ctx context.Context) ([]ArticleView, error) {
	recent, _, err := c.ensureLoaded(ctx)
	return recent, err
}

// Categories returns the cached category list, name ascending.
func (c *ListingCache) Categories(ctx context.Context) ([]Category, error) {
	_, cats, err := c.ensureLoaded(ctx)
	return cats, err
}
