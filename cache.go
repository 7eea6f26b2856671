package atelier

import (
	"database/sql"
	"sync"
	"time"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = sql.ErrNoRows

// PostCache is an in-memory cache of posts with TTL. Every admin mutation
// invalidates it, so reads are stale at most PostCacheTTL after a mutation
// made by another process sharing the database.
type PostCache struct {
	mu      sync.RWMutex
	posts   []Post
	fetched time.Time
	ttl     time.Duration
	store   *Store
}

// NewPostCache creates a PostCache backed by the given Store.
func NewPostCache(s *Store, ttl time.Duration) *PostCache {
	return &PostCache{store: s, ttl: ttl}
}

func (c *PostCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.mu.Unlock()
}

// ensureLoaded returns cached posts after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PostCache) ensureLoaded() ([]Post, error) {
	c.mu.RLock()
	if c.valid() {
		posts := c.posts
		c.mu.RUnlock()
		return posts, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.posts, nil
	}
	posts, err := c.store.ListPosts("")
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []Post{}
	}
	c.posts = posts
	c.fetched = time.Now()
	return c.posts, nil
}

// ListPosts returns posts newest-first, optionally filtered by category.
func (c *PostCache) ListPosts(category string) ([]Post, error) {
	posts, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	if category == "" {
		return posts, nil
	}
	normalized := NormalizeCategory(category)
	var filtered []Post
	for _, p := range posts {
		if p.Category == normalized {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// GetPost returns a single post by id from the cache.
func (c *PostCache) GetPost(id string) (Post, error) {
	posts, err := c.ensureLoaded()
	if err != nil {
		return Post{}, err
	}
	for _, p := range posts {
		if p.ID == id {
			return p, nil
		}
	}
	return Post{}, ErrNotFound
}
