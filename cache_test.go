package atelier

import (
	"testing"
	"time"
)

func setupTestCache(t *testing.T) (*PostCache, *Store) {
	t.Helper()
	s := setupTestStore(t)
	return NewPostCache(s, 5*time.Minute), s
}

func TestCacheServesStaleUntilInvalidated(t *testing.T) {
	cache, store := setupTestCache(t)

	if err := store.SavePost(Post{ID: "a", Title: "a", Date: "2024-01-01", Category: CategoryTech}); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}
	posts, err := cache.ListPosts("")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("posts = %d, want 1", len(posts))
	}

	// A write that bypasses the cache is invisible until invalidation.
	if err := store.SavePost(Post{ID: "b", Title: "b", Date: "2024-01-02", Category: CategoryTech}); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}
	posts, _ = cache.ListPosts("")
	if len(posts) != 1 {
		t.Errorf("cache reloaded before invalidation: %d posts", len(posts))
	}

	cache.Invalidate()
	posts, _ = cache.ListPosts("")
	if len(posts) != 2 {
		t.Errorf("posts after invalidation = %d, want 2", len(posts))
	}
}

func TestCacheExpiresAfterTTL(t *testing.T) {
	store := setupTestStore(t)
	cache := NewPostCache(store, 30*time.Millisecond)

	if _, err := cache.ListPosts(""); err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if err := store.SavePost(Post{ID: "a", Title: "a", Date: "2024-01-01", Category: CategoryTech}); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	time.Sleep(50 * time.Millisecond)

	posts, err := cache.ListPosts("")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 1 {
		t.Errorf("cache did not reload after TTL: %d posts", len(posts))
	}
}

func TestCacheCategoryFilter(t *testing.T) {
	cache, store := setupTestCache(t)

	seed := []Post{
		{ID: "1", Title: "t", Date: "2024-01-01", Category: CategoryTech},
		{ID: "2", Title: "n", Date: "2024-01-02", Category: CategoryNotes},
	}
	for _, p := range seed {
		if err := store.SavePost(p); err != nil {
			t.Fatalf("SavePost failed: %v", err)
		}
	}

	posts, err := cache.ListPosts("Life") // legacy alias of Notes
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != "2" {
		t.Errorf("filtered posts = %+v", posts)
	}
}

func TestCacheGetPost(t *testing.T) {
	cache, store := setupTestCache(t)

	if err := store.SavePost(Post{ID: "a", Title: "hello", Date: "2024-01-01", Category: CategoryTech}); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	post, err := cache.GetPost("a")
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if post.Title != "hello" {
		t.Errorf("Title = %q", post.Title)
	}

	if _, err := cache.GetPost("missing"); err != ErrNotFound {
		t.Errorf("GetPost(missing) err = %v, want ErrNotFound", err)
	}
}
