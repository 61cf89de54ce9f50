package inkwell

import (
	"context"
	"testing"
	"time"
)

func TestListingCache(t *testing.T) {
	s := setupTestStore(t)
	mustCategory(t, s, "Tech")
	mustArticle(t, s, "One", "first", "Tech")

	c := NewListingCache(s, 10, time.Minute)
	ctx := context.Background()

	recent, err := c.Recent(ctx)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("Recent count = %d, want 1", len(recent))
	}
	cats, err := c.Categories(ctx)
	if err != nil {
		t.Fatalf("Categories failed: %v", err)
	}
	if len(cats) != 1 {
		t.Fatalf("Categories count = %d, want 1", len(cats))
	}

	// A write behind the cache's back is invisible until Invalidate.
	mustArticle(t, s, "Two", "second", "Tech")
	recent, err = c.Recent(ctx)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 1 {
		t.Errorf("Recent should serve the cached window, got %d entries", len(recent))
	}

	c.Invalidate()
	recent, err = c.Recent(ctx)
	if err != nil {
		t.Fatalf("Recent after Invalidate failed: %v", err)
	}
	if len(recent) != 2 {
		t.Errorf("Recent after Invalidate = %d entries, want 2", len(recent))
	}
}

func TestListingCacheWindow(t *testing.T) {
	s := setupTestStore(t)
	mustCategory(t, s, "Tech")
	for _, title := range []string{"One", "Two", "Three"} {
		mustArticle(t, s, title, "text", "Tech")
	}

	c := NewListingCache(s, 2, time.Minute)
	recent, err := c.Recent(context.Background())
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 2 {
		t.Errorf("Recent window = %d entries, want 2", len(recent))
	}
}
