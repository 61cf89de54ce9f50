package inkwell

import (
	"context"
	"errors"
	"testing"
)

func TestCreateCategory(t *testing.T) {
	s := setupTestStore(t)

	cat := mustCategory(t, s, "Tech")
	if cat.ID == 0 {
		t.Fatal("CreateCategory should assign an id")
	}

	// Immediately visible to reads.
	ok, err := s.CategoryExists(context.Background(), "Tech")
	if err != nil {
		t.Fatalf("CategoryExists failed: %v", err)
	}
	if !ok {
		t.Error("category should exist right after creation")
	}
}

func TestCreateCategoryDuplicate(t *testing.T) {
	s := setupTestStore(t)
	mustCategory(t, s, "Tech")

	_, err := s.CreateCategory(context.Background(), authorTok, "Tech")
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}

	// The failed create must not have added a second row.
	cats, err := s.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	count := 0
	for _, c := range cats {
		if c.Name == "Tech" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("categories named Tech = %d, want exactly 1", count)
	}
}

func TestCreateCategoryEmptyName(t *testing.T) {
	s := setupTestStore(t)

	for _, name := range []string{"", "   ", "\t\n"} {
		if _, err := s.CreateCategory(context.Background(), authorTok, name); !errors.Is(err, ErrEmptyName) {
			t.Errorf("CreateCategory(%q): expected ErrEmptyName, got %v", name, err)
		}
	}
}

func TestListCategoriesOrdered(t *testing.T) {
	s := setupTestStore(t)
	for _, name := range []string{"Travel", "Art", "Tech"} {
		mustCategory(t, s, name)
	}

	cats, err := s.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	want := []string{"Art", "Tech", "Travel"}
	if len(cats) != len(want) {
		t.Fatalf("ListCategories count = %d, want %d", len(cats), len(want))
	}
	for i, name := range want {
		if cats[i].Name != name {
			t.Errorf("ListCategories[%d] = %q, want %q", i, cats[i].Name, name)
		}
	}
}

func TestEnsureCategoryToleratesDuplicate(t *testing.T) {
	s := setupTestStore(t)
	created := mustCategory(t, s, "Tech")

	// Losing the creation race is success-equivalent: the existing row comes back.
	got, err := s.EnsureCategory(context.Background(), authorTok, "Tech")
	if err != nil {
		t.Fatalf("EnsureCategory on existing name failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("EnsureCategory returned id %d, want existing %d", got.ID, created.ID)
	}

	// Other failures are not tolerated.
	if _, err := s.EnsureCategory(context.Background(), authorTok, "  "); !errors.Is(err, ErrEmptyName) {
		t.Errorf("EnsureCategory(blank): expected ErrEmptyName, got %v", err)
	}
}

func TestRenameCategoryMovesArticles(t *testing.T) {
	s := setupTestStore(t)
	mustCategory(t, s, "Tech")
	mustArticle(t, s, "A", "a", "Tech")
	mustArticle(t, s, "B", "b", "Tech")
	mustArticle(t, s, "C", "c", "Tech")

	if err := s.RenameCategory(context.Background(), authorTok, "Tech", "Technology"); err != nil {
		t.Fatalf("RenameCategory failed: %v", err)
	}

	moved, err := s.ListByCategory(context.Background(), "Technology")
	if err != nil {
		t.Fatalf("ListByCategory(Technology) failed: %v", err)
	}
	if len(moved) != 3 {
		t.Errorf("Technology article count = %d, want 3", len(moved))
	}
	for _, v := range moved {
		if v.Category != "Technology" {
			t.Errorf("article %q still reports category %q", v.Title, v.Category)
		}
	}

	if _, err := s.ListByCategory(context.Background(), "Tech"); !errors.Is(err, ErrNotFound) {
		t.Errorf("old name should be gone: expected ErrNotFound, got %v", err)
	}
}

func TestRenameCategoryDuplicateLeavesStateIntact(t *testing.T) {
	s := setupTestStore(t)
	mustCategory(t, s, "Tech")
	mustCategory(t, s, "Travel")
	mustArticle(t, s, "A", "a", "Tech")

	err := s.RenameCategory(context.Background(), authorTok, "Tech", "Travel")
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}

	// Nothing moved: the failed rename left the fully-old state.
	still, err := s.ListByCategory(context.Background(), "Tech")
	if err != nil {
		t.Fatalf("ListByCategory(Tech) failed: %v", err)
	}
	if len(still) != 1 {
		t.Errorf("Tech article count after failed rename = %d, want 1", len(still))
	}
	travel, err := s.ListByCategory(context.Background(), "Travel")
	if err != nil {
		t.Fatalf("ListByCategory(Travel) failed: %v", err)
	}
	if len(travel) != 0 {
		t.Errorf("Travel gained %d articles from a failed rename", len(travel))
	}
}

func TestRenameCategoryValidation(t *testing.T) {
	s := setupTestStore(t)
	mustCategory(t, s, "Tech")

	if err := s.RenameCategory(context.Background(), authorTok, "Tech", "  "); !errors.Is(err, ErrEmptyName) {
		t.Errorf("blank new name: expected ErrEmptyName, got %v", err)
	}
	if err := s.RenameCategory(context.Background(), authorTok, "Ghost", "Other"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing old name: expected ErrNotFound, got %v", err)
	}
	// Renaming a category to its own name is a no-op, not a duplicate.
	if err := s.RenameCategory(context.Background(), authorTok, "Tech", "Tech"); err != nil {
		t.Errorf("rename to same name should succeed, got %v", err)
	}
}
