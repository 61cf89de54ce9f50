package inkwell

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// CreateCategory inserts a new category and returns it. It fails with
// ErrEmptyName on a blank name and ErrDuplicateName if the name is taken.
// The new category is visible to reads as soon as this returns.
func (s *Store) CreateCategory(ctx context.Context, tok Capability, name string) (Category, error) {
	if !tok.Granted() {
		return Category{}, ErrNotAuthorized
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, ErrEmptyName
	}
	res, err := s.db.ExecContext(ctx, `INSERT INTO categories (name) VALUES (?)`, name)
	if err != nil {
		if isUniqueViolation(err, "categories.name") {
			return Category{}, ErrDuplicateName
		}
		return Category{}, fmt.Errorf("create category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Category{}, fmt.Errorf("%w: category id: %v", ErrPersistence, err)
	}
	return Category{ID: id, Name: name}, nil
}

// EnsureCategory creates the category if needed and returns the existing or
// new row. This is the single call site where a duplicate name is tolerated:
// losing a creation race to another writer is treated as success, every other
// failure is surfaced as-is.
func (s *Store) EnsureCategory(ctx context.Context, tok Capability, name string) (Category, error) {
	cat, err := s.CreateCategory(ctx, tok, name)
	if err == nil {
		return cat, nil
	}
	if !errors.Is(err, ErrDuplicateName) {
		return Category{}, err
	}
	name = strings.TrimSpace(name)
	var existing Category
	row := s.db.QueryRowContext(ctx, `SELECT id, name FROM categories WHERE name = ?`, name)
	if err := row.Scan(&existing.ID, &existing.Name); err != nil {
		return Category{}, fmt.Errorf("ensure category %q: %w", name, err)
	}
	return existing, nil
}

// ListCategories returns all categories ordered by name ascending.
func (s *Store) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var cats []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// CategoryExists reports whether a category with the given name exists.
func (s *Store) CategoryExists(ctx context.Context, name string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM categories WHERE name = ?`, name).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("category exists: %w", err)
	}
	return true, nil
}

// RenameCategory changes a category's display name. Articles reference the
// category by its stable id, so the rename is a single-row update and every
// referencing article observes the new name atomically: no read can see the
// category renamed but its articles still under the old name.
//
// It fails with ErrEmptyName on a blank newName, ErrNotFound if oldName does
// not exist, and ErrDuplicateName if newName already names a different
// category. Renaming a category to its current name is a no-op success.
func (s *Store) RenameCategory(ctx context.Context, tok Capability, oldName, newName string) error {
	if !tok.Granted() {
		return ErrNotAuthorized
	}
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return ErrEmptyName
	}

	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM categories WHERE name = ?`, oldName).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("rename category: %w", err)
	}

	var otherID int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM categories WHERE name = ?`, newName).Scan(&otherID)
	switch {
	case err == nil && otherID != id:
		return ErrDuplicateName
	case err == nil:
		// newName equals the current name; nothing to do.
		return tx.Commit()
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("rename category: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE categories SET name = ? WHERE id = ?`, newName, id); err != nil {
		if isUniqueViolation(err, "categories.name") {
			return ErrDuplicateName
		}
		return fmt.Errorf("rename category: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit rename: %v", ErrPersistence, err)
	}
	return nil
}
