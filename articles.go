package inkwell

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Order selects the DatePosted direction for full article listings.
type Order string

const (
	OrderAsc  Order = "ASC"
	OrderDesc Order = "DESC"
)

// SaveArticle inserts a new article in the named category and returns it with
// its assigned id and posting time. The category must already exist
// (ErrCategoryNotFound otherwise; callers wanting create-if-needed use
// EnsureCategory first). The insert is confirmed by reading the row back
// inside the same transaction; a missing readback is ErrPersistence and is
// fatal for the request, never retried here.
func (s *Store) SaveArticle(ctx context.Context, tok Capability, title, content, categoryName string) (Article, error) {
	if !tok.Granted() {
		return Article{}, ErrNotAuthorized
	}
	now := time.Now().UTC().Truncate(time.Second)

	tx, err := s.begin(ctx)
	if err != nil {
		return Article{}, err
	}
	defer tx.Rollback()

	catID, err := categoryID(ctx, tx, categoryName)
	if err != nil {
		return Article{}, err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO articles (title, content, category_id, date_posted) VALUES (?, ?, ?, ?)`,
		title, content, catID, now.Format(dateLayout))
	if err != nil {
		return Article{}, fmt.Errorf("save article: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Article{}, fmt.Errorf("%w: article id: %v", ErrPersistence, err)
	}

	// Confirm the write landed before committing.
	var confirmed int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM articles WHERE id = ?`, id).Scan(&confirmed)
	if errors.Is(err, sql.ErrNoRows) {
		return Article{}, fmt.Errorf("%w: article %d not found after insert", ErrPersistence, id)
	}
	if err != nil {
		return Article{}, fmt.Errorf("save article: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Article{}, fmt.Errorf("%w: commit save: %v", ErrPersistence, err)
	}
	return Article{
		ID:         id,
		Title:      title,
		Content:    content,
		Category:   categoryName,
		DatePosted: now,
	}, nil
}

// GetArticle returns a single article by id, or ErrNotFound.
func (s *Store) GetArticle(ctx context.Context, id int64) (Article, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT a.id, a.title, a.content, c.name, a.date_posted
		FROM articles a JOIN categories c ON a.category_id = c.id
		WHERE a.id = ?`, id)
	a, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Article{}, ErrNotFound
	}
	if err != nil {
		return Article{}, fmt.Errorf("get article: %w", err)
	}
	return a, nil
}

// UpdateArticle mutates an article's title, content, and category in place.
// DatePosted is never touched by edits. It fails with ErrNotFound if the
// article is absent and ErrCategoryNotFound if the target category does not
// exist.
func (s *Store) UpdateArticle(ctx context.Context, tok Capability, id int64, title, content, categoryName string) error {
	if !tok.Granted() {
		return ErrNotAuthorized
	}
	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	catID, err := categoryID(ctx, tx, categoryName)
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE articles SET title = ?, content = ?, category_id = ? WHERE id = ?`,
		title, content, catID, id)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit update: %v", ErrPersistence, err)
	}
	return nil
}

// ListRecent returns up to n of the newest articles as excerpt views,
// ordered by posting date descending.
func (s *Store) ListRecent(ctx context.Context, n int) ([]ArticleView, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.title, a.content, c.name, a.date_posted
		FROM articles a JOIN categories c ON a.category_id = c.id
		ORDER BY a.date_posted DESC, a.id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("list recent: %w", err)
	}
	return collectViews(rows, true)
}

// ListAll returns every article as a full (untruncated) view, ordered by
// posting date in the given direction.
func (s *Store) ListAll(ctx context.Context, order Order) ([]ArticleView, error) {
	dir := "DESC"
	if order == OrderAsc {
		dir = "ASC"
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.title, a.content, c.name, a.date_posted
		FROM articles a JOIN categories c ON a.category_id = c.id
		ORDER BY a.date_posted `+dir+`, a.id `+dir)
	if err != nil {
		return nil, fmt.Errorf("list all: %w", err)
	}
	return collectViews(rows, false)
}

// ListByCategory returns the named category's articles as full views, newest
// first. An existing category with no articles yields an empty slice; a
// missing category yields ErrNotFound. Both checks run inside one transaction
// so a concurrent rename cannot produce a half-old, half-new answer.
func (s *Store) ListByCategory(ctx context.Context, name string) ([]ArticleView, error) {
	tx, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	catID, err := categoryID(ctx, tx, name)
	if errors.Is(err, ErrCategoryNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT a.id, a.title, a.content, c.name, a.date_posted
		FROM articles a JOIN categories c ON a.category_id = c.id
		WHERE a.category_id = ?
		ORDER BY a.date_posted DESC, a.id DESC`, catID)
	if err != nil {
		return nil, fmt.Errorf("list by category: %w", err)
	}
	views, err := collectViews(rows, false)
	if err != nil {
		return nil, err
	}
	if views == nil {
		views = []ArticleView{}
	}
	return views, tx.Commit()
}

// categoryID resolves a category name inside tx, mapping a missing row to
// ErrCategoryNotFound.
func categoryID(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM categories WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrCategoryNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("resolve category %q: %w", name, err)
	}
	return id, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(r rowScanner) (Article, error) {
	var a Article
	var posted string
	if err := r.Scan(&a.ID, &a.Title, &a.Content, &a.Category, &posted); err != nil {
		return Article{}, err
	}
	t, err := time.Parse(dateLayout, posted)
	if err != nil {
		return Article{}, fmt.Errorf("parse date_posted %q: %w", posted, err)
	}
	a.DatePosted = t.UTC()
	return a, nil
}

func collectViews(rows *sql.Rows, excerpt bool) ([]ArticleView, error) {
	defer rows.Close()
	var views []ArticleView
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, ViewOf(a, excerpt))
	}
	return views, rows.Err()
}

// ViewOf derives the rendering view of an article. With excerpt set, the
// content is truncated to its first words for listing pages.
func ViewOf(a Article, excerpt bool) ArticleView {
	v := ArticleView{
		Article:      a,
		ReadableDate: ReadableDate(a.DatePosted),
	}
	if excerpt {
		v.Excerpt = Excerpt(a.Content)
	}
	return v
}
