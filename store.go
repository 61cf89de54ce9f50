package inkwell

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// dateLayout is how article timestamps are stored in SQLite (UTC).
const dateLayout = "2006-01-02 15:04:05"

// Store wraps a SQLite database and provides CRUD over articles, categories,
// and the out-of-band credentials table. The embedded *sql.DB is the
// connection pool: every operation acquires a connection (or transaction)
// scoped to that one call and releases it on every exit path.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets readers proceed while a writer holds the lock, and the busy
	// timeout makes writers wait instead of failing with SQLITE_BUSY.
	// synchronous=NORMAL is safe under WAL and skips an fsync per commit.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA foreign_keys=ON;
		PRAGMA cache_size=-8000;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS categories (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS articles (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    category_id INTEGER NOT NULL REFERENCES categories(id),
    date_posted TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_articles_category ON articles(category_id);
CREATE TABLE IF NOT EXISTS credentials (
    username TEXT PRIMARY KEY,
    password_hash TEXT NOT NULL
);
`)
	return err
}

// begin opens a write transaction. The caller must defer tx.Rollback and
// commit explicitly; rollback after commit is a no-op.
func (s *Store) begin(ctx context.Context) (*sql.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return tx, nil
}

// isUniqueViolation reports whether err is SQLite's UNIQUE constraint error
// for the given column ("table.column"). The modernc driver exposes it only
// through the message text.
func isUniqueViolation(err error, col string) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") && strings.Contains(msg, strings.ToLower(col))
}
