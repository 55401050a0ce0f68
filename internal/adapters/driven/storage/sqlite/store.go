package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/semdex/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/semdex/internal/core/domain"
	"github.com/custodia-labs/semdex/internal/core/ports/driven"
)

// DefaultFileName is the cache file name inside the semdex directory.
const DefaultFileName = "cache.db"

// Ensure Store implements the interface.
var _ driven.ArticleCache = (*Store)(nil)

// Store is a SQLite-backed article cache keyed by requested title.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Open opens or creates the cache at path and applies pending migrations.
// If path is empty, defaults to ~/.semdex/cache.db.
func Open(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, ".semdex", DefaultFileName)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	// WAL lets fetch workers read while another writes.
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: path,
		now:  time.Now,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate applies every NNN_name.up.sql newer than the recorded version.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Get returns the article cached under title.
func (s *Store) Get(ctx context.Context, title string) (domain.Article, bool, error) {
	var a domain.Article
	err := s.db.QueryRowContext(ctx, `
		SELECT title, content, url FROM articles WHERE requested_title = ?
	`, title).Scan(&a.Title, &a.Content, &a.URL)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Article{}, false, nil
	}
	if err != nil {
		return domain.Article{}, false, fmt.Errorf("querying article %q: %w", title, err)
	}
	return a, true, nil
}

// Put stores article under the title it was requested by, replacing any
// earlier entry.
func (s *Store) Put(ctx context.Context, runID, title string, article domain.Article) error {
	if title == "" {
		return fmt.Errorf("caching article: %w: empty title", domain.ErrInvalidInput)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO articles (requested_title, title, content, url, run_id, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(requested_title) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			url = excluded.url,
			run_id = excluded.run_id,
			fetched_at = excluded.fetched_at
	`, title, article.Title, article.Content, article.URL, runID, s.now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("caching article %q: %w", title, err)
	}
	return nil
}

// Len returns the number of cached articles.
func (s *Store) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting articles: %w", err)
	}
	return n, nil
}

// Purge deletes every cached article and returns how many were removed.
func (s *Store) Purge(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM articles")
	if err != nil {
		return 0, fmt.Errorf("purging articles: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purging articles: %w", err)
	}
	return int(n), nil
}
