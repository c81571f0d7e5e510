// Package store provides SQLite persistence for feed sources and favorites.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/abelbrown/tuirss/internal/feed"
	"github.com/abelbrown/tuirss/internal/logging"
	_ "modernc.org/sqlite"
)

// seededKey marks that the default feeds were inserted once.
const seededKey = "seeded"

var memCounter atomic.Int64

// Store handles SQLite persistence. NOT an interface - concrete type.
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type Store struct {
	db *sql.DB
	mu sync.RWMutex // Protects all database operations
}

// Open creates a new Store with the given database path.
// Creates tables if they don't exist.
// Uses WAL mode for better concurrent read performance (file-based DBs only).
// Every ":memory:" store is a separate database.
func Open(dbPath string) (*Store, error) {
	memory := dbPath == ":memory:"

	connStr := dbPath
	if memory {
		// Named shared-cache database so all pooled connections see the
		// same data without leaking into other stores in the process.
		connStr = fmt.Sprintf("file:tuirss-mem-%d?mode=memory&cache=shared", memCounter.Add(1))
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if memory {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if !memory {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db}

	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return s, nil
}

// createTables creates the required tables and indexes if they don't exist.
func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS feeds (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		url TEXT NOT NULL UNIQUE,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS favorites (
		article_id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		link TEXT NOT NULL,
		feed_name TEXT,
		saved_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
// Thread-safe: acquires write lock to prevent closing during in-flight operations.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// Seed inserts defaults the first time it is called on a database and
// reports whether it did. Later calls are no-ops even if every feed has
// since been removed.
func (s *Store) Seed(defaults []feed.FeedSource) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("seed: %w", err)
	}
	defer tx.Rollback()

	var v string
	err = tx.QueryRow("SELECT value FROM meta WHERE key = ?", seededKey).Scan(&v)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("seed: %w", err)
	}

	now := time.Now()
	for i, src := range defaults {
		if _, err := tx.Exec(
			"INSERT OR IGNORE INTO feeds (id, name, url, created_at) VALUES (?, ?, ?, ?)",
			src.ID, src.Name, src.URL, now.Add(time.Duration(i)*time.Millisecond),
		); err != nil {
			return false, fmt.Errorf("seed %s: %w", src.URL, err)
		}
	}
	if _, err := tx.Exec("INSERT INTO meta (key, value) VALUES (?, ?)", seededKey, now.Format(time.RFC3339)); err != nil {
		return false, fmt.Errorf("seed: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("seed: %w", err)
	}

	logging.Info("store seeded", "feeds", len(defaults))
	return true, nil
}

// ListFeedSources returns subscribed feeds in the order they were added.
// Thread-safe: acquires read lock.
func (s *Store) ListFeedSources() ([]feed.FeedSource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name, url FROM feeds ORDER BY created_at, rowid")
	if err != nil {
		return nil, fmt.Errorf("list feeds: %w", err)
	}
	defer rows.Close()

	var sources []feed.FeedSource
	for rows.Next() {
		var src feed.FeedSource
		if err := rows.Scan(&src.ID, &src.Name, &src.URL); err != nil {
			return nil, fmt.Errorf("list feeds: %w", err)
		}
		sources = append(sources, src)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list feeds: %w", err)
	}
	return sources, nil
}

// AddFeedSource stores src. A source whose id or url already exists is
// silently ignored; the return value reports whether a row was inserted.
// Thread-safe: acquires write lock.
func (s *Store) AddFeedSource(src feed.FeedSource) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		"INSERT OR IGNORE INTO feeds (id, name, url, created_at) VALUES (?, ?, ?, ?)",
		src.ID, src.Name, src.URL, time.Now(),
	)
	if err != nil {
		return false, fmt.Errorf("add feed: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("add feed: %w", err)
	}
	if n > 0 {
		logging.Info("feed added", "id", src.ID, "url", src.URL)
	}
	return n > 0, nil
}

// RemoveFeedSource deletes the feed with the given id. Unknown ids are not
// an error.
// Thread-safe: acquires write lock.
func (s *Store) RemoveFeedSource(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM feeds WHERE id = ?", id); err != nil {
		return fmt.Errorf("remove feed: %w", err)
	}
	logging.Info("feed removed", "id", id)
	return nil
}

// RenameFeedSource changes the display name of a feed.
// Thread-safe: acquires write lock.
func (s *Store) RenameFeedSource(id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("UPDATE feeds SET name = ? WHERE id = ?", name, id); err != nil {
		return fmt.Errorf("rename feed: %w", err)
	}
	return nil
}

// ListFavorites returns saved articles, most recently saved first.
// Thread-safe: acquires read lock.
func (s *Store) ListFavorites() ([]feed.FavoriteRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT article_id, title, link, COALESCE(feed_name, ''), saved_at
		FROM favorites
		ORDER BY saved_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	var favs []feed.FavoriteRecord
	for rows.Next() {
		var f feed.FavoriteRecord
		if err := rows.Scan(&f.ArticleID, &f.Title, &f.Link, &f.FeedName, &f.SavedAt); err != nil {
			return nil, fmt.Errorf("list favorites: %w", err)
		}
		favs = append(favs, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return favs, nil
}

// IsFavorite reports whether articleID is saved.
// Thread-safe: acquires read lock.
func (s *Store) IsFavorite(articleID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM favorites WHERE article_id = ?", articleID).Scan(&n); err != nil {
		return false, fmt.Errorf("is favorite: %w", err)
	}
	return n > 0, nil
}

// FavoriteIDs returns the set of saved article ids.
// Thread-safe: acquires read lock.
func (s *Store) FavoriteIDs() (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT article_id FROM favorites")
	if err != nil {
		return nil, fmt.Errorf("favorite ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("favorite ids: %w", err)
		}
		ids[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("favorite ids: %w", err)
	}
	return ids, nil
}

// ToggleFavorite saves rec if it is not saved yet and removes it otherwise.
// It returns the new membership state.
// Thread-safe: acquires write lock.
func (s *Store) ToggleFavorite(rec feed.FavoriteRecord) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("toggle favorite: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM favorites WHERE article_id = ?", rec.ArticleID)
	if err != nil {
		return false, fmt.Errorf("toggle favorite: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("toggle favorite: %w", err)
	}

	if removed == 0 {
		savedAt := rec.SavedAt
		if savedAt.IsZero() {
			savedAt = time.Now()
		}
		if _, err := tx.Exec(
			"INSERT INTO favorites (article_id, title, link, feed_name, saved_at) VALUES (?, ?, ?, ?, ?)",
			rec.ArticleID, rec.Title, rec.Link, nullString(rec.FeedName), savedAt,
		); err != nil {
			return false, fmt.Errorf("toggle favorite: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("toggle favorite: %w", err)
	}

	logging.Debug("favorite toggled", "article", rec.ArticleID, "saved", removed == 0)
	return removed == 0, nil
}

// RemoveFavorite deletes a saved article. Unknown ids are not an error.
// Thread-safe: acquires write lock.
func (s *Store) RemoveFavorite(articleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM favorites WHERE article_id = ?", articleID); err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
