package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/chris/catsort/internal/db/migrations"
	"github.com/chris/catsort/pkg/models"
)

const defaultDBPath = "~/.local/share/catsort/site.db"

// SchemaVersion is the current database schema version
var SchemaVersion = len(migrations.All)

var (
	// ErrNotInitialized is returned when the schema has not been created yet
	ErrNotInitialized = errors.New("database not initialized, run: catsort init-db")
	// ErrDuplicateSlug is returned when a post with the same slug exists
	ErrDuplicateSlug = errors.New("post slug already exists")
)

// DB wraps the SQLite database connection
type DB struct {
	conn *sql.DB
	path string
}

// Options configures database connection behavior
type Options struct {
	// SkipSchemaCheck opens the database without verifying schema exists.
	// Use this for init-db command which creates the schema.
	SkipSchemaCheck bool
}

// queryer is satisfied by both *sql.DB and *sql.Tx
type queryer interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

// New opens an initialized database, applying any pending migrations
func New(dbPath string) (*DB, error) {
	return NewWithOptions(dbPath, Options{})
}

// ResolvePath expands ~ and picks the default location for an empty path
func ResolvePath(dbPath string) (string, error) {
	if dbPath == "" || dbPath == defaultDBPath {
		// Use XDG_DATA_HOME if set, otherwise fallback to ~/.local/share
		dataDir := os.Getenv("XDG_DATA_HOME")
		if dataDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get user home directory: %w", err)
			}
			dataDir = filepath.Join(home, ".local/share")
		}
		return filepath.Join(dataDir, "catsort/site.db"), nil
	}

	if dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		return filepath.Join(home, dbPath[1:]), nil
	}

	return dbPath, nil
}

// NewWithOptions creates a new database connection with configurable options
func NewWithOptions(dbPath string, opts Options) (*DB, error) {
	dbPath, err := ResolvePath(dbPath)
	if err != nil {
		return nil, err
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// PRAGMAs below are per connection
	conn.SetMaxOpenConns(1)

	// Set busy timeout first, before any other operations that might need write locks
	if _, err := conn.Exec("PRAGMA busy_timeout=5000"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if !opts.SkipSchemaCheck {
		version, err := migrations.Version(conn)
		if err != nil {
			conn.Close()
			return nil, err
		}
		if version == 0 {
			conn.Close()
			return nil, ErrNotInitialized
		}
		if version < SchemaVersion {
			if err := migrations.Migrate(conn); err != nil {
				conn.Close()
				return nil, fmt.Errorf("failed to migrate database: %w", err)
			}
		}
	}

	// Enable WAL mode for better concurrency
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	return &DB{
		conn: conn,
		path: dbPath,
	}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Path returns the database file path
func (db *DB) Path() string {
	return db.path
}

// NewForTesting creates a new database with schema initialized.
// This is a convenience function for tests.
func NewForTesting(dbPath string) (*DB, error) {
	db, err := NewWithOptions(dbPath, Options{SkipSchemaCheck: true})
	if err != nil {
		return nil, err
	}

	if _, err := db.InitSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// InitSchema creates the database schema and sets the schema version.
// Returns true if schema was created, false if it already existed.
func (db *DB) InitSchema() (bool, error) {
	version, err := migrations.Version(db.conn)
	if err != nil {
		return false, err
	}

	if err := migrations.Migrate(db.conn); err != nil {
		return false, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return version == 0, nil
}

// getOrCreateCategory returns the ID for a category, creating it if needed
func getOrCreateCategory(q queryer, name string) (int64, error) {
	var id int64
	err := q.QueryRow("SELECT id FROM categories WHERE name = ?", name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("failed to query category: %w", err)
	}

	result, err := q.Exec("INSERT INTO categories (name) VALUES (?)", name)
	if err != nil {
		return 0, fmt.Errorf("failed to insert category: %w", err)
	}

	return result.LastInsertId()
}

// InsertPost inserts a post and links its categories in one transaction
func (db *DB) InsertPost(post *models.Post) (int64, error) {
	slug := strings.TrimSpace(post.Slug)
	if slug == "" {
		return 0, fmt.Errorf("post slug is required")
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existing int64
	err = tx.QueryRow("SELECT id FROM posts WHERE slug = ?", slug).Scan(&existing)
	if err == nil {
		return 0, fmt.Errorf("%w: %s", ErrDuplicateSlug, slug)
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("failed to check slug: %w", err)
	}

	result, err := tx.Exec(
		"INSERT INTO posts (slug, title, published_at) VALUES (?, ?, ?)",
		slug, post.Title, post.PublishedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert post: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}

	for position, name := range normalizeCategories(post.Categories) {
		categoryID, err := getOrCreateCategory(tx, name)
		if err != nil {
			return 0, err
		}
		if _, err := tx.Exec(
			"INSERT INTO post_categories (post_id, category_id, position) VALUES (?, ?, ?)",
			id, categoryID, position,
		); err != nil {
			return 0, fmt.Errorf("failed to link category %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit post: %w", err)
	}

	return id, nil
}

// normalizeCategories trims names and drops blanks and repeats, keeping order
func normalizeCategories(categories []string) []string {
	seen := make(map[string]bool, len(categories))
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// GetPost retrieves a post and its categories by ID
func (db *DB) GetPost(id int64) (*models.Post, error) {
	post := &models.Post{}
	err := db.conn.QueryRow(
		"SELECT id, slug, title, published_at FROM posts WHERE id = ?", id,
	).Scan(&post.ID, &post.Slug, &post.Title, &post.PublishedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	categories, err := db.categoriesByPost("WHERE pc.post_id = ?", id)
	if err != nil {
		return nil, err
	}
	post.Categories = categories[id]

	return post, nil
}

// CountPosts returns the total number of posts in the database
func (db *DB) CountPosts() (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM posts").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

// ListPosts returns all posts ordered by publish time, oldest first
func (db *DB) ListPosts() ([]models.Post, error) {
	rows, err := db.conn.Query("SELECT id, slug, title, published_at FROM posts ORDER BY published_at ASC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var post models.Post
		if err := rows.Scan(&post.ID, &post.Slug, &post.Title, &post.PublishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}

	categories, err := db.categoriesByPost("")
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].Categories = categories[posts[i].ID]
	}

	return posts, nil
}

// categoriesByPost loads category names keyed by post ID, in the order they
// were given when the post was added
func (db *DB) categoriesByPost(where string, args ...any) (map[int64][]string, error) {
	rows, err := db.conn.Query(`
		SELECT pc.post_id, c.name
		FROM post_categories pc
		JOIN categories c ON c.id = pc.category_id
		`+where+`
		ORDER BY pc.post_id, pc.position`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query post categories: %w", err)
	}
	defer rows.Close()

	categories := make(map[int64][]string)
	for rows.Next() {
		var postID int64
		var name string
		if err := rows.Scan(&postID, &name); err != nil {
			return nil, fmt.Errorf("failed to scan post category: %w", err)
		}
		categories[postID] = append(categories[postID], name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post categories: %w", err)
	}

	return categories, nil
}

// CategoryNames returns every known category name in ascending order
func (db *DB) CategoryNames() ([]string, error) {
	rows, err := db.conn.Query("SELECT name FROM categories ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// TableExists checks if the posts table exists
func (db *DB) TableExists() (bool, error) {
	var name string
	err := db.conn.QueryRow(`
		SELECT name FROM sqlite_master
		WHERE type='table' AND name='posts'`).Scan(&name)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check table existence: %w", err)
	}
	return true, nil
}
