package db

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris/catsort/internal/db/migrations"
	"github.com/chris/catsort/pkg/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := NewForTesting(filepath.Join(t.TempDir(), "site.db"))
	require.NoError(t, err, "failed to create database")
	t.Cleanup(func() { database.Close() })
	return database
}

// TestInitSchema_CreatesTables tests creating the schema on a fresh file
func TestInitSchema_CreatesTables(t *testing.T) {
	// Given: no existing database
	dbPath := filepath.Join(t.TempDir(), "nested", "site.db")
	_, err := os.Stat(dbPath)
	require.True(t, os.IsNotExist(err), "database should not exist yet")

	// When: opening without schema check and initializing
	database, err := NewWithOptions(dbPath, Options{SkipSchemaCheck: true})
	require.NoError(t, err)
	defer database.Close()

	created, err := database.InitSchema()

	// Then: the schema is created at the current version
	require.NoError(t, err)
	assert.True(t, created, "schema should be reported as created")
	assert.Equal(t, dbPath, database.Path())

	exists, err := database.TableExists()
	require.NoError(t, err)
	assert.True(t, exists, "posts table should exist")

	version, err := migrations.Version(database.conn)
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, version)

	// And: initializing again is a no-op
	created, err = database.InitSchema()
	require.NoError(t, err)
	assert.False(t, created, "second init should not recreate schema")
}

// TestNew_RequiresInitializedSchema tests that New refuses an empty database
func TestNew_RequiresInitializedSchema(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "site.db"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotInitialized)
}

// TestNew_AppliesPendingMigrations tests upgrading a version 1 database
func TestNew_AppliesPendingMigrations(t *testing.T) {
	// Given: a database created with only the first migration
	dbPath := filepath.Join(t.TempDir(), "site.db")
	conn, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	_, err = conn.Exec(migrations.All[0])
	require.NoError(t, err)
	_, err = conn.Exec("PRAGMA user_version = 1")
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	// When: opening it normally
	database, err := New(dbPath)
	require.NoError(t, err)
	defer database.Close()

	// Then: it is at the current version
	version, err := migrations.Version(database.conn)
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, version)
}

// TestResolvePath tests default and tilde paths
func TestResolvePath(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	path, err := ResolvePath("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataHome, "catsort", "site.db"), path)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	path, err = ResolvePath("~/blog/site.db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "blog", "site.db"), path)

	path, err = ResolvePath("/srv/site.db")
	require.NoError(t, err)
	assert.Equal(t, "/srv/site.db", path)
}

// TestInsertPost_WithCategories tests storing a post and reading it back
func TestInsertPost_WithCategories(t *testing.T) {
	// Given: an initialized database
	database := newTestDB(t)

	// When: inserting a post with categories
	post := models.NewPost("bgp-intro", "Intro to BGP", "networking", "bgp")
	id, err := database.InsertPost(post)
	require.NoError(t, err)

	// Then: the post is stored with its categories in order
	got, err := database.GetPost(id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "bgp-intro", got.Slug)
	assert.Equal(t, "Intro to BGP", got.Title)
	assert.Equal(t, post.PublishedAt, got.PublishedAt)
	assert.Equal(t, []string{"networking", "bgp"}, got.Categories)

	count, err := database.CountPosts()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

// TestInsertPost_SharesCategories tests that categories are reused across posts
func TestInsertPost_SharesCategories(t *testing.T) {
	database := newTestDB(t)

	_, err := database.InsertPost(models.NewPost("a", "A", "networking", " linux "))
	require.NoError(t, err)
	_, err = database.InsertPost(models.NewPost("b", "B", "networking", "networking", ""))
	require.NoError(t, err)

	names, err := database.CategoryNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"linux", "networking"}, names)
}

// TestInsertPost_DuplicateSlug tests that slugs are unique
func TestInsertPost_DuplicateSlug(t *testing.T) {
	database := newTestDB(t)
	_, err := database.InsertPost(models.NewPost("evpn", "EVPN", "networking"))
	require.NoError(t, err)

	_, err = database.InsertPost(models.NewPost("evpn", "EVPN again", "linux"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateSlug)

	// And: the failed insert left nothing behind
	names, err := database.CategoryNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"networking"}, names)
}

// TestInsertPost_EmptySlug tests that a slug is required
func TestInsertPost_EmptySlug(t *testing.T) {
	database := newTestDB(t)

	_, err := database.InsertPost(&models.Post{Title: "No slug"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "slug is required")
}

// TestListPosts_Order tests that posts come back oldest first with categories
func TestListPosts_Order(t *testing.T) {
	// Given: posts inserted out of publish order
	database := newTestDB(t)
	posts := []*models.Post{
		{Slug: "newer", Title: "Newer", PublishedAt: 2000, Categories: []string{"linux"}},
		{Slug: "older", Title: "Older", PublishedAt: 1000, Categories: []string{"networking", "bgp"}},
		{Slug: "bare", Title: "Bare", PublishedAt: 1500},
	}
	for _, p := range posts {
		_, err := database.InsertPost(p)
		require.NoError(t, err)
	}

	// When: listing posts
	listed, err := database.ListPosts()

	// Then: they are ordered by publish time and carry their categories
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "older", listed[0].Slug)
	assert.Equal(t, []string{"networking", "bgp"}, listed[0].Categories)
	assert.Equal(t, "bare", listed[1].Slug)
	assert.Empty(t, listed[1].Categories)
	assert.Equal(t, "newer", listed[2].Slug)
	assert.Equal(t, []string{"linux"}, listed[2].Categories)
}

// TestListPosts_Empty tests listing an empty database
func TestListPosts_Empty(t *testing.T) {
	database := newTestDB(t)

	listed, err := database.ListPosts()

	require.NoError(t, err)
	assert.Empty(t, listed)
}
