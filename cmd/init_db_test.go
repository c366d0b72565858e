package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris/catsort/internal/db"
)

// TestInitDB_CreatesDatabase tests init-db on a fresh path
func TestInitDB_CreatesDatabase(t *testing.T) {
	// Given: no database
	dbPath := filepath.Join(t.TempDir(), "site.db")

	// When: running init-db
	output, err := executeCommand(t, "init-db", "--db", dbPath)

	// Then: the database is created and reported
	require.NoError(t, err)
	assert.Contains(t, output, "Database initialized: "+dbPath)

	_, err = os.Stat(dbPath)
	require.NoError(t, err, "database file should exist")

	database, err := db.New(dbPath)
	require.NoError(t, err, "initialized database should open")
	database.Close()
}

// TestInitDB_Idempotent tests that a second init-db is silent
func TestInitDB_Idempotent(t *testing.T) {
	dbPath := seedDatabase(t)

	output, err := executeCommand(t, "init-db", "--db", dbPath)

	require.NoError(t, err)
	assert.Empty(t, output, "already initialized database should print nothing")
}

// TestInitDB_UsesConfiguredPath tests that CATSORT_DB is used without --db
func TestInitDB_UsesConfiguredPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "configured.db")

	// isolateConfig clears CATSORT_DB, so write a config file instead
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("db: "+dbPath+"\n"), 0644))

	output, err := executeCommand(t, "init-db", "--config", configFile)

	require.NoError(t, err)
	assert.Contains(t, output, dbPath)
}
