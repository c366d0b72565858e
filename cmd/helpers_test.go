package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/chris/catsort/internal/db"
	"github.com/chris/catsort/pkg/models"
)

// isolateConfig points config and data lookups at a temp dir and clears
// environment overrides
func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("CATSORT_DB", "")
	t.Setenv("CATSORT_SITE_TITLE", "")
	t.Setenv("CATSORT_LOG_LEVEL", "")
}

// resetFlags restores every flag of c to its default and clears Changed,
// since cobra keeps flag state between Execute calls
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			sv.Replace(nil)
		} else {
			f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
}

// executeCommand runs the root command with args and returns stdout
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	isolateConfig(t)

	resetFlags(rootCmd)
	for _, sub := range rootCmd.Commands() {
		resetFlags(sub)
	}

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

// seedDatabase creates a database at a temp path holding posts
func seedDatabase(t *testing.T, posts ...*models.Post) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "site.db")

	database, err := db.NewForTesting(dbPath)
	require.NoError(t, err, "failed to create database")
	defer database.Close()

	for _, p := range posts {
		_, err := database.InsertPost(p)
		require.NoError(t, err, "failed to insert post")
	}
	return dbPath
}
