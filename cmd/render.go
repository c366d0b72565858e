package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chris/catsort/internal/db"
	"github.com/chris/catsort/internal/render"
	"github.com/chris/catsort/internal/site"
)

var (
	renderDataFile string
	renderOutFile  string
)

var renderCmd = &cobra.Command{
	Use:   "render TEMPLATE",
	Short: "Render a template against the site",
	Long: `Render a Go template with the site available as .Site.

Templates can call sort_hash_by_value to list categories largest first:

  {{range sort_hash_by_value .Site.Categories}}{{.Key}} ({{.Size}})
  {{end}}

Site data comes from --data (YAML, TOML or JSON) or, without it, from the
database. Files ending in .html or .htm are escaped as HTML. On error nothing
is written.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVar(&renderDataFile, "data", "", "Site data file (.yaml, .toml or .json) instead of the database")
	renderCmd.Flags().StringVarP(&renderOutFile, "out", "o", "", "Write output to file (default: stdout)")
}

func runRender(cmd *cobra.Command, args []string) error {
	s, err := loadSite()
	if err != nil {
		return err
	}

	renderer, err := render.NewDefaultRenderer(logger)
	if err != nil {
		return fmt.Errorf("failed to set up renderer: %w", err)
	}

	var buf bytes.Buffer
	if err := renderer.RenderFile(&buf, args[0], map[string]any{"Site": s}); err != nil {
		return err
	}

	if renderOutFile == "" {
		_, err := buf.WriteTo(cmd.OutOrStdout())
		return err
	}

	if err := os.WriteFile(renderOutFile, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.Info("wrote rendered template", "path", renderOutFile, "bytes", buf.Len())
	return nil
}

// loadSite builds the site from --data when given, otherwise from the database
func loadSite() (*site.Site, error) {
	if renderDataFile != "" {
		s, err := site.LoadDataFile(renderDataFile)
		if err != nil {
			return nil, err
		}
		if s.Title == "" {
			s.Title = cfg.Site.Title
		}
		return s, nil
	}

	database, err := db.New(databasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	posts, err := database.ListPosts()
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}

	return site.FromPosts(cfg.Site.Title, posts), nil
}
