package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/chris/catsort/internal/summary/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse categories interactively",
	Long:  "Open a terminal UI listing categories largest first. Enter shows the posts of a category, y copies a post slug.",
	RunE:  runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if !isTerminal(os.Stdout) {
		return fmt.Errorf("browse needs a terminal, use: catsort categories")
	}

	model := tui.New(databasePath())
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run browser: %w", err)
	}

	if err := model.Err(); err != nil {
		return err
	}
	logger.Debug("browser closed", "categories", len(model.Categories()))
	return nil
}
