package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// CatsortVersion is the current version of catsort
const CatsortVersion = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of catsort",
	Long:  "Print the version number of catsort",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "catsort version %s\n", CatsortVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	rootCmd.SetVersionTemplate("catsort version {{.Version}}\n")
	rootCmd.InitDefaultVersionFlag()
}
