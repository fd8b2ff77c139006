package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gotube/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gotube",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gotube v%s\n", version.Version)
		fmt.Println("Hollow Steel Tube Sizing Tool")
		fmt.Printf("Build: %s (%s)\n", version.GitCommit, version.BuildTime)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
