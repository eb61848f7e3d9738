package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verity-dev/verity/internal/version"
)

// versionCmd implements the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of verity",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("verity version %s\n", version.Long())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
