package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("outpostd %s (commit: %s, built: %s)\n", Version, Commit, Date)
		return nil
	},
}
