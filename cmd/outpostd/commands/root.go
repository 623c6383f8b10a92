// Package commands implements outpostd's CLI: start the core, write a
// default config file, or print version information.
package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Version information injected at build time via ldflags.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"

	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "outpostd",
	Short: "outpostd runs the onboard software bus, aggregators, and data processor",
	Long: `outpostd wires together a software bus, parameter aggregators, and a
data processor thread over fixed-size buffer pools, matching the resource
model of an onboard computer: no unbounded allocation on the hot path.

Use "outpostd start" to run it, or "outpostd version" to check the build.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file (default: $XDG_CONFIG_HOME/outpostd/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(initCmd)
}

// GetConfigFile returns the config file path from the global --config flag.
func GetConfigFile() string {
	return cfgFile
}
