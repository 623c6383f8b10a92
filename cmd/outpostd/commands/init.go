package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/outpost-go/flightcore/pkg/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Init writes a starting configuration file with the defaults start would
otherwise fall back to, so an operator has a concrete file to edit instead of
having to discover every knob from scratch.

By default the file is written to $XDG_CONFIG_HOME/outpostd/config.yaml. Use
--config to pick a different path.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := GetConfigFile()
	if path == "" {
		path = config.DefaultConfigPath()
	}

	if !initForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
		}
	}

	if err := config.SaveConfig(config.DefaultConfig(), path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("configuration file written to: %s\n", path)
	return nil
}
