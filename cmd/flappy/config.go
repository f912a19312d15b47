package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after file lookup and the difficulty preset,
as YAML. Save the output to ~/.flappy/configs/flappy.yaml to customise it.

Examples:
  flappy config
  flappy config --difficulty hard > ~/.flappy/configs/flappy.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(_ *cobra.Command, _ []string) error {
	data, err := config.Marshal(gameConfig)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
