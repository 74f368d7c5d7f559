package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fruit-catch/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [path]",
	Short: "Print the default config or check a config file",
	Long: `Without arguments, print the embedded default config. Save it to
~/.fruitcatch/configs/catch.yaml or ./configs/catch.yaml to customise
the game.

With a path, load and validate that file and report every problem.

Examples:
  fruitcatch config > ~/.fruitcatch/configs/catch.yaml
  fruitcatch config ./my-catch.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		_, err := out.Write(config.DefaultYAML())
		return err
	}

	cfg, err := config.LoadCatch(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: ok (%d items, %d levels, %ds session)\n",
		args[0], len(cfg.Items), len(cfg.Levels), cfg.Session.DurationSeconds)
	return nil
}
