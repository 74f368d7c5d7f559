// fruitcatch is a pose-controlled fruit catching game for the terminal.
//
// Usage:
//
//	fruitcatch play          - Play in the terminal (keyboard or pose bridge)
//	fruitcatch sim           - Run autopilot sessions and print results
//	fruitcatch catalog       - Browse item kinds and levels
//	fruitcatch serve         - Start SSH server for remote play
//	fruitcatch config        - Print or check a config file
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--config <path>       - Custom config YAML
//	--difficulty <name>   - Difficulty preset: easy, normal, hard
//	--log-level <level>   - debug, info, warn, error
//	--log-file <path>     - Append logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fruitcatch",
	Short: "Fruit Catch - catch falling fruit with your body",
	Long: `Fruit Catch drops fruit and bombs into three lanes. Move the basket
by leaning left, standing centred or leaning right in front of a pose
classifier, or with the arrow keys. Catch fruit, dodge bombs, and do not
miss more than three.

Available commands:
  play     - Play in the terminal
  sim      - Run autopilot sessions
  catalog  - Browse item kinds and levels
  serve    - Start SSH server for remote play
  config   - Print or check a config file

Examples:
  fruitcatch play
  fruitcatch play --pose-addr :8765
  fruitcatch sim --sessions 20 --seed 7
  fruitcatch serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}
