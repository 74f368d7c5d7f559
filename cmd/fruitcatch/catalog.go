package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/fruit-catch/internal/platform/tui"
)

var flagPlain bool

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse item kinds and levels",
	Long: `Show the item kinds and level table of the active config, with the
difficulty preset applied.

Examples:
  fruitcatch catalog
  fruitcatch catalog --difficulty easy
  fruitcatch catalog --plain`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print tables instead of opening the browser")
}

func runCatalog(cmd *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(!flagPlain)
	if err != nil {
		return err
	}
	defer closeLog()

	catchCfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	if flagPlain {
		out := cmd.OutOrStdout()
		items := table.New().
			Border(lipgloss.RoundedBorder()).
			Headers("Item", "Glyph", "Cell", "Score", "Chance", "Effect").
			Rows(plainRows(tui.ItemRows(catchCfg))...)
		levels := table.New().
			Border(lipgloss.RoundedBorder()).
			Headers("Level", "Spawn every", "Fall time", "Starts at").
			Rows(plainRows(tui.LevelRows(catchCfg))...)
		fmt.Fprintln(out, items.String())
		fmt.Fprintln(out, levels.String())
		return nil
	}

	width, height := terminalSize()
	return tui.RunCatalog(catchCfg, width, height)
}

// plainRows converts browser table rows for lipgloss tables.
func plainRows[R ~[]string](rows []R) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string(r)
	}
	return out
}
