package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/fruit-catch/internal/games/fruitcatch"
)

var (
	flagSessions int
	flagRealtime bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run autopilot sessions and print the results",
	Long: `Play sessions headlessly with an autopilot that chases the fruit
closest to landing and steps away from falling bombs.

Sessions run on virtual time and finish instantly. With --realtime a
single session runs on the wall clock, and --pose-addr lets a pose
classifier steer alongside the autopilot.

Examples:
  fruitcatch sim
  fruitcatch sim --sessions 100 --seed 1 --difficulty hard
  fruitcatch sim --realtime --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSessions, "sessions", 5, "Number of sessions to simulate")
	simCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Run one session on the wall clock")
	simCmd.Flags().StringVar(&flagPoseAddr, "pose-addr", "", "Start the pose bridge on this address (realtime only)")
}

func runSim(cmd *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	catchCfg, err := loadConfig(logger)
	if err != nil {
		return err
	}
	if flagSessions < 1 {
		return fmt.Errorf("--sessions must be at least 1")
	}

	var results []fruitcatch.Tally
	if flagRealtime {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var poses <-chan string
		if flagPoseAddr != "" {
			bridge, err := startBridge(ctx, catchCfg, logger)
			if err != nil {
				return err
			}
			poses = bridge.Labels()
		}

		t, err := fruitcatch.SimulateRealtime(ctx, catchCfg, sessionSeed(0), flagFPS, logger, poses)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		results = append(results, t)
	} else {
		for i := 0; i < flagSessions; i++ {
			seed := sessionSeed(i)
			t := fruitcatch.Simulate(catchCfg, seed, flagFPS, logger)
			logger.Debug("session simulated", "session", i+1, "seed", seed, "score", t.Score)
			results = append(results, t)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), resultsTable(results))
	return nil
}

// resultsTable renders one row per session and a final average row.
func resultsTable(results []fruitcatch.Tally) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("#", "Score", "Level", "Caught", "Missed", "Spawned", "End")

	var score, caught, missed int
	for i, r := range results {
		t.Row(
			strconv.Itoa(i+1),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Level),
			strconv.Itoa(r.Caught),
			strconv.Itoa(r.Missed),
			strconv.Itoa(r.Spawned),
			string(r.Reason),
		)
		score += r.Score
		caught += r.Caught
		missed += r.Missed
	}

	if n := len(results); n > 1 {
		t.Row(
			"avg",
			strconv.Itoa(score/n),
			"",
			fmt.Sprintf("%.1f", float64(caught)/float64(n)),
			fmt.Sprintf("%.1f", float64(missed)/float64(n)),
			"",
			"",
		)
	}
	return t.String()
}
