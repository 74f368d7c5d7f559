package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/fruit-catch/internal/config"
	"github.com/vovakirdan/fruit-catch/internal/core"
	"github.com/vovakirdan/fruit-catch/internal/games/fruitcatch"
	"github.com/vovakirdan/fruit-catch/internal/platform/tui"
	"github.com/vovakirdan/fruit-catch/internal/pose"
)

var (
	flagPoseAddr    string
	flagPoseOrigins []string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Fruit Catch in the terminal",
	Long: `Start a Fruit Catch session in the terminal.

Controls:
  Left/A     - Basket to the left zone
  Down/S     - Basket to the center zone
  Right/D    - Basket to the right zone
  P/Esc      - Pause
  R          - Restart (after game over)
  Ctrl+S     - Save a screenshot
  Q/Ctrl+C   - Quit

With --pose-addr a pose bridge listens for classifier frames over
websocket at /pose and serves the live game state at /state.

Difficulty options:
  easy   - Two extra misses, slower spawns and falls
  normal - Rules as configured
  hard   - One miss fewer, faster spawns and falls

Examples:
  fruitcatch play
  fruitcatch play --difficulty hard
  fruitcatch play --pose-addr :8765
  fruitcatch play --config ./my-catch.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPoseAddr, "pose-addr", "", "Start the pose bridge on this address (e.g. :8765)")
	playCmd.Flags().StringSliceVar(&flagPoseOrigins, "pose-origin", nil, "Browser origins allowed to connect to the pose bridge")
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	catchCfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	width, height := terminalSize()
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game := fruitcatch.New()
	opts := []tui.ModelOption{tui.WithLogger(logger)}

	if flagPoseAddr != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		bridge, err := startBridge(ctx, catchCfg, logger)
		if err != nil {
			return err
		}
		opts = append(opts,
			tui.WithPoseSource(bridge.Labels()),
			tui.WithTickObserver(func(tui.Game) {
				bridge.Publish(game.Snapshot())
			}),
		)
	}

	if err := tui.Run(game, cfg, opts...); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// startBridge binds the pose bridge address and serves it in the
// background until ctx is cancelled. Bind errors are returned at once.
func startBridge(ctx context.Context, catchCfg config.CatchConfig, logger *log.Logger) (*pose.Bridge, error) {
	bridge := pose.NewBridge(pose.BridgeConfig{
		Address:        flagPoseAddr,
		MinConfidence:  catchCfg.Pose.MinConfidence,
		StableFrames:   catchCfg.Pose.StableFrames,
		Labels:         pose.LabelMap(catchCfg.Pose.Labels),
		AllowedOrigins: flagPoseOrigins,
	}, logger)

	ln, err := net.Listen("tcp", flagPoseAddr)
	if err != nil {
		return nil, fmt.Errorf("pose bridge: %w", err)
	}

	go func() {
		if err := bridge.Serve(ctx, ln); err != nil {
			logger.Error("pose bridge stopped", "error", err)
		}
	}()
	return bridge, nil
}
